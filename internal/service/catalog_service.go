package service

import (
	"errors"
	"learntrack_backend/internal/model"
	"learntrack_backend/internal/repository"
	"learntrack_backend/internal/util"

	"gorm.io/gorm"
)

// CatalogService owns the topic tree and content assignment. It rejects
// structurally invalid input regardless of who the caller is; authorization
// lives at the route boundary.
type CatalogService struct {
	TopicRepo   *repository.TopicRepository
	ContentRepo *repository.ContentRepository
}

func NewCatalogService(topicRepo *repository.TopicRepository, contentRepo *repository.ContentRepository) *CatalogService {
	return &CatalogService{
		TopicRepo:   topicRepo,
		ContentRepo: contentRepo,
	}
}

// RootTopic is a root topic annotated for the summary listing.
type RootTopic struct {
	Topic          model.Topic
	TotalItems     int
	SubtopicsCount int
}

func (s *CatalogService) GetTopic(id uint) (*model.Topic, error) {
	topic, err := s.TopicRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrTopicNotFound
	}
	if err != nil {
		return nil, err
	}
	return topic, nil
}

func (s *CatalogService) ListRootTopics() ([]RootTopic, error) {
	roots, err := s.TopicRepo.FindRoots()
	if err != nil {
		return nil, err
	}

	result := make([]RootTopic, 0, len(roots))
	for _, topic := range roots {
		total, err := s.TotalItems(topic.ID)
		if err != nil {
			return nil, err
		}
		children, err := s.TopicRepo.FindChildren(topic.ID)
		if err != nil {
			return nil, err
		}
		result = append(result, RootTopic{
			Topic:          topic,
			TotalItems:     total,
			SubtopicsCount: len(children),
		})
	}
	return result, nil
}

func (s *CatalogService) ListAllTopics() ([]model.Topic, error) {
	return s.TopicRepo.FindAll()
}

// TotalItems counts content in the topic and all of its descendants.
func (s *CatalogService) TotalItems(topicID uint) (int, error) {
	ids, err := s.TopicRepo.SubtreeIDs(topicID)
	if err != nil {
		return 0, err
	}
	count, err := s.ContentRepo.CountByTopicIDs(ids)
	return int(count), err
}

func (s *CatalogService) CreateTopic(title, description string, order int, parentID *uint) (*model.Topic, error) {
	if parentID != nil {
		exists, err := s.TopicRepo.Exists(*parentID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, util.ErrInvalidParent
		}
	}

	topic := &model.Topic{
		Title:       title,
		Description: description,
		Order:       order,
		ParentID:    parentID,
	}
	if err := s.TopicRepo.Create(topic); err != nil {
		return nil, err
	}
	return topic, nil
}

// UpdateTopicInput carries optional field updates; nil means unchanged.
// SetParent distinguishes "leave the parent alone" from "set it to
// ParentID, possibly nil (promote to root)".
type UpdateTopicInput struct {
	Title       *string
	Description *string
	Order       *int
	SetParent   bool
	ParentID    *uint
}

func (s *CatalogService) UpdateTopic(id uint, input UpdateTopicInput) (*model.Topic, error) {
	topic, err := s.TopicRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrTopicNotFound
	}
	if err != nil {
		return nil, err
	}

	if input.SetParent {
		if err := s.validateParent(id, input.ParentID); err != nil {
			return nil, err
		}
		topic.ParentID = input.ParentID
	}
	if input.Title != nil {
		topic.Title = *input.Title
	}
	if input.Description != nil {
		topic.Description = *input.Description
	}
	if input.Order != nil {
		topic.Order = *input.Order
	}

	if err := s.TopicRepo.Save(topic); err != nil {
		return nil, err
	}
	return topic, nil
}

// validateParent rejects dangling references and any assignment that would
// make the topic an ancestor of itself, directly or transitively.
func (s *CatalogService) validateParent(topicID uint, parentID *uint) error {
	if parentID == nil {
		return nil
	}
	if *parentID == topicID {
		return util.ErrInvalidParent
	}

	exists, err := s.TopicRepo.Exists(*parentID)
	if err != nil {
		return err
	}
	if !exists {
		return util.ErrInvalidParent
	}

	// Walk up from the candidate parent; hitting topicID means a cycle.
	current := parentID
	for current != nil {
		ancestor, err := s.TopicRepo.FindByID(*current)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrInvalidParent
		}
		if err != nil {
			return err
		}
		if ancestor.ID == topicID {
			return util.ErrInvalidParent
		}
		current = ancestor.ParentID
	}
	return nil
}

// DeleteTopic cascades over the whole subtree: descendant topics, their
// content items and the related ledger entries go in one transaction.
func (s *CatalogService) DeleteTopic(id uint) error {
	exists, err := s.TopicRepo.Exists(id)
	if err != nil {
		return err
	}
	if !exists {
		return util.ErrTopicNotFound
	}
	return s.TopicRepo.DeleteSubtree(id)
}

func (s *CatalogService) CreateContent(topicID uint, title string, contentType model.ContentType, url, description string, order int) (*model.Content, error) {
	if !model.ValidContentType(contentType) {
		return nil, util.ErrInvalidContentType
	}

	exists, err := s.TopicRepo.Exists(topicID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, util.ErrInvalidTopic
	}

	content := &model.Content{
		TopicID:     topicID,
		Title:       title,
		ContentType: contentType,
		URL:         url,
		Description: description,
		Order:       order,
	}
	if err := s.ContentRepo.Create(content); err != nil {
		return nil, err
	}
	return content, nil
}

type UpdateContentInput struct {
	Title       *string
	ContentType *model.ContentType
	URL         *string
	Description *string
	Order       *int
	TopicID     *uint
}

func (s *CatalogService) UpdateContent(id uint, input UpdateContentInput) (*model.Content, error) {
	content, err := s.ContentRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrContentNotFound
	}
	if err != nil {
		return nil, err
	}

	if input.ContentType != nil {
		if !model.ValidContentType(*input.ContentType) {
			return nil, util.ErrInvalidContentType
		}
		content.ContentType = *input.ContentType
	}
	if input.TopicID != nil {
		exists, err := s.TopicRepo.Exists(*input.TopicID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, util.ErrInvalidTopic
		}
		content.TopicID = *input.TopicID
	}
	if input.Title != nil {
		content.Title = *input.Title
	}
	if input.URL != nil {
		content.URL = *input.URL
	}
	if input.Description != nil {
		content.Description = *input.Description
	}
	if input.Order != nil {
		content.Order = *input.Order
	}

	if err := s.ContentRepo.Save(content); err != nil {
		return nil, err
	}
	return content, nil
}

func (s *CatalogService) DeleteContent(id uint) error {
	exists, err := s.ContentRepo.Exists(id)
	if err != nil {
		return err
	}
	if !exists {
		return util.ErrContentNotFound
	}
	return s.ContentRepo.Delete(id)
}

func (s *CatalogService) GetContent(id uint) (*model.Content, error) {
	content, err := s.ContentRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrContentNotFound
	}
	if err != nil {
		return nil, err
	}
	return content, nil
}

func (s *CatalogService) ListContents(topicID uint) ([]model.Content, error) {
	exists, err := s.TopicRepo.Exists(topicID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, util.ErrTopicNotFound
	}
	return s.ContentRepo.FindByTopic(topicID)
}

func (s *CatalogService) ListAllContent(topicID *uint) ([]model.Content, error) {
	return s.ContentRepo.FindAll(topicID)
}
