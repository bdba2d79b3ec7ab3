package repository

import (
	"learntrack_backend/internal/model"

	"gorm.io/gorm"
)

type ContentRepository struct {
	DB *gorm.DB
}

func NewContentRepository(db *gorm.DB) *ContentRepository {
	return &ContentRepository{DB: db}
}

func (r *ContentRepository) Create(content *model.Content) error {
	return r.DB.Create(content).Error
}

func (r *ContentRepository) FindByID(id uint) (*model.Content, error) {
	var content model.Content
	err := r.DB.First(&content, id).Error
	if err != nil {
		return nil, err
	}
	return &content, nil
}

func (r *ContentRepository) Exists(id uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Content{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *ContentRepository) FindByTopic(topicID uint) ([]model.Content, error) {
	var contents []model.Content
	err := r.DB.Where("topic_id = ?", topicID).Order(siblingOrder).Find(&contents).Error
	return contents, err
}

// FindAll lists content for the admin surface, optionally filtered by
// owning topic, ordered by topic then sibling order.
func (r *ContentRepository) FindAll(topicID *uint) ([]model.Content, error) {
	var contents []model.Content
	q := r.DB.Order("topic_id ASC, " + siblingOrder)
	if topicID != nil {
		q = q.Where("topic_id = ?", *topicID)
	}
	err := q.Find(&contents).Error
	return contents, err
}

func (r *ContentRepository) FindRecent(limit int) ([]model.Content, error) {
	var contents []model.Content
	err := r.DB.Order("created_at DESC").Limit(limit).Find(&contents).Error
	return contents, err
}

func (r *ContentRepository) Save(content *model.Content) error {
	return r.DB.Save(content).Error
}

// Delete removes a content item together with its ledger entries.
func (r *ContentRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("content_id = ?", id).Delete(&model.ProgressEntry{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Content{}, id).Error
	})
}

func (r *ContentRepository) Count() (int64, error) {
	var count int64
	err := r.DB.Model(&model.Content{}).Count(&count).Error
	return count, err
}

func (r *ContentRepository) IDsByTopicIDs(topicIDs []uint) ([]uint, error) {
	if len(topicIDs) == 0 {
		return nil, nil
	}
	var ids []uint
	err := r.DB.Model(&model.Content{}).
		Where("topic_id IN ?", topicIDs).
		Pluck("id", &ids).Error
	return ids, err
}

func (r *ContentRepository) CountByTopicIDs(topicIDs []uint) (int64, error) {
	if len(topicIDs) == 0 {
		return 0, nil
	}
	var count int64
	err := r.DB.Model(&model.Content{}).
		Where("topic_id IN ?", topicIDs).
		Count(&count).Error
	return count, err
}
