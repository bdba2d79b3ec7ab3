package repository

import (
	"learntrack_backend/internal/model"

	"gorm.io/gorm"
)

type TopicRepository struct {
	DB *gorm.DB
}

func NewTopicRepository(db *gorm.DB) *TopicRepository {
	return &TopicRepository{DB: db}
}

// siblingOrder is the display order for topics and contents: order asc,
// ties broken by id asc. `order` needs quoting, it is a reserved word.
const siblingOrder = "`order` ASC, id ASC"

func (r *TopicRepository) Create(topic *model.Topic) error {
	return r.DB.Create(topic).Error
}

func (r *TopicRepository) FindByID(id uint) (*model.Topic, error) {
	var topic model.Topic
	err := r.DB.
		Preload("Contents", func(db *gorm.DB) *gorm.DB { return db.Order(siblingOrder) }).
		Preload("Subtopics", func(db *gorm.DB) *gorm.DB { return db.Order(siblingOrder) }).
		First(&topic, id).Error
	if err != nil {
		return nil, err
	}
	return &topic, nil
}

func (r *TopicRepository) Exists(id uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Topic{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *TopicRepository) FindRoots() ([]model.Topic, error) {
	var topics []model.Topic
	err := r.DB.Where("parent_id IS NULL").Order(siblingOrder).Find(&topics).Error
	return topics, err
}

func (r *TopicRepository) FindAll() ([]model.Topic, error) {
	var topics []model.Topic
	err := r.DB.Order(siblingOrder).Find(&topics).Error
	return topics, err
}

func (r *TopicRepository) FindChildren(parentID uint) ([]model.Topic, error) {
	var topics []model.Topic
	err := r.DB.Where("parent_id = ?", parentID).Order(siblingOrder).Find(&topics).Error
	return topics, err
}

func (r *TopicRepository) Save(topic *model.Topic) error {
	return r.DB.Save(topic).Error
}

func (r *TopicRepository) Count() (int64, error) {
	var count int64
	err := r.DB.Model(&model.Topic{}).Count(&count).Error
	return count, err
}

// SubtreeIDs returns the ids of a topic and every descendant, walking the
// parent_id index level by level. The parent relation is acyclic, so the
// walk terminates.
func (r *TopicRepository) SubtreeIDs(rootID uint) ([]uint, error) {
	ids := []uint{rootID}
	frontier := []uint{rootID}

	for len(frontier) > 0 {
		var children []uint
		err := r.DB.Model(&model.Topic{}).
			Where("parent_id IN ?", frontier).
			Pluck("id", &children).Error
		if err != nil {
			return nil, err
		}
		ids = append(ids, children...)
		frontier = children
	}

	return ids, nil
}

// DeleteSubtree removes a topic, its descendant topics, every content item
// under them and the progress entries for those contents, all in one
// transaction so no reader observes an orphan mid-delete.
func (r *TopicRepository) DeleteSubtree(rootID uint) error {
	ids, err := r.SubtreeIDs(rootID)
	if err != nil {
		return err
	}

	return r.DB.Transaction(func(tx *gorm.DB) error {
		var contentIDs []uint
		if err := tx.Model(&model.Content{}).
			Where("topic_id IN ?", ids).
			Pluck("id", &contentIDs).Error; err != nil {
			return err
		}

		if len(contentIDs) > 0 {
			if err := tx.Where("content_id IN ?", contentIDs).
				Delete(&model.ProgressEntry{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", contentIDs).
				Delete(&model.Content{}).Error; err != nil {
				return err
			}
		}

		return tx.Where("id IN ?", ids).Delete(&model.Topic{}).Error
	})
}
