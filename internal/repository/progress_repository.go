package repository

import (
	"learntrack_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

// Upsert writes the completion state for (user, content). The unique index
// on the pair plus the transaction gives last-write-wins for concurrent
// toggles on the same key.
func (r *ProgressRepository) Upsert(userID, contentID uint, completed bool) (*model.ProgressEntry, error) {
	var entry model.ProgressEntry

	err := r.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("user_id = ? AND content_id = ?", userID, contentID).
			First(&entry).Error

		now := time.Now()

		if err == gorm.ErrRecordNotFound {
			entry = model.ProgressEntry{
				UserID:    userID,
				ContentID: contentID,
				Completed: completed,
			}
			if completed {
				entry.CompletedAt = &now
			}
			return tx.Create(&entry).Error
		}
		if err != nil {
			return err
		}

		entry.Completed = completed
		if completed {
			if entry.CompletedAt == nil {
				entry.CompletedAt = &now
			}
		} else {
			entry.CompletedAt = nil
		}
		return tx.Save(&entry).Error
	})

	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// CompletionMap reports completion for the given content ids, defaulting to
// false for ids without a ledger entry.
func (r *ProgressRepository) CompletionMap(userID uint, contentIDs []uint) (map[uint]bool, error) {
	statusMap := make(map[uint]bool, len(contentIDs))
	for _, id := range contentIDs {
		statusMap[id] = false
	}
	if len(contentIDs) == 0 {
		return statusMap, nil
	}

	var entries []model.ProgressEntry
	err := r.DB.Where("user_id = ? AND content_id IN ?", userID, contentIDs).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}

	for _, entry := range entries {
		statusMap[entry.ContentID] = entry.Completed
	}
	return statusMap, nil
}

func (r *ProgressRepository) CountCompleted(userID uint, contentIDs []uint) (int64, error) {
	if len(contentIDs) == 0 {
		return 0, nil
	}
	var count int64
	err := r.DB.Model(&model.ProgressEntry{}).
		Where("user_id = ? AND completed = ? AND content_id IN ?", userID, true, contentIDs).
		Count(&count).Error
	return count, err
}

func (r *ProgressRepository) CountCompletedAll(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.ProgressEntry{}).
		Where("user_id = ? AND completed = ?", userID, true).
		Count(&count).Error
	return count, err
}

func (r *ProgressRepository) LastActivity(userID uint) (*time.Time, error) {
	var entry model.ProgressEntry
	err := r.DB.Where("user_id = ?", userID).
		Order("updated_at DESC").
		First(&entry).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry.UpdatedAt, nil
}

func (r *ProgressRepository) CountEntries() (int64, error) {
	var count int64
	err := r.DB.Model(&model.ProgressEntry{}).Count(&count).Error
	return count, err
}

func (r *ProgressRepository) CountCompletedEntries() (int64, error) {
	var count int64
	err := r.DB.Model(&model.ProgressEntry{}).Where("completed = ?", true).Count(&count).Error
	return count, err
}
