package model

import "time"

// ProgressEntry records one user's completion state for one content item.
// At most one row exists per (user, content) pair; a missing row means
// not completed.
type ProgressEntry struct {
	BaseModel
	UserID      uint       `gorm:"uniqueIndex:idx_user_content;not null" json:"user_id"`
	ContentID   uint       `gorm:"uniqueIndex:idx_user_content;not null" json:"content_id"`
	Completed   bool       `gorm:"default:false" json:"completed"`
	CompletedAt *time.Time `json:"completed_at"`
}

// TopicProgress is a derived rollup for one user over one topic subtree.
// It is never stored.
type TopicProgress struct {
	CompletedCount int `json:"completed_count"`
	TotalCount     int `json:"total_count"`
	Percentage     int `json:"percentage"`
}

// OverallProgress is a derived rollup for one user over the whole catalog.
type OverallProgress struct {
	TotalCompleted int        `json:"total_completed"`
	TotalItems     int        `json:"total_items"`
	Percentage     int        `json:"percentage"`
	LastActivity   *time.Time `json:"last_activity"`
}
