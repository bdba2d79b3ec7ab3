package model

type ContentType string

const (
	Video    ContentType = "video"
	Exercise ContentType = "exercise"
	Notes    ContentType = "notes"
)

// ValidContentType reports whether t is one of the supported kinds. The
// column is a plain varchar; validation happens here, not in the schema.
func ValidContentType(t ContentType) bool {
	switch t {
	case Video, Exercise, Notes:
		return true
	}
	return false
}

// Content is a single learnable item. Every content item belongs to
// exactly one topic.
type Content struct {
	BaseModel
	TopicID     uint        `gorm:"index;not null" json:"topic_id"`
	Title       string      `gorm:"size:200;not null" json:"title"`
	ContentType ContentType `gorm:"type:varchar(20);not null" json:"content_type"`
	URL         string      `gorm:"size:500" json:"url"`
	Description string      `gorm:"type:text" json:"description"`
	Order       int         `gorm:"column:order;default:0" json:"order"`
}
