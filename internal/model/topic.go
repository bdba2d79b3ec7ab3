package model

// Topic is a node of the catalog tree. ParentID is nil for roots; the
// parent relation stays acyclic, enforced at the service layer on every
// reparent.
type Topic struct {
	BaseModel
	Title       string `gorm:"size:200;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Order       int    `gorm:"column:order;default:0" json:"order"`
	ParentID    *uint  `gorm:"index" json:"parent"`

	Contents  []Content `gorm:"foreignKey:TopicID" json:"contents,omitempty"`
	Subtopics []Topic   `gorm:"foreignKey:ParentID" json:"subtopics,omitempty"`
}
