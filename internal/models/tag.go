package models

import "time"

// TaggableKind discriminates which entity a tag item points at.
const (
	TaggableTranslate = "translate"
	TaggableComment   = "comment"
)

// Tag is a labeled classification attachable to translates and comments.
type Tag struct {
	ID          uint    `json:"-" gorm:"primaryKey"`
	Name        string  `json:"name" gorm:"size:100;uniqueIndex;not null"`
	Slug        string  `json:"slug" gorm:"size:110;uniqueIndex;not null"`
	Locale      *string `json:"locale,omitempty" gorm:"size:15"`
	Description *string `json:"description,omitempty" gorm:"type:text"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// TagItem attaches a tag to one entity, identified by a (kind, entity id)
// pair rather than a generic relation.
type TagItem struct {
	ID       uint   `gorm:"primaryKey"`
	TagID    uint   `gorm:"not null;index;uniqueIndex:idx_tag_item"`
	Tag      Tag    `gorm:"foreignKey:TagID"`
	Kind     string `gorm:"size:20;not null;uniqueIndex:idx_tag_item"`
	EntityID uint   `gorm:"not null;index;uniqueIndex:idx_tag_item"`

	CreatedAt time.Time
}
