package models

import (
	"time"

	"github.com/google/uuid"
)

// AttachableKind discriminates which entity an attachment belongs to.
const (
	AttachablePain    = "pain"
	AttachableComment = "comment"
)

// Attachment is an uploaded media file belonging to a pain or a comment,
// referenced by a (kind, entity id) pair like TagItem.
type Attachment struct {
	ID          uint      `json:"-" gorm:"primaryKey"`
	UUID        uuid.UUID `json:"uuid" gorm:"type:uuid;uniqueIndex;not null"`
	Kind        string    `json:"-" gorm:"size:20;not null;index:idx_attachment_owner"`
	EntityID    uint      `json:"-" gorm:"not null;index:idx_attachment_owner"`
	Name        string    `json:"name" gorm:"size:255;not null"`
	URL         string    `json:"url" gorm:"size:2048;not null"`
	ContentType string    `json:"content_type" gorm:"size:100"`

	CreatedAt time.Time `json:"create_at"`
}
