package models

import (
	"time"

	"github.com/google/uuid"
)

// Comment is a user's remark on a pain, always tied to one translate.
type Comment struct {
	ID          uint      `json:"-" gorm:"primaryKey"`
	UUID        uuid.UUID `json:"uuid" gorm:"type:uuid;uniqueIndex;not null"`
	UserID      uint      `json:"-" gorm:"not null;index"`
	User        User      `json:"-" gorm:"foreignKey:UserID"`
	PainID      uint      `json:"-" gorm:"not null;index"`
	Pain        Pain      `json:"-" gorm:"foreignKey:PainID"`
	TranslateID uint      `json:"-" gorm:"not null;index"`
	Translate   Translate `json:"-" gorm:"foreignKey:TranslateID"`
	Content     string    `json:"content" gorm:"type:text;not null"`

	CreatedAt time.Time `json:"create_at"`
	UpdatedAt time.Time `json:"-"`
}

// CommentEdge is one parent→child link in a comment thread. A comment may
// never become its own ancestor; edge creation enforces that.
type CommentEdge struct {
	ID       uint    `gorm:"primaryKey"`
	ParentID uint    `gorm:"not null;index;uniqueIndex:idx_comment_edge"`
	Parent   Comment `gorm:"foreignKey:ParentID"`
	ChildID  uint    `gorm:"not null;index;uniqueIndex:idx_comment_edge"`
	Child    Comment `gorm:"foreignKey:ChildID"`

	CreatedAt time.Time
}

// CreateCommentRequest defines the request body for commenting on a pain.
// Parent, when set, threads the new comment under an existing one.
type CreateCommentRequest struct {
	Pain      string   `json:"pain" validate:"required,uuid"`
	Translate string   `json:"translate" validate:"required,uuid"`
	Content   string   `json:"content" validate:"required,min=1,max=2000"`
	Parent    *string  `json:"parent" validate:"omitempty,uuid"`
	Tags      []string `json:"tags" validate:"omitempty,dive,min=1,max=100"`
}
