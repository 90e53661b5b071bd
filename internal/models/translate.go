package models

import (
	"time"

	"github.com/google/uuid"
)

// Translate is a localized rendition of a pain's content. A pain holds at
// most one translate per locale.
type Translate struct {
	ID       uint      `json:"-" gorm:"primaryKey"`
	UUID     uuid.UUID `json:"uuid" gorm:"type:uuid;uniqueIndex;not null"`
	PainID   uint      `json:"-" gorm:"not null;index;uniqueIndex:idx_translate_pain_locale"`
	Pain     Pain      `json:"-" gorm:"foreignKey:PainID"`
	Locale   string    `json:"locale" gorm:"size:15;not null;default:en_US;uniqueIndex:idx_translate_pain_locale"`
	Label    *string   `json:"label" gorm:"size:255"`
	Problem  string    `json:"problem" gorm:"type:text;not null"`
	Solution string    `json:"solution" gorm:"type:text;not null"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// TranslatePayload is the nested translate body accepted by pain create
// and update. Tags, when present on update, replace the translate's tag
// set entirely.
type TranslatePayload struct {
	Locale   string   `json:"locale" validate:"required,max=15"`
	Label    *string  `json:"label" validate:"omitempty,max=255"`
	Problem  string   `json:"problem" validate:"required"`
	Solution string   `json:"solution" validate:"required"`
	Tags     []string `json:"tags" validate:"omitempty,dive,min=1,max=100"`
}
