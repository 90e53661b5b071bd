package models

import (
	"time"

	"github.com/google/uuid"
)

// Pain is the root content entity: a user-authored trouble post. Every
// pain is created together with its first translate.
type Pain struct {
	ID        uint      `json:"-" gorm:"primaryKey"`
	UUID      uuid.UUID `json:"uuid" gorm:"type:uuid;uniqueIndex;not null"`
	UserID    uint      `json:"-" gorm:"not null;index"` // owner, immutable after creation
	User      User      `json:"-" gorm:"foreignKey:UserID"`
	CreatedAt time.Time `json:"create_at"`
	UpdatedAt time.Time `json:"-"`

	Translates []Translate `json:"-" gorm:"foreignKey:PainID"`
	Reactions  []Reaction  `json:"-" gorm:"foreignKey:PainID"`
	Comments   []Comment   `json:"-" gorm:"foreignKey:PainID"`
}

// AnnotatedPain is one row of the annotated pain listing: the pain's
// columns plus the caller-scoped aggregates computed by correlated
// subqueries. Field names match the column aliases of the listing query.
type AnnotatedPain struct {
	ID        uint
	UUID      uuid.UUID
	UserID    uint
	CreatedAt time.Time

	IsCreator     bool
	ReactionTotal int64
	ReactionGiven *string

	CelebrateCount  int64
	SupportCount    int64
	FavoriteCount   int64
	InsightfulCount int64
	CuriousCount    int64
}

// CountFor returns the aggregated reaction count for one identifier.
func (a *AnnotatedPain) CountFor(identifier string) int64 {
	switch identifier {
	case IdentifierCelebrate:
		return a.CelebrateCount
	case IdentifierSupport:
		return a.SupportCount
	case IdentifierFavorite:
		return a.FavoriteCount
	case IdentifierInsightful:
		return a.InsightfulCount
	case IdentifierCurious:
		return a.CuriousCount
	}
	return 0
}

// Stat builds the ranked reaction stat block from the row's aggregates.
func (a *AnnotatedPain) Stat() ReactionStat {
	entries := make([]StatEntry, 0, len(ReactionIdentifiers))
	for _, ident := range ReactionIdentifiers {
		entries = append(entries, StatEntry{Identifier: ident, Count: a.CountFor(ident)})
	}
	return NewReactionStat(a.ReactionTotal, entries)
}

// CreatePainRequest defines the request body for creating a new pain with
// its first translate.
type CreatePainRequest struct {
	Translate TranslatePayload `json:"translate" validate:"required"`
}

// UpdatePainRequest defines the request body for updating a pain's
// translate for one locale.
type UpdatePainRequest struct {
	Translate TranslatePayload `json:"translate" validate:"required"`
}
