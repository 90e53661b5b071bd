package models

import (
	"bytes"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
)

// Reaction identifiers form a closed set. ReactionIdentifiers preserves
// the enumeration order, which also breaks ties when stats are ranked.
const (
	IdentifierCelebrate  = "celebrate"
	IdentifierSupport    = "support"
	IdentifierFavorite   = "favorite"
	IdentifierInsightful = "insightful"
	IdentifierCurious    = "curious"
)

// ReactionIdentifiers lists every identifier in enumeration order.
var ReactionIdentifiers = []string{
	IdentifierCelebrate,
	IdentifierSupport,
	IdentifierFavorite,
	IdentifierInsightful,
	IdentifierCurious,
}

// IsValidIdentifier reports whether s is a member of the closed set.
func IsValidIdentifier(s string) bool {
	for _, ident := range ReactionIdentifiers {
		if ident == s {
			return true
		}
	}
	return false
}

// Reaction is a user's single emotional response to a pain. A user holds
// at most one reaction per pain; a second reaction overwrites the first.
type Reaction struct {
	ID          uint      `json:"-" gorm:"primaryKey"`
	UUID        uuid.UUID `json:"uuid" gorm:"type:uuid;uniqueIndex;not null"`
	UserID      uint      `json:"-" gorm:"not null;uniqueIndex:idx_reaction_user_pain"`
	User        User      `json:"-" gorm:"foreignKey:UserID"`
	PainID      uint      `json:"-" gorm:"not null;index;uniqueIndex:idx_reaction_user_pain"`
	Pain        Pain      `json:"-" gorm:"foreignKey:PainID"`
	TranslateID uint      `json:"-" gorm:"not null;index"` // informational, not part of the natural key
	Translate   Translate `json:"-" gorm:"foreignKey:TranslateID"`
	Identifier  string    `json:"identifier" gorm:"size:15;not null;index"`

	CreatedAt time.Time `json:"create_at"`
	UpdatedAt time.Time `json:"-"`
}

// CreateReactionRequest defines the request body for reacting to a pain.
type CreateReactionRequest struct {
	Pain       string `json:"pain" validate:"required,uuid"`
	Translate  string `json:"translate" validate:"required,uuid"`
	Identifier string `json:"identifier" validate:"required"`
}

// UpdateReactionRequest defines the request body for changing a reaction.
type UpdateReactionRequest struct {
	Identifier string `json:"identifier" validate:"required"`
}

// StatEntry is one identifier's count within a reaction stat block.
type StatEntry struct {
	Identifier string
	Count      int64
}

// ReactionStat is the ranked reaction breakdown for one pain: the total
// plus one entry per identifier in the closed set, zero-filled and sorted
// by descending count with ties in enumeration order.
type ReactionStat struct {
	Total   int64
	Entries []StatEntry
}

// NewReactionStat ranks entries by descending count. The stable sort keeps
// the enumeration order between equal counts, so the output is
// deterministic.
func NewReactionStat(total int64, entries []StatEntry) ReactionStat {
	ranked := make([]StatEntry, len(entries))
	copy(ranked, entries)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	return ReactionStat{Total: total, Entries: ranked}
}

// MarshalJSON emits an ordered object, total first then identifiers in
// ranked order. A plain map would lose the ranking.
func (s ReactionStat) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	fmt.Fprintf(&buf, `"total":%d`, s.Total)
	for _, e := range s.Entries {
		fmt.Fprintf(&buf, `,"%s":%d`, e.Identifier, e.Count)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
