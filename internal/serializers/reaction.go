package serializers

import (
	"time"

	"github.com/celebot/backend/internal/models"
	"github.com/google/uuid"
)

// ReactionView is a reaction's representation. Stat is a live
// recomputation of the pain's ranked reaction breakdown.
type ReactionView struct {
	UUID       uuid.UUID            `json:"uuid"`
	User       uuid.UUID            `json:"user"`
	UserHexID  string               `json:"user_hexid"`
	Pain       uuid.UUID            `json:"pain"`
	Translate  uuid.UUID            `json:"translate"`
	Identifier string               `json:"identifier"`
	CreateAt   time.Time            `json:"create_at"`
	Stat       *models.ReactionStat `json:"stat,omitempty"`
}

// NewReactionView builds a reaction representation. The reaction must be
// loaded with its User, Pain and Translate relations.
func NewReactionView(r *models.Reaction, stat *models.ReactionStat) ReactionView {
	return ReactionView{
		UUID:       r.UUID,
		User:       r.User.UUID,
		UserHexID:  r.User.HexID,
		Pain:       r.Pain.UUID,
		Translate:  r.Translate.UUID,
		Identifier: r.Identifier,
		CreateAt:   r.CreatedAt,
		Stat:       stat,
	}
}

// CommentView is a comment's representation; Parent is the threading
// parent's uuid when the comment is a reply.
type CommentView struct {
	UUID      uuid.UUID  `json:"uuid"`
	User      uuid.UUID  `json:"user"`
	UserHexID string     `json:"user_hexid"`
	Pain      uuid.UUID  `json:"pain"`
	Translate uuid.UUID  `json:"translate"`
	Content   string     `json:"content"`
	Parent    *uuid.UUID `json:"parent"`
	Tags      []TagView  `json:"tags"`
	CreateAt  time.Time  `json:"create_at"`
}

// NewCommentView builds a comment representation. The comment must be
// loaded with its User, Pain and Translate relations.
func NewCommentView(c *models.Comment, parent *uuid.UUID, tags []models.Tag) CommentView {
	return CommentView{
		UUID:      c.UUID,
		User:      c.User.UUID,
		UserHexID: c.User.HexID,
		Pain:      c.Pain.UUID,
		Translate: c.Translate.UUID,
		Content:   c.Content,
		Parent:    parent,
		Tags:      NewTagViews(tags),
		CreateAt:  c.CreatedAt,
	}
}
