// Package serializers maps entities and query annotations to API
// representations.
package serializers

import (
	"time"

	"github.com/celebot/backend/internal/models"
	"github.com/google/uuid"
)

// TagView is the tag shape nested under translates and comments.
type TagView struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// TranslateView is one localized rendition of a pain.
type TranslateView struct {
	UUID     uuid.UUID `json:"uuid"`
	Pain     uuid.UUID `json:"pain"`
	Locale   string    `json:"locale"`
	Label    *string   `json:"label"`
	Problem  string    `json:"problem"`
	Solution string    `json:"solution"`
	Tags     []TagView `json:"tags"`
}

// PainView is the retrieve shape of a pain. List responses additionally
// carry Permalink and DefaultTranslate.
type PainView struct {
	UUID             uuid.UUID           `json:"uuid"`
	User             uuid.UUID           `json:"user"`
	UserHexID        string              `json:"user_hexid"`
	Translates       []TranslateView     `json:"translates"`
	ReactionStat     models.ReactionStat `json:"reaction_stat"`
	ReactionGiven    *string             `json:"reaction_given"`
	IsCreator        bool                `json:"is_creator"`
	CreateAt         time.Time           `json:"create_at"`
	Permalink        string              `json:"permalink,omitempty"`
	DefaultTranslate *TranslateView      `json:"default_translate,omitempty"`
}

// NewTagViews converts tags to their nested representation.
func NewTagViews(tags []models.Tag) []TagView {
	views := make([]TagView, 0, len(tags))
	for _, tag := range tags {
		views = append(views, TagView{Name: tag.Name, Slug: tag.Slug})
	}
	return views
}

// NewTranslateView builds one translate representation with its tags.
func NewTranslateView(t models.Translate, painUUID uuid.UUID, tags []models.Tag) TranslateView {
	return TranslateView{
		UUID:     t.UUID,
		Pain:     painUUID,
		Locale:   t.Locale,
		Label:    t.Label,
		Problem:  t.Problem,
		Solution: t.Solution,
		Tags:     NewTagViews(tags),
	}
}

// NewPainView assembles the retrieve shape from an annotated row and its
// preloaded relations.
func NewPainView(a *models.AnnotatedPain, owner models.User, translates []models.Translate, tagsByTranslate map[uint][]models.Tag) PainView {
	tvs := make([]TranslateView, 0, len(translates))
	for _, t := range translates {
		tvs = append(tvs, NewTranslateView(t, a.UUID, tagsByTranslate[t.ID]))
	}

	return PainView{
		UUID:          a.UUID,
		User:          owner.UUID,
		UserHexID:     owner.HexID,
		Translates:    tvs,
		ReactionStat:  a.Stat(),
		ReactionGiven: a.ReactionGiven,
		IsCreator:     a.IsCreator,
		CreateAt:      a.CreatedAt,
	}
}

// NewPainListView is the list variant: retrieve shape plus permalink and
// the default-locale translate when one exists.
func NewPainListView(a *models.AnnotatedPain, owner models.User, translates []models.Translate, tagsByTranslate map[uint][]models.Tag, permalink string) PainView {
	view := NewPainView(a, owner, translates, tagsByTranslate)
	view.Permalink = permalink

	for i := range view.Translates {
		if view.Translates[i].Locale == models.DefaultLocale {
			dt := view.Translates[i]
			view.DefaultTranslate = &dt
			break
		}
	}
	return view
}
