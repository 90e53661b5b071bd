package serializers

import (
	"testing"
	"time"

	"github.com/celebot/backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func annotatedFixture() (*models.AnnotatedPain, models.User, []models.Translate) {
	given := models.IdentifierSupport
	row := &models.AnnotatedPain{
		ID:            1,
		UUID:          uuid.New(),
		UserID:        7,
		CreatedAt:     time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC),
		IsCreator:     false,
		ReactionTotal: 3,
		ReactionGiven: &given,
		SupportCount:  2,
		CuriousCount:  1,
	}
	owner := models.User{ID: 7, UUID: uuid.New(), HexID: "ab12cd34ef"}
	translates := []models.Translate{
		{ID: 10, UUID: uuid.New(), PainID: 1, Locale: models.LocaleEnUS, Problem: "deadlines", Solution: "plan"},
		{ID: 11, UUID: uuid.New(), PainID: 1, Locale: models.LocaleJaJP, Problem: "締め切り", Solution: "計画"},
	}
	return row, owner, translates
}

func TestNewPainViewShape(t *testing.T) {
	row, owner, translates := annotatedFixture()
	tags := map[uint][]models.Tag{
		10: {{Name: "work", Slug: "work"}},
	}

	view := NewPainView(row, owner, translates, tags)

	assert.Equal(t, row.UUID, view.UUID)
	assert.Equal(t, owner.UUID, view.User)
	assert.Equal(t, owner.HexID, view.UserHexID)
	assert.False(t, view.IsCreator)
	require.NotNil(t, view.ReactionGiven)
	assert.Equal(t, models.IdentifierSupport, *view.ReactionGiven)

	require.Len(t, view.Translates, 2)
	assert.Equal(t, []TagView{{Name: "work", Slug: "work"}}, view.Translates[0].Tags)
	assert.Empty(t, view.Translates[1].Tags)

	assert.Equal(t, int64(3), view.ReactionStat.Total)
	assert.Equal(t, models.IdentifierSupport, view.ReactionStat.Entries[0].Identifier)

	// The retrieve shape carries neither list-only field.
	assert.Empty(t, view.Permalink)
	assert.Nil(t, view.DefaultTranslate)
}

func TestNewPainListViewPicksDefaultTranslate(t *testing.T) {
	row, owner, translates := annotatedFixture()

	view := NewPainListView(row, owner, translates, nil, "https://api.example.com/api/v1/pains/"+row.UUID.String())

	assert.NotEmpty(t, view.Permalink)
	require.NotNil(t, view.DefaultTranslate)
	assert.Equal(t, models.DefaultLocale, view.DefaultTranslate.Locale)
	assert.Equal(t, translates[0].UUID, view.DefaultTranslate.UUID)
}

func TestNewPainListViewWithoutDefaultLocale(t *testing.T) {
	row, owner, translates := annotatedFixture()

	view := NewPainListView(row, owner, translates[1:], nil, "https://api.example.com/api/v1/pains/"+row.UUID.String())

	assert.Nil(t, view.DefaultTranslate)
}
