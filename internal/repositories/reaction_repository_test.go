package repositories

import (
	"context"
	"testing"

	"github.com/celebot/backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReactionUpsertOverwritesPerUserAndPain(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresReactionRepository(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	ctx := context.Background()

	pain := seedPain(t, db, alice.ID, models.LocaleEnUS, "deadlines")
	translateUUID := pain.Translates[0].UUID

	first, err := repo.Upsert(ctx, bob.ID, pain.UUID, translateUUID, models.IdentifierCelebrate)
	require.NoError(t, err)
	assert.Equal(t, models.IdentifierCelebrate, first.Identifier)

	second, err := repo.Upsert(ctx, bob.ID, pain.UUID, translateUUID, models.IdentifierCurious)
	require.NoError(t, err)
	assert.Equal(t, models.IdentifierCurious, second.Identifier)
	assert.Equal(t, first.UUID, second.UUID)

	var count int64
	require.NoError(t, db.Model(&models.Reaction{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestReactionUpsertValidatesReferences(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresReactionRepository(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	ctx := context.Background()

	pain := seedPain(t, db, alice.ID, models.LocaleEnUS, "deadlines")
	other := seedPain(t, db, alice.ID, models.LocaleEnUS, "meetings")

	_, err := repo.Upsert(ctx, bob.ID, uuid.New(), pain.Translates[0].UUID, models.IdentifierSupport)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "pain")

	// A translate belonging to a different pain is rejected.
	_, err = repo.Upsert(ctx, bob.ID, pain.UUID, other.Translates[0].UUID, models.IdentifierSupport)
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "translate")
}

func TestReactionUpdateIdentifierOwnership(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresReactionRepository(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	ctx := context.Background()

	pain := seedPain(t, db, alice.ID, models.LocaleEnUS, "deadlines")
	reaction := seedReaction(t, db, bob.ID, pain, models.IdentifierSupport)

	updated, err := repo.UpdateIdentifier(ctx, bob.ID, reaction.UUID, models.IdentifierInsightful)
	require.NoError(t, err)
	assert.Equal(t, models.IdentifierInsightful, updated.Identifier)

	_, err = repo.UpdateIdentifier(ctx, alice.ID, reaction.UUID, models.IdentifierCurious)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.UpdateIdentifier(ctx, bob.ID, uuid.New(), models.IdentifierCurious)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReactionListByPain(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresReactionRepository(db)
	alice := seedUser(t, db, "alice")
	ctx := context.Background()

	pain := seedPain(t, db, alice.ID, models.LocaleEnUS, "deadlines")
	for i, ident := range []string{models.IdentifierSupport, models.IdentifierSupport, models.IdentifierCurious} {
		user := seedUser(t, db, "reactor"+string(rune('a'+i)))
		seedReaction(t, db, user.ID, pain, ident)
	}

	reactions, total, err := repo.ListByPain(ctx, pain.ID, "", 20, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, reactions, 3)

	reactions, total, err = repo.ListByPain(ctx, pain.ID, models.IdentifierSupport, 20, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, reactions, 2)
	for _, r := range reactions {
		assert.Equal(t, models.IdentifierSupport, r.Identifier)
	}
}

func TestReactionListByPainWithoutReactionsIsEmpty(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresReactionRepository(db)
	alice := seedUser(t, db, "alice")

	pain := seedPain(t, db, alice.ID, models.LocaleEnUS, "deadlines")

	reactions, total, err := repo.ListByPain(context.Background(), pain.ID, "", 20, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
	assert.Empty(t, reactions)
}

func TestReactionStatsZeroFilledAndRanked(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresReactionRepository(db)
	alice := seedUser(t, db, "alice")
	ctx := context.Background()

	pain := seedPain(t, db, alice.ID, models.LocaleEnUS, "deadlines")
	for i, ident := range []string{models.IdentifierCurious, models.IdentifierCurious, models.IdentifierFavorite} {
		user := seedUser(t, db, "reactor"+string(rune('a'+i)))
		seedReaction(t, db, user.ID, pain, ident)
	}

	stat, err := repo.Stats(ctx, pain.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stat.Total)
	require.Len(t, stat.Entries, len(models.ReactionIdentifiers))

	// Highest counts first; the remaining zeros keep enumeration order.
	assert.Equal(t, models.StatEntry{Identifier: models.IdentifierCurious, Count: 2}, stat.Entries[0])
	assert.Equal(t, models.StatEntry{Identifier: models.IdentifierFavorite, Count: 1}, stat.Entries[1])
	assert.Equal(t, models.StatEntry{Identifier: models.IdentifierCelebrate, Count: 0}, stat.Entries[2])
	assert.Equal(t, models.StatEntry{Identifier: models.IdentifierSupport, Count: 0}, stat.Entries[3])
	assert.Equal(t, models.StatEntry{Identifier: models.IdentifierInsightful, Count: 0}, stat.Entries[4])
}

func TestReactionStatsEmptyPain(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresReactionRepository(db)
	alice := seedUser(t, db, "alice")

	pain := seedPain(t, db, alice.ID, models.LocaleEnUS, "deadlines")

	stat, err := repo.Stats(context.Background(), pain.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), stat.Total)
	require.Len(t, stat.Entries, len(models.ReactionIdentifiers))
	for i, ident := range models.ReactionIdentifiers {
		assert.Equal(t, models.StatEntry{Identifier: ident, Count: 0}, stat.Entries[i])
	}
}
