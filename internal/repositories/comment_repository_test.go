package repositories

import (
	"context"
	"testing"

	"github.com/celebot/backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentCreateThreadsUnderParent(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresCommentRepository(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	ctx := context.Background()

	pain := seedPain(t, db, alice.ID, models.LocaleEnUS, "deadlines")
	translateUUID := pain.Translates[0].UUID.String()

	root, err := repo.Create(ctx, bob.ID, &models.CreateCommentRequest{
		Pain:      pain.UUID.String(),
		Translate: translateUUID,
		Content:   "same here",
	})
	require.NoError(t, err)
	assert.Equal(t, bob.ID, root.UserID)

	parent := root.UUID.String()
	child, err := repo.Create(ctx, alice.ID, &models.CreateCommentRequest{
		Pain:      pain.UUID.String(),
		Translate: translateUUID,
		Content:   "thanks for sharing",
		Parent:    &parent,
	})
	require.NoError(t, err)

	parents, err := repo.ParentsByChildIDs(ctx, []uint{root.ID, child.ID})
	require.NoError(t, err)
	assert.Equal(t, root.UUID, parents[child.ID])
	_, hasParent := parents[root.ID]
	assert.False(t, hasParent)
}

func TestCommentCreateValidatesReferences(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresCommentRepository(db)
	alice := seedUser(t, db, "alice")
	ctx := context.Background()

	pain := seedPain(t, db, alice.ID, models.LocaleEnUS, "deadlines")
	translateUUID := pain.Translates[0].UUID.String()

	var verr *ValidationError

	_, err := repo.Create(ctx, alice.ID, &models.CreateCommentRequest{
		Pain:      uuid.New().String(),
		Translate: translateUUID,
		Content:   "hello",
	})
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "pain")

	missing := uuid.New().String()
	_, err = repo.Create(ctx, alice.ID, &models.CreateCommentRequest{
		Pain:      pain.UUID.String(),
		Translate: translateUUID,
		Content:   "hello",
		Parent:    &missing,
	})
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "parent")
}

func TestCommentEdgeRejectsCycles(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresCommentRepository(db)
	alice := seedUser(t, db, "alice")
	ctx := context.Background()

	pain := seedPain(t, db, alice.ID, models.LocaleEnUS, "deadlines")
	translateUUID := pain.Translates[0].UUID.String()

	var ids []uint
	for _, content := range []string{"a", "b", "c"} {
		c, err := repo.Create(ctx, alice.ID, &models.CreateCommentRequest{
			Pain:      pain.UUID.String(),
			Translate: translateUUID,
			Content:   content,
		})
		require.NoError(t, err)
		ids = append(ids, c.ID)
	}

	require.NoError(t, linkCommentEdge(db, ids[0], ids[1]))
	require.NoError(t, linkCommentEdge(db, ids[1], ids[2]))

	var verr *ValidationError

	// The child of an existing chain may not become its ancestor's parent.
	err := linkCommentEdge(db, ids[2], ids[0])
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "parent")

	err = linkCommentEdge(db, ids[0], ids[0])
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "parent")
}

func TestCommentListByPainOldestFirst(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresCommentRepository(db)
	alice := seedUser(t, db, "alice")
	ctx := context.Background()

	pain := seedPain(t, db, alice.ID, models.LocaleEnUS, "deadlines")
	translateUUID := pain.Translates[0].UUID.String()

	var created []*models.Comment
	for _, content := range []string{"first", "second", "third"} {
		c, err := repo.Create(ctx, alice.ID, &models.CreateCommentRequest{
			Pain:      pain.UUID.String(),
			Translate: translateUUID,
			Content:   content,
		})
		require.NoError(t, err)
		created = append(created, c)
	}

	comments, total, err := repo.ListByPain(ctx, pain.UUID, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, comments, 2)
	assert.Equal(t, created[0].UUID, comments[0].UUID)
	assert.Equal(t, created[1].UUID, comments[1].UUID)

	comments, total, err = repo.ListByPain(ctx, uuid.New(), 20, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
	assert.Empty(t, comments)
}

func TestCommentDeleteOwnershipAndCleanup(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresCommentRepository(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	ctx := context.Background()

	pain := seedPain(t, db, alice.ID, models.LocaleEnUS, "deadlines")
	translateUUID := pain.Translates[0].UUID.String()

	root, err := repo.Create(ctx, bob.ID, &models.CreateCommentRequest{
		Pain:      pain.UUID.String(),
		Translate: translateUUID,
		Content:   "same here",
		Tags:      []string{"solidarity"},
	})
	require.NoError(t, err)

	parent := root.UUID.String()
	_, err = repo.Create(ctx, alice.ID, &models.CreateCommentRequest{
		Pain:      pain.UUID.String(),
		Translate: translateUUID,
		Content:   "thanks",
		Parent:    &parent,
	})
	require.NoError(t, err)

	require.NoError(t, db.Create(&models.Attachment{
		UUID: uuid.New(), Kind: models.AttachableComment, EntityID: root.ID,
		Name: "photo.jpg", URL: "https://cdn.example.com/photo.jpg",
	}).Error)

	_, err = repo.Delete(ctx, alice.ID, root.UUID)
	assert.ErrorIs(t, err, ErrNotFound)

	deleted, err := repo.Delete(ctx, bob.ID, root.UUID)
	require.NoError(t, err)
	assert.Equal(t, root.UUID, deleted.UUID)

	var edgeCount, itemCount, attachmentCount int64
	require.NoError(t, db.Model(&models.CommentEdge{}).Count(&edgeCount).Error)
	assert.Equal(t, int64(0), edgeCount)
	require.NoError(t, db.Model(&models.TagItem{}).
		Where("kind = ?", models.TaggableComment).Count(&itemCount).Error)
	assert.Equal(t, int64(0), itemCount)
	require.NoError(t, db.Model(&models.Attachment{}).Count(&attachmentCount).Error)
	assert.Equal(t, int64(0), attachmentCount)
}
