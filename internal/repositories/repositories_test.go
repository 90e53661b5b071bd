package repositories

import (
	"context"
	"testing"

	"github.com/celebot/backend/internal/models"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an in-memory database and migrates the full schema. A
// single connection keeps every query on the same in-memory instance.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Pain{},
		&models.Translate{},
		&models.Reaction{},
		&models.Comment{},
		&models.CommentEdge{},
		&models.Tag{},
		&models.TagItem{},
		&models.Attachment{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, name string) *models.User {
	t.Helper()

	user := &models.User{
		UUID:  uuid.New(),
		HexID: models.NewHexID(),
		Name:  name,
		Email: name + "@example.com",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedPain(t *testing.T, db *gorm.DB, userID uint, locale, problem string, tags ...string) *models.Pain {
	t.Helper()

	pain, err := NewPostgresPainRepository(db).Create(context.Background(), userID, &models.TranslatePayload{
		Locale:   locale,
		Problem:  problem,
		Solution: "talk about it",
		Tags:     tags,
	})
	require.NoError(t, err)
	return pain
}

func seedReaction(t *testing.T, db *gorm.DB, userID uint, pain *models.Pain, identifier string) *models.Reaction {
	t.Helper()

	reaction, err := NewPostgresReactionRepository(db).
		Upsert(context.Background(), userID, pain.UUID, pain.Translates[0].UUID, identifier)
	require.NoError(t, err)
	return reaction
}
