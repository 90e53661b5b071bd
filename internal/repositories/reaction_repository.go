package repositories

import (
	"context"

	"github.com/celebot/backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReactionRepository defines the interface for reaction data operations
type ReactionRepository interface {
	Upsert(ctx context.Context, userID uint, painUUID, translateUUID uuid.UUID, identifier string) (*models.Reaction, error)
	UpdateIdentifier(ctx context.Context, userID uint, reactionUUID uuid.UUID, identifier string) (*models.Reaction, error)
	ListByPain(ctx context.Context, painID uint, identifier string, limit, offset int) ([]models.Reaction, int64, error)
	Stats(ctx context.Context, painID uint) (models.ReactionStat, error)
}

// PostgresReactionRepository implements ReactionRepository for PostgreSQL
type PostgresReactionRepository struct {
	db *gorm.DB
}

// NewPostgresReactionRepository creates a new PostgresReactionRepository
func NewPostgresReactionRepository(db *gorm.DB) *PostgresReactionRepository {
	return &PostgresReactionRepository{db: db}
}

// Upsert records the caller's reaction to a pain. The natural key is
// (user, pain): a second reaction from the same user to the same pain
// overwrites the identifier and translate instead of adding a row.
func (r *PostgresReactionRepository) Upsert(ctx context.Context, userID uint, painUUID, translateUUID uuid.UUID, identifier string) (*models.Reaction, error) {
	var out models.Reaction

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var pain models.Pain
		if err := tx.Where("uuid = ?", painUUID).First(&pain).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return NewValidationError("pain", "Invalid pain")
			}
			return translateError(err)
		}

		var translate models.Translate
		if err := tx.Where("uuid = ? AND pain_id = ?", translateUUID, pain.ID).
			First(&translate).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return NewValidationError("translate", "Invalid translate")
			}
			return translateError(err)
		}

		reaction := models.Reaction{
			UUID:        uuid.New(),
			UserID:      userID,
			PainID:      pain.ID,
			TranslateID: translate.ID,
			Identifier:  identifier,
		}
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "pain_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"identifier", "translate_id", "updated_at"}),
		}).Create(&reaction).Error
		if err != nil {
			return translateError(err)
		}

		// On conflict the insert id is not populated; read the surviving row.
		return translateError(tx.Preload("User").Preload("Pain").Preload("Translate").
			Where("user_id = ? AND pain_id = ?", userID, pain.ID).
			First(&out).Error)
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateIdentifier overwrites the identifier of a reaction the caller
// owns, locking the row for the transaction. Unknown and unowned uuids
// are both ErrNotFound.
func (r *PostgresReactionRepository) UpdateIdentifier(ctx context.Context, userID uint, reactionUUID uuid.UUID, identifier string) (*models.Reaction, error) {
	var reaction models.Reaction

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := forUpdate(tx).
			Where("uuid = ? AND user_id = ?", reactionUUID, userID).
			First(&reaction).Error; err != nil {
			return translateError(err)
		}
		if err := tx.Model(&reaction).Update("identifier", identifier).Error; err != nil {
			return translateError(err)
		}
		return translateError(tx.Preload("User").Preload("Pain").Preload("Translate").
			First(&reaction, reaction.ID).Error)
	})
	if err != nil {
		return nil, err
	}
	return &reaction, nil
}

// ListByPain returns the reactions on one pain, optionally narrowed to a
// single identifier, plus the unpaginated count. The caller resolves the
// pain; an id without reactions yields an empty page.
func (r *PostgresReactionRepository) ListByPain(ctx context.Context, painID uint, identifier string, limit, offset int) ([]models.Reaction, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Reaction{}).Where("pain_id = ?", painID)
	if identifier != "" {
		q = q.Where("identifier = ?", identifier)
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reactions []models.Reaction
	err := q.Session(&gorm.Session{}).
		Preload("User").Preload("Pain").Preload("Translate").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&reactions).Error
	if err != nil {
		return nil, 0, err
	}
	return reactions, total, nil
}

// Stats computes the ranked reaction breakdown for one pain. Every member
// of the closed identifier set appears, zero-filled when absent, sorted by
// descending count with ties in enumeration order.
func (r *PostgresReactionRepository) Stats(ctx context.Context, painID uint) (models.ReactionStat, error) {
	var rows []struct {
		Identifier string
		Count      int64
	}
	err := r.db.WithContext(ctx).
		Model(&models.Reaction{}).
		Select("identifier, COUNT(*) AS count").
		Where("pain_id = ?", painID).
		Group("identifier").
		Scan(&rows).Error
	if err != nil {
		return models.ReactionStat{}, err
	}

	counts := make(map[string]int64, len(rows))
	var total int64
	for _, row := range rows {
		counts[row.Identifier] = row.Count
		total += row.Count
	}

	entries := make([]models.StatEntry, 0, len(models.ReactionIdentifiers))
	for _, ident := range models.ReactionIdentifiers {
		entries = append(entries, models.StatEntry{Identifier: ident, Count: counts[ident]})
	}
	return models.NewReactionStat(total, entries), nil
}
