package repositories

import (
	"context"
	"fmt"
	"strings"

	"github.com/celebot/backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PainFilter narrows the annotated listing. Unknown values match nothing
// rather than erroring.
type PainFilter struct {
	UserHexID string
	Tags      []string
}

// PainRepository defines the interface for pain data operations
type PainRepository interface {
	ListAnnotated(ctx context.Context, callerID uint, filter PainFilter, limit, offset int) ([]models.AnnotatedPain, int64, error)
	GetAnnotatedByUUID(ctx context.Context, callerID uint, painUUID uuid.UUID) (*models.AnnotatedPain, error)
	GetByUUID(ctx context.Context, painUUID uuid.UUID) (*models.Pain, error)
	TranslatesByPainIDs(ctx context.Context, painIDs []uint) (map[uint][]models.Translate, error)
	Create(ctx context.Context, userID uint, payload *models.TranslatePayload) (*models.Pain, error)
	Update(ctx context.Context, userID uint, painUUID uuid.UUID, payload *models.TranslatePayload) (*models.Pain, error)
	Delete(ctx context.Context, userID uint, painUUID uuid.UUID) error
}

// PostgresPainRepository implements PainRepository for PostgreSQL
type PostgresPainRepository struct {
	db *gorm.DB
}

// NewPostgresPainRepository creates a new PostgresPainRepository
func NewPostgresPainRepository(db *gorm.DB) *PostgresPainRepository {
	return &PostgresPainRepository{db: db}
}

// annotationSelect builds the select list for the annotated listing. All
// aggregates are correlated subqueries so one-to-many reactions never
// multiply the pain row. The two placeholders are both the caller id.
func annotationSelect() string {
	cols := []string{
		"pains.id",
		"pains.uuid",
		"pains.user_id",
		"pains.created_at",
		"(pains.user_id = ?) AS is_creator",
		"(SELECT COUNT(*) FROM reactions WHERE reactions.pain_id = pains.id) AS reaction_total",
		"(SELECT identifier FROM reactions WHERE reactions.pain_id = pains.id AND reactions.user_id = ? LIMIT 1) AS reaction_given",
	}
	for _, ident := range models.ReactionIdentifiers {
		cols = append(cols, fmt.Sprintf(
			"(SELECT COUNT(*) FROM reactions WHERE reactions.pain_id = pains.id AND reactions.identifier = '%s') AS %s_count",
			ident, ident))
	}
	return strings.Join(cols, ", ")
}

// filtered applies the listing filters to a bare pain query.
func (r *PostgresPainRepository) filtered(ctx context.Context, filter PainFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&models.Pain{})

	if filter.UserHexID != "" {
		q = q.Where("pains.user_id IN (?)",
			r.db.Model(&models.User{}).Select("id").Where("hex_id = ?", filter.UserHexID))
	}

	if len(filter.Tags) > 0 {
		// Membership subquery keeps one row per pain even when several
		// translates carry a matching tag.
		q = q.Where("pains.id IN (?)",
			r.db.Model(&models.Translate{}).
				Select("translates.pain_id").
				Joins("JOIN tag_items ON tag_items.entity_id = translates.id AND tag_items.kind = ?", models.TaggableTranslate).
				Joins("JOIN tags ON tags.id = tag_items.tag_id").
				Where("tags.name IN ?", filter.Tags))
	}

	return q
}

// ListAnnotated returns one annotated row per matching pain, newest first,
// plus the total count of the unpaginated filtered query.
func (r *PostgresPainRepository) ListAnnotated(ctx context.Context, callerID uint, filter PainFilter, limit, offset int) ([]models.AnnotatedPain, int64, error) {
	base := r.filtered(ctx, filter)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.AnnotatedPain
	err := base.Session(&gorm.Session{}).
		Select(annotationSelect(), callerID, callerID).
		Order("pains.created_at DESC").
		Limit(limit).
		Offset(offset).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// GetAnnotatedByUUID is the single-row variant of ListAnnotated.
func (r *PostgresPainRepository) GetAnnotatedByUUID(ctx context.Context, callerID uint, painUUID uuid.UUID) (*models.AnnotatedPain, error) {
	var rows []models.AnnotatedPain
	err := r.db.WithContext(ctx).
		Model(&models.Pain{}).
		Select(annotationSelect(), callerID, callerID).
		Where("pains.uuid = ?", painUUID).
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return &rows[0], nil
}

// GetByUUID retrieves a bare pain row by external id.
func (r *PostgresPainRepository) GetByUUID(ctx context.Context, painUUID uuid.UUID) (*models.Pain, error) {
	var pain models.Pain
	if err := r.db.WithContext(ctx).Where("uuid = ?", painUUID).First(&pain).Error; err != nil {
		return nil, translateError(err)
	}
	return &pain, nil
}

// TranslatesByPainIDs loads the translates for a page of pains, keyed by
// pain id.
func (r *PostgresPainRepository) TranslatesByPainIDs(ctx context.Context, painIDs []uint) (map[uint][]models.Translate, error) {
	result := make(map[uint][]models.Translate, len(painIDs))
	if len(painIDs) == 0 {
		return result, nil
	}

	var translates []models.Translate
	err := r.db.WithContext(ctx).
		Where("pain_id IN ?", painIDs).
		Order("locale ASC").
		Find(&translates).Error
	if err != nil {
		return nil, err
	}

	for _, t := range translates {
		result[t.PainID] = append(result[t.PainID], t)
	}
	return result, nil
}

// Create persists a pain owned by userID together with its first translate
// and that translate's tags. All or nothing.
func (r *PostgresPainRepository) Create(ctx context.Context, userID uint, payload *models.TranslatePayload) (*models.Pain, error) {
	pain := models.Pain{UUID: uuid.New(), UserID: userID}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&pain).Error; err != nil {
			return translateError(err)
		}

		translate := models.Translate{
			UUID:     uuid.New(),
			PainID:   pain.ID,
			Locale:   payload.Locale,
			Label:    payload.Label,
			Problem:  payload.Problem,
			Solution: payload.Solution,
		}
		if err := tx.Create(&translate).Error; err != nil {
			return translateError(err)
		}

		if len(payload.Tags) > 0 {
			tags, err := upsertTags(tx, payload.Tags)
			if err != nil {
				return err
			}
			if err := addTagItems(tx, models.TaggableTranslate, translate.ID, tags); err != nil {
				return err
			}
		}

		pain.Translates = []models.Translate{translate}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &pain, nil
}

// Update upserts the translate for (pain, payload.Locale) on a pain the
// caller owns. The owned row is locked for the duration of the
// transaction; an unowned or unknown uuid is ErrNotFound either way.
func (r *PostgresPainRepository) Update(ctx context.Context, userID uint, painUUID uuid.UUID, payload *models.TranslatePayload) (*models.Pain, error) {
	var pain models.Pain

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := forUpdate(tx).
			Where("uuid = ? AND user_id = ?", painUUID, userID).
			First(&pain).Error; err != nil {
			return translateError(err)
		}

		var translate models.Translate
		err := tx.Where("pain_id = ? AND locale = ?", pain.ID, payload.Locale).
			First(&translate).Error
		switch {
		case err == gorm.ErrRecordNotFound:
			translate = models.Translate{
				UUID:     uuid.New(),
				PainID:   pain.ID,
				Locale:   payload.Locale,
				Label:    payload.Label,
				Problem:  payload.Problem,
				Solution: payload.Solution,
			}
			if err := tx.Create(&translate).Error; err != nil {
				return translateError(err)
			}
		case err != nil:
			return translateError(err)
		default:
			updates := map[string]interface{}{
				"label":    payload.Label,
				"problem":  payload.Problem,
				"solution": payload.Solution,
			}
			if err := tx.Model(&translate).Updates(updates).Error; err != nil {
				return translateError(err)
			}
		}

		if payload.Tags != nil {
			tags, err := upsertTags(tx, payload.Tags)
			if err != nil {
				return err
			}
			if err := replaceTagItems(tx, models.TaggableTranslate, translate.ID, tags); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &pain, nil
}

// Delete removes a pain the caller owns along with every dependent, in a
// defined order, inside one transaction: reactions, comment edges,
// comment tag items, comments, attachments, translate tag items,
// translates, pain.
func (r *PostgresPainRepository) Delete(ctx context.Context, userID uint, painUUID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var pain models.Pain
		if err := forUpdate(tx).
			Where("uuid = ? AND user_id = ?", painUUID, userID).
			First(&pain).Error; err != nil {
			return translateError(err)
		}

		if err := tx.Where("pain_id = ?", pain.ID).Delete(&models.Reaction{}).Error; err != nil {
			return translateError(err)
		}

		var commentIDs []uint
		if err := tx.Model(&models.Comment{}).Where("pain_id = ?", pain.ID).
			Pluck("id", &commentIDs).Error; err != nil {
			return translateError(err)
		}
		if len(commentIDs) > 0 {
			if err := tx.Where("parent_id IN ? OR child_id IN ?", commentIDs, commentIDs).
				Delete(&models.CommentEdge{}).Error; err != nil {
				return translateError(err)
			}
			if err := tx.Where("kind = ? AND entity_id IN ?", models.TaggableComment, commentIDs).
				Delete(&models.TagItem{}).Error; err != nil {
				return translateError(err)
			}
			if err := tx.Where("kind = ? AND entity_id IN ?", models.AttachableComment, commentIDs).
				Delete(&models.Attachment{}).Error; err != nil {
				return translateError(err)
			}
			if err := tx.Where("pain_id = ?", pain.ID).Delete(&models.Comment{}).Error; err != nil {
				return translateError(err)
			}
		}

		if err := tx.Where("kind = ? AND entity_id = ?", models.AttachablePain, pain.ID).
			Delete(&models.Attachment{}).Error; err != nil {
			return translateError(err)
		}

		var translateIDs []uint
		if err := tx.Model(&models.Translate{}).Where("pain_id = ?", pain.ID).
			Pluck("id", &translateIDs).Error; err != nil {
			return translateError(err)
		}
		if len(translateIDs) > 0 {
			if err := tx.Where("kind = ? AND entity_id IN ?", models.TaggableTranslate, translateIDs).
				Delete(&models.TagItem{}).Error; err != nil {
				return translateError(err)
			}
			if err := tx.Where("pain_id = ?", pain.ID).Delete(&models.Translate{}).Error; err != nil {
				return translateError(err)
			}
		}

		return translateError(tx.Delete(&pain).Error)
	})
}
