package repositories

import (
	"context"
	"strings"

	"github.com/celebot/backend/internal/models"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// TagRepository reads tag attachments for serialization.
type TagRepository interface {
	TagsForEntities(ctx context.Context, kind string, entityIDs []uint) (map[uint][]models.Tag, error)
}

// PostgresTagRepository implements TagRepository for PostgreSQL
type PostgresTagRepository struct {
	db *gorm.DB
}

// NewPostgresTagRepository creates a new PostgresTagRepository
func NewPostgresTagRepository(db *gorm.DB) *PostgresTagRepository {
	return &PostgresTagRepository{db: db}
}

// TagsForEntities returns the tags attached to each of the given entities,
// keyed by entity id.
func (r *PostgresTagRepository) TagsForEntities(ctx context.Context, kind string, entityIDs []uint) (map[uint][]models.Tag, error) {
	result := make(map[uint][]models.Tag, len(entityIDs))
	if len(entityIDs) == 0 {
		return result, nil
	}

	var rows []struct {
		models.Tag
		EntityID uint
	}
	err := r.db.WithContext(ctx).
		Model(&models.TagItem{}).
		Select("tags.*, tag_items.entity_id").
		Joins("JOIN tags ON tags.id = tag_items.tag_id").
		Where("tag_items.kind = ? AND tag_items.entity_id IN ?", kind, entityIDs).
		Order("tags.name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		result[row.EntityID] = append(result[row.EntityID], row.Tag)
	}
	return result, nil
}

// upsertTags gets or creates a tag per name, generating slugs on insert.
// Names are trimmed; empty names are skipped.
func upsertTags(tx *gorm.DB, names []string) ([]models.Tag, error) {
	tags := make([]models.Tag, 0, len(names))
	seen := make(map[string]bool, len(names))

	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true

		var tag models.Tag
		err := tx.Where("name = ?", name).First(&tag).Error
		if err == gorm.ErrRecordNotFound {
			tag = models.Tag{Name: name, Slug: slug.Make(name)}
			err = tx.Create(&tag).Error
		}
		if err != nil {
			return nil, translateError(err)
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

// addTagItems attaches tags to an entity without touching existing items.
func addTagItems(tx *gorm.DB, kind string, entityID uint, tags []models.Tag) error {
	for _, tag := range tags {
		item := models.TagItem{TagID: tag.ID, Kind: kind, EntityID: entityID}
		if err := tx.Where(models.TagItem{TagID: tag.ID, Kind: kind, EntityID: entityID}).
			FirstOrCreate(&item).Error; err != nil {
			return translateError(err)
		}
	}
	return nil
}

// replaceTagItems swaps the entity's tag set for the given tags entirely.
func replaceTagItems(tx *gorm.DB, kind string, entityID uint, tags []models.Tag) error {
	if err := tx.Where("kind = ? AND entity_id = ?", kind, entityID).
		Delete(&models.TagItem{}).Error; err != nil {
		return translateError(err)
	}
	return addTagItems(tx, kind, entityID, tags)
}
