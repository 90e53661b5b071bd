package repositories

import (
	"context"

	"github.com/celebot/backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// maxThreadDepth bounds the ancestor walk when linking thread edges.
const maxThreadDepth = 64

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	Create(ctx context.Context, userID uint, req *models.CreateCommentRequest) (*models.Comment, error)
	ListByPain(ctx context.Context, painUUID uuid.UUID, limit, offset int) ([]models.Comment, int64, error)
	Delete(ctx context.Context, userID uint, commentUUID uuid.UUID) (*models.Comment, error)
	ParentsByChildIDs(ctx context.Context, childIDs []uint) (map[uint]uuid.UUID, error)
}

// PostgresCommentRepository implements CommentRepository for PostgreSQL
type PostgresCommentRepository struct {
	db *gorm.DB
}

// NewPostgresCommentRepository creates a new PostgresCommentRepository
func NewPostgresCommentRepository(db *gorm.DB) *PostgresCommentRepository {
	return &PostgresCommentRepository{db: db}
}

// Create persists a comment and, when a parent is given, its thread edge.
// Comment, edge and tags persist atomically.
func (r *PostgresCommentRepository) Create(ctx context.Context, userID uint, req *models.CreateCommentRequest) (*models.Comment, error) {
	var comment models.Comment

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var pain models.Pain
		if err := tx.Where("uuid = ?", req.Pain).First(&pain).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return NewValidationError("pain", "Invalid pain")
			}
			return translateError(err)
		}

		var translate models.Translate
		if err := tx.Where("uuid = ? AND pain_id = ?", req.Translate, pain.ID).
			First(&translate).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return NewValidationError("translate", "Invalid translate")
			}
			return translateError(err)
		}

		comment = models.Comment{
			UUID:        uuid.New(),
			UserID:      userID,
			PainID:      pain.ID,
			TranslateID: translate.ID,
			Content:     req.Content,
		}
		if err := tx.Create(&comment).Error; err != nil {
			return translateError(err)
		}

		if req.Parent != nil {
			var parent models.Comment
			if err := tx.Where("uuid = ? AND pain_id = ?", *req.Parent, pain.ID).
				First(&parent).Error; err != nil {
				if err == gorm.ErrRecordNotFound {
					return NewValidationError("parent", "Invalid parent comment")
				}
				return translateError(err)
			}
			if err := linkCommentEdge(tx, parent.ID, comment.ID); err != nil {
				return err
			}
		}

		if len(req.Tags) > 0 {
			tags, err := upsertTags(tx, req.Tags)
			if err != nil {
				return err
			}
			if err := addTagItems(tx, models.TaggableComment, comment.ID, tags); err != nil {
				return err
			}
		}

		return translateError(tx.Preload("User").Preload("Pain").Preload("Translate").
			First(&comment, comment.ID).Error)
	})
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// linkCommentEdge records parent→child after verifying the edge cannot
// close a cycle: the child must not already be an ancestor of the parent,
// and never its own parent.
func linkCommentEdge(tx *gorm.DB, parentID, childID uint) error {
	if parentID == childID {
		return NewValidationError("parent", "A comment cannot be its own parent")
	}

	current := parentID
	for depth := 0; depth < maxThreadDepth; depth++ {
		var edge models.CommentEdge
		err := tx.Where("child_id = ?", current).First(&edge).Error
		if err == gorm.ErrRecordNotFound {
			break
		}
		if err != nil {
			return translateError(err)
		}
		if edge.ParentID == childID {
			return NewValidationError("parent", "Comment thread would form a cycle")
		}
		current = edge.ParentID
	}

	return translateError(tx.Create(&models.CommentEdge{ParentID: parentID, ChildID: childID}).Error)
}

// ListByPain returns the comments on one pain, oldest first, plus the
// unpaginated count. Unknown pain uuids yield an empty page.
func (r *PostgresCommentRepository) ListByPain(ctx context.Context, painUUID uuid.UUID, limit, offset int) ([]models.Comment, int64, error) {
	var pain models.Pain
	if err := r.db.WithContext(ctx).Where("uuid = ?", painUUID).First(&pain).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return []models.Comment{}, 0, nil
		}
		return nil, 0, err
	}

	q := r.db.WithContext(ctx).Model(&models.Comment{}).Where("pain_id = ?", pain.ID)

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var comments []models.Comment
	err := q.Session(&gorm.Session{}).
		Preload("User").Preload("Pain").Preload("Translate").
		Order("created_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&comments).Error
	if err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}

// ParentsByChildIDs maps comment ids to their parent's uuid for
// serializing threads.
func (r *PostgresCommentRepository) ParentsByChildIDs(ctx context.Context, childIDs []uint) (map[uint]uuid.UUID, error) {
	result := make(map[uint]uuid.UUID, len(childIDs))
	if len(childIDs) == 0 {
		return result, nil
	}

	var rows []struct {
		ChildID uint
		UUID    uuid.UUID
	}
	err := r.db.WithContext(ctx).
		Model(&models.CommentEdge{}).
		Select("comment_edges.child_id, comments.uuid").
		Joins("JOIN comments ON comments.id = comment_edges.parent_id").
		Where("comment_edges.child_id IN ?", childIDs).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		result[row.ChildID] = row.UUID
	}
	return result, nil
}

// Delete removes a comment the caller owns together with its thread
// edges, tag items and attachments. Unknown and unowned uuids are both
// ErrNotFound.
func (r *PostgresCommentRepository) Delete(ctx context.Context, userID uint, commentUUID uuid.UUID) (*models.Comment, error) {
	var comment models.Comment

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := forUpdate(tx).
			Where("uuid = ? AND user_id = ?", commentUUID, userID).
			First(&comment).Error; err != nil {
			return translateError(err)
		}

		if err := tx.Where("parent_id = ? OR child_id = ?", comment.ID, comment.ID).
			Delete(&models.CommentEdge{}).Error; err != nil {
			return translateError(err)
		}
		if err := tx.Where("kind = ? AND entity_id = ?", models.TaggableComment, comment.ID).
			Delete(&models.TagItem{}).Error; err != nil {
			return translateError(err)
		}
		if err := tx.Where("kind = ? AND entity_id = ?", models.AttachableComment, comment.ID).
			Delete(&models.Attachment{}).Error; err != nil {
			return translateError(err)
		}
		return translateError(tx.Delete(&comment).Error)
	})
	if err != nil {
		return nil, err
	}
	return &comment, nil
}
