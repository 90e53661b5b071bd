package handlers

import (
	"context"
	"log"
	"net/http"

	"github.com/celebot/backend/internal/models"
	"github.com/celebot/backend/internal/repositories"
	"github.com/celebot/backend/internal/serializers"
	"github.com/celebot/backend/validators"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// CommentHandler handles HTTP requests related to comments
type CommentHandler struct {
	commentRepository  repositories.CommentRepository
	tagRepository      repositories.TagRepository
	revisionRepository repositories.RevisionRepository
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(commentRepo repositories.CommentRepository, tagRepo repositories.TagRepository, revisionRepo repositories.RevisionRepository) *CommentHandler {
	return &CommentHandler{
		commentRepository:  commentRepo,
		tagRepository:      tagRepo,
		revisionRepository: revisionRepo,
	}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.GET("/comments", h.ListComments)
	g.POST("/comments", h.CreateComment)
	g.DELETE("/comments/:uuid", h.DeleteComment)
}

// ListComments lists the comments on one pain; the pain parameter is
// required.
func (h *CommentHandler) ListComments(c echo.Context) error {
	ctx := c.Request().Context()

	painParam := c.QueryParam("pain")
	if painParam == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"pain": "Pain parameter required"})
	}
	painUUID, err := uuid.Parse(painParam)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"pain": "Invalid pain"})
	}

	limit, offset := pageParams(c)
	comments, total, err := h.commentRepository.ListByPain(ctx, painUUID, limit, offset)
	if err != nil {
		return httpError(c, err)
	}

	views, err := h.commentViews(ctx, comments)
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, newPage(c, total, limit, offset, views))
}

// CreateComment creates a comment on a pain, optionally threaded under a
// parent comment and tagged.
func (h *CommentHandler) CreateComment(c echo.Context) error {
	ctx := c.Request().Context()
	caller := callerID(c)

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, validators.FieldErrors(err))
	}

	comment, err := h.commentRepository.Create(ctx, caller, &req)
	if err != nil {
		return httpError(c, err)
	}
	h.record(ctx, comment.ID, models.RevisionActionCreate, comment)

	views, err := h.commentViews(ctx, []models.Comment{*comment})
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusCreated, views[0])
}

// DeleteComment removes an owned comment and its thread edges.
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	ctx := c.Request().Context()
	caller := callerID(c)

	commentUUID, err := uuid.Parse(c.Param("uuid"))
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"detail": "Not found."})
	}

	comment, err := h.commentRepository.Delete(ctx, caller, commentUUID)
	if err != nil {
		return httpError(c, err)
	}
	h.record(ctx, comment.ID, models.RevisionActionDelete, comment)

	return c.JSON(http.StatusOK, echo.Map{"uuid": comment.UUID})
}

// commentViews assembles representations with thread parents and tags.
func (h *CommentHandler) commentViews(ctx context.Context, comments []models.Comment) ([]serializers.CommentView, error) {
	ids := make([]uint, 0, len(comments))
	for _, comment := range comments {
		ids = append(ids, comment.ID)
	}

	parents, err := h.commentRepository.ParentsByChildIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	tags, err := h.tagRepository.TagsForEntities(ctx, models.TaggableComment, ids)
	if err != nil {
		return nil, err
	}

	views := make([]serializers.CommentView, 0, len(comments))
	for i := range comments {
		comment := comments[i]
		var parent *uuid.UUID
		if p, ok := parents[comment.ID]; ok {
			parent = &p
		}
		views = append(views, serializers.NewCommentView(&comment, parent, tags[comment.ID]))
	}
	return views, nil
}

// record appends a history revision; failures are logged, never surfaced.
func (h *CommentHandler) record(ctx context.Context, entityID uint, action string, snapshot interface{}) {
	if h.revisionRepository == nil {
		return
	}
	if err := h.revisionRepository.Record(ctx, models.RevisionKindComment, entityID, action, snapshot); err != nil {
		log.Printf("history: %s comment %d failed: %v", action, entityID, err)
	}
}
