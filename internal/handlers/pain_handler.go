package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/celebot/backend/internal/models"
	"github.com/celebot/backend/internal/repositories"
	"github.com/celebot/backend/internal/serializers"
	"github.com/celebot/backend/validators"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// PainHandler handles HTTP requests related to pains
type PainHandler struct {
	painRepository     repositories.PainRepository
	tagRepository      repositories.TagRepository
	userRepository     repositories.UserRepository
	revisionRepository repositories.RevisionRepository
}

// NewPainHandler creates a new PainHandler
func NewPainHandler(painRepo repositories.PainRepository, tagRepo repositories.TagRepository, userRepo repositories.UserRepository, revisionRepo repositories.RevisionRepository) *PainHandler {
	return &PainHandler{
		painRepository:     painRepo,
		tagRepository:      tagRepo,
		userRepository:     userRepo,
		revisionRepository: revisionRepo,
	}
}

// RegisterPainRoutes registers pain-related routes
func (h *PainHandler) RegisterPainRoutes(g *echo.Group) {
	g.GET("/pains", h.ListPains)
	g.POST("/pains", h.CreatePain)
	g.GET("/pains/:uuid", h.RetrievePain)
	g.GET("/pains/:uuid/history", h.ListPainHistory)
	g.PATCH("/pains/:uuid", h.UpdatePain)
	g.DELETE("/pains/:uuid", h.DeletePain)
}

// ListPains returns the annotated pain listing, filterable by the owner's
// hexid and by tag names, paginated.
func (h *PainHandler) ListPains(c echo.Context) error {
	ctx := c.Request().Context()
	caller := callerID(c)

	filter := repositories.PainFilter{UserHexID: c.QueryParam("user_hexid")}
	if tags := c.QueryParam("tags"); tags != "" {
		for _, name := range strings.Split(tags, ",") {
			if name = strings.TrimSpace(name); name != "" {
				filter.Tags = append(filter.Tags, name)
			}
		}
	}

	limit, offset := pageParams(c)
	rows, total, err := h.painRepository.ListAnnotated(ctx, caller, filter, limit, offset)
	if err != nil {
		return httpError(c, err)
	}

	views, err := h.painViews(ctx, c, rows, true)
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, newPage(c, total, limit, offset, views))
}

// CreatePain creates a pain together with its first translate and tags.
func (h *PainHandler) CreatePain(c echo.Context) error {
	ctx := c.Request().Context()
	caller := callerID(c)

	var req models.CreatePainRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, validators.FieldErrors(err))
	}
	if !models.IsValidLocale(req.Translate.Locale) {
		return c.JSON(http.StatusBadRequest, echo.Map{"locale": "Invalid locale"})
	}

	pain, err := h.painRepository.Create(ctx, caller, &req.Translate)
	if err != nil {
		return httpError(c, err)
	}

	h.record(ctx, models.RevisionKindPain, pain.ID, models.RevisionActionCreate, pain)
	for _, t := range pain.Translates {
		h.record(ctx, models.RevisionKindTranslate, t.ID, models.RevisionActionCreate, t)
	}

	view, err := h.painView(ctx, c, caller, pain.UUID, false)
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusCreated, view)
}

// RetrievePain returns a single annotated pain.
func (h *PainHandler) RetrievePain(c echo.Context) error {
	ctx := c.Request().Context()

	painUUID, err := uuid.Parse(c.Param("uuid"))
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"detail": "Not found."})
	}

	view, err := h.painView(ctx, c, callerID(c), painUUID, false)
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

// UpdatePain upserts the translate for one locale on an owned pain.
func (h *PainHandler) UpdatePain(c echo.Context) error {
	ctx := c.Request().Context()
	caller := callerID(c)

	painUUID, err := uuid.Parse(c.Param("uuid"))
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"detail": "Not found."})
	}

	var req models.UpdatePainRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, validators.FieldErrors(err))
	}
	if !models.IsValidLocale(req.Translate.Locale) {
		return c.JSON(http.StatusBadRequest, echo.Map{"locale": "Invalid locale"})
	}

	pain, err := h.painRepository.Update(ctx, caller, painUUID, &req.Translate)
	if err != nil {
		return httpError(c, err)
	}
	h.record(ctx, models.RevisionKindPain, pain.ID, models.RevisionActionUpdate, &req.Translate)

	view, err := h.painView(ctx, c, caller, painUUID, false)
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

// DeletePain removes an owned pain and its dependents, returning the
// pre-deletion representation.
func (h *PainHandler) DeletePain(c echo.Context) error {
	ctx := c.Request().Context()
	caller := callerID(c)

	painUUID, err := uuid.Parse(c.Param("uuid"))
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"detail": "Not found."})
	}

	// Resolve the internal id while the row still exists; the delete
	// revision is keyed by it.
	pain, err := h.painRepository.GetByUUID(ctx, painUUID)
	if err != nil {
		return httpError(c, err)
	}

	// Capture the representation before the cascade runs.
	view, err := h.painView(ctx, c, caller, painUUID, false)
	if err != nil {
		return httpError(c, err)
	}

	if err := h.painRepository.Delete(ctx, caller, painUUID); err != nil {
		return httpError(c, err)
	}
	h.record(ctx, models.RevisionKindPain, pain.ID, models.RevisionActionDelete, view)

	return c.JSON(http.StatusOK, view)
}

// ListPainHistory returns a pain's recorded revisions, oldest first.
func (h *PainHandler) ListPainHistory(c echo.Context) error {
	ctx := c.Request().Context()

	painUUID, err := uuid.Parse(c.Param("uuid"))
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"detail": "Not found."})
	}

	pain, err := h.painRepository.GetByUUID(ctx, painUUID)
	if err != nil {
		return httpError(c, err)
	}

	revisions := []models.Revision{}
	if h.revisionRepository != nil {
		recorded, err := h.revisionRepository.ListByEntity(ctx, models.RevisionKindPain, pain.ID)
		if err != nil {
			return httpError(c, err)
		}
		revisions = append(revisions, recorded...)
	}
	return c.JSON(http.StatusOK, revisions)
}

// painView builds the representation for one pain.
func (h *PainHandler) painView(ctx context.Context, c echo.Context, caller uint, painUUID uuid.UUID, list bool) (*serializers.PainView, error) {
	row, err := h.painRepository.GetAnnotatedByUUID(ctx, caller, painUUID)
	if err != nil {
		return nil, err
	}
	views, err := h.painViews(ctx, c, []models.AnnotatedPain{*row}, list)
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// painViews assembles representations for a page of annotated rows:
// owners, translates and tags are loaded in bulk and joined in memory.
func (h *PainHandler) painViews(ctx context.Context, c echo.Context, rows []models.AnnotatedPain, list bool) ([]serializers.PainView, error) {
	painIDs := make([]uint, 0, len(rows))
	userIDs := make([]uint, 0, len(rows))
	for _, row := range rows {
		painIDs = append(painIDs, row.ID)
		userIDs = append(userIDs, row.UserID)
	}

	translates, err := h.painRepository.TranslatesByPainIDs(ctx, painIDs)
	if err != nil {
		return nil, err
	}

	var translateIDs []uint
	for _, ts := range translates {
		for _, t := range ts {
			translateIDs = append(translateIDs, t.ID)
		}
	}
	tags, err := h.tagRepository.TagsForEntities(ctx, models.TaggableTranslate, translateIDs)
	if err != nil {
		return nil, err
	}

	owners, err := h.userRepository.GetUserByIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	views := make([]serializers.PainView, 0, len(rows))
	for i := range rows {
		row := rows[i]
		if list {
			permalink := c.Scheme() + "://" + c.Request().Host + "/api/v1/pains/" + row.UUID.String()
			views = append(views, serializers.NewPainListView(&row, owners[row.UserID], translates[row.ID], tags, permalink))
		} else {
			views = append(views, serializers.NewPainView(&row, owners[row.UserID], translates[row.ID], tags))
		}
	}
	return views, nil
}

// record appends a history revision; failures are logged, never surfaced.
func (h *PainHandler) record(ctx context.Context, kind string, entityID uint, action string, snapshot interface{}) {
	if h.revisionRepository == nil {
		return
	}
	if err := h.revisionRepository.Record(ctx, kind, entityID, action, snapshot); err != nil {
		log.Printf("history: %s %s %d failed: %v", action, kind, entityID, err)
	}
}
