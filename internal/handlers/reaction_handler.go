package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/celebot/backend/internal/models"
	"github.com/celebot/backend/internal/notifier"
	"github.com/celebot/backend/internal/repositories"
	"github.com/celebot/backend/internal/serializers"
	"github.com/celebot/backend/validators"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ReactionHandler handles HTTP requests related to reactions
type ReactionHandler struct {
	reactionRepository repositories.ReactionRepository
	painRepository     repositories.PainRepository
	userRepository     repositories.UserRepository
	revisionRepository repositories.RevisionRepository
	notifier           notifier.Notifier
}

// NewReactionHandler creates a new ReactionHandler
func NewReactionHandler(reactionRepo repositories.ReactionRepository, painRepo repositories.PainRepository, userRepo repositories.UserRepository, revisionRepo repositories.RevisionRepository, notif notifier.Notifier) *ReactionHandler {
	return &ReactionHandler{
		reactionRepository: reactionRepo,
		painRepository:     painRepo,
		userRepository:     userRepo,
		revisionRepository: revisionRepo,
		notifier:           notif,
	}
}

// RegisterReactionRoutes registers reaction-related routes
func (h *ReactionHandler) RegisterReactionRoutes(g *echo.Group) {
	g.GET("/reactions", h.ListReactions)
	g.POST("/reactions", h.CreateReaction)
	g.PATCH("/reactions/:uuid", h.UpdateReaction)
}

// ListReactions lists the reactions on one pain, optionally filtered to a
// single identifier. The pain parameter is required.
func (h *ReactionHandler) ListReactions(c echo.Context) error {
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

	pain, err := h.painRepository.GetByUUID(ctx, painUUID)
	if errors.Is(err, repositories.ErrNotFound) {
		// An unknown pain lists like one nobody reacted to.
		return c.JSON(http.StatusOK, newPage(c, 0, limit, offset, []serializers.ReactionView{}))
	}
	if err != nil {
		return httpError(c, err)
	}

	reactions, total, err := h.reactionRepository.ListByPain(ctx, pain.ID, c.QueryParam("identifier"), limit, offset)
	if err != nil {
		return httpError(c, err)
	}

	// One stat block serves the whole page: every row shares the pain.
	var stat *models.ReactionStat
	if len(reactions) > 0 {
		s, err := h.reactionRepository.Stats(ctx, pain.ID)
		if err != nil {
			return httpError(c, err)
		}
		stat = &s
	}

	views := make([]serializers.ReactionView, 0, len(reactions))
	for i := range reactions {
		views = append(views, serializers.NewReactionView(&reactions[i], stat))
	}
	return c.JSON(http.StatusOK, newPage(c, total, limit, offset, views))
}

// CreateReaction upserts the caller's reaction to a pain. A second create
// from the same caller on the same pain overwrites the prior reaction.
func (h *ReactionHandler) CreateReaction(c echo.Context) error {
	ctx := c.Request().Context()
	caller := callerID(c)

	var req models.CreateReactionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, validators.FieldErrors(err))
	}
	if !models.IsValidIdentifier(req.Identifier) {
		return c.JSON(http.StatusBadRequest, echo.Map{"identifier": "Invalid identifier"})
	}

	painUUID, _ := uuid.Parse(req.Pain)
	translateUUID, _ := uuid.Parse(req.Translate)

	reaction, err := h.reactionRepository.Upsert(ctx, caller, painUUID, translateUUID, req.Identifier)
	if err != nil {
		return httpError(c, err)
	}
	h.record(ctx, reaction.ID, models.RevisionActionCreate, reaction)

	stat, err := h.reactionRepository.Stats(ctx, reaction.PainID)
	if err != nil {
		return httpError(c, err)
	}

	h.notifyOwner(ctx, caller, reaction)

	return c.JSON(http.StatusCreated, serializers.NewReactionView(reaction, &stat))
}

// UpdateReaction overwrites the identifier of an owned reaction.
func (h *ReactionHandler) UpdateReaction(c echo.Context) error {
	ctx := c.Request().Context()
	caller := callerID(c)

	reactionUUID, err := uuid.Parse(c.Param("uuid"))
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"detail": "Not found."})
	}

	var req models.UpdateReactionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, validators.FieldErrors(err))
	}
	if !models.IsValidIdentifier(req.Identifier) {
		return c.JSON(http.StatusBadRequest, echo.Map{"identifier": "Invalid identifier"})
	}

	reaction, err := h.reactionRepository.UpdateIdentifier(ctx, caller, reactionUUID, req.Identifier)
	if err != nil {
		return httpError(c, err)
	}
	h.record(ctx, reaction.ID, models.RevisionActionUpdate, reaction)

	stat, err := h.reactionRepository.Stats(ctx, reaction.PainID)
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, serializers.NewReactionView(reaction, &stat))
}

// notifyOwner pushes a fire-and-forget notification to the pain's owner.
func (h *ReactionHandler) notifyOwner(ctx context.Context, caller uint, reaction *models.Reaction) {
	if reaction.Pain.UserID == caller {
		return
	}

	owner, err := h.userRepository.GetUserByID(ctx, reaction.Pain.UserID)
	if err != nil || owner.FCMToken == "" {
		return
	}
	actor, err := h.userRepository.GetUserByID(ctx, caller)
	if err != nil {
		return
	}

	payload := fmt.Sprintf("%s reacted %q to your pain", actor.Name, reaction.Identifier)
	destination := map[string]string{"fcm_token": owner.FCMToken, "email": owner.Email}

	// The request context dies with the response; delivery gets its own.
	go h.notifier.Notify(context.Background(), destination, payload)
}

// record appends a history revision; failures are logged, never surfaced.
func (h *ReactionHandler) record(ctx context.Context, entityID uint, action string, snapshot interface{}) {
	if h.revisionRepository == nil {
		return
	}
	if err := h.revisionRepository.Record(ctx, models.RevisionKindReaction, entityID, action, snapshot); err != nil {
		log.Printf("history: %s reaction %d failed: %v", action, entityID, err)
	}
}
