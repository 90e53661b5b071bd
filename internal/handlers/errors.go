package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/celebot/backend/internal/middleware"
	"github.com/celebot/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// httpError maps repository errors to the API error envelope: validation
// failures become field-keyed 400s, missing or unowned rows become the
// same 404, deadline hits become retryable 503s.
func httpError(c echo.Context, err error) error {
	var verr *repositories.ValidationError
	switch {
	case errors.As(err, &verr):
		return c.JSON(http.StatusBadRequest, verr.Fields)
	case errors.Is(err, repositories.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"detail": "Not found."})
	case errors.Is(err, context.DeadlineExceeded):
		return echo.NewHTTPError(http.StatusServiceUnavailable, "Request timed out, please retry")
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}

// callerID returns the authenticated user's internal id set by the auth
// middleware.
func callerID(c echo.Context) uint {
	id, _ := c.Get(middleware.UserIDKey).(uint)
	return id
}
