package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"taskboard/internal/errors"
)

// MeHandler serves the current-actor endpoint.
type MeHandler struct{}

// NewMeHandler creates a new me handler.
func NewMeHandler() *MeHandler {
	return &MeHandler{}
}

// Me godoc
// @Summary Current user
// @Description Returns the authenticated identity with its resolved role.
// @Tags me
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Router /v1/me [get]
func (h *MeHandler) Me(c echo.Context) error {
	actor := ActorFromContext(c)
	if actor == nil {
		httpErr := errors.MapErrorToHTTP(errors.ErrUnauthenticated)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"user": map[string]interface{}{
			"id":    actor.ID,
			"email": actor.Email,
			"name":  actor.Name,
			"role":  actor.Role,
		},
	})
}
