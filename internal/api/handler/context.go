package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskhub/task-manager-api/internal/api/middleware"
	"github.com/taskhub/task-manager-api/internal/core/domain"
)

// ctxIdentity extracts the identity injected by the Auth middleware and
// fast-fails before any service call when it is absent. Its presence proves
// the middleware ran on this route.
func ctxIdentity(c echo.Context) (domain.Identity, error) {
	identity, ok := c.Get(middleware.IdentityKey).(domain.Identity)
	if !ok || identity.ID == "" {
		return domain.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return identity, nil
}
