package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskhub/task-manager-api/internal/core/domain"
)

// AdminOnly enforces the admin role. It must run after Auth, which stores
// the resolved identity in the context.
func AdminOnly() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, ok := c.Get(IdentityKey).(domain.Identity)
			if !ok || identity.Role != domain.RoleAdmin {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "not authorized as admin"})
			}
			return next(c)
		}
	}
}
