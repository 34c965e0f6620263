package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/taskhub/task-manager-api/internal/core/domain"
	"github.com/taskhub/task-manager-api/internal/core/ports"
)

// IdentityKey is the echo context key under which Auth stores the resolved
// domain.Identity.
const IdentityKey = "identity"

// Auth authenticates the request: it verifies the bearer token, rejects
// revoked tokens, and resolves the subject against the live account store.
// The identity stored in the context carries the account's current role, not
// the role embedded in the token, so stale claims never grant privilege.
func Auth(tokens ports.TokenService, users ports.UserRepository, revoked ports.RevocationList, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims, err := tokens.Verify(parts[1])
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			if claims.TokenID != "" {
				isRevoked, err := revoked.IsRevoked(c.Request().Context(), claims.TokenID)
				if err != nil {
					// Revocation is an extra defense on top of expiry; an
					// outage of the list must not take authentication down.
					log.Warn().Err(err).Msg("revocation check unavailable")
				} else if isRevoked {
					return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
				}
			}

			user, err := users.FindByID(c.Request().Context(), claims.UserID)
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) {
					// Deleted accounts can still hold structurally valid tokens.
					return echo.NewHTTPError(http.StatusUnauthorized, "user not found")
				}
				return err
			}

			c.Set(IdentityKey, domain.Identity{ID: user.ID, Role: user.Role})
			return next(c)
		}
	}
}
