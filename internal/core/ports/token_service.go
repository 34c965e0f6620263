package ports

import (
	"context"
	"time"

	"github.com/taskhub/task-manager-api/internal/core/domain"
)

// TokenService issues and verifies signed session tokens. Verify is a pure
// cryptographic and temporal check; it never consults storage.
type TokenService interface {
	Issue(userID, role string) (string, error)
	Verify(token string) (*domain.Claims, error)
}

// RevocationList records tokens invalidated before their natural expiry.
// It is an additional defense on top of expiry, not a replacement for it.
type RevocationList interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
