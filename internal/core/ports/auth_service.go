package ports

import (
	"context"

	"github.com/taskhub/task-manager-api/internal/core/domain"
)

// AuthService implements registration, login and the current-user lookup.
// Register and Login return the account together with a freshly issued token.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*domain.User, string, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
	CurrentUser(ctx context.Context, id string) (*domain.User, error)
	Logout(ctx context.Context, token string) error
}
