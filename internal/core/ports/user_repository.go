package ports

import (
	"context"

	"github.com/taskhub/task-manager-api/internal/core/domain"
)

// UserPatch carries optional account fields for partial updates. Nil fields
// are left untouched.
type UserPatch struct {
	Name  *string
	Email *string
	Role  *string
}

// UserRepository defines the persistence interface for accounts.
// Create returns domain.ErrEmailTaken when the email unique index rejects
// the insert; lookups return domain.ErrUserNotFound when no account matches.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, id string, patch UserPatch) (*domain.User, error)
	SetRole(ctx context.Context, id, role string) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}
