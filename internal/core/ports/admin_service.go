package ports

import (
	"context"

	"github.com/taskhub/task-manager-api/internal/core/domain"
)

type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// AdminService implements user management and cross-user task views. Demote
// and DeleteUser take the acting admin's id to enforce the self-action
// guards: an admin may not demote or delete its own account.
type AdminService interface {
	ListUsers(ctx context.Context) ([]domain.User, error)
	CreateUser(ctx context.Context, in CreateUserInput) (*domain.User, error)
	UpdateUser(ctx context.Context, id string, patch UserPatch) (*domain.User, error)
	Promote(ctx context.Context, id string) (*domain.User, error)
	Demote(ctx context.Context, actorID, id string) (*domain.User, error)
	DeleteUser(ctx context.Context, actorID, id string) error
	ListAllTasks(ctx context.Context) ([]domain.TaskWithOwner, error)
	ListUserTasks(ctx context.Context, userID string) ([]domain.Task, error)
}
