package ports

import (
	"context"
	"time"

	"github.com/taskhub/task-manager-api/internal/core/domain"
)

// TaskQuery selects a page of a user's tasks, optionally filtered by a
// case-insensitive title search.
type TaskQuery struct {
	Page   int
	Limit  int
	Search string
}

// TaskPatch carries optional task fields for partial updates. Nil fields are
// left untouched. Owner and creation time are never patchable.
type TaskPatch struct {
	Title           *string
	Description     *string
	DueDate         *time.Time
	Completed       *bool
	CalendarEventID *string
}

// TaskRepository defines the persistence interface for tasks. All Owned
// variants fold the ownership check into the query filter, so a task owned
// by someone else surfaces as domain.ErrTaskNotFound.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	FindOwned(ctx context.Context, id, ownerID string) (*domain.Task, error)
	ListOwned(ctx context.Context, ownerID string, q TaskQuery) ([]domain.Task, int64, error)
	UpdateOwned(ctx context.Context, id, ownerID string, patch TaskPatch) (*domain.Task, error)
	DeleteOwned(ctx context.Context, id, ownerID string) (*domain.Task, error)
	ListAll(ctx context.Context) ([]domain.TaskWithOwner, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Task, error)
}
