package ports

import (
	"context"
	"time"

	"github.com/taskhub/task-manager-api/internal/core/domain"
)

type CreateTaskInput struct {
	Title           string
	Description     string
	DueDate         time.Time
	CalendarEventID string
}

// TaskPage is one page of a user's task list.
type TaskPage struct {
	Tasks      []domain.Task
	TotalTasks int64
	TotalPages int
	Page       int
}

// TaskService implements owner-scoped task CRUD. Every operation takes the
// requesting owner's id; tasks belonging to other users are never visible.
type TaskService interface {
	Create(ctx context.Context, ownerID string, in CreateTaskInput) (*domain.Task, error)
	List(ctx context.Context, ownerID string, q TaskQuery) (*TaskPage, error)
	Get(ctx context.Context, ownerID, taskID string) (*domain.Task, error)
	Update(ctx context.Context, ownerID, taskID string, patch TaskPatch) (*domain.Task, error)
	Delete(ctx context.Context, ownerID, taskID string) (*domain.Task, error)
}
