package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskhub/task-manager-api/internal/api/metrics"
	"github.com/taskhub/task-manager-api/internal/core/domain"
	"github.com/taskhub/task-manager-api/internal/core/ports"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

// TaskService implements owner-scoped task CRUD.
type TaskService struct {
	repo   ports.TaskRepository
	logger zerolog.Logger
}

func NewTaskService(repo ports.TaskRepository, logger zerolog.Logger) *TaskService {
	return &TaskService{repo: repo, logger: logger}
}

// Create stores a new task owned by ownerID. The due date must be strictly
// in the future; completion always starts false.
func (s *TaskService) Create(ctx context.Context, ownerID string, in ports.CreateTaskInput) (*domain.Task, error) {
	if in.Title == "" {
		return nil, domain.NewValidationError("Title is required")
	}
	if in.DueDate.IsZero() {
		return nil, domain.NewValidationError("Due date is required")
	}
	if !in.DueDate.After(time.Now()) {
		return nil, domain.ErrDueDateNotFuture
	}

	now := time.Now().UTC()
	task := &domain.Task{
		Title:           in.Title,
		Description:     in.Description,
		DueDate:         in.DueDate.UTC(),
		Completed:       false,
		CalendarEventID: in.CalendarEventID,
		OwnerID:         ownerID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	created, err := s.repo.Create(ctx, task)
	if err != nil {
		return nil, err
	}

	metrics.TasksCreatedTotal.Inc()
	s.logger.Info().Str("task_id", created.ID).Str("user_id", ownerID).Msg("task created")
	return created, nil
}

// List returns one page of the owner's tasks sorted by due date, optionally
// filtered by a case-insensitive title search.
func (s *TaskService) List(ctx context.Context, ownerID string, q ports.TaskQuery) (*ports.TaskPage, error) {
	if q.Page < 1 {
		q.Page = defaultPage
	}
	if q.Limit < 1 {
		q.Limit = defaultLimit
	}

	tasks, total, err := s.repo.ListOwned(ctx, ownerID, q)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(q.Limit) - 1) / int64(q.Limit))
	return &ports.TaskPage{
		Tasks:      tasks,
		TotalTasks: total,
		TotalPages: totalPages,
		Page:       q.Page,
	}, nil
}

// Get returns the task only when it is owned by ownerID.
func (s *TaskService) Get(ctx context.Context, ownerID, taskID string) (*domain.Task, error) {
	return s.repo.FindOwned(ctx, taskID, ownerID)
}

// Update patches an owned task. A provided due date must still be in the
// future. A task owned by someone else surfaces as not found.
func (s *TaskService) Update(ctx context.Context, ownerID, taskID string, patch ports.TaskPatch) (*domain.Task, error) {
	if patch.DueDate != nil && !patch.DueDate.After(time.Now()) {
		return nil, domain.ErrDueDateNotFuture
	}
	if patch.Title != nil && *patch.Title == "" {
		return nil, domain.NewValidationError("Title is required")
	}

	// The completion counter tracks transitions, not writes, so re-saving an
	// already-completed task must not count again.
	wasCompleted := false
	if patch.Completed != nil && *patch.Completed {
		prev, err := s.repo.FindOwned(ctx, taskID, ownerID)
		if err != nil {
			return nil, err
		}
		wasCompleted = prev.Completed
	}

	updated, err := s.repo.UpdateOwned(ctx, taskID, ownerID, patch)
	if err != nil {
		return nil, err
	}

	if patch.Completed != nil && *patch.Completed && !wasCompleted {
		metrics.TasksCompletedTotal.Inc()
	}
	return updated, nil
}

// Delete removes an owned task and returns the deleted record.
func (s *TaskService) Delete(ctx context.Context, ownerID, taskID string) (*domain.Task, error) {
	deleted, err := s.repo.DeleteOwned(ctx, taskID, ownerID)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("task_id", taskID).Str("user_id", ownerID).Msg("task deleted")
	return deleted, nil
}
