package handler

import (
	"time"

	"github.com/taskhub/task-manager-api/internal/core/domain"
)

type createUserRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role"     validate:"omitempty,oneof=user admin"`
}

type updateUserRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email" validate:"omitempty,email"`
	Role  *string `json:"role"  validate:"omitempty,oneof=user admin"`
}

type userMessageResponse struct {
	Message string       `json:"message"`
	User    *domain.User `json:"user"`
}

type deleteUserResponse struct {
	Message string `json:"message"`
	UserID  string `json:"userId"`
}

// ownerSummaryResponse is the owner attachment on admin task listings. It
// deliberately exposes only non-sensitive account fields.
type ownerSummaryResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type adminTaskResponse struct {
	ID              string               `json:"id"`
	Title           string               `json:"title"`
	Description     string               `json:"description,omitempty"`
	DueDate         time.Time            `json:"dueDate"`
	Completed       bool                 `json:"completed"`
	CalendarEventID string               `json:"calendarEventId,omitempty"`
	User            ownerSummaryResponse `json:"user"`
	CreatedAt       time.Time            `json:"createdAt"`
	UpdatedAt       time.Time            `json:"updatedAt"`
}

func toAdminTask(t domain.TaskWithOwner) adminTaskResponse {
	return adminTaskResponse{
		ID:              t.Task.ID,
		Title:           t.Task.Title,
		Description:     t.Task.Description,
		DueDate:         t.Task.DueDate,
		Completed:       t.Task.Completed,
		CalendarEventID: t.Task.CalendarEventID,
		User: ownerSummaryResponse{
			ID:    t.Owner.ID,
			Name:  t.Owner.Name,
			Email: t.Owner.Email,
			Role:  t.Owner.Role,
		},
		CreatedAt: t.Task.CreatedAt,
		UpdatedAt: t.Task.UpdatedAt,
	}
}
