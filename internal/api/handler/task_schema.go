package handler

import (
	"encoding/json"
	"time"

	"github.com/taskhub/task-manager-api/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type createTaskRequest struct {
	Title           string    `json:"title"           validate:"required"`
	Description     string    `json:"description"`
	DueDate         time.Time `json:"dueDate"         validate:"required"`
	CalendarEventID string    `json:"calendarEventId"`
}

// updateTaskRequest uses pointers so absent fields are left untouched. The
// user and createdAt fields exist only to reject attempts to modify them.
type updateTaskRequest struct {
	Title           *string          `json:"title"`
	Description     *string          `json:"description"`
	DueDate         *time.Time       `json:"dueDate"`
	Completed       *bool            `json:"completed"`
	CalendarEventID *string          `json:"calendarEventId"`
	User            *json.RawMessage `json:"user"`
	CreatedAt       *json.RawMessage `json:"createdAt"`
}

type listTasksResponse struct {
	Tasks      []domain.Task `json:"tasks"`
	TotalTasks int64         `json:"totalTasks"`
	TotalPages int           `json:"totalPages"`
	Page       int           `json:"page"`
}

type deleteTaskResponse struct {
	Message string `json:"message"`
	TaskID  string `json:"taskId"`
}
