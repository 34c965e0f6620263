package domain

import "time"

// Task is a to-do item owned by exactly one user. Outside admin routes every
// read and write is filtered by owner, so a task that exists but belongs to
// someone else is indistinguishable from one that does not exist.
type Task struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description,omitempty"`
	DueDate         time.Time `json:"dueDate"`
	Completed       bool      `json:"completed"`
	CalendarEventID string    `json:"calendarEventId,omitempty"`
	OwnerID         string    `json:"user"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// TaskWithOwner pairs a task with its resolved owner for admin listings.
type TaskWithOwner struct {
	Task  Task
	Owner User
}
