package domain

import "errors"

var (
	// ErrInvalidCredentials is returned uniformly for unknown email and wrong
	// password so a caller cannot tell which half was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken covers bad signature, malformed payload and expiry.
	ErrInvalidToken = errors.New("invalid token")

	ErrEmailTaken   = errors.New("user already exists")
	ErrUserNotFound = errors.New("user not found")
	ErrTaskNotFound = errors.New("task not found")

	ErrSelfDemotion = errors.New("you cannot demote yourself")
	ErrSelfDeletion = errors.New("you cannot delete your own account")
)

// ValidationError carries a client-facing message for bad input. Its message
// is rendered verbatim in the error envelope with status 400.
type ValidationError struct {
	Msg string
}

func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Msg: msg}
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// ErrDueDateNotFuture rejects tasks whose due date is not strictly ahead of
// the current time.
var ErrDueDateNotFuture = NewValidationError("Due date must be in the future")
