package services

import (
	"errors"
	"fmt"
	"time"

	"todo-service/models"
	"todo-service/repository"
)

var (
	ErrUserNotFound          = errors.New("user not found")
	ErrToDoListNotFound      = errors.New("to-do list not found")
	ErrTaskNotFound          = errors.New("task not found")
	ErrUsernameAlreadyExists = errors.New("username already exists")
	ErrAccessDenied          = errors.New("access denied")
	ErrInvalidCredentials    = errors.New("invalid username or password")
)

// TaskAlreadyCompletedError is returned when completing a task twice
type TaskAlreadyCompletedError struct {
	TaskID      int64
	CompletedAt time.Time
}

func (e *TaskAlreadyCompletedError) Error() string {
	return fmt.Sprintf("task %d was already completed at %s",
		e.TaskID, e.CompletedAt.UTC().Format(models.TimestampLayout))
}

// translate maps repository failures onto service sentinels. Errors it does
// not recognize are wrapped with op.
func translate(err error, op string, notFound error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return notFound
	case errors.Is(err, repository.ErrDuplicateKey):
		return ErrUsernameAlreadyExists
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
