package models

import "time"

// Task is a single item of a ToDoList. Once CompletedAt is set it never
// goes back to nil and Active stays false.
type Task struct {
	ID          int64      `db:"id"`
	Name        string     `db:"name"`
	Description *string    `db:"description"`
	ListID      int64      `db:"list_id"`
	CreatedAt   time.Time  `db:"created_at"`
	CompletedAt *time.Time `db:"completed_at"`
	Active      bool       `db:"active"`
	// Populated by joins against todo_lists and users.
	OwnerUsername string `db:"owner_username"`
}

// Completed reports whether the task has been completed
func (t *Task) Completed() bool {
	return t.CompletedAt != nil
}

// Complete marks the task completed at the given time. It returns false and
// leaves the task untouched if it was already completed.
func (t *Task) Complete(at time.Time) bool {
	if t.Completed() {
		return false
	}
	t.CompletedAt = &at
	t.Active = false
	return true
}

// TaskDto is the wire shape of a task
type TaskDto struct {
	ID          *int64     `json:"task_id,omitempty"`
	ListID      *int64     `json:"list_id,omitempty"`
	Name        string     `json:"name"`
	Description *string    `json:"description,omitempty"`
	CreatedAt   *Timestamp `json:"creation_date,omitempty"`
	CompletedAt *Timestamp `json:"completion_date,omitempty"`
	Active      *bool      `json:"active,omitempty"`
	URL         string     `json:"task_url,omitempty"`
}
