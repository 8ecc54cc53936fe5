package models

import "time"

// ToDoList is a named, owned collection of tasks
type ToDoList struct {
	ID          int64     `db:"id"`
	Name        string    `db:"name"`
	Description *string   `db:"description"`
	CreatedAt   time.Time `db:"created_at"`
	Active      bool      `db:"active"`
	UserID      string    `db:"user_id"`
	// Populated by joins against users; not a column of todo_lists.
	OwnerUsername string `db:"owner_username"`
	Tasks         []Task `db:"-"`
}

// HasTask reports whether the list contains a task with the given id
func (l *ToDoList) HasTask(taskID int64) bool {
	for _, t := range l.Tasks {
		if t.ID == taskID {
			return true
		}
	}
	return false
}

// ToDoListDto is the wire shape of a list. Pointer fields distinguish
// "absent" from zero values so creation payloads can be checked.
type ToDoListDto struct {
	ID          *int64     `json:"list_id,omitempty"`
	Name        string     `json:"name"`
	Description *string    `json:"description,omitempty"`
	CreatedAt   *Timestamp `json:"creation_date,omitempty"`
	Active      *bool      `json:"active,omitempty"`
	URL         string     `json:"list_url,omitempty"`
	Tasks       []TaskDto  `json:"tasks"`
}
