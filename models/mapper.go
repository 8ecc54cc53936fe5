package models

import (
	"strconv"
	"strings"
	"time"
)

// Mapper translates entities to and from their transfer representations.
// BaseURL is used to build the list_url / task_url fields.
type Mapper struct {
	BaseURL string
}

// NewMapper creates a mapper rooted at baseURL
func NewMapper(baseURL string) Mapper {
	return Mapper{BaseURL: strings.TrimRight(baseURL, "/")}
}

// ListURL returns the API location of a list
func (m Mapper) ListURL(id int64) string {
	return m.BaseURL + "/api/list/" + strconv.FormatInt(id, 10)
}

// TaskURL returns the API location of a task
func (m Mapper) TaskURL(id int64) string {
	return m.BaseURL + "/api/task/" + strconv.FormatInt(id, 10)
}

func (m Mapper) ToUserDto(u *User) UserDto {
	return UserDto{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
	}
}

func (m Mapper) ToListDto(l *ToDoList) ToDoListDto {
	id := l.ID
	active := l.Active
	dto := ToDoListDto{
		ID:          &id,
		Name:        l.Name,
		Description: l.Description,
		CreatedAt:   NewTimestamp(l.CreatedAt),
		Active:      &active,
		URL:         m.ListURL(l.ID),
		Tasks:       make([]TaskDto, 0, len(l.Tasks)),
	}
	for i := range l.Tasks {
		dto.Tasks = append(dto.Tasks, m.ToTaskDto(&l.Tasks[i]))
	}
	return dto
}

func (m Mapper) ToListDtos(lists []ToDoList) []ToDoListDto {
	out := make([]ToDoListDto, 0, len(lists))
	for i := range lists {
		out = append(out, m.ToListDto(&lists[i]))
	}
	return out
}

func (m Mapper) ToTaskDto(t *Task) TaskDto {
	id := t.ID
	listID := t.ListID
	active := t.Active
	dto := TaskDto{
		ID:          &id,
		ListID:      &listID,
		Name:        t.Name,
		Description: t.Description,
		CreatedAt:   NewTimestamp(t.CreatedAt),
		Active:      &active,
		URL:         m.TaskURL(t.ID),
	}
	if t.CompletedAt != nil {
		dto.CompletedAt = NewTimestamp(*t.CompletedAt)
	}
	return dto
}

// ToListEntity builds a list from its transfer representation. Fields the
// client did not send keep their zero values (active defaults to true).
func (m Mapper) ToListEntity(dto ToDoListDto) ToDoList {
	l := ToDoList{
		Name:        dto.Name,
		Description: dto.Description,
		Active:      true,
	}
	if dto.ID != nil {
		l.ID = *dto.ID
	}
	if dto.CreatedAt != nil {
		l.CreatedAt = dto.CreatedAt.Time()
	}
	if dto.Active != nil {
		l.Active = *dto.Active
	}
	for _, td := range dto.Tasks {
		t := m.ToTaskEntity(td)
		t.ListID = l.ID
		l.Tasks = append(l.Tasks, t)
	}
	return l
}

// ToTaskEntity builds a task from its transfer representation
func (m Mapper) ToTaskEntity(dto TaskDto) Task {
	t := Task{
		Name:        dto.Name,
		Description: dto.Description,
		Active:      true,
	}
	if dto.ID != nil {
		t.ID = *dto.ID
	}
	if dto.ListID != nil {
		t.ListID = *dto.ListID
	}
	if dto.CreatedAt != nil {
		t.CreatedAt = dto.CreatedAt.Time()
	}
	if dto.CompletedAt != nil {
		completed := dto.CompletedAt.Time()
		t.CompletedAt = &completed
	}
	if dto.Active != nil {
		t.Active = *dto.Active
	}
	return t
}

// Now returns the current time as stored by the services: UTC, whole seconds
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}
