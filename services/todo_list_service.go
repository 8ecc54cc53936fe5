package services

import (
	"context"
	"time"

	"todo-service/models"
	"todo-service/repository"
)

type ToDoListService interface {
	GetByID(ctx context.Context, id int64, principal string) (*models.ToDoListDto, error)
	GetAllForUser(ctx context.Context, principal string) ([]models.ToDoListDto, error)
	Create(ctx context.Context, dto models.ToDoListDto, owner string) (*models.ToDoListDto, error)
	UpdateNameAndDescription(ctx context.Context, id int64, dto models.ToDoListDto, principal string) (*models.ToDoListDto, error)
	SetActive(ctx context.Context, id int64, principal string, active bool) (*models.ToDoListDto, error)
	Delete(ctx context.Context, id int64, principal string) error
	AddTask(ctx context.Context, listID int64, principal string, task models.TaskDto) (*models.ToDoListDto, error)
	RemoveTask(ctx context.Context, listID int64, principal string, taskID int64) (*models.ToDoListDto, error)
}

type toDoListService struct {
	store  *repository.Store
	mapper models.Mapper
	now    func() time.Time
}

func NewToDoListService(store *repository.Store, mapper models.Mapper) ToDoListService {
	return &toDoListService{store: store, mapper: mapper, now: models.Now}
}

// load returns the list only if principal owns it; anything else reads as
// ErrToDoListNotFound.
func (s *toDoListService) load(ctx context.Context, id int64, principal string) (*models.ToDoList, error) {
	l, err := s.store.Lists.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err, "get list", ErrToDoListNotFound)
	}
	if Authorize(principal, l.OwnerUsername) != nil {
		return nil, ErrToDoListNotFound
	}
	return l, nil
}

func (s *toDoListService) reload(ctx context.Context, id int64) (*models.ToDoListDto, error) {
	l, err := s.store.Lists.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err, "get list", ErrToDoListNotFound)
	}
	dto := s.mapper.ToListDto(l)
	return &dto, nil
}

func (s *toDoListService) GetByID(ctx context.Context, id int64, principal string) (*models.ToDoListDto, error) {
	l, err := s.load(ctx, id, principal)
	if err != nil {
		return nil, err
	}
	dto := s.mapper.ToListDto(l)
	return &dto, nil
}

func (s *toDoListService) GetAllForUser(ctx context.Context, principal string) ([]models.ToDoListDto, error) {
	lists, err := s.store.Lists.FindAllByOwner(ctx, principal)
	if err != nil {
		return nil, translate(err, "list lists", ErrToDoListNotFound)
	}
	return s.mapper.ToListDtos(lists), nil
}

func (s *toDoListService) Create(ctx context.Context, dto models.ToDoListDto, owner string) (*models.ToDoListDto, error) {
	u, err := s.store.Users.FindByUsername(ctx, owner)
	if err != nil {
		return nil, translate(err, "get owner", ErrUserNotFound)
	}

	l := s.mapper.ToListEntity(dto)
	l.ID = 0
	l.CreatedAt = s.now()
	l.Active = true
	l.UserID = u.ID
	l.OwnerUsername = u.Username
	l.Tasks = nil

	if err := s.store.Lists.Create(ctx, &l); err != nil {
		return nil, translate(err, "create list", ErrUserNotFound)
	}

	out := s.mapper.ToListDto(&l)
	return &out, nil
}

func (s *toDoListService) UpdateNameAndDescription(ctx context.Context, id int64, dto models.ToDoListDto, principal string) (*models.ToDoListDto, error) {
	l, err := s.load(ctx, id, principal)
	if err != nil {
		return nil, err
	}

	l.Name = dto.Name
	l.Description = dto.Description
	if err := s.store.Lists.Update(ctx, l); err != nil {
		return nil, translate(err, "update list", ErrToDoListNotFound)
	}

	out := s.mapper.ToListDto(l)
	return &out, nil
}

func (s *toDoListService) SetActive(ctx context.Context, id int64, principal string, active bool) (*models.ToDoListDto, error) {
	l, err := s.load(ctx, id, principal)
	if err != nil {
		return nil, err
	}

	l.Active = active
	if err := s.store.Lists.Update(ctx, l); err != nil {
		return nil, translate(err, "update list", ErrToDoListNotFound)
	}

	out := s.mapper.ToListDto(l)
	return &out, nil
}

func (s *toDoListService) Delete(ctx context.Context, id int64, principal string) error {
	if _, err := s.load(ctx, id, principal); err != nil {
		return err
	}

	err := s.store.WithTransaction(ctx, func(repos repository.Repositories) error {
		return repos.Lists.Delete(ctx, id)
	})
	return translate(err, "delete list", ErrToDoListNotFound)
}

func (s *toDoListService) AddTask(ctx context.Context, listID int64, principal string, dto models.TaskDto) (*models.ToDoListDto, error) {
	if _, err := s.load(ctx, listID, principal); err != nil {
		return nil, err
	}

	t := s.mapper.ToTaskEntity(dto)
	t.ID = 0
	t.ListID = listID
	t.CreatedAt = s.now()
	t.CompletedAt = nil
	t.Active = true

	if err := s.store.Tasks.Create(ctx, &t); err != nil {
		return nil, translate(err, "add task", ErrToDoListNotFound)
	}
	return s.reload(ctx, listID)
}

func (s *toDoListService) RemoveTask(ctx context.Context, listID int64, principal string, taskID int64) (*models.ToDoListDto, error) {
	l, err := s.load(ctx, listID, principal)
	if err != nil {
		return nil, err
	}
	if !l.HasTask(taskID) {
		return nil, ErrTaskNotFound
	}

	if err := s.store.Tasks.Delete(ctx, taskID); err != nil {
		return nil, translate(err, "remove task", ErrTaskNotFound)
	}
	return s.reload(ctx, listID)
}
