package services

import (
	"context"
	"time"

	"todo-service/models"
	"todo-service/repository"
)

type TaskService interface {
	GetByID(ctx context.Context, id int64, principal string) (*models.TaskDto, error)
	UpdateNameAndDescription(ctx context.Context, id int64, dto models.TaskDto, principal string) (*models.TaskDto, error)
	// Complete moves an active task to completed. A second call fails with
	// *TaskAlreadyCompletedError and leaves the task unchanged.
	Complete(ctx context.Context, id int64, principal string) (*models.TaskDto, error)
}

type taskService struct {
	store  *repository.Store
	mapper models.Mapper
	now    func() time.Time
}

func NewTaskService(store *repository.Store, mapper models.Mapper) TaskService {
	return &taskService{store: store, mapper: mapper, now: models.Now}
}

func (s *taskService) load(ctx context.Context, id int64, principal string) (*models.Task, error) {
	t, err := s.store.Tasks.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err, "get task", ErrTaskNotFound)
	}
	if Authorize(principal, t.OwnerUsername) != nil {
		return nil, ErrTaskNotFound
	}
	return t, nil
}

func (s *taskService) GetByID(ctx context.Context, id int64, principal string) (*models.TaskDto, error) {
	t, err := s.load(ctx, id, principal)
	if err != nil {
		return nil, err
	}
	dto := s.mapper.ToTaskDto(t)
	return &dto, nil
}

func (s *taskService) UpdateNameAndDescription(ctx context.Context, id int64, dto models.TaskDto, principal string) (*models.TaskDto, error) {
	t, err := s.load(ctx, id, principal)
	if err != nil {
		return nil, err
	}

	t.Name = dto.Name
	t.Description = dto.Description
	if err := s.store.Tasks.Update(ctx, t); err != nil {
		return nil, translate(err, "update task", ErrTaskNotFound)
	}

	out := s.mapper.ToTaskDto(t)
	return &out, nil
}

func (s *taskService) Complete(ctx context.Context, id int64, principal string) (*models.TaskDto, error) {
	t, err := s.load(ctx, id, principal)
	if err != nil {
		return nil, err
	}

	if !t.Complete(s.now()) {
		return nil, &TaskAlreadyCompletedError{TaskID: t.ID, CompletedAt: *t.CompletedAt}
	}
	if err := s.store.Tasks.Update(ctx, t); err != nil {
		return nil, translate(err, "complete task", ErrTaskNotFound)
	}

	out := s.mapper.ToTaskDto(t)
	return &out, nil
}
