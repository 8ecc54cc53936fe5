package handlers

import (
	"context"
	"net/http"

	"todo-service/models"
	"todo-service/services"

	"go.uber.org/zap"
)

type TaskHandler struct {
	tasks services.TaskService
}

func NewTaskHandler(tasks services.TaskService) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

// GetTask handles GET /api/task/{id}
func (h *TaskHandler) GetTask(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(ctx, w, r, "id")
	if !ok {
		return
	}

	task, err := h.tasks.GetByID(ctx, id, PrincipalFromContext(ctx))
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

// CompleteTask handles PATCH /api/task/{id}/complete
func (h *TaskHandler) CompleteTask(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(ctx, w, r, "id")
	if !ok {
		return
	}

	task, err := h.tasks.Complete(ctx, id, PrincipalFromContext(ctx))
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	logRequest(ctx, "info", "Task completed", zap.Int64("task_id", id))
	writeJSON(w, http.StatusOK, task)
}

// UpdateTask handles PATCH /api/task/{id}
func (h *TaskHandler) UpdateTask(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(ctx, w, r, "id")
	if !ok {
		return
	}

	var dto models.TaskDto
	if !decodeJSON(ctx, w, r, &dto) {
		return
	}
	if fe := dto.Validate(models.OnUpdate); len(fe) > 0 {
		writeServiceError(ctx, w, fe)
		return
	}

	task, err := h.tasks.UpdateNameAndDescription(ctx, id, dto, PrincipalFromContext(ctx))
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	logRequest(ctx, "info", "Task updated", zap.Int64("task_id", id))
	writeJSON(w, http.StatusOK, task)
}
