package handlers

import (
	"context"
	"net/http"
	"strconv"

	"todo-service/models"
	"todo-service/services"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type ToDoListHandler struct {
	lists services.ToDoListService
}

func NewToDoListHandler(lists services.ToDoListService) *ToDoListHandler {
	return &ToDoListHandler{lists: lists}
}

// GetList handles GET /api/list/{id}
func (h *ToDoListHandler) GetList(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(ctx, w, r, "id")
	if !ok {
		return
	}

	list, err := h.lists.GetByID(ctx, id, PrincipalFromContext(ctx))
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// GetAllLists handles GET /api/list/all
func (h *ToDoListHandler) GetAllLists(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	lists, err := h.lists.GetAllForUser(ctx, PrincipalFromContext(ctx))
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	logRequest(ctx, "info", "Lists retrieved", zap.Int("count", len(lists)))
	writeJSON(w, http.StatusOK, lists)
}

// CreateList handles POST /api/list
func (h *ToDoListHandler) CreateList(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	var dto models.ToDoListDto
	if !decodeJSON(ctx, w, r, &dto) {
		return
	}
	if fe := dto.Validate(models.OnCreate); len(fe) > 0 {
		writeServiceError(ctx, w, fe)
		return
	}

	list, err := h.lists.Create(ctx, dto, PrincipalFromContext(ctx))
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	logRequest(ctx, "info", "List created", zap.Int64("list_id", *list.ID))
	w.Header().Set("Location", list.URL)
	writeJSON(w, http.StatusCreated, list)
}

// UpdateList handles PUT /api/list/{id}. Only name and description change.
func (h *ToDoListHandler) UpdateList(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(ctx, w, r, "id")
	if !ok {
		return
	}

	var dto models.ToDoListDto
	if !decodeJSON(ctx, w, r, &dto) {
		return
	}
	if fe := dto.Validate(models.OnUpdate); len(fe) > 0 {
		writeServiceError(ctx, w, fe)
		return
	}

	list, err := h.lists.UpdateNameAndDescription(ctx, id, dto, PrincipalFromContext(ctx))
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	logRequest(ctx, "info", "List updated", zap.Int64("list_id", id))
	writeJSON(w, http.StatusOK, list)
}

// DeleteList handles DELETE /api/list/{id}
func (h *ToDoListHandler) DeleteList(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(ctx, w, r, "id")
	if !ok {
		return
	}

	if err := h.lists.Delete(ctx, id, PrincipalFromContext(ctx)); err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	logRequest(ctx, "info", "List deleted", zap.Int64("list_id", id))
	w.WriteHeader(http.StatusNoContent)
}

// SetActive handles PATCH /api/list/{id}/active/{active}
func (h *ToDoListHandler) SetActive(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(ctx, w, r, "id")
	if !ok {
		return
	}

	raw := mux.Vars(r)["active"]
	active, err := strconv.ParseBool(raw)
	if err != nil {
		logRequest(ctx, "error", "Invalid active flag", zap.String("active", raw))
		writeError(w, http.StatusBadRequest, "Invalid active flag")
		return
	}

	list, err := h.lists.SetActive(ctx, id, PrincipalFromContext(ctx), active)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// AddTask handles PATCH /api/list/{id}/task/add
func (h *ToDoListHandler) AddTask(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(ctx, w, r, "id")
	if !ok {
		return
	}

	var dto models.TaskDto
	if !decodeJSON(ctx, w, r, &dto) {
		return
	}
	if fe := dto.Validate(models.OnCreate); len(fe) > 0 {
		writeServiceError(ctx, w, fe)
		return
	}

	list, err := h.lists.AddTask(ctx, id, PrincipalFromContext(ctx), dto)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	logRequest(ctx, "info", "Task added", zap.Int64("list_id", id))
	writeJSON(w, http.StatusOK, list)
}

// RemoveTask handles PATCH /api/list/{listId}/task/remove/{taskId}
func (h *ToDoListHandler) RemoveTask(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	listID, ok := pathID(ctx, w, r, "listId")
	if !ok {
		return
	}
	taskID, ok := pathID(ctx, w, r, "taskId")
	if !ok {
		return
	}

	list, err := h.lists.RemoveTask(ctx, listID, PrincipalFromContext(ctx), taskID)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	logRequest(ctx, "info", "Task removed", zap.Int64("list_id", listID), zap.Int64("task_id", taskID))
	writeJSON(w, http.StatusOK, list)
}
