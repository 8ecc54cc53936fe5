package handlers

import (
	"context"
	"errors"
	"net/http"

	"todo-service/models"
	"todo-service/services"

	"github.com/umakantv/go-utils/errs"
	"go.uber.org/zap"
)

// writeServiceError is the single place where service failures become HTTP
// responses
func writeServiceError(ctx context.Context, w http.ResponseWriter, err error) {
	var (
		fieldErrs models.FieldErrors
		completed *services.TaskAlreadyCompletedError
	)

	switch {
	case errors.As(err, &fieldErrs):
		logRequest(ctx, "info", "Validation failed", zap.Error(err))
		writeError(w, http.StatusBadRequest, map[string]string(fieldErrs))
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrToDoListNotFound),
		errors.Is(err, services.ErrTaskNotFound):
		logRequest(ctx, "info", "Not found", zap.Error(err))
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrUsernameAlreadyExists):
		logRequest(ctx, "info", "Username taken", zap.Error(err))
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &completed):
		logRequest(ctx, "info", "Task already completed", zap.Int64("task_id", completed.TaskID))
		writeError(w, http.StatusAlreadyReported, err.Error())
	case errors.Is(err, services.ErrAccessDenied):
		logRequest(ctx, "info", "Access denied", zap.Error(err))
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		unauthorized(ctx, w, err.Error())
	default:
		logRequest(ctx, "error", "Unhandled service error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, errs.NewInternalServerError("Internal server error").Message)
	}
}
