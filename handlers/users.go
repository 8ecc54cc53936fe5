package handlers

import (
	"context"
	"net/http"

	"todo-service/models"
	"todo-service/services"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// UserHandler handles user-related operations
type UserHandler struct {
	users services.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(users services.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// GetUser handles GET /api/user/{username}
func (h *UserHandler) GetUser(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]
	logRequest(ctx, "info", "Getting user", zap.String("username", username))

	user, err := h.users.GetByUsername(ctx, PrincipalFromContext(ctx), username)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// Register handles POST /api/user/register. It is the only unauthenticated
// API route.
func (h *UserHandler) Register(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	var req models.RegisterUserRequest
	if !decodeJSON(ctx, w, r, &req) {
		return
	}

	if fe := req.Validate(); len(fe) > 0 {
		writeServiceError(ctx, w, fe)
		return
	}

	exists, err := h.users.Exists(ctx, req.Username)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	if exists {
		writeServiceError(ctx, w, models.FieldErrors{"username": "username is already taken"})
		return
	}

	user, err := h.users.Create(ctx, req)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	logRequest(ctx, "info", "User registered", zap.String("user_id", user.ID), zap.String("username", user.Username))
	writeJSON(w, http.StatusCreated, user)
}

// ChangeUsername handles PATCH /api/user/{username}/username
func (h *UserHandler) ChangeUsername(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]

	var req models.ChangeUsernameRequest
	if !decodeJSON(ctx, w, r, &req) {
		return
	}
	if fe := req.Validate(); len(fe) > 0 {
		writeServiceError(ctx, w, fe)
		return
	}

	user, err := h.users.ChangeUsername(ctx, PrincipalFromContext(ctx), username, req.Username)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	logRequest(ctx, "info", "Username changed", zap.String("from", username), zap.String("to", user.Username))
	writeJSON(w, http.StatusOK, user)
}

// ChangePassword handles PATCH /api/user/{username}/password
func (h *UserHandler) ChangePassword(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]

	var req models.ChangePasswordRequest
	if !decodeJSON(ctx, w, r, &req) {
		return
	}
	if fe := req.Validate(); len(fe) > 0 {
		writeServiceError(ctx, w, fe)
		return
	}

	if err := h.users.ChangePassword(ctx, PrincipalFromContext(ctx), username, req.Password); err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	logRequest(ctx, "info", "Password changed", zap.String("username", username))
	writeJSON(w, http.StatusOK, map[string]string{"message": "Password changed"})
}

// ChangeEmail handles PATCH /api/user/{username}/email
func (h *UserHandler) ChangeEmail(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]

	var req models.ChangeEmailRequest
	if !decodeJSON(ctx, w, r, &req) {
		return
	}
	if fe := req.Validate(); len(fe) > 0 {
		writeServiceError(ctx, w, fe)
		return
	}

	user, err := h.users.ChangeEmail(ctx, PrincipalFromContext(ctx), username, req.Email)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	logRequest(ctx, "info", "Email changed", zap.String("username", username))
	writeJSON(w, http.StatusOK, user)
}

// DeleteUser handles DELETE /api/user/{username}
func (h *UserHandler) DeleteUser(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]

	if err := h.users.Delete(ctx, PrincipalFromContext(ctx), username); err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	logRequest(ctx, "info", "User deleted", zap.String("username", username))
	w.WriteHeader(http.StatusNoContent)
}
