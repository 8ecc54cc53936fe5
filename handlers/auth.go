package handlers

import (
	"context"
	"errors"
	"net/http"

	"todo-service/models"
	"todo-service/services"

	"github.com/gorilla/mux"
	"github.com/umakantv/go-utils/httpserver"
	"go.uber.org/zap"
)

const authRealm = `Basic realm="todo"`

// Authenticator verifies Basic credentials
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (*models.User, error)
}

// BasicAuth rejects requests without valid credentials and stores the
// authenticated username in the request context
func BasicAuth(auth Authenticator) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			username, password, ok := r.BasicAuth()
			if !ok {
				unauthorized(ctx, w, "Authentication required")
				return
			}

			u, err := auth.Authenticate(ctx, username, password)
			if err != nil && !errors.Is(err, services.ErrInvalidCredentials) {
				writeServiceError(ctx, w, err)
				return
			}
			if err != nil {
				logRequest(ctx, "info", "Authentication failed", zap.String("username", username), zap.Error(err))
				unauthorized(ctx, w, "Invalid username or password")
				return
			}

			next.ServeHTTP(w, r.WithContext(withAuth(ctx, httpserver.RequestAuth{
				Type:   "basic",
				Client: u.Username,
				Claims: map[string]interface{}{"user_id": u.ID},
			})))
		})
	}
}

func unauthorized(ctx context.Context, w http.ResponseWriter, message string) {
	logRequest(ctx, "debug", "Unauthorized")
	w.Header().Set("WWW-Authenticate", authRealm)
	writeError(w, http.StatusUnauthorized, message)
}
