package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/umakantv/go-utils/httpserver"
	"go.uber.org/zap"
)

// Pinger is satisfied by *sqlx.DB
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Health handles GET /health
func Health(db Pinger) httpserver.HandlerFunc {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) {
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()

		if err := db.PingContext(pingCtx); err != nil {
			logRequest(ctx, "error", "Database ping failed", zap.Error(err))
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unhealthy", "service": "todo-service"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "healthy", "service": "todo-service"})
	}
}
