package server

import (
	"net/http"
	"runtime/debug"

	"todo-service/handlers"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/umakantv/go-utils/errs"
	"github.com/umakantv/go-utils/logger"
	"go.uber.org/zap"
)

const requestIDHeader = "X-Request-ID"

// requestID propagates the caller's X-Request-ID or assigns a new one
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(handlers.WithRequestID(r.Context(), id)))
	})
}

// routeInfo records the matched route name and path template for logging
func routeInfo(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name, path := "", r.URL.Path
		if route := mux.CurrentRoute(r); route != nil {
			name = route.GetName()
			if tpl, err := route.GetPathTemplate(); err == nil {
				path = tpl
			}
		}
		next.ServeHTTP(w, r.WithContext(handlers.WithRoute(r.Context(), name, r.Method, path)))
	})
}

// recoverer turns a panicking handler into a 500
func recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if p := recover(); p != nil {
				logger.Error("Recovered from panic",
					zap.Any("panic", p),
					zap.String("request_id", handlers.GetRequestID(r.Context())),
					zap.ByteString("stack", debug.Stack()),
				)
				handlers.WriteError(w, http.StatusInternalServerError, errs.NewInternalServerError("Internal server error").Message)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
