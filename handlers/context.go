package handlers

import (
	"context"
	"net/http"

	"github.com/umakantv/go-utils/httpserver"
)

type contextKey int

const requestIDKey contextKey = iota

// Adapt exposes a ctx-first httpserver handler as an http.Handler
func Adapt(h httpserver.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.Handle(r.Context(), w, r)
	})
}

// WithRoute stores the matched route the way httpserver does, so the
// httpserver getters work behind a plain mux router
func WithRoute(ctx context.Context, name, method, path string) context.Context {
	ctx = context.WithValue(ctx, httpserver.RouteNameKey, name)
	ctx = context.WithValue(ctx, httpserver.RouteMethodKey, method)
	ctx = context.WithValue(ctx, httpserver.RoutePathKey, path)
	return context.WithValue(ctx, httpserver.AuthTypeKey, "none")
}

func withAuth(ctx context.Context, auth httpserver.RequestAuth) context.Context {
	ctx = context.WithValue(ctx, httpserver.AuthTypeKey, auth.Type)
	return context.WithValue(ctx, httpserver.RequestAuthKey, auth)
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// PrincipalFromContext returns the authenticated username, or "" for
// anonymous requests
func PrincipalFromContext(ctx context.Context) string {
	if auth := httpserver.GetRequestAuth(ctx); auth != nil {
		return auth.Client
	}
	return ""
}
