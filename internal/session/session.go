// Package session resolves the caller's cart session from request headers.
package session

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/sneha01vaish/BackendAPICartItem/pkg/logger"
)

// HeaderName carries the session ID in requests and responses.
const HeaderName = "X-Session-ID"

type ctxKey struct{}

// Resolve returns provided unchanged when non-empty, otherwise a new UUIDv4.
// Any non-empty value is accepted as is.
func Resolve(provided string) string {
	if provided != "" {
		return provided
	}
	return uuid.NewString()
}

// WithID stores the session ID in ctx.
func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext returns the session ID stored by Middleware.
func FromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ctxKey{}).(string)
	return id, ok && id != ""
}

// Middleware resolves the session for every request, echoes it in the
// response header, and attaches it to the context for handlers and logs.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := Resolve(r.Header.Get(HeaderName))
		w.Header().Set(HeaderName, id)

		ctx := WithID(r.Context(), id)
		ctx = logger.WithSessionID(ctx, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
