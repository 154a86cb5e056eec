package middleware

import (
	"log/slog"
	"net/http"

	"github.com/sneha01vaish/BackendAPICartItem/pkg/logger"
)

// RequestLogger stores a request-scoped logger in context, enriched with
// correlation_id, session_id, trace_id and span_id. Handlers fetch it with
// logger.FromContext.
//
// Mount it after RequestLogging and Tracing, and after whatever middleware
// attaches the session ID with logger.WithSessionID.
func RequestLogger(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := logger.NewContext(r.Context(), logger.WithContext(r.Context(), base))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
