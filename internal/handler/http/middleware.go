package http

import (
	"net/http"
	"strings"

	"github.com/sneha01vaish/BackendAPICartItem/pkg/httputil"
)

// ContentTypeJSON rejects request bodies that declare a non-JSON content type.
// A missing Content-Type is accepted.
func ContentTypeJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost || r.Method == http.MethodPut || r.ContentLength > 0 {
			ct := r.Header.Get("Content-Type")
			if ct != "" && !strings.HasPrefix(ct, "application/json") {
				httputil.WriteJSON(w, http.StatusUnsupportedMediaType,
					httputil.Fail("UNSUPPORTED_MEDIA_TYPE", "Content-Type must be application/json"))
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

// endpointNotFound answers every unmatched route and method.
func endpointNotFound(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusNotFound, httputil.Response{
		Success: false,
		Message: "Endpoint not found",
	})
}
