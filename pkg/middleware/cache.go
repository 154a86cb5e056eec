package middleware

import (
	"fmt"
	"net/http"
	"time"
)

// CacheControl marks successful reads as publicly cacheable for maxAge.
// A zero maxAge disables the header.
func CacheControl(maxAge time.Duration) func(http.Handler) http.Handler {
	value := fmt.Sprintf("public, max-age=%d", int(maxAge.Seconds()))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if maxAge > 0 && (r.Method == http.MethodGet || r.Method == http.MethodHead) {
				w.Header().Set("Cache-Control", value)
			}
			next.ServeHTTP(w, r)
		})
	}
}
