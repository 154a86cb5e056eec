package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

func TestIPAllowlist(t *testing.T) {
	var buf bytes.Buffer
	mw := IPAllowlist([]string{"127.0.0.0/8", "10.1.2.3/16", "::1/128", "not-a-cidr"}, newTestLogger(&buf))
	handler := mw(noop)

	tests := []struct {
		name   string
		remote string
		want   int
	}{
		{"loopback v4", "127.0.0.1:5555", http.StatusOK},
		{"unmasked prefix", "10.1.200.7:80", http.StatusOK},
		{"loopback v6", "[::1]:8080", http.StatusOK},
		{"v4-mapped v6", "[::ffff:127.0.0.1]:8080", http.StatusOK},
		{"outside", "192.168.1.10:1234", http.StatusForbidden},
		{"no port", "127.0.0.1", http.StatusOK},
		{"garbage", "nowhere", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/debug/pprof/", nil)
			req.RemoteAddr = tt.remote
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}

	assert.Contains(t, buf.String(), "invalid allowlist CIDR")
}

func TestIPAllowlist_ForbiddenBody(t *testing.T) {
	var buf bytes.Buffer
	handler := IPAllowlist(nil, newTestLogger(&buf))(noop)

	req := httptest.NewRequest(http.MethodGet, "/debug/pprof/", nil)
	req.RemoteAddr = "127.0.0.1:1"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, `{"success":false,"code":"FORBIDDEN","message":"access restricted by IP allowlist"}`, rec.Body.String())
}

func TestRegisterPprof(t *testing.T) {
	var buf bytes.Buffer
	r := chi.NewRouter()
	RegisterPprof(r, []string{"127.0.0.1/32"}, newTestLogger(&buf))

	req := httptest.NewRequest(http.MethodGet, "/debug/pprof/cmdline", nil)
	req.RemoteAddr = "127.0.0.1:9999"
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/debug/pprof/cmdline", nil)
	req.RemoteAddr = "203.0.113.9:9999"
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
