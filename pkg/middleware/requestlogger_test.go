package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.opentelemetry.io/otel/trace"

	"github.com/sneha01vaish/BackendAPICartItem/pkg/logger"
)

func newTestLogger(w *bytes.Buffer) *slog.Logger {
	return logger.NewWithWriter("storefront-test", "info", w)
}

func decodeLogLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &out); err != nil {
		t.Fatalf("unmarshal log line %q: %v", buf.String(), err)
	}
	return out
}

func TestRequestLogger_StoresLoggerInContext(t *testing.T) {
	var buf bytes.Buffer

	var ctxLogger *slog.Logger
	handler := RequestLogger(newTestLogger(&buf))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxLogger = logger.FromContext(r.Context())
		ctxLogger.Info("handler log")
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/cart", nil))

	if ctxLogger == nil {
		t.Fatal("expected non-nil logger from context")
	}
	if buf.Len() == 0 {
		t.Fatal("expected log output")
	}
}

func TestRequestLogger_IncludesCorrelationAndSession(t *testing.T) {
	var buf bytes.Buffer

	handler := RequestLogger(newTestLogger(&buf))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.FromContext(r.Context()).Info("cart read")
	}))

	ctx := logger.WithCorrelationID(context.Background(), "corr-123")
	ctx = logger.WithSessionID(ctx, "sess-abc")
	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil).WithContext(ctx)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	out := decodeLogLine(t, &buf)
	if out["correlation_id"] != "corr-123" {
		t.Errorf("correlation_id = %v", out["correlation_id"])
	}
	if out["session_id"] != "sess-abc" {
		t.Errorf("session_id = %v", out["session_id"])
	}
}

func TestRequestLogger_IncludesTraceIDs(t *testing.T) {
	var buf bytes.Buffer

	handler := RequestLogger(newTestLogger(&buf))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.FromContext(r.Context()).Info("traced")
	}))

	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	})
	ctx := trace.ContextWithSpanContext(context.Background(), sc)
	req := httptest.NewRequest(http.MethodGet, "/api/products", nil).WithContext(ctx)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	out := decodeLogLine(t, &buf)
	if out["trace_id"] != "4bf92f3577b34da6a3ce929d0e0e4736" {
		t.Errorf("trace_id = %v", out["trace_id"])
	}
	if out["span_id"] != "00f067aa0ba902b7" {
		t.Errorf("span_id = %v", out["span_id"])
	}
}

func TestRequestLogger_OmitsEmptyFields(t *testing.T) {
	var buf bytes.Buffer

	handler := RequestLogger(newTestLogger(&buf))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.FromContext(r.Context()).Info("bare")
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	out := decodeLogLine(t, &buf)
	for _, key := range []string{"correlation_id", "session_id", "trace_id", "span_id"} {
		if _, ok := out[key]; ok {
			t.Errorf("unexpected key %q in log line", key)
		}
	}
}
