package httputil

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	apperrors "github.com/sneha01vaish/BackendAPICartItem/pkg/errors"
	"github.com/sneha01vaish/BackendAPICartItem/pkg/logger"
	"github.com/sneha01vaish/BackendAPICartItem/pkg/validator"
)

// MaxBodyBytes bounds the size of JSON request bodies.
const MaxBodyBytes = 1 << 20

// Response is the JSON envelope used by every endpoint. Success is the
// discriminant; failures carry Message and Code.
type Response struct {
	Success   bool              `json:"success"`
	Message   string            `json:"message,omitempty"`
	Data      any               `json:"data,omitempty"`
	Code      string            `json:"code,omitempty"`
	Fields    map[string]string `json:"fields,omitempty"`
	Error     string            `json:"error,omitempty"`
	RequestID string            `json:"request_id,omitempty"`
}

// OK builds a successful envelope.
func OK(message string, data any) Response {
	return Response{Success: true, Message: message, Data: data}
}

// Fail builds a failed envelope.
func Fail(code, message string) Response {
	return Response{Success: false, Code: code, Message: message}
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Headers are already sent; nothing meaningful can be done if encoding fails.
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError maps err onto the error taxonomy and writes the envelope.
// AppErrors keep their own status, code and message. Anything else is an
// internal fault: it is logged and answered with a generic 500, with the
// error detail attached only when verbose is set.
func WriteError(w http.ResponseWriter, r *http.Request, err error, fallback *slog.Logger, verbose bool) {
	l := logger.FromContext(r.Context())
	if l == slog.Default() && fallback != nil {
		l = fallback
	}

	requestID := logger.CorrelationIDFromContext(r.Context())

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Status < http.StatusInternalServerError {
		resp := Fail(appErr.Code, appErr.Message)
		resp.RequestID = requestID
		WriteJSON(w, appErr.Status, resp)
		return
	}

	l.ErrorContext(r.Context(), "internal error",
		slog.String("error", err.Error()),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
	)

	resp := Fail("INTERNAL_ERROR", "Something went wrong!")
	resp.RequestID = requestID
	if verbose {
		resp.Error = err.Error()
	}
	WriteJSON(w, http.StatusInternalServerError, resp)
}

// WriteValidationError writes a 400 with field-level details when err comes
// from the validator package.
func WriteValidationError(w http.ResponseWriter, err error) {
	var valErr *validator.ValidationError
	if errors.As(err, &valErr) {
		resp := Fail("VALIDATION_ERROR", "Request validation failed")
		resp.Fields = valErr.Fields()
		WriteJSON(w, http.StatusBadRequest, resp)
		return
	}

	WriteJSON(w, http.StatusBadRequest, Fail("INVALID_INPUT", err.Error()))
}

// DecodeJSON decodes the request body into dst. An empty body leaves dst
// untouched and is not an error.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("decode request body: %w", err)
	}
	return nil
}
