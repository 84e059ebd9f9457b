// Package resp provides standardized HTTP response helpers for building
// consistent JSON responses. Success payloads are written as-is; failures
// carry a business code and a human-readable message.
package resp

import (
	"encoding/json"
	"net/http"

	"github.com/projectflow/projectflow/pkg/ecode"
)

// debug controls whether failure responses include the underlying cause.
// It is enabled outside production mode only.
var debug bool

// SetDebug toggles inclusion of error causes in failure bodies.
func SetDebug(enabled bool) {
	debug = enabled
}

// Exception represents the failure response structure.
type Exception struct {
	Status  int    `json:"status,omitempty"`  // HTTP status
	Code    int    `json:"code,omitempty"`    // Business code
	Message string `json:"message,omitempty"` // Message
	Errors  any    `json:"errors,omitempty"`  // Validation errors or debug cause
}

func newException(status, code int, message string, data ...any) *Exception {
	var errs any
	if len(data) > 0 {
		errs = data[0]
	}
	if message == "" {
		message = ecode.Text(code)
	}
	return &Exception{Status: status, Code: code, Message: message, Errors: errs}
}

// Success writes a 200 response with the given payload.
func Success(w http.ResponseWriter, data ...any) {
	WithStatusCode(w, http.StatusOK, data...)
}

// WithStatusCode writes a success response with a custom status code. A
// string payload is wrapped as {"message": ...}.
func WithStatusCode(w http.ResponseWriter, statusCode int, data ...any) {
	var payload any = map[string]any{"message": "ok"}
	if len(data) > 0 {
		payload = data[0]
		if msg, ok := payload.(string); ok {
			payload = map[string]any{"message": msg}
		}
	}
	writeJSON(w, statusCode, payload)
}

// Fail writes a failure response.
func Fail(w http.ResponseWriter, r *Exception) {
	if r == nil {
		r = newException(http.StatusInternalServerError, ecode.ServerErr, "")
	}
	status := r.Status
	if status == 0 {
		status = http.StatusBadRequest
	}
	writeJSON(w, status, &Exception{
		Code:    r.Code,
		Message: r.Message,
		Errors:  r.Errors,
	})
}

// FromError maps a typed service error onto the wire contract. Both
// authentication and authorization failures map to 401 to stay compatible
// with the existing client surface; conflicts map to 400.
func FromError(err error) *Exception {
	e := ecode.From(err)
	switch e.Code {
	case ecode.RequestErr, ecode.Conflict:
		return newException(http.StatusBadRequest, e.Code, e.Message)
	case ecode.Unauthorized, ecode.AccessDenied:
		return newException(http.StatusUnauthorized, e.Code, e.Message)
	case ecode.NothingFound:
		return newException(http.StatusNotFound, e.Code, e.Message)
	default:
		ex := newException(http.StatusInternalServerError, ecode.ServerErr, ecode.Text(ecode.ServerErr))
		if debug && e.Err != nil {
			ex.Errors = e.Err.Error()
		}
		return ex
	}
}

func writeJSON(w http.ResponseWriter, code int, res any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(res); err != nil {
		http.Error(w, "Failed to encode JSON response", http.StatusInternalServerError)
	}
}
