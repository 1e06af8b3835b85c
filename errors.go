package typeroute

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
)

// ErrorCode represents a machine-readable error code.
type ErrorCode string

const (
	CodeInvalidArgument  ErrorCode = "invalid_argument"
	CodeUnauthenticated  ErrorCode = "unauthenticated"
	CodePermissionDenied ErrorCode = "permission_denied"
	CodeNotFound         ErrorCode = "not_found"
	CodeMethodNotAllowed ErrorCode = "method_not_allowed"
	CodeConflict         ErrorCode = "conflict"
	CodeInternal         ErrorCode = "internal"
	CodeNotImplemented   ErrorCode = "not_implemented"
	CodeUnavailable      ErrorCode = "unavailable"
)

// Error is the standard JSON error envelope.
type Error struct {
	Code    ErrorCode      `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewError creates a new service error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Errorf creates a new service error with a formatted message.
func Errorf(code ErrorCode, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// WithDetail returns a new Error with the key-value pair added to details.
func (e *Error) WithDetail(key string, value any) *Error {
	details := make(map[string]any, len(e.Details)+1)
	for k, v := range e.Details {
		details[k] = v
	}
	details[key] = value
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
	}
}

// WithDetails returns a new Error with the provided map merged into details.
func (e *Error) WithDetails(details map[string]any) *Error {
	if len(details) == 0 {
		return e
	}
	merged := make(map[string]any, len(e.Details)+len(details))
	for k, v := range e.Details {
		merged[k] = v
	}
	for k, v := range details {
		merged[k] = v
	}
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		Details: merged,
	}
}

// HTTPStatus maps an ErrorCode to an HTTP status code.
func (c ErrorCode) HTTPStatus() int {
	switch c {
	case CodeInvalidArgument:
		return http.StatusBadRequest
	case CodeUnauthenticated:
		return http.StatusUnauthorized
	case CodePermissionDenied:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	case CodeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case CodeConflict:
		return http.StatusConflict
	case CodeNotImplemented:
		return http.StatusNotImplemented
	case CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// WriteError writes err as the standard JSON error envelope. Non-*Error
// values are reported as internal errors.
func WriteError(w http.ResponseWriter, logger *slog.Logger, err error) {
	var svcErr *Error
	if !errors.As(err, &svcErr) {
		svcErr = NewError(CodeInternal, err.Error())
	}
	if logger == nil {
		logger = slog.Default()
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(svcErr.Code.HTTPStatus())
	if encErr := json.NewEncoder(w).Encode(svcErr); encErr != nil {
		// Headers already sent, nothing we can do. Log for debugging.
		logger.Error("failed to encode error response",
			slog.String("code", string(svcErr.Code)),
			slog.Any("error", encErr))
	}
}
