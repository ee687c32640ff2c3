package todoist

import (
	"fmt"
	"net/http"
)

// ValidationError reports a structurally invalid request. The request never
// reached the API, so retrying without changing it is pointless.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// NewValidationError creates a ValidationError with a formatted message.
func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// TransportError reports that the API endpoint could not be reached at the
// network level. Callers may retry.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("todoist: %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// UpstreamError reports that the sync endpoint rejected the batch as a whole
// with a non-success top-level status. The raw response body is preserved for
// diagnostics.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("todoist: sync endpoint returned %d: %s", e.StatusCode, e.Body)
}

// Retryable reports whether the caller may retry the batch. Server-side
// failures (5xx) are retryable, client errors are not.
func (e *UpstreamError) Retryable() bool {
	return e.StatusCode >= http.StatusInternalServerError
}

// APIError reports a non-2xx response from the REST API.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("todoist: API returned %d: %s", e.StatusCode, e.Body)
}
