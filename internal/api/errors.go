package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/tidwall/gjson"
)

// ErrUnexpectedShape marks a 2xx response whose body did not decode into the
// expected structure. Stores treat it like any other non-fatal failure.
var ErrUnexpectedShape = errors.New("unexpected response shape")

// Error is a non-2xx backend response. All status codes are treated
// uniformly; only the extracted message differs.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("backend: %s (status %d)", e.Message, e.Status)
}

// IsStatus reports whether err is a backend Error with the given status.
func IsStatus(err error, status int) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == status
}

// Message returns the backend-provided message when err is a backend Error,
// otherwise the fallback. Stores use it to fill their user-facing error
// fields without leaking transport details.
func Message(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// newError extracts the human-readable message from the backend's JSON error
// body. The backend is inconsistent about the field name, so both
// conventions are tried before falling back to the status text.
func newError(status int, body []byte) *Error {
	msg := gjson.GetBytes(body, "message").String()
	if msg == "" {
		msg = gjson.GetBytes(body, "error").String()
	}
	if msg == "" {
		msg = http.StatusText(status)
	}
	return &Error{Status: status, Message: msg}
}
