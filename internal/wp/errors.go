package wp

import "fmt"

// StatusError is returned when the API answers with a non-success status.
// The body is kept so callers can surface server-provided messages
// (WordPress returns a JSON error object for 400s).
type StatusError struct {
	Code int
	Body []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.Code)
}

// ErrorMessage extracts the `message` field from a WordPress error body.
// Returns false when the body is not the flat error-object shape.
func (e *StatusError) ErrorMessage() (string, bool) {
	msg := decodeErrorMessage(e.Body)
	return msg, msg != ""
}
