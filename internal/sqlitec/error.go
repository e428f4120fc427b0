package sqlitec

import "fmt"

// Error is a non-success status reported by an SQLite C API call. It
// carries the numeric result code so callers can classify the failure
// without parsing the message.
type Error struct {
	Code    int
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("sqlite: %s (%d)", CodeName(e.Code), e.Code)
	}
	return fmt.Sprintf("sqlite: %s (%d): %s", CodeName(e.Code), e.Code, e.Message)
}

// newError builds an Error from a result code and an optional message.
func newError(code int, message string) *Error {
	return &Error{Code: code, Message: message}
}
