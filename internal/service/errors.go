package service

import "errors"

// ErrForbidden is returned when the authenticated user does not own the
// task they are trying to read or mutate.
var ErrForbidden = errors.New("you do not own this task")

// ValidationErrors maps a field name to the message for its first violated
// rule. Multiple fields may fail at once, one message per field.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	return "the given data was invalid"
}

// Any reports whether at least one rule was violated.
func (v ValidationErrors) Any() bool {
	return len(v) > 0
}
