package entity

import (
	"errors"
	"strings"
)

// ErrValidationFailed is matched by every *ValidationErrors via errors.Is.
var ErrValidationFailed = errors.New("validation failed")

// ValidationError represents a single violated field rule.
// Message is the complete user-facing text, e.g. `"title" is required`.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns the user-facing message.
func (e *ValidationError) Error() string {
	return e.Message
}

// ValidationErrors is the ordered list of violations found in one payload.
type ValidationErrors struct {
	Errors []*ValidationError
}

func (e *ValidationErrors) add(field, message string) {
	e.Errors = append(e.Errors, &ValidationError{Field: field, Message: message})
}

func (e *ValidationErrors) empty() bool {
	return e == nil || len(e.Errors) == 0
}

// Messages returns the violation messages in the order they were found.
func (e *ValidationErrors) Messages() []string {
	out := make([]string, 0, len(e.Errors))
	for _, v := range e.Errors {
		out = append(out, v.Message)
	}
	return out
}

// Error joins all messages.
func (e *ValidationErrors) Error() string {
	return strings.Join(e.Messages(), "; ")
}

// Is makes errors.Is(err, ErrValidationFailed) true.
func (e *ValidationErrors) Is(target error) bool {
	return target == ErrValidationFailed
}
