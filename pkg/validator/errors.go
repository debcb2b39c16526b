package validator

import (
	"errors"
	"strings"
)

// ErrValidation marks validation failures for errors.Is.
var ErrValidation = errors.New("validation failed")

// ValidationError describes one invalid field. An empty Field marks a
// form-wide error.
type ValidationError struct {
	Field   string
	Message string
	// Rule is the failed validate tag, empty for errors added by hand.
	Rule string
}

// ValidationErrors is returned by ValidateStruct and collected by forms.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, fe := range e {
		if fe.Field == "" {
			msgs = append(msgs, fe.Message)
			continue
		}
		msgs = append(msgs, fe.Field+": "+fe.Message)
	}
	return strings.Join(msgs, "; ")
}

func (e ValidationErrors) Is(target error) bool { return target == ErrValidation }

func (e ValidationErrors) IsEmpty() bool { return len(e) == 0 }

// Has reports whether field has at least one error.
func (e ValidationErrors) Has(field string) bool {
	for _, fe := range e {
		if fe.Field == field {
			return true
		}
	}
	return false
}

// Get returns the messages for field, in order.
func (e ValidationErrors) Get(field string) []string {
	var msgs []string
	for _, fe := range e {
		if fe.Field == field {
			msgs = append(msgs, fe.Message)
		}
	}
	return msgs
}

// NonField returns form-wide messages.
func (e ValidationErrors) NonField() []string { return e.Get("") }

// Add appends an error for field and returns the extended slice.
func (e ValidationErrors) Add(field, message string) ValidationErrors {
	return append(e, ValidationError{Field: field, Message: message})
}

// IsValidationError reports whether err carries ValidationErrors.
func IsValidationError(err error) bool {
	var ve ValidationErrors
	return errors.As(err, &ve)
}

// ExtractValidationErrors unwraps ValidationErrors from err.
func ExtractValidationErrors(err error) ValidationErrors {
	var ve ValidationErrors
	if errors.As(err, &ve) {
		return ve
	}
	return nil
}
