// Package validator validates tagged structs with go-playground/validator
// and reports failures keyed by form field name. Messages are complete
// sentences ending in a period, such as "This field is required." or
// "Ensure this value has at most 150 characters.", ready to render next
// to inputs.
package validator

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	playground "github.com/go-playground/validator/v10"
)

var (
	instance *playground.Validate
	once     sync.Once
)

// Letters, digits and @.+-_ only.
var usernamePattern = regexp.MustCompile(`^[\p{L}\p{N}@.+\-_]+$`)

func validate() *playground.Validate {
	once.Do(func() {
		instance = playground.New(playground.WithRequiredStructEnabled())
		// Report form names, not Go field names.
		instance.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("form"), ",")
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})
		_ = instance.RegisterValidation("notblank", func(fl playground.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
		_ = instance.RegisterValidation("username", func(fl playground.FieldLevel) bool {
			return usernamePattern.MatchString(fl.Field().String())
		})
	})
	return instance
}

// ValidateStruct validates v against its `validate` tags. It returns
// ValidationErrors for invalid input and a plain error for misuse.
func ValidateStruct(v any) error {
	err := validate().Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs playground.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validator: %w", err)
	}

	out := make(ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, ValidationError{
			Field:   fe.Field(),
			Message: message(fe),
			Rule:    fe.Tag(),
		})
	}
	return out
}

func message(fe playground.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "min":
		return fmt.Sprintf("Ensure this value has at least %s characters.", fe.Param())
	case "max":
		return fmt.Sprintf("Ensure this value has at most %s characters.", fe.Param())
	case "numeric", "number":
		return "Enter a whole number."
	case "eqfield":
		return "The two password fields didn't match."
	case "alphanumunicode", "username":
		return "Enter a valid username."
	case "oneof":
		return "Select a valid choice."
	default:
		return "Enter a valid value."
	}
}
