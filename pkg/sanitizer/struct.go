package sanitizer

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// ErrInvalidTarget is returned when SanitizeStruct gets anything but a
// non-nil pointer to a struct.
var ErrInvalidTarget = errors.New("sanitizer: target must be a non-nil pointer to a struct")

var rules = map[string]func(string) string{
	"trim":     Trim,
	"lower":    Lower,
	"email":    Email,
	"squash":   Squash,
	"username": Username,
	"newlines": Newlines,
	"strip":    StripHTML,
	"html":     SanitizeHTML,
}

// SanitizeStruct applies the comma-separated rules of each string
// field's `sanitize` tag, in order. Nested structs are walked; unknown
// rules are an error.
//
//	type PostForm struct {
//		Text string `form:"text" sanitize:"newlines,trim"`
//	}
func SanitizeStruct(v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return ErrInvalidTarget
	}
	return sanitizeValue(rv.Elem())
}

func sanitizeValue(rv reflect.Value) error {
	rt := rv.Type()
	for i := range rt.NumField() {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}
		fv := rv.Field(i)

		if fv.Kind() == reflect.Struct {
			if err := sanitizeValue(fv); err != nil {
				return err
			}
			continue
		}

		tag := field.Tag.Get("sanitize")
		if tag == "" || tag == "-" {
			continue
		}

		switch {
		case fv.Kind() == reflect.String:
			s, err := apply(tag, fv.String())
			if err != nil {
				return fmt.Errorf("%s: %w", field.Name, err)
			}
			fv.SetString(s)
		case fv.Kind() == reflect.Pointer && fv.Type().Elem().Kind() == reflect.String && !fv.IsNil():
			s, err := apply(tag, fv.Elem().String())
			if err != nil {
				return fmt.Errorf("%s: %w", field.Name, err)
			}
			fv.Elem().SetString(s)
		}
	}
	return nil
}

func apply(tag, s string) (string, error) {
	for name := range strings.SplitSeq(tag, ",") {
		name = strings.TrimSpace(name)
		fn, ok := rules[name]
		if !ok {
			return "", fmt.Errorf("sanitizer: unknown rule %q", name)
		}
		s = fn(s)
	}
	return s, nil
}
