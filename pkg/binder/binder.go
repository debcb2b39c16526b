// Package binder decodes submitted forms into tagged structs.
//
// Fields are matched by their `form` tag. Pointer fields stay nil when the
// key is absent or empty, and checkbox values such as "on" decode into bools.
//
//	type PostForm struct {
//		Text  string `form:"text"`
//		Group string `form:"group"`
//	}
//
//	err := binder.Form()(r, &form)
package binder

import (
	"errors"
	"fmt"
	"mime"
	"net/http"

	"github.com/go-playground/form/v4"
)

// DefaultMaxMemory bounds multipart parsing held in memory.
const DefaultMaxMemory = 10 << 20

var (
	ErrInvalidTarget = errors.New("binder: target must be a non-nil pointer to a struct")
	ErrInvalidValue  = errors.New("binder: invalid value")
)

// Func binds request data into v.
type Func func(r *http.Request, v any) error

var decoder = newDecoder()

func newDecoder() *form.Decoder {
	d := form.NewDecoder()
	d.SetTagName("form")
	d.SetMode(form.ModeExplicit)
	return d
}

// Form binds the urlencoded or multipart body, falling back to the query
// string for keys the body lacks.
func Form() Func {
	return func(r *http.Request, v any) error {
		if err := parseForm(r); err != nil {
			return err
		}
		return decode(v, r)
	}
}

func decode(v any, r *http.Request) error {
	err := decoder.Decode(v, r.Form)
	if err == nil {
		return nil
	}
	var invalid *form.InvalidDecoderError
	if errors.As(err, &invalid) {
		return ErrInvalidTarget
	}
	var fields form.DecodeErrors
	if errors.As(err, &fields) {
		return fmt.Errorf("%w: %w", ErrInvalidValue, err)
	}
	return fmt.Errorf("binder: %w", err)
}

func parseForm(r *http.Request) error {
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if ct == "multipart/form-data" {
		if err := r.ParseMultipartForm(DefaultMaxMemory); err != nil {
			return fmt.Errorf("binder: parse multipart form: %w", err)
		}
		return nil
	}
	if err := r.ParseForm(); err != nil {
		return fmt.Errorf("binder: parse form: %w", err)
	}
	return nil
}
