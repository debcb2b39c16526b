package binder_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yatube-go/yatube/pkg/binder"
)

type postForm struct {
	Text    string   `form:"text"`
	Group   *int64   `form:"group"`
	Draft   bool     `form:"draft"`
	Tags    []string `form:"tag"`
	Ignored string   `form:"-"`
	NoTag   string
}

func formRequest(values url.Values) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/create/", strings.NewReader(values.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return r
}

func TestForm(t *testing.T) {
	t.Parallel()

	t.Run("binds supported kinds", func(t *testing.T) {
		t.Parallel()

		r := formRequest(url.Values{
			"text":    {"hello"},
			"group":   {"7"},
			"draft":   {"on"},
			"tag":     {"a", "b"},
			"Ignored": {"x"},
			"NoTag":   {"y"},
		})
		var f postForm
		require.NoError(t, binder.Form()(r, &f))

		assert.Equal(t, "hello", f.Text)
		require.NotNil(t, f.Group)
		assert.Equal(t, int64(7), *f.Group)
		assert.True(t, f.Draft)
		assert.Equal(t, []string{"a", "b"}, f.Tags)
		assert.Empty(t, f.Ignored)
		assert.Empty(t, f.NoTag)
	})

	t.Run("empty pointer value stays nil", func(t *testing.T) {
		t.Parallel()

		var f postForm
		require.NoError(t, binder.Form()(formRequest(url.Values{"group": {""}}), &f))
		assert.Nil(t, f.Group)
	})

	t.Run("invalid integer", func(t *testing.T) {
		t.Parallel()

		var f postForm
		err := binder.Form()(formRequest(url.Values{"group": {"abc"}}), &f)
		require.ErrorIs(t, err, binder.ErrInvalidValue)
	})

	t.Run("multipart body", func(t *testing.T) {
		t.Parallel()

		var body bytes.Buffer
		mw := multipart.NewWriter(&body)
		require.NoError(t, mw.WriteField("text", "from multipart"))
		require.NoError(t, mw.Close())

		r := httptest.NewRequest(http.MethodPost, "/create/", &body)
		r.Header.Set("Content-Type", mw.FormDataContentType())

		var f postForm
		require.NoError(t, binder.Form()(r, &f))
		assert.Equal(t, "from multipart", f.Text)
	})

	t.Run("body wins over query string", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest(http.MethodPost, "/create/?text=query&group=3", strings.NewReader("text=body"))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		var f postForm
		require.NoError(t, binder.Form()(r, &f))
		assert.Equal(t, "body", f.Text)
		require.NotNil(t, f.Group)
		assert.Equal(t, int64(3), *f.Group)
	})

	t.Run("invalid target", func(t *testing.T) {
		t.Parallel()

		var f postForm
		require.ErrorIs(t, binder.Form()(formRequest(nil), f), binder.ErrInvalidTarget)
		require.ErrorIs(t, binder.Form()(formRequest(nil), (*postForm)(nil)), binder.ErrInvalidTarget)
	})
}
