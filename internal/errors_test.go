package internal_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yatube-go/yatube/internal"
)

func TestHTTPError(t *testing.T) {
	t.Parallel()

	cause := errors.New("no rows")
	err := internal.ErrNotFound("post not found", internal.WithError(cause), internal.WithRequestID("req-1"))

	assert.Equal(t, http.StatusNotFound, err.StatusCode())
	assert.Equal(t, "post not found", err.Error())
	assert.Equal(t, "Not Found", err.StatusText())
	assert.Equal(t, "req-1", err.RequestID)
	assert.ErrorIs(t, err, cause)

	titled := internal.ErrForbidden("nope", internal.WithTitle("Access denied"))
	assert.Equal(t, "Access denied", titled.StatusText())
}

func TestAsHTTPError(t *testing.T) {
	t.Parallel()

	t.Run("direct", func(t *testing.T) {
		t.Parallel()
		httpErr := internal.ErrBadRequest("bad")
		require.Same(t, httpErr, internal.AsHTTPError(httpErr))
	})

	t.Run("wrapped", func(t *testing.T) {
		t.Parallel()
		httpErr := internal.ErrInternal("oops")
		wrapped := fmt.Errorf("outer: %w", fmt.Errorf("inner: %w", httpErr))
		require.Same(t, httpErr, internal.AsHTTPError(wrapped))
		require.True(t, internal.IsHTTPError(wrapped))
	})

	t.Run("unrelated and nil", func(t *testing.T) {
		t.Parallel()
		require.Nil(t, internal.AsHTTPError(errors.New("plain")))
		require.Nil(t, internal.AsHTTPError(nil))
		require.False(t, internal.IsHTTPError(nil))
	})
}
