package middlewares_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/yatube-go/yatube/internal"
	"github.com/yatube-go/yatube/middlewares"
)

func TestRequestID(t *testing.T) {
	t.Parallel()

	echo := func(r internal.Router) {
		r.GET("/", func(c internal.Context) error {
			c.LogInfo("inside handler")
			return c.String(http.StatusOK, middlewares.GetRequestID(c.Context()))
		})
	}

	t.Run("generates a uuid", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		app := newApp(&buf, echo, internal.WithMiddleware(middlewares.RequestID()))

		rec := serve(app, httptest.NewRequest(http.MethodGet, "/", nil))
		id := rec.Body.String()
		_, err := uuid.Parse(id)
		require.NoError(t, err)
		require.Equal(t, id, rec.Header().Get("X-Request-ID"))
		require.Contains(t, buf.String(), `"request_id":"`+id+`"`)
	})

	t.Run("reuses upstream header", func(t *testing.T) {
		t.Parallel()

		app := newApp(&bytes.Buffer{}, echo, internal.WithMiddleware(middlewares.RequestID()))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Correlation-ID", "corr-1")
		rec := serve(app, req)
		require.Equal(t, "corr-1", rec.Body.String())
		require.Equal(t, "corr-1", rec.Header().Get("X-Request-ID"))
	})

	t.Run("custom generator and header", func(t *testing.T) {
		t.Parallel()

		app := newApp(&bytes.Buffer{}, echo, internal.WithMiddleware(middlewares.RequestID(
			middlewares.WithRequestIDGenerator(func() string { return "fixed" }),
			middlewares.WithRequestIDResponseHeader("X-Trace"),
			middlewares.WithRequestIDHeaders("X-Upstream"),
		)))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", "ignored")
		rec := serve(app, req)
		require.Equal(t, "fixed", rec.Body.String())
		require.Equal(t, "fixed", rec.Header().Get("X-Trace"))
	})
}

func TestGetRequestID_Missing(t *testing.T) {
	t.Parallel()

	require.Empty(t, middlewares.GetRequestID(context.Background()))
	_, ok := middlewares.RequestIDExtractor()(context.Background())
	require.False(t, ok)
}
