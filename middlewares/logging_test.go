package middlewares_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yatube-go/yatube/internal"
	"github.com/yatube-go/yatube/middlewares"
)

func accessLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()

	var lines []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &m))
		if m["msg"] == "request" {
			lines = append(lines, m)
		}
	}
	return lines
}

func TestRequestLogger(t *testing.T) {
	t.Parallel()

	routes := func(r internal.Router) {
		r.GET("/ok/", func(c internal.Context) error { return c.String(http.StatusOK, "ok") })
		r.GET("/missing/", func(c internal.Context) error { return internal.ErrNotFound("nope") })
		r.GET("/fail/", func(c internal.Context) error { return internal.ErrInternal("broken") })
		r.GET("/health/live", func(c internal.Context) error { return c.NoContent(http.StatusOK) })
	}

	tests := []struct {
		name   string
		path   string
		status float64
		level  string
	}{
		{name: "success", path: "/ok/", status: 200, level: "INFO"},
		{name: "client error", path: "/missing/", status: 404, level: "WARN"},
		{name: "server error", path: "/fail/", status: 500, level: "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			app := newApp(&buf, routes, internal.WithMiddleware(
				middlewares.RequestID(),
				middlewares.RequestLogger(),
			))
			serve(app, httptest.NewRequest(http.MethodGet, tt.path, nil))

			lines := accessLines(t, &buf)
			require.Len(t, lines, 1)
			assert.Equal(t, tt.level, lines[0]["level"])
			assert.Equal(t, tt.status, lines[0]["status"])
			assert.Equal(t, tt.path, lines[0]["path"])
			assert.Equal(t, http.MethodGet, lines[0]["method"])
			assert.NotEmpty(t, lines[0]["request_id"])
		})
	}

	t.Run("skipped paths", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		app := newApp(&buf, routes, internal.WithMiddleware(
			middlewares.RequestLogger(middlewares.WithLogSkipPaths("/health/live")),
		))
		serve(app, httptest.NewRequest(http.MethodGet, "/health/live", nil))
		require.Empty(t, accessLines(t, &buf))
	})

	t.Run("htmx flag", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		app := newApp(&buf, routes, internal.WithMiddleware(middlewares.RequestLogger()))
		req := httptest.NewRequest(http.MethodGet, "/ok/", nil)
		req.Header.Set("HX-Request", "true")
		serve(app, req)

		lines := accessLines(t, &buf)
		require.Len(t, lines, 1)
		assert.Equal(t, true, lines[0]["htmx"])
	})
}
