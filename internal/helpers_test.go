package internal_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yatube-go/yatube/internal"
)

func TestParam(t *testing.T) {
	t.Parallel()

	type result struct {
		id   int64
		ok   bool
		slug string
	}

	var got result
	app := internal.New(internal.WithHandlers(routesFunc(func(r internal.Router) {
		r.GET("/posts/{id}/", func(c internal.Context) error {
			got.id, got.ok = internal.Param[int64](c, "id")
			return c.NoContent(http.StatusOK)
		})
		r.GET("/group/{slug}/", func(c internal.Context) error {
			got.slug, got.ok = internal.Param[string](c, "slug")
			return c.NoContent(http.StatusOK)
		})
	})))

	serve(app, http.MethodGet, "/posts/42/")
	assert.Equal(t, result{id: 42, ok: true}, got)

	got = result{}
	serve(app, http.MethodGet, "/posts/abc/")
	assert.False(t, got.ok)

	got = result{}
	serve(app, http.MethodGet, "/group/cats/")
	assert.Equal(t, result{slug: "cats", ok: true}, got)
}

func TestQueryHelpers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		target   string
		wantPage int
		wantOK   bool
		wantDef  int
		wantBool bool
	}{
		{name: "valid", target: "/?page=3&draft=true", wantPage: 3, wantOK: true, wantDef: 3, wantBool: true},
		{name: "not a number", target: "/?page=last", wantDef: 1},
		{name: "missing", target: "/", wantDef: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			requestVia(t, httptest.NewRequest(http.MethodGet, tt.target, nil), nil, func(c internal.Context) {
				page, ok := internal.Query[int](c, "page")
				assert.Equal(t, tt.wantPage, page)
				assert.Equal(t, tt.wantOK, ok)
				assert.Equal(t, tt.wantDef, internal.QueryDefault(c, "page", 1))
				assert.Equal(t, tt.wantBool, internal.QueryDefault(c, "draft", false))
				assert.Equal(t, "fallback", c.QueryDefault("missing", "fallback"))
			})
		})
	}
}
