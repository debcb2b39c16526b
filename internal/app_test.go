package internal_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yatube-go/yatube/internal"
	"github.com/yatube-go/yatube/pkg/htmx"
)

type textComponent string

func (t textComponent) Render(_ context.Context, w io.Writer) error {
	_, err := io.WriteString(w, string(t))
	return err
}

type routesFunc func(r internal.Router)

func (f routesFunc) Routes(r internal.Router) { f(r) }

func serve(app *internal.App, method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	app.ServeHTTP(w, httptest.NewRequest(method, target, nil))
	return w
}

func TestApp_NotFound(t *testing.T) {
	t.Parallel()

	t.Run("default handler returns 404 through the error handler", func(t *testing.T) {
		t.Parallel()

		var handled error
		app := internal.New(internal.WithErrorHandler(func(c internal.Context, err error) error {
			handled = err
			httpErr := internal.AsHTTPError(err)
			return c.String(httpErr.Code, "custom: "+httpErr.Message)
		}))

		w := serve(app, http.MethodGet, "/unexisting_page/")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "custom: Page not found", w.Body.String())
		assert.True(t, internal.IsHTTPError(handled))
	})

	t.Run("without error handler", func(t *testing.T) {
		t.Parallel()

		w := serve(internal.New(), http.MethodGet, "/nope/")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("missing trailing slash redirects to the routed path", func(t *testing.T) {
		t.Parallel()

		app := internal.New(internal.WithHandlers(routesFunc(func(r internal.Router) {
			r.GET("/group/{slug}/", func(c internal.Context) error { return c.NoContent(http.StatusOK) })
			r.POST("/create/", func(c internal.Context) error { return c.NoContent(http.StatusOK) })
		})))

		w := serve(app, http.MethodGet, "/group/cats")
		assert.Equal(t, http.StatusMovedPermanently, w.Code)
		assert.Equal(t, "/group/cats/", w.Header().Get("Location"))

		w = serve(app, http.MethodGet, "/group/cats?page=2")
		assert.Equal(t, http.StatusMovedPermanently, w.Code)
		assert.Equal(t, "/group/cats/?page=2", w.Header().Get("Location"))

		assert.Equal(t, http.StatusNotFound, serve(app, http.MethodGet, "/group").Code)
		assert.Equal(t, http.StatusNotFound, serve(app, http.MethodPost, "/create").Code)
		assert.Equal(t, http.StatusNotFound, serve(app, http.MethodGet, "//group/cats").Code)
	})

	t.Run("method not allowed", func(t *testing.T) {
		t.Parallel()

		app := internal.New(internal.WithHandlers(routesFunc(func(r internal.Router) {
			r.GET("/only-get/", func(c internal.Context) error { return c.NoContent(http.StatusOK) })
		})))
		w := serve(app, http.MethodDelete, "/only-get/")
		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	})
}

func TestApp_HandlerErrors(t *testing.T) {
	t.Parallel()

	app := internal.New(internal.WithHandlers(routesFunc(func(r internal.Router) {
		r.GET("/boom/", func(internal.Context) error { return errors.New("boom") })
		r.GET("/gone/", func(c internal.Context) error { return c.Error(http.StatusNotFound, "post not found") })
		r.GET("/late/", func(c internal.Context) error {
			_ = c.String(http.StatusOK, "partial")
			return errors.New("after write")
		})
	})))

	w := serve(app, http.MethodGet, "/boom/")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "boom")

	w = serve(app, http.MethodGet, "/gone/")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "post not found")

	w = serve(app, http.MethodGet, "/late/")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "partial", w.Body.String())
}

func TestApp_MiddlewareOrder(t *testing.T) {
	t.Parallel()

	var order []string
	trace := func(name string) internal.Middleware {
		return func(next internal.HandlerFunc) internal.HandlerFunc {
			return func(c internal.Context) error {
				order = append(order, name)
				return next(c)
			}
		}
	}

	app := internal.New(
		internal.WithMiddleware(trace("global-1"), trace("global-2")),
		internal.WithHandlers(routesFunc(func(r internal.Router) {
			r.Group(func(r internal.Router) {
				r.Use(trace("group"))
				r.GET("/x/", func(c internal.Context) error {
					order = append(order, "handler")
					return c.NoContent(http.StatusNoContent)
				}, trace("route-1"), trace("route-2"))
			})
		})),
	)

	w := serve(app, http.MethodGet, "/x/")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, []string{"global-1", "global-2", "group", "route-1", "route-2", "handler"}, order)
}

func TestApp_MiddlewareValuesReachHandler(t *testing.T) {
	t.Parallel()

	type key struct{}
	app := internal.New(
		internal.WithMiddleware(func(next internal.HandlerFunc) internal.HandlerFunc {
			return func(c internal.Context) error {
				c.Set(key{}, "from-middleware")
				return next(c)
			}
		}),
		internal.WithHandlers(routesFunc(func(r internal.Router) {
			r.GET("/posts/{id}/", func(c internal.Context) error {
				return c.String(http.StatusOK, c.Get(key{}).(string)+" "+c.Param("id"))
			})
		})),
	)

	w := serve(app, http.MethodGet, "/posts/7/")
	assert.Equal(t, "from-middleware 7", w.Body.String())
}

func TestApp_FormRoute(t *testing.T) {
	t.Parallel()

	app := internal.New(internal.WithHandlers(routesFunc(func(r internal.Router) {
		r.Form("/create/", func(c internal.Context) error {
			return c.String(http.StatusOK, c.Request().Method)
		})
	})))

	assert.Equal(t, http.MethodGet, serve(app, http.MethodGet, "/create/").Body.String())
	assert.Equal(t, http.MethodPost, serve(app, http.MethodPost, "/create/").Body.String())
	assert.Equal(t, http.StatusMethodNotAllowed, serve(app, http.MethodPut, "/create/").Code)
}

func TestApp_Route(t *testing.T) {
	t.Parallel()

	app := internal.New(internal.WithHandlers(routesFunc(func(r internal.Router) {
		r.Route("/auth", func(r internal.Router) {
			r.GET("/login/", func(c internal.Context) error { return c.String(http.StatusOK, "login") })
		})
	})))
	assert.Equal(t, "login", serve(app, http.MethodGet, "/auth/login/").Body.String())
}

func TestApp_Health(t *testing.T) {
	t.Parallel()

	app := internal.New(internal.WithHealthChecks(
		internal.WithReadinessCheck("postgres", func(context.Context) error { return nil }),
		internal.WithReadinessCheck("redis", func(context.Context) error { return errors.New("down") }),
	))

	assert.Equal(t, http.StatusOK, serve(app, http.MethodGet, "/health/live").Code)
	assert.Equal(t, http.StatusServiceUnavailable, serve(app, http.MethodGet, "/health/ready").Code)
}

func TestApp_MountAndStatic(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{"static/css/app.css": &fstest.MapFile{Data: []byte("body{}")}}
	app := internal.New(
		internal.WithStaticFiles("/static/", fsys, "static"),
		internal.WithMount("/metrics", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = io.WriteString(w, "metrics")
		})),
	)

	w := serve(app, http.MethodGet, "/static/css/app.css")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "body{}", w.Body.String())
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))

	assert.Equal(t, http.StatusNotFound, serve(app, http.MethodGet, "/static/css/").Code)
	assert.Equal(t, "metrics", serve(app, http.MethodGet, "/metrics").Body.String())
}

func TestApp_RenderPartial(t *testing.T) {
	t.Parallel()

	app := internal.New(internal.WithHandlers(routesFunc(func(r internal.Router) {
		r.GET("/", func(c internal.Context) error {
			return c.RenderPartial(http.StatusOK, textComponent("full"), textComponent("partial"),
				htmx.WithPushURL("/?page=2"))
		})
	})))

	w := serve(app, http.MethodGet, "/")
	assert.Equal(t, "full", w.Body.String())
	assert.Empty(t, w.Header().Get("HX-Push-Url"))
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("HX-Request", "true")
	w = httptest.NewRecorder()
	app.ServeHTTP(w, req)
	assert.Equal(t, "partial", w.Body.String())
	assert.Equal(t, "/?page=2", w.Header().Get("HX-Push-Url"))

	req.Header.Set("HX-Boosted", "true")
	w = httptest.NewRecorder()
	app.ServeHTTP(w, req)
	assert.Equal(t, "full", w.Body.String())
}

func TestApp_RunStopsOnContextCancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	var started, stopped bool

	done := make(chan error, 1)
	go func() {
		done <- internal.New().Run("127.0.0.1:0",
			internal.WithContext(ctx),
			internal.StartupHook(func(context.Context) error {
				started = true
				cancel()
				return nil
			}),
			internal.ShutdownHook(func(context.Context) error {
				stopped = true
				return nil
			}),
		)
	}()

	require.NoError(t, <-done)
	assert.True(t, started)
	assert.True(t, stopped)
}

func TestApp_RunFailsOnStartupHookError(t *testing.T) {
	t.Parallel()

	err := internal.New().Run("127.0.0.1:0", internal.StartupHook(func(context.Context) error {
		return errors.New("worker failed")
	}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "worker failed")
}
