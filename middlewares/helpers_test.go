package middlewares_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"

	"github.com/yatube-go/yatube/internal"
	"github.com/yatube-go/yatube/pkg/logger"
	"github.com/yatube-go/yatube/middlewares"
)

type routesFunc func(r internal.Router)

func (f routesFunc) Routes(r internal.Router) { f(r) }

// newApp builds an app logging JSON into buf, with request IDs attached.
func newApp(buf *bytes.Buffer, routes routesFunc, opts ...internal.Option) *internal.App {
	log := logger.NewWriter(buf, "json", slog.LevelDebug, middlewares.RequestIDExtractor())
	opts = append([]internal.Option{
		internal.WithCustomLogger(log),
		internal.WithHandlers(routes),
	}, opts...)
	return internal.New(opts...)
}

func serve(app http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)
	return rec
}
