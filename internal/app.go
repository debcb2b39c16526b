package internal

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/yatube-go/yatube/pkg/health"
	"github.com/yatube-go/yatube/pkg/job"
	"github.com/yatube-go/yatube/pkg/logger"
)

const (
	defaultReadTimeout       = 15 * time.Second
	defaultWriteTimeout      = 30 * time.Second
	defaultIdleTimeout       = 120 * time.Second
	defaultReadHeaderTimeout = 5 * time.Second
	defaultMaxHeaderBytes    = 1 << 20
	defaultShutdownTimeout   = 30 * time.Second
)

// App wires routing, middleware, sessions and background jobs, and runs
// the HTTP server. It is immutable after New.
type App struct {
	router                  chi.Router
	errorHandler            ErrorHandler
	notFoundHandler         HandlerFunc
	methodNotAllowedHandler HandlerFunc
	healthConfig            *healthConfig
	logger                  *slog.Logger
	sessionManager          *SessionManager
	jobEnqueuer             job.Enqueuer
	jobWorker               *job.Manager
	middlewares             []Middleware
	handlers                []Handler
	mounts                  []mount
}

type mount struct {
	handler http.Handler
	pattern string
}

// New creates an application from options.
//
// Example:
//
//	app := yatube.New(
//	    yatube.WithCustomLogger(log),
//	    yatube.WithMiddleware(middlewares.RequestID(), middlewares.Recover()),
//	    yatube.WithHandlers(posts.NewHandler(store, groups)),
//	)
func New(opts ...Option) *App {
	a := &App{
		router: chi.NewRouter(),
		logger: logger.NewNope(),
	}
	for _, opt := range opts {
		opt(a)
	}

	if a.sessionManager != nil {
		a.sessionManager.SetLogger(a.logger)
	}

	a.setupRoutes()
	return a
}

// ServeHTTP creates the request Context shared by every middleware and
// handler of the request, then routes it.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	c := a.contextFor(w, r)
	a.router.ServeHTTP(c.response, c.request)
}

func (a *App) Logger() *slog.Logger {
	return a.logger
}

// JobWorker returns the job manager set by WithJobs, or nil.
func (a *App) JobWorker() *job.Manager {
	return a.jobWorker
}

// Run serves on addr and blocks until SIGINT/SIGTERM or a server error.
// Job workers configured with WithJobs start before serving and stop
// after the server drains.
func (a *App) Run(addr string, opts ...RunOption) error {
	cfg := buildRunConfig(opts...)

	startupHooks := cfg.startupHooks
	shutdownHooks := cfg.shutdownHooks
	if a.jobWorker != nil {
		startupHooks = append([]func(context.Context) error{a.jobWorker.StartFunc()}, startupHooks...)
		shutdownHooks = append([]func(context.Context) error{a.jobWorker.Shutdown()}, shutdownHooks...)
	}

	log := cfg.logger
	if log == nil {
		log = a.logger
	}

	return runServer(runtimeConfig{
		handler:         a,
		address:         addr,
		logger:          log,
		shutdownTimeout: cfg.shutdownTimeout,
		startupHooks:    startupHooks,
		shutdownHooks:   shutdownHooks,
		baseCtx:         cfg.baseCtx,
	})
}

func (a *App) setupRoutes() {
	for _, mw := range a.middlewares {
		a.router.Use(a.adaptMiddleware(mw))
	}

	notFound := a.notFoundHandler
	if notFound == nil {
		notFound = func(Context) error { return ErrNotFound("Page not found") }
	}
	a.router.NotFound(a.wrapHandler(a.appendSlash(notFound)))

	methodNotAllowed := a.methodNotAllowedHandler
	if methodNotAllowed == nil {
		methodNotAllowed = func(Context) error { return ErrMethodNotAllowed("Method not allowed") }
	}
	a.router.MethodNotAllowed(a.wrapHandler(methodNotAllowed))

	for _, m := range a.mounts {
		a.router.Mount(m.pattern, m.handler)
	}

	if a.healthConfig != nil {
		a.router.Get(a.healthConfig.livenessPath, health.LivenessHandler())
		a.router.Get(a.healthConfig.readinessPath, health.ReadinessHandler(
			a.healthConfig.checks,
			health.WithLogger(a.logger),
		))
	}

	r := &routerAdapter{router: a.router, app: a}
	for _, h := range a.handlers {
		h.Routes(r)
	}
}

// appendSlash redirects a GET or HEAD request whose path lacks the trailing
// slash to the slashed path when that path is routed.
func (a *App) appendSlash(next HandlerFunc) HandlerFunc {
	return func(c Context) error {
		r := c.Request()
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			return next(c)
		}
		if strings.HasSuffix(r.URL.Path, "/") || strings.HasPrefix(r.URL.Path, "//") {
			return next(c)
		}
		target := r.URL.Path + "/"
		if !a.router.Match(chi.NewRouteContext(), r.Method, target) {
			return next(c)
		}
		if r.URL.RawQuery != "" {
			target += "?" + r.URL.RawQuery
		}
		return c.Redirect(http.StatusMovedPermanently, target)
	}
}

// handleError passes err to the error handler unless the response is
// already written.
func (a *App) handleError(c Context, err error) {
	if c.Written() {
		a.logger.ErrorContext(c, "error after response was written", slog.Any("error", err))
		return
	}
	if a.errorHandler != nil {
		if herr := a.errorHandler(c, err); herr != nil {
			a.logger.ErrorContext(c, "error handler failed", slog.Any("error", herr))
		}
		return
	}
	defaultErrorHandler(c, err)
}

func defaultErrorHandler(c Context, err error) {
	if httpErr := AsHTTPError(err); httpErr != nil {
		http.Error(c.Response(), httpErr.Message, httpErr.Code)
		return
	}
	c.LogError("request failed", slog.Any("error", err))
	http.Error(c.Response(), http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

type healthConfig struct {
	checks        health.Checks
	livenessPath  string
	readinessPath string
}

const (
	defaultLivenessPath  = "/health/live"
	defaultReadinessPath = "/health/ready"
)

// HealthOption configures health endpoints.
type HealthOption func(*healthConfig)

func WithLivenessPath(path string) HealthOption {
	return func(c *healthConfig) {
		if path != "" {
			c.livenessPath = path
		}
	}
}

func WithReadinessPath(path string) HealthOption {
	return func(c *healthConfig) {
		if path != "" {
			c.readinessPath = path
		}
	}
}

// WithReadinessCheck adds a named readiness check. Checks run in parallel.
//
//	yatube.WithReadinessCheck("postgres", db.Healthcheck(pool))
func WithReadinessCheck(name string, fn health.CheckFunc) HealthOption {
	return func(c *healthConfig) {
		if fn != nil {
			c.checks[name] = fn
		}
	}
}
