package yatube

import (
	"context"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yatube-go/yatube/internal"
	"github.com/yatube-go/yatube/pkg/health"
	"github.com/yatube-go/yatube/pkg/job"
	"github.com/yatube-go/yatube/pkg/session"
)

// Type aliases - public API
type (
	// App owns routing, middleware and the server lifecycle.
	App = internal.App

	// Router is the interface handlers use to declare routes.
	Router = internal.Router

	// Context provides request/response access and helper methods.
	Context = internal.Context

	// Handler declares routes on a router.
	Handler = internal.Handler

	// HandlerFunc is the signature for route handlers.
	HandlerFunc = internal.HandlerFunc

	// Middleware wraps a HandlerFunc.
	Middleware = internal.Middleware

	// ErrorHandler handles errors returned from handlers.
	ErrorHandler = internal.ErrorHandler

	Option    = internal.Option
	RunOption = internal.RunOption

	// Component is anything that renders itself into a writer, such as a
	// templ component.
	Component = internal.Component

	ValidationErrors = internal.ValidationErrors
	HealthOption     = internal.HealthOption

	HTTPError       = internal.HTTPError
	HTTPErrorOption = internal.HTTPErrorOption

	SessionOption = internal.SessionOption
	Session       = session.Session
	SessionStore  = session.Store

	ResponseWriter = internal.ResponseWriter

	JobOption     = job.Option
	EnqueueOption = job.EnqueueOption
	JobManager    = job.Manager
	JobEnqueuer   = job.Enqueuer
)

// New creates an application. The App is immutable after creation.
//
//	app := yatube.New(
//	    yatube.WithMiddleware(middlewares.RequestID(), middlewares.Recover()),
//	    yatube.WithSession(repository.NewSessionStore(pool)),
//	    yatube.WithHandlers(posts.NewHandler(...), accounts.NewHandler(...)),
//	)
//	err := app.Run(":8000", yatube.Logger(log))
func New(opts ...Option) *App {
	return internal.New(opts...)
}

// App options

func WithMiddleware(mw ...Middleware) Option {
	return internal.WithMiddleware(mw...)
}

func WithHandlers(h ...Handler) Option {
	return internal.WithHandlers(h...)
}

// WithMount attaches a plain http.Handler under pattern.
func WithMount(pattern string, h http.Handler) Option {
	return internal.WithMount(pattern, h)
}

// WithStaticFiles serves subDir of fsys under pattern.
func WithStaticFiles(pattern string, fsys fs.FS, subDir string) Option {
	return internal.WithStaticFiles(pattern, fsys, subDir)
}

func WithErrorHandler(h ErrorHandler) Option {
	return internal.WithErrorHandler(h)
}

func WithNotFoundHandler(h HandlerFunc) Option {
	return internal.WithNotFoundHandler(h)
}

func WithMethodNotAllowedHandler(h HandlerFunc) Option {
	return internal.WithMethodNotAllowedHandler(h)
}

// WithHealthChecks enables the liveness and readiness endpoints.
func WithHealthChecks(opts ...HealthOption) Option {
	return internal.WithHealthChecks(opts...)
}

func WithCustomLogger(l *slog.Logger) Option {
	return internal.WithCustomLogger(l)
}

// WithSession enables server-side sessions backed by store.
func WithSession(store SessionStore, opts ...SessionOption) Option {
	return internal.WithSession(store, opts...)
}

// WithJobs runs a job worker alongside the server. The worker starts
// before the listener accepts traffic and stops after it drains.
func WithJobs(pool *pgxpool.Pool, opts ...JobOption) Option {
	return internal.WithJobs(pool, opts...)
}

// WithJobEnqueuer enables Context.Enqueue without running workers.
func WithJobEnqueuer(e JobEnqueuer) Option {
	return internal.WithJobEnqueuer(e)
}

// Health options

func WithLivenessPath(path string) HealthOption {
	return internal.WithLivenessPath(path)
}

func WithReadinessPath(path string) HealthOption {
	return internal.WithReadinessPath(path)
}

func WithReadinessCheck(name string, fn health.CheckFunc) HealthOption {
	return internal.WithReadinessCheck(name, fn)
}

// Session options

func WithSessionCookieName(name string) SessionOption {
	return internal.WithSessionCookieName(name)
}

func WithSessionMaxAge(d time.Duration) SessionOption {
	return internal.WithSessionMaxAge(d)
}

func WithSessionDomain(domain string) SessionOption {
	return internal.WithSessionDomain(domain)
}

func WithSessionSecure(secure bool) SessionOption {
	return internal.WithSessionSecure(secure)
}

// Run options

func Logger(l *slog.Logger) RunOption {
	return internal.Logger(l)
}

func ShutdownTimeout(d time.Duration) RunOption {
	return internal.ShutdownTimeout(d)
}

// StartupHook runs after the listener is bound and before serving.
// A failing hook aborts startup.
func StartupHook(fn func(context.Context) error) RunOption {
	return internal.StartupHook(fn)
}

// ShutdownHook runs after the server has drained.
func ShutdownHook(fn func(context.Context) error) RunOption {
	return internal.ShutdownHook(fn)
}

// WithContext makes the server stop when ctx is cancelled.
func WithContext(ctx context.Context) RunOption {
	return internal.WithContext(ctx)
}

// Job options

func WithTask[P any, T interface {
	Name() string
	Handle(context.Context, P) error
}](task T) JobOption {
	return job.WithTask[P](task)
}

func WithScheduledTask[T interface {
	Name() string
	Schedule() string
	Handle(context.Context) error
}](task T) JobOption {
	return job.WithScheduledTask(task)
}

func WithJobQueue(name string, workers int) JobOption {
	return job.WithQueue(name, workers)
}

func WithJobLogger(l *slog.Logger) JobOption {
	return job.WithLogger(l)
}

func InQueue(name string) EnqueueOption {
	return job.InQueue(name)
}

func ScheduledIn(d time.Duration) EnqueueOption {
	return job.ScheduledIn(d)
}

func MaxAttempts(n int) EnqueueOption {
	return job.MaxAttempts(n)
}

// UniqueFor drops duplicates of the same key enqueued within d.
func UniqueFor(d time.Duration, key string) EnqueueOption {
	return job.UniqueFor(d, key)
}

// Helpers

// ContextValue returns the request value stored under key as T.
func ContextValue[T any](c Context, key any) T {
	return internal.ContextValue[T](c, key)
}

// Param converts a URL parameter. ok is false when it is missing or
// does not parse.
func Param[T ~string | ~int | ~int64 | ~bool](c Context, name string) (T, bool) {
	return internal.Param[T](c, name)
}

func Query[T ~string | ~int | ~int64 | ~bool](c Context, name string) (T, bool) {
	return internal.Query[T](c, name)
}

func QueryDefault[T ~string | ~int | ~int64 | ~bool](c Context, name string, defaultValue T) T {
	return internal.QueryDefault(c, name, defaultValue)
}

// Errors

func NewHTTPError(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.NewHTTPError(code, message, opts...)
}

func ErrBadRequest(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrBadRequest(message, opts...)
}

func ErrForbidden(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrForbidden(message, opts...)
}

func ErrNotFound(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrNotFound(message, opts...)
}

func ErrInternal(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrInternal(message, opts...)
}

func AsHTTPError(err error) *HTTPError {
	return internal.AsHTTPError(err)
}

func WithTitle(title string) HTTPErrorOption {
	return internal.WithTitle(title)
}

func WithError(err error) HTTPErrorOption {
	return internal.WithError(err)
}
