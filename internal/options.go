package internal

import (
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yatube-go/yatube/pkg/health"
	"github.com/yatube-go/yatube/pkg/job"
	"github.com/yatube-go/yatube/pkg/session"
)

// Option configures an App.
type Option func(*App)

// WithMiddleware adds global middleware. The first one listed runs first.
func WithMiddleware(mw ...Middleware) Option {
	return func(a *App) {
		a.middlewares = append(a.middlewares, mw...)
	}
}

func WithHandlers(h ...Handler) Option {
	return func(a *App) {
		a.handlers = append(a.handlers, h...)
	}
}

// WithMount attaches a plain http.Handler, e.g. the metrics endpoint.
func WithMount(pattern string, h http.Handler) Option {
	return func(a *App) {
		if h != nil {
			a.mounts = append(a.mounts, mount{handler: h, pattern: pattern})
		}
	}
}

// WithStaticFiles serves subDir of fsys under pattern. Directory
// listings are not served.
//
//	yatube.WithStaticFiles("/static/", views.Static, "static")
func WithStaticFiles(pattern string, fsys fs.FS, subDir string) Option {
	return func(a *App) {
		sub, err := fs.Sub(fsys, subDir)
		if err != nil {
			panic(fmt.Sprintf("static files: %v", err))
		}
		files := http.StripPrefix(strings.TrimSuffix(pattern, "/"), http.FileServerFS(sub))
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if strings.HasSuffix(r.URL.Path, "/") {
				http.NotFound(w, r)
				return
			}
			w.Header().Set("Cache-Control", "public, max-age=3600")
			w.Header().Set("X-Content-Type-Options", "nosniff")
			files.ServeHTTP(w, r)
		})
		a.mounts = append(a.mounts, mount{handler: handler, pattern: pattern})
	}
}

func WithErrorHandler(h ErrorHandler) Option {
	return func(a *App) {
		a.errorHandler = h
	}
}

// WithNotFoundHandler replaces the default 404 handler, which returns
// ErrNotFound to the error handler.
func WithNotFoundHandler(h HandlerFunc) Option {
	return func(a *App) {
		a.notFoundHandler = h
	}
}

func WithMethodNotAllowedHandler(h HandlerFunc) Option {
	return func(a *App) {
		a.methodNotAllowedHandler = h
	}
}

// WithHealthChecks registers /health/live and /health/ready.
func WithHealthChecks(opts ...HealthOption) Option {
	return func(a *App) {
		cfg := &healthConfig{
			livenessPath:  defaultLivenessPath,
			readinessPath: defaultReadinessPath,
			checks:        make(health.Checks),
		}
		for _, opt := range opts {
			opt(cfg)
		}
		a.healthConfig = cfg
	}
}

func WithCustomLogger(l *slog.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.logger = l
		}
	}
}

func WithSession(store session.Store, opts ...SessionOption) Option {
	return func(a *App) {
		a.sessionManager = NewSessionManager(store, opts...)
	}
}

// WithJobs creates a job manager that both enqueues and runs tasks.
// Run starts and stops its workers.
func WithJobs(pool *pgxpool.Pool, opts ...job.Option) Option {
	return func(a *App) {
		m, err := job.NewManager(pool, opts...)
		if err != nil {
			panic(fmt.Sprintf("job manager: %v", err))
		}
		a.jobEnqueuer = m
		a.jobWorker = m
	}
}

// WithJobEnqueuer sets the enqueuer used by Context.Enqueue without
// running workers in this process.
func WithJobEnqueuer(e job.Enqueuer) Option {
	return func(a *App) {
		a.jobEnqueuer = e
	}
}
