// Package server assembles the yatube application from its parts. The
// CLI wires real Postgres and Redis backed dependencies into it; tests
// wire in-memory ones.
package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/yatube-go/yatube"
	"github.com/yatube-go/yatube/internal/accounts"
	"github.com/yatube-go/yatube/internal/posts"
	"github.com/yatube-go/yatube/internal/views"
	"github.com/yatube-go/yatube/middlewares"
	"github.com/yatube-go/yatube/pkg/health"
	"github.com/yatube-go/yatube/pkg/password"
	"github.com/yatube-go/yatube/pkg/session"
)

// Store is everything the handlers read and write.
type Store interface {
	posts.Store
	posts.GroupStore
	accounts.Store
}

type Deps struct {
	Store    Store
	Sessions session.Store
	Groups   *posts.Groups
	Hasher   password.Hasher
	Logger   *slog.Logger

	// Optional.
	Jobs    yatube.JobEnqueuer
	Metrics *middlewares.HTTPMetrics
	Checks  health.Checks
}

type Options struct {
	SessionMaxAge time.Duration
	SessionSecure bool
	SessionDomain string
}

// New builds the app. Extra options are applied last, so callers can add
// WithJobs or override handlers.
func New(d Deps, o Options, extra ...yatube.Option) *yatube.App {
	mw := []yatube.Middleware{middlewares.RequestID()}
	if d.Metrics != nil {
		mw = append(mw, d.Metrics.Middleware())
	}
	mw = append(mw,
		middlewares.RequestLogger(middlewares.WithLogSkipPaths("/health/live", "/health/ready", "/metrics")),
		middlewares.Recover(),
	)

	sessionOpts := []yatube.SessionOption{yatube.WithSessionSecure(o.SessionSecure)}
	if o.SessionMaxAge > 0 {
		sessionOpts = append(sessionOpts, yatube.WithSessionMaxAge(o.SessionMaxAge))
	}
	if o.SessionDomain != "" {
		sessionOpts = append(sessionOpts, yatube.WithSessionDomain(o.SessionDomain))
	}

	healthOpts := make([]yatube.HealthOption, 0, len(d.Checks))
	for name, check := range d.Checks {
		healthOpts = append(healthOpts, yatube.WithReadinessCheck(name, check))
	}

	opts := []yatube.Option{
		yatube.WithCustomLogger(d.Logger),
		yatube.WithMiddleware(mw...),
		yatube.WithSession(d.Sessions, sessionOpts...),
		yatube.WithErrorHandler(ErrorHandler),
		yatube.WithHealthChecks(healthOpts...),
		yatube.WithStaticFiles("/static/", views.Static(), "static"),
		yatube.WithHandlers(
			posts.NewHandler(d.Store, d.Groups),
			accounts.NewHandler(d.Store, d.Hasher),
		),
	}
	if d.Jobs != nil {
		opts = append(opts, yatube.WithJobEnqueuer(d.Jobs))
	}
	if d.Metrics != nil {
		opts = append(opts, yatube.WithMount("/metrics", d.Metrics.Handler()))
	}
	return yatube.New(append(opts, extra...)...)
}

// ErrorHandler renders every handler error as the HTML error page.
// HTTPErrors keep their status; anything else is logged and shown as 500.
func ErrorHandler(c yatube.Context, err error) error {
	page := views.ErrorPage{Nav: accounts.Nav(c), Code: http.StatusInternalServerError}

	he := yatube.AsHTTPError(err)
	switch {
	case he != nil:
		page.Code = he.StatusCode()
		page.Title = he.Title
		if page.Code < http.StatusInternalServerError {
			page.Message = he.Message
		} else {
			c.LogError("request failed", "status", page.Code, "error", err)
		}
	case middlewares.IsPanicError(err):
		// Recover already logged it with the stack.
	default:
		c.LogError("request failed", "error", err)
	}

	return c.Render(page.Code, views.Error(page))
}
