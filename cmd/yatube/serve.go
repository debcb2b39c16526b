package main

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/urfave/cli/v2"

	"github.com/yatube-go/yatube"
	"github.com/yatube-go/yatube/internal/posts"
	"github.com/yatube-go/yatube/internal/repository"
	"github.com/yatube-go/yatube/internal/server"
	"github.com/yatube-go/yatube/internal/tasks"
	"github.com/yatube-go/yatube/middlewares"
	"github.com/yatube-go/yatube/pkg/db"
	"github.com/yatube-go/yatube/pkg/health"
	"github.com/yatube-go/yatube/pkg/job"
	"github.com/yatube-go/yatube/pkg/mailer"
	"github.com/yatube-go/yatube/pkg/mailer/resend"
	"github.com/yatube-go/yatube/pkg/password"
	"github.com/yatube-go/yatube/pkg/redis"
)

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:   "serve",
		Usage:  "migrate the database and run the HTTP server with job workers",
		Action: serve,
	}
}

func serve(c *cli.Context) error {
	cfg, log, flush, err := setup(c)
	if err != nil {
		return err
	}
	defer flush()
	ctx := c.Context

	pool, err := connectDB(ctx, cfg, log)
	if err != nil {
		return err
	}
	if err := migrateAll(ctx, pool, cfg, log); err != nil {
		pool.Close()
		return err
	}

	rdb, err := connectRedis(ctx, cfg, log)
	if err != nil {
		pool.Close()
		return err
	}

	store := repository.NewStore(pool)
	sessions := repository.NewSessionStore(pool)
	caches := newGroupCaches(cfg.Cache, rdb)

	var sender mailer.Sender = mailer.LogSender{Logger: log}
	if cfg.Resend.Enabled() {
		sender = resend.New(cfg.Resend)
	}
	mail := mailer.New(sender, mailer.NewRenderer(tasks.Emails()), cfg.Mailer)

	var app *yatube.App
	checks := health.Checks{
		"postgres": db.Healthcheck(pool),
		"jobs": func(ctx context.Context) error {
			return job.Healthcheck(app.JobWorker())(ctx)
		},
	}
	if rdb != nil {
		checks["redis"] = redis.Healthcheck(rdb)
	}

	var metrics *middlewares.HTTPMetrics
	if cfg.HTTP.Metrics {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		metrics = middlewares.NewHTTPMetrics("yatube", reg)
	}

	app = server.New(server.Deps{
		Store:    store,
		Sessions: sessions,
		Groups:   posts.NewGroups(store, caches.bySlug, caches.all, cfg.Cache.GroupTTL),
		Hasher:   password.Bcrypt{},
		Logger:   log,
		Metrics:  metrics,
		Checks:   checks,
	}, server.Options{
		SessionMaxAge: cfg.Session.MaxAge,
		SessionSecure: cfg.Session.Secure,
		SessionDomain: cfg.Session.Domain,
	},
		yatube.WithJobs(pool,
			yatube.WithTask[tasks.WelcomeEmail](tasks.NewSendWelcomeEmail(mail)),
			yatube.WithScheduledTask(tasks.NewCleanupSessions(sessions, log)),
			yatube.WithJobLogger(log),
			job.WithMaxWorkers(cfg.Jobs.Workers),
		),
	)

	runOpts := []yatube.RunOption{
		yatube.Logger(log),
		yatube.WithContext(ctx),
		yatube.ShutdownTimeout(cfg.HTTP.ShutdownTimeout),
		yatube.ShutdownHook(caches.Close),
	}
	if rdb != nil {
		runOpts = append(runOpts, yatube.ShutdownHook(redis.Shutdown(rdb)))
	}
	runOpts = append(runOpts, yatube.ShutdownHook(db.Shutdown(pool)))

	return app.Run(cfg.HTTP.Addr, runOpts...)
}

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "apply database and job queue migrations",
		Action: func(c *cli.Context) error {
			cfg, log, flush, err := setup(c)
			if err != nil {
				return err
			}
			defer flush()

			pool, err := connectDB(c.Context, cfg, log)
			if err != nil {
				return err
			}
			defer pool.Close()

			if err := migrateAll(c.Context, pool, cfg, log); err != nil {
				return err
			}
			log.InfoContext(c.Context, "migrations applied")
			return nil
		},
	}
}
