// Package logger builds slog loggers with context-derived attributes.
//
// A ContextExtractor pulls a request-scoped value out of the context at
// log time, so a logger created once at startup still tags every record
// with the current request id:
//
//	log, cleanup := logger.New(cfg.Log, middlewares.RequestIDExtractor())
//	defer cleanup()
//
//	log.InfoContext(ctx, "post created", slog.Int64("post_id", id))
//
// Output goes to stdout as JSON (or text when LOG_FORMAT=text). Setting
// LOG_FILE adds a rotating file via lumberjack, and SENTRY_DSN forwards
// warnings and errors to Sentry.
package logger
