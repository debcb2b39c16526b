package logger

import (
	"io"
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

// New builds the application logger described by cfg. The returned
// cleanup closes the log file and flushes Sentry; call it on exit.
func New(cfg Config, extractors ...ContextExtractor) (*slog.Logger, func()) {
	var (
		out     io.Writer = os.Stdout
		cleanup           = func() {}
	)

	if cfg.File != "" {
		file := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.FileMaxSizeMB,
			MaxBackups: cfg.FileMaxBackups,
			MaxAge:     cfg.FileMaxAgeDays,
			Compress:   true,
		}
		out = io.MultiWriter(os.Stdout, file)
		cleanup = func() { _ = file.Close() }
	}

	handler := newHandler(out, cfg.Format, ParseLevel(cfg.Level))

	if sentryHandler, flush, ok := newSentryHandler(cfg.Sentry, handler); ok {
		handler = newMultiHandler(handler, sentryHandler)
		closeFile := cleanup
		cleanup = func() {
			flush()
			closeFile()
		}
	}

	return slog.New(NewLogHandlerDecorator(handler, extractors...)), cleanup
}

// NewWriter builds a logger writing to w. Used by CLI commands and tests.
func NewWriter(w io.Writer, format string, level slog.Level, extractors ...ContextExtractor) *slog.Logger {
	return slog.New(NewLogHandlerDecorator(newHandler(w, format, level), extractors...))
}

func newHandler(w io.Writer, format string, level slog.Level) slog.Handler {
	opts := &slog.HandlerOptions{Level: level}
	if format == "text" {
		return slog.NewTextHandler(w, opts)
	}
	return slog.NewJSONHandler(w, opts)
}
