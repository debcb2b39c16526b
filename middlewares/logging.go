package middlewares

import (
	"log/slog"
	"time"

	"github.com/yatube-go/yatube/internal"
)

// RequestLoggerConfig configures the access log middleware.
type RequestLoggerConfig struct {
	SkipPaths map[string]bool
}

// RequestLoggerOption configures RequestLoggerConfig.
type RequestLoggerOption func(*RequestLoggerConfig)

// WithLogSkipPaths disables access logging for exact paths such as probes.
func WithLogSkipPaths(paths ...string) RequestLoggerOption {
	return func(cfg *RequestLoggerConfig) {
		for _, p := range paths {
			cfg.SkipPaths[p] = true
		}
	}
}

// RequestLogger writes one access log line per request. Server errors
// log at error level, client errors at warn.
func RequestLogger(opts ...RequestLoggerOption) internal.Middleware {
	cfg := &RequestLoggerConfig{SkipPaths: make(map[string]bool)}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			path := c.Request().URL.Path
			if cfg.SkipPaths[path] {
				return next(c)
			}

			start := time.Now()
			err := next(c)
			status := responseStatus(c, err)

			attrs := []any{
				slog.String("method", c.Request().Method),
				slog.String("path", path),
				slog.Int("status", status),
				slog.Duration("duration", time.Since(start)),
			}
			if c.IsHTMX() {
				attrs = append(attrs, slog.Bool("htmx", true))
			}

			switch {
			case status >= 500:
				c.LogError("request", attrs...)
			case status >= 400:
				c.LogWarn("request", attrs...)
			default:
				c.LogInfo("request", attrs...)
			}
			return err
		}
	}
}
