// Package middlewares provides the cross-cutting HTTP middleware of the
// yatube server.
//
// # Request ID
//
// RequestID assigns every request an ID, reusing X-Request-ID or
// X-Correlation-ID from a proxy when present. Pair it with
// RequestIDExtractor so every log line written through the request
// context carries request_id:
//
//	log, closeLog := logger.New(cfg.Log, middlewares.RequestIDExtractor())
//	app := yatube.New(
//	    yatube.WithCustomLogger(log),
//	    yatube.WithMiddleware(middlewares.RequestID()),
//	)
//
// # Recover
//
// Recover converts panics into a *PanicError that the app error handler
// renders as a 500 page:
//
//	yatube.WithErrorHandler(func(c yatube.Context, err error) error {
//	    if pe, ok := middlewares.AsPanicError(err); ok {
//	        c.LogError("panic", "value", pe.Value)
//	    }
//	    return c.Error(http.StatusInternalServerError, "Internal Server Error")
//	})
//
// # Access log
//
// RequestLogger writes one line per request with method, path, status
// and duration. Probe endpoints can be excluded with WithLogSkipPaths.
//
// # Metrics
//
// HTTPMetrics records request count, in-flight requests and latency,
// labelled by chi route pattern rather than raw path:
//
//	reg := prometheus.NewRegistry()
//	metrics := middlewares.NewHTTPMetrics("yatube", reg)
//	app := yatube.New(
//	    yatube.WithMiddleware(metrics.Middleware()),
//	    yatube.WithMount("/metrics", metrics.Handler()),
//	)
//
// Register RequestID first so later log lines carry the ID. Recover goes
// last, inside RequestLogger and HTTPMetrics, so a panic shows up there
// as a 500.
package middlewares
