package job

import "errors"

var (
	// ErrNotConfigured is returned by Context.Enqueue when the app has no
	// job enqueuer.
	ErrNotConfigured     = errors.New("job: not configured")
	ErrUnknownTask       = errors.New("job: unknown task")
	ErrInvalidPayload    = errors.New("job: invalid payload")
	ErrAlreadyStarted    = errors.New("job: already started")
	ErrNotStarted        = errors.New("job: not started")
	ErrPoolRequired      = errors.New("job: pool is required")
	ErrHealthcheckFailed = errors.New("job: healthcheck failed")
	ErrMigrate           = errors.New("job: failed to migrate river schema")
)
