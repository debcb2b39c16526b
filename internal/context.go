package internal

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"

	"github.com/yatube-go/yatube/pkg/binder"
	"github.com/yatube-go/yatube/pkg/htmx"
	"github.com/yatube-go/yatube/pkg/job"
	"github.com/yatube-go/yatube/pkg/sanitizer"
	"github.com/yatube-go/yatube/pkg/session"
	"github.com/yatube-go/yatube/pkg/validator"
)

// ValidationErrors is a collection of field validation errors.
type ValidationErrors = validator.ValidationErrors

// Component is anything that renders itself. templ.Component satisfies it.
type Component interface {
	Render(ctx context.Context, w io.Writer) error
}

// Context provides request/response access and helper methods. It
// implements context.Context by delegating to the request context.
type Context interface {
	context.Context

	Request() *http.Request
	Response() http.ResponseWriter

	// Context returns the request's context.Context.
	Context() context.Context

	// Param returns the URL parameter value by name, or "".
	Param(name string) string

	// Query returns the query parameter value by name, or "".
	Query(name string) string

	// QueryDefault returns the query parameter value or a default.
	QueryDefault(name, defaultValue string) string

	// Form returns the form value by name, parsing the body on first use.
	Form(name string) string

	// UserID returns the authenticated user's ID from the session, or "".
	// The session is loaded lazily on first call.
	UserID() string

	IsAuthenticated() bool

	// IsCurrentUser reports whether id is the authenticated user's ID.
	IsCurrentUser(id string) bool

	Header(name string) string
	SetHeader(name, value string)

	JSON(code int, v any) error
	String(code int, s string) error
	NoContent(code int) error

	// Redirect redirects to url. Non-boosted htmx requests get an
	// HX-Redirect header instead of a 3xx.
	Redirect(code int, url string) error

	// Error builds an HTTPError to return from a handler. It writes nothing.
	Error(code int, message string, opts ...HTTPErrorOption) *HTTPError

	IsHTMX() bool

	// Render writes component with code. htmx headers from opts are only
	// applied to htmx requests.
	Render(code int, component Component, opts ...htmx.RenderOption) error

	// RenderPartial renders partial for htmx requests and fullPage
	// otherwise.
	RenderPartial(code int, fullPage, partial Component, opts ...htmx.RenderOption) error

	// Bind binds form data into v, sanitizes it, then validates it.
	// Invalid input is reported as ValidationErrors with a nil error.
	Bind(v any) (ValidationErrors, error)

	// Written reports whether the response header was sent.
	Written() bool

	Logger() *slog.Logger
	LogDebug(msg string, attrs ...any)
	LogInfo(msg string, attrs ...any)
	LogWarn(msg string, attrs ...any)
	LogError(msg string, attrs ...any)

	// Set stores a value in the request context.
	Set(key any, value any)

	// Get returns a request context value, or nil.
	Get(key any) any

	// Session returns the current session, or nil when the request has
	// none. Returns session.ErrNotConfigured without WithSession.
	Session() (*session.Session, error)

	// InitSession creates a new session and sets its cookie.
	InitSession() error

	// AuthenticateSession attaches userID to the session, creating one
	// if needed, and rotates its token.
	AuthenticateSession(userID string) error

	// SessionValue returns a session value, or nil when unset.
	// Returns session.ErrNotFound when there is no session.
	SessionValue(key string) (any, error)

	// SetSessionValue stores a session value.
	// Returns session.ErrNotFound when there is no session.
	SetSessionValue(key string, val any) error

	DeleteSessionValue(key string) error

	// DestroySession deletes the session and clears the cookie.
	DestroySession() error

	// ResponseWriter returns the wrapping ResponseWriter.
	ResponseWriter() *ResponseWriter

	// Enqueue schedules a background task.
	// Returns job.ErrNotConfigured without WithJobs or WithJobEnqueuer.
	Enqueue(name string, payload any, opts ...job.EnqueueOption) error

	// EnqueueTx schedules a task inside tx, so it only runs if tx commits.
	EnqueueTx(tx pgx.Tx, name string, payload any, opts ...job.EnqueueOption) error
}

type contextKey struct{}

type requestContext struct {
	response       http.ResponseWriter
	request        *http.Request
	responseWriter *ResponseWriter
	logger         *slog.Logger
	sessionManager *SessionManager
	session        *session.Session
	jobEnqueuer    job.Enqueuer

	sessionLoaded         bool
	sessionHookRegistered bool
}

func newContext(w http.ResponseWriter, r *http.Request, app *App) *requestContext {
	rw, ok := w.(*ResponseWriter)
	if !ok {
		rw = NewResponseWriter(w, htmx.IsHTMX(r))
	}
	return &requestContext{
		request:        r,
		response:       rw,
		responseWriter: rw,
		logger:         app.logger,
		sessionManager: app.sessionManager,
		jobEnqueuer:    app.jobEnqueuer,
	}
}

// contextFrom returns the request's Context, attaching r as its current
// request. One Context is shared by all middleware and the handler of a
// request so the session is loaded once.
func contextFrom(r *http.Request) (*requestContext, bool) {
	c, ok := r.Context().Value(contextKey{}).(*requestContext)
	if ok {
		c.request = r
	}
	return c, ok
}

func (c *requestContext) Request() *http.Request {
	return c.request
}

func (c *requestContext) Response() http.ResponseWriter {
	return c.response
}

func (c *requestContext) Context() context.Context {
	return c.request.Context()
}

func (c *requestContext) Param(name string) string {
	return chi.URLParam(c.request, name)
}

func (c *requestContext) Query(name string) string {
	return c.request.URL.Query().Get(name)
}

func (c *requestContext) QueryDefault(name, defaultValue string) string {
	if v := c.request.URL.Query().Get(name); v != "" {
		return v
	}
	return defaultValue
}

func (c *requestContext) Form(name string) string {
	return c.request.FormValue(name)
}

func (c *requestContext) Deadline() (time.Time, bool) {
	return c.request.Context().Deadline()
}

func (c *requestContext) Done() <-chan struct{} {
	return c.request.Context().Done()
}

func (c *requestContext) Err() error {
	return c.request.Context().Err()
}

func (c *requestContext) Value(key any) any {
	return c.request.Context().Value(key)
}

func (c *requestContext) UserID() string {
	sess, err := c.Session()
	if err != nil || sess == nil || sess.UserID == nil {
		return ""
	}
	return *sess.UserID
}

func (c *requestContext) IsAuthenticated() bool {
	return c.UserID() != ""
}

func (c *requestContext) IsCurrentUser(id string) bool {
	uid := c.UserID()
	return uid != "" && uid == id
}

func (c *requestContext) Header(name string) string {
	return c.request.Header.Get(name)
}

func (c *requestContext) SetHeader(name, value string) {
	c.response.Header().Set(name, value)
}

func (c *requestContext) JSON(code int, v any) error {
	c.response.Header().Set("Content-Type", "application/json; charset=utf-8")
	c.response.WriteHeader(code)
	return json.NewEncoder(c.response).Encode(v)
}

func (c *requestContext) String(code int, s string) error {
	c.response.Header().Set("Content-Type", "text/plain; charset=utf-8")
	c.response.WriteHeader(code)
	_, err := io.WriteString(c.response, s)
	return err
}

func (c *requestContext) NoContent(code int) error {
	c.response.WriteHeader(code)
	return nil
}

func (c *requestContext) Redirect(code int, url string) error {
	htmx.Redirect(c.response, c.request, url, code)
	return nil
}

func (c *requestContext) Error(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(code, message, opts...)
}

func (c *requestContext) IsHTMX() bool {
	return htmx.IsHTMX(c.request)
}

func (c *requestContext) Render(code int, component Component, opts ...htmx.RenderOption) error {
	c.response.Header().Set("Content-Type", "text/html; charset=utf-8")
	if len(opts) > 0 && htmx.IsHTMX(c.request) {
		htmx.NewConfig(opts...).ApplyHeaders(c.response)
	}
	c.response.WriteHeader(code)
	return component.Render(c.request.Context(), c.response)
}

func (c *requestContext) RenderPartial(code int, fullPage, partial Component, opts ...htmx.RenderOption) error {
	if htmx.IsHTMX(c.request) && !htmx.IsBoosted(c.request) {
		return c.Render(code, partial, opts...)
	}
	return c.Render(code, fullPage)
}

func (c *requestContext) Bind(v any) (ValidationErrors, error) {
	if err := binder.Form()(c.request, v); err != nil {
		return nil, fmt.Errorf("bind form: %w", err)
	}
	if err := sanitizer.SanitizeStruct(v); err != nil {
		return nil, fmt.Errorf("sanitize: %w", err)
	}
	if err := validator.ValidateStruct(v); err != nil {
		if validator.IsValidationError(err) {
			return validator.ExtractValidationErrors(err), nil
		}
		return nil, fmt.Errorf("validate: %w", err)
	}
	return nil, nil
}

func (c *requestContext) Written() bool {
	return c.responseWriter.Written()
}

func (c *requestContext) Logger() *slog.Logger {
	return c.logger
}

func (c *requestContext) LogDebug(msg string, attrs ...any) {
	c.logger.DebugContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) LogInfo(msg string, attrs ...any) {
	c.logger.InfoContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) LogWarn(msg string, attrs ...any) {
	c.logger.WarnContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) LogError(msg string, attrs ...any) {
	c.logger.ErrorContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) Set(key, value any) {
	c.request = c.request.WithContext(context.WithValue(c.request.Context(), key, value))
}

func (c *requestContext) Get(key any) any {
	return c.request.Context().Value(key)
}

// registerSessionHook persists a dirty session right before the response
// header is written. Save errors are logged, not returned.
func (c *requestContext) registerSessionHook() {
	if c.sessionHookRegistered || c.sessionManager == nil {
		return
	}
	c.sessionHookRegistered = true
	c.responseWriter.OnBeforeWrite(func() {
		if c.session == nil || !c.session.IsDirty() {
			return
		}
		if err := c.sessionManager.Store().Update(c.Context(), c.session); err != nil {
			c.logger.ErrorContext(c.Context(), "failed to save session", slog.Any("error", err))
			return
		}
		c.session.ClearDirty()
	})
}

func (c *requestContext) Session() (*session.Session, error) {
	if c.sessionManager == nil {
		return nil, session.ErrNotConfigured
	}
	c.registerSessionHook()

	if c.sessionLoaded {
		return c.session, nil
	}

	sess, err := c.sessionManager.LoadSession(c.Context(), c.request)
	if err != nil {
		return nil, err
	}
	c.session = sess
	c.sessionLoaded = true
	return c.session, nil
}

func (c *requestContext) InitSession() error {
	if c.sessionManager == nil {
		return session.ErrNotConfigured
	}
	c.registerSessionHook()

	sess, err := c.sessionManager.CreateSession(c.Context(), c.request)
	if err != nil {
		return err
	}
	c.session = sess
	c.sessionLoaded = true
	c.sessionManager.SaveSession(c.response, sess)
	return nil
}

func (c *requestContext) AuthenticateSession(userID string) error {
	if c.sessionManager == nil {
		return session.ErrNotConfigured
	}

	sess, err := c.Session()
	if err != nil {
		c.logger.WarnContext(c.Context(), "failed to load session", slog.Any("error", err))
	}
	if sess == nil {
		if err := c.InitSession(); err != nil {
			return err
		}
		sess = c.session
	}

	sess.Authenticate(userID)
	if err := c.sessionManager.RotateToken(c.Context(), sess); err != nil {
		return err
	}
	c.sessionManager.SaveSession(c.response, sess)
	return nil
}

func (c *requestContext) SessionValue(key string) (any, error) {
	sess, err := c.Session()
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, session.ErrNotFound
	}
	val, _ := sess.GetValue(key)
	return val, nil
}

func (c *requestContext) SetSessionValue(key string, val any) error {
	sess, err := c.Session()
	if err != nil {
		return err
	}
	if sess == nil {
		return session.ErrNotFound
	}
	sess.SetValue(key, val)
	return nil
}

func (c *requestContext) DeleteSessionValue(key string) error {
	sess, err := c.Session()
	if err != nil {
		return err
	}
	if sess == nil {
		return session.ErrNotFound
	}
	sess.DeleteValue(key)
	return nil
}

func (c *requestContext) DestroySession() error {
	if c.sessionManager == nil {
		return session.ErrNotConfigured
	}
	if _, err := c.Session(); err != nil {
		return err
	}
	if c.session != nil {
		if err := c.sessionManager.Store().Delete(c.Context(), c.session.ID); err != nil {
			return err
		}
	}
	c.sessionManager.DeleteSession(c.response)
	c.session = nil
	c.sessionLoaded = true
	return nil
}

func (c *requestContext) ResponseWriter() *ResponseWriter {
	return c.responseWriter
}

func (c *requestContext) Enqueue(name string, payload any, opts ...job.EnqueueOption) error {
	if c.jobEnqueuer == nil {
		return job.ErrNotConfigured
	}
	return c.jobEnqueuer.Enqueue(c.Context(), name, payload, opts...)
}

func (c *requestContext) EnqueueTx(tx pgx.Tx, name string, payload any, opts ...job.EnqueueOption) error {
	if c.jobEnqueuer == nil {
		return job.ErrNotConfigured
	}
	return c.jobEnqueuer.EnqueueTx(c.Context(), tx, name, payload, opts...)
}
