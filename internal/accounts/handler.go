// Package accounts handles signup, login and logout, and provides the
// LoginRequired middleware for mutating routes.
package accounts

import (
	"context"
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5"

	"github.com/yatube-go/yatube"
	"github.com/yatube-go/yatube/internal/repository"
	"github.com/yatube-go/yatube/internal/tasks"
	"github.com/yatube-go/yatube/internal/views"
	"github.com/yatube-go/yatube/pkg/password"
	"github.com/yatube-go/yatube/pkg/session"
	"github.com/yatube-go/yatube/pkg/validator"
)

const (
	msgBadCredentials = "Please enter a correct username and password. Note that both fields may be case-sensitive."
	msgUsernameTaken  = "A user with that username already exists."
)

// Store is the slice of the repository accounts needs. Signup runs in
// InTx so the user row and its welcome email commit together.
type Store interface {
	GetUserByUsername(ctx context.Context, username string) (repository.User, error)
	InTx(ctx context.Context, fn func(q repository.Querier, tx pgx.Tx) error) error
}

type Handler struct {
	store  Store
	hasher password.Hasher
}

func NewHandler(store Store, hasher password.Hasher) *Handler {
	return &Handler{store: store, hasher: hasher}
}

func (h *Handler) Routes(r yatube.Router) {
	r.Route("/auth", func(r yatube.Router) {
		r.Form("/signup/", h.signup)
		r.Form("/login/", h.login)
		r.Form("/logout/", h.logout)
	})
}

func (h *Handler) signup(c yatube.Context) error {
	if c.Request().Method != http.MethodPost {
		return c.Render(http.StatusOK, views.Signup(views.SignupPage{Nav: Nav(c)}))
	}

	var form SignupForm
	errs, err := c.Bind(&form)
	if err != nil {
		return err
	}
	rerender := func(errs validator.ValidationErrors) error {
		return c.Render(http.StatusOK, views.Signup(views.SignupPage{
			Nav:       Nav(c),
			Username:  form.Username,
			Email:     form.Email,
			FirstName: form.FirstName,
			LastName:  form.LastName,
			Errors:    errs,
		}))
	}
	if !errs.IsEmpty() {
		return rerender(errs)
	}

	hash, err := h.hasher.Hash(form.Password1)
	if errors.Is(err, password.ErrTooLong) {
		return rerender(validator.ValidationErrors{}.Add("password1", "Ensure this value has at most 72 characters."))
	}
	if err != nil {
		return err
	}

	var user repository.User
	err = h.store.InTx(c.Context(), func(q repository.Querier, tx pgx.Tx) error {
		user, err = q.CreateUser(c.Context(), repository.CreateUserParams{
			Username:     form.Username,
			Email:        form.Email,
			FirstName:    form.FirstName,
			LastName:     form.LastName,
			PasswordHash: hash,
		})
		if err != nil {
			return err
		}
		return c.EnqueueTx(tx, tasks.SendWelcomeEmailName, tasks.WelcomeEmail{Email: user.Email, Username: user.Username})
	})
	if errors.Is(err, repository.ErrDuplicate) {
		return rerender(validator.ValidationErrors{}.Add("username", msgUsernameTaken))
	}
	if err != nil {
		return err
	}

	if err := h.startSession(c, user); err != nil {
		return err
	}

	c.LogInfo("user signed up", "user_id", user.ID)
	return c.Redirect(http.StatusFound, "/")
}

func (h *Handler) login(c yatube.Context) error {
	if c.Request().Method != http.MethodPost {
		return c.Render(http.StatusOK, views.Login(views.LoginPage{Nav: Nav(c), Next: c.Query("next")}))
	}

	var form LoginForm
	errs, err := c.Bind(&form)
	if err != nil {
		return err
	}
	if errs.IsEmpty() {
		user, err := h.authenticate(c.Context(), form.Username, form.Password)
		switch {
		case err == nil:
			if err := h.startSession(c, user); err != nil {
				return err
			}
			return c.Redirect(http.StatusFound, safeNext(form.Next))
		case errors.Is(err, errBadCredentials):
			errs = errs.Add("", msgBadCredentials)
		default:
			return err
		}
	}

	return c.Render(http.StatusOK, views.Login(views.LoginPage{
		Nav:      Nav(c),
		Username: form.Username,
		Next:     form.Next,
		Errors:   errs,
	}))
}

func (h *Handler) logout(c yatube.Context) error {
	if err := c.DestroySession(); err != nil {
		return err
	}
	return c.Render(http.StatusOK, views.LoggedOut(views.Nav{Path: c.Request().URL.Path}))
}

var errBadCredentials = errors.New("accounts: bad credentials")

func (h *Handler) authenticate(ctx context.Context, username, plain string) (repository.User, error) {
	user, err := h.store.GetUserByUsername(ctx, username)
	if errors.Is(err, repository.ErrNotFound) {
		return repository.User{}, errBadCredentials
	}
	if err != nil {
		return repository.User{}, err
	}
	if err := h.hasher.Compare(user.PasswordHash, plain); err != nil {
		if errors.Is(err, password.ErrMismatch) {
			return repository.User{}, errBadCredentials
		}
		return repository.User{}, err
	}
	return user, nil
}

// startSession rotates the session token for user and caches the
// username for the navigation bar.
func (h *Handler) startSession(c yatube.Context, user repository.User) error {
	if err := c.AuthenticateSession(user.ID.String()); err != nil {
		return err
	}
	return c.SetSessionValue(session.KeyUsername, user.Username)
}
