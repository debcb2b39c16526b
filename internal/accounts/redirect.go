package accounts

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/yatube-go/yatube"
)

// LoginPath is where anonymous users are sent.
const LoginPath = "/auth/login/"

// LoginURL builds the login redirect for next. Slashes stay literal so
// the target reads /auth/login/?next=/create/.
func LoginURL(next string) string {
	if next == "" {
		return LoginPath
	}
	return LoginPath + "?next=" + strings.ReplaceAll(url.QueryEscape(next), "%2F", "/")
}

// LoginRequired redirects anonymous requests to the login page with the
// full request path as next.
func LoginRequired() yatube.Middleware {
	return func(next yatube.HandlerFunc) yatube.HandlerFunc {
		return func(c yatube.Context) error {
			if !c.IsAuthenticated() {
				return c.Redirect(http.StatusFound, LoginURL(c.Request().URL.RequestURI()))
			}
			return next(c)
		}
	}
}

// safeNext accepts only same-site relative paths. Anything else,
// including protocol-relative URLs, falls back to "/".
func safeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, `/\`) {
		return "/"
	}
	u, err := url.Parse(next)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return "/"
	}
	return next
}
