package accounts

import (
	"github.com/yatube-go/yatube"
	"github.com/yatube-go/yatube/internal/views"
	"github.com/yatube-go/yatube/pkg/session"
)

// Nav reads the navigation state for c. The username is cached in the
// session at login, so rendering never hits the users table.
func Nav(c yatube.Context) views.Nav {
	nav := views.Nav{Path: c.Request().URL.Path}
	if !c.IsAuthenticated() {
		return nav
	}
	if v, err := c.SessionValue(session.KeyUsername); err == nil {
		nav.Username, _ = v.(string)
	}
	return nav
}
