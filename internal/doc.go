// Package internal implements the web framework layer of yatube: the
// App, its chi-based Router, the request Context, server-side sessions
// and the graceful server runtime.
//
// Import "github.com/yatube-go/yatube" instead, which re-exports the
// public API.
//
// # Request Context
//
// ServeHTTP creates one Context per request and hands it to every
// middleware and the handler, so a session is loaded at most once per
// request. Context embeds context.Context and can be passed to stores:
//
//	func (h *Handler) detail(c yatube.Context) error {
//	    id, ok := yatube.Param[int64](c, "id")
//	    if !ok {
//	        return yatube.ErrNotFound("post not found")
//	    }
//	    post, err := h.posts.GetPost(c, id)
//	    ...
//	}
//
// # Forms
//
// Bind runs binding, sanitizing and validation in that order. Invalid
// input comes back as ValidationErrors with a nil error, so handlers can
// re-render the form:
//
//	var form PostForm
//	errs, err := c.Bind(&form)
//	if err != nil {
//	    return err
//	}
//	if !errs.IsEmpty() {
//	    return c.Render(http.StatusOK, views.PostForm(form, errs))
//	}
//
// # Sessions
//
// WithSession enables cookie-addressed server-side sessions. Unknown and
// expired tokens are treated as no session. AuthenticateSession rotates
// the token, and dirty sessions are saved right before the response
// header is written.
//
// # Errors
//
// Handlers return errors. HTTPError values carry a status code. The
// ErrorHandler renders them, and any other error becomes a 500.
//
// # Runtime
//
// App.Run listens, runs startup hooks (job workers first), serves until
// SIGINT or SIGTERM, then drains the server and runs shutdown hooks
// within one timeout.
package internal
