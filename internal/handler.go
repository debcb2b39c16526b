package internal

// Handler declares routes on a router.
//
// Example:
//
//	type PostsHandler struct {
//	    posts PostStore
//	}
//
//	func (h *PostsHandler) Routes(r yatube.Router) {
//	    r.GET("/posts/{id}/", h.detail)
//	}
type Handler interface {
	Routes(r Router)
}

// HandlerFunc is the signature for route handlers. A returned error is
// passed to the app's ErrorHandler.
type HandlerFunc func(c Context) error

// Middleware wraps a HandlerFunc. It may short-circuit the chain by not
// calling next.
//
// Example:
//
//	func LoginRequired(next yatube.HandlerFunc) yatube.HandlerFunc {
//	    return func(c yatube.Context) error {
//	        if !c.IsAuthenticated() {
//	            return c.Redirect(http.StatusFound, "/auth/login/")
//	        }
//	        return next(c)
//	    }
//	}
type Middleware func(next HandlerFunc) HandlerFunc

// ErrorHandler renders errors returned from handlers.
type ErrorHandler func(Context, error) error
