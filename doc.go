// Package yatube is the HTTP layer of the Yatube blog: a thin application
// shell over chi with server-side sessions, HTMX-aware rendering and
// background jobs.
//
// # Quick Start
//
//	app := yatube.New(
//	    yatube.WithCustomLogger(log),
//	    yatube.WithMiddleware(middlewares.RequestID(), middlewares.Recover()),
//	    yatube.WithSession(repository.NewSessionStore(pool)),
//	    yatube.WithHandlers(
//	        posts.NewHandler(repo, groups),
//	        accounts.NewHandler(repo),
//	    ),
//	)
//
//	if err := app.Run(":8000", yatube.Logger(log)); err != nil {
//	    log.Error("server stopped", "error", err)
//	}
//
// # Handlers
//
// Handlers implement [Handler] and declare their routes:
//
//	func (h *Handler) Routes(r yatube.Router) {
//	    r.GET("/", h.index)
//	    r.GET("/posts/{post_id}/", h.detail)
//	    r.Form("/create/", h.create, accounts.LoginRequired())
//	}
//
// A [HandlerFunc] returns an error instead of writing one. Returned
// errors go to the app's [ErrorHandler]; an *[HTTPError] keeps its
// status code, anything else becomes a 500.
//
// # Sessions
//
// Sessions live in the database and are addressed by an opaque cookie
// token. The session is loaded at most once per request and saved just
// before the response header is written when it changed. Call
// Context.AuthenticateSession on login so the token is rotated.
//
// # Shutdown
//
// Run blocks until SIGINT or SIGTERM, then drains in-flight requests
// within the shutdown timeout and runs shutdown hooks. Job workers
// registered with [WithJobs] stop after the server.
package yatube
