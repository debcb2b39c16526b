package middlewares

import (
	"net/http"

	"github.com/yatube-go/yatube/internal"
)

// responseStatus is the status the client sees. An error that has not been
// written yet is still on its way to the error handler, so its code is
// taken from the error itself.
func responseStatus(c internal.Context, err error) int {
	if err != nil && !c.Written() {
		if he := internal.AsHTTPError(err); he != nil {
			return he.StatusCode()
		}
		return http.StatusInternalServerError
	}
	if status := c.ResponseWriter().Status(); status != 0 {
		return status
	}
	return http.StatusOK
}
