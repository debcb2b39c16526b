package htmx

import "net/http"

// Redirect sends a regular redirect, or HX-Redirect with 200 to an htmx
// request so the browser navigates instead of swapping the target page
// into the current one.
func Redirect(w http.ResponseWriter, r *http.Request, url string, status int) {
	if IsHTMX(r) && !IsBoosted(r) {
		w.Header().Set(HeaderHXRedirect, url)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, url, status)
}
