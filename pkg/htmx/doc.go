// Package htmx reads htmx request headers and writes its response
// headers.
package htmx
