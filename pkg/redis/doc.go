// Package redis opens go-redis clients from a URL with startup retries
// and exposes a readiness check and a shutdown hook for them.
package redis
