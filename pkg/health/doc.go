// Package health serves liveness and readiness probes.
//
// Readiness runs named checks in parallel and answers 503 when any of
// them fails. Responses are plain text unless the client asks for JSON
// with an Accept header or ?format=json.
package health
