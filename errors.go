// Package chatdesk - errors.go
// Defines the error taxonomy shared across the package.

package chatdesk

import "errors"

var (
	// ErrInvalidInput marks a request that is missing required fields. It is
	// raised at the boundary, before any conversation state is touched.
	ErrInvalidInput = errors.New("invalid input")

	// ErrSessionNotFound means an append was attempted on a session that was
	// never established. Correct wiring calls GetOrCreate first, so hitting
	// this is a programmer error rather than a user-facing condition.
	ErrSessionNotFound = errors.New("session not found")

	// ErrUpstream means the completion service call failed at the transport
	// or service level (timeout, non-2xx, auth). The turn fails and may be
	// retried on the same session.
	ErrUpstream = errors.New("completion service unavailable")

	// ErrMalformedCompletion means the completion service answered
	// successfully but the response carried no usable reply. The manager
	// recovers from this with the configured fallback reply.
	ErrMalformedCompletion = errors.New("malformed completion response")
)
