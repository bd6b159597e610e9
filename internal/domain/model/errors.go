package model

import "errors"

// Fetch error taxonomy for upstream rate retrieval. Callers classify
// with errors.Is and decide fatal-vs-absorbed handling per operation.
var (
	// ErrUnreachable covers network failures, timeouts, and non-2xx
	// transport responses.
	ErrUnreachable = errors.New("upstream unreachable")

	// ErrMalformedResponse covers payloads that do not decode or lack
	// the expected fields (including an empty rates mapping).
	ErrMalformedResponse = errors.New("malformed upstream response")

	// ErrUpstreamRejected means the source answered but its status field
	// reported failure, e.g. an unknown base currency. A logical
	// rejection, never worth retrying.
	ErrUpstreamRejected = errors.New("upstream rejected request")
)
