package services

import "errors"

// Cache fallback failures. Raised only when the remote API is unreachable
// and the local store has nothing to serve for the query.
var (
	ErrNoCachedData = errors.New("no cached data available")
	ErrNotCached    = errors.New("entry not cached")
)

// ValidationError is a client-side guard failure, rejected before any
// request is issued. Upstream constraints (stock limits and the like) are
// not re-checked here; the remote service's own rejection is surfaced as
// an UpstreamError instead.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}
