package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Cache backends return these
// (optionally wrapped) so callers can tell a miss from an outage:
// - ErrNotFound: key does not exist or has expired
// - ErrUnavailable: backend temporarily unreachable
//
// For request-level failures, use pkg/domain-errors directly.
var (
	ErrNotFound    = errors.New("not found")
	ErrUnavailable = errors.New("unavailable")
)
