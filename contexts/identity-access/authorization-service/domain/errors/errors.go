package errors

import "errors"

var (
	// ErrUnauthenticated covers missing, malformed, or invalid credentials.
	ErrUnauthenticated = errors.New("authentication required")
	// ErrForbidden covers authenticated callers that fail the policy.
	ErrForbidden = errors.New("access denied")
	// ErrDirectoryUnavailable covers lookup failures; the gate denies on it.
	ErrDirectoryUnavailable = errors.New("account directory unavailable")
)
