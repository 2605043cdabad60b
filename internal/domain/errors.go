package domain

import "errors"

// Sentinel errors for panel error classification. The client wraps these
// so callers can handle error categories uniformly without inspecting
// response bodies.
//
//	return fmt.Errorf("failed to create site: %w", domain.ErrConflict)
var (
	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrUnauthorized indicates the request was rejected due to
	// invalid, expired, or missing credentials.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrRateLimited indicates the panel throttled the request.
	ErrRateLimited = errors.New("rate limited")

	// ErrConflict indicates a state or uniqueness conflict, such as a
	// duplicate domain or database name.
	ErrConflict = errors.New("conflict")
)

// Orchestration preconditions and heuristic failures. These are distinct
// from transport errors: nothing was asked of the panel when they occur.
var (
	// ErrMissingDomain indicates a site record carries no domain, so no
	// filesystem path can be derived for it.
	ErrMissingDomain = errors.New("site has no domain")

	// ErrNoWordPress indicates no candidate path on the server contained
	// a working WordPress installation.
	ErrNoWordPress = errors.New("no wordpress installation found")
)
