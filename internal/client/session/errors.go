package session

import "errors"

var (
	// ErrPasswordMismatch: the registration form's confirmation field does
	// not match the password. Detected before any request is made.
	ErrPasswordMismatch = errors.New("password confirmation does not match")

	// ErrSuperseded: the session changed (e.g. a logout) while a login or
	// registration request was in flight; the late result was discarded.
	ErrSuperseded = errors.New("session changed during request")

	// ErrNotAuthenticated: the operation requires an authenticated session.
	ErrNotAuthenticated = errors.New("not authenticated")
)
