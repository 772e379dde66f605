package goPress

import "errors"

var (
	// ErrUnauthorized is the terminal form of an authorization failure: the
	// pipeline has already spent its one refresh-and-replay attempt, or no
	// refresh was possible.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden reports a well-authenticated request that the server
	// rejected for insufficient privilege. Never retried, never mutates the
	// session.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound reports a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrServer reports a 5xx response.
	ErrServer = errors.New("server error")
	// ErrNoConnection reports that no response was received at all: DNS or
	// dial failure, timeout, connection reset.
	ErrNoConnection = errors.New("no connection to server")
	// ErrRefreshUnavailable reports a refresh attempt without a stored
	// refresh credential.
	ErrRefreshUnavailable = errors.New("no refresh credential available")
	// ErrRefreshRejected reports a refresh exchange the server refused.
	ErrRefreshRejected = errors.New("refresh exchange rejected")
	// ErrNoSession is returned by operations that require an authenticated
	// session when none exists.
	ErrNoSession = errors.New("no active session")
	// ErrClientNotReady is returned when a method is called on a nil or
	// unbuilt Client.
	ErrClientNotReady = errors.New("client not initialized")
	// ErrBadResponse reports a 2xx response whose body did not decode into
	// the expected shape.
	ErrBadResponse = errors.New("malformed server response")
	// ErrRequestRejected covers the remaining 4xx classes (validation,
	// conflict, rate limit). The server's message travels in [APIError].
	ErrRequestRejected = errors.New("request rejected")
)

// APIError carries the server's envelope message alongside the failure
// class. errors.Is against the class sentinels (ErrForbidden, ErrNotFound,
// ...) keeps working through it.
type APIError struct {
	Status  int
	Message string
	kind    error
}

// Error implements error.
func (e *APIError) Error() string {
	if e.Message == "" {
		return e.kind.Error()
	}
	return e.kind.Error() + ": " + e.Message
}

// Unwrap exposes the failure-class sentinel.
func (e *APIError) Unwrap() error {
	return e.kind
}
