package client

import "errors"

var (
	// ErrUnavailable means the remote could not be reached or answered with
	// something that is not JSON.
	ErrUnavailable = errors.New("server unavailable")
	// ErrRejected means the remote answered with a non-2xx status or with JSON
	// that does not fit a login payload.
	ErrRejected     = errors.New("request rejected")
	ErrUnauthorized = errors.New("unauthorized")
)
