package errdefs

import "errors"

var (
	// ErrNotFound signals that the requested object doesn't exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidParameter signals that the user input is invalid.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrConflict signals that some remote state conflicts with the requested action.
	ErrConflict = errors.New("conflict")

	// ErrUnauthorized is used to signify that the caller could not be authenticated.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden signals that the requested action cannot be performed with the
	// current credentials. Callers should never retry the action.
	ErrForbidden = errors.New("forbidden")

	// ErrUnavailable signals that the remote service is not available.
	ErrUnavailable = errors.New("unavailable")

	// ErrSystem signals that the remote service failed internally.
	ErrSystem = errors.New("system error")

	// ErrNotImplemented signals that the requested action is not implemented by the server.
	ErrNotImplemented = errors.New("not implemented")

	// ErrDeadlineExceeded signals that the deadline was reached before the action completed.
	ErrDeadlineExceeded = errors.New("deadline exceeded")

	// ErrAlreadyExists signals that the resource already exists.
	ErrAlreadyExists = errors.New("already exists")
)
