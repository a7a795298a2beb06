// Package errdefs defines general error categories and error operations.
package errdefs

import (
	"errors"
	"fmt"
	"net/http"
)

// Newf wraps the base error and a formatted error created by fmt.Errorf,
// returns the error joined.
func Newf(base error, format string, args ...any) error {
	return errors.Join(base, fmt.Errorf(format, args...))
}

// NewE wraps the base error and the input error, returns the error joined.
func NewE(base error, err error) error {
	if err == nil || errors.Is(err, base) {
		return err
	}
	return errors.Join(base, err)
}

// FromStatusCode returns the error category matching the HTTP status code,
// or nil when the status has no dedicated category.
func FromStatusCode(code int) error {
	switch code {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return ErrInvalidParameter
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusConflict:
		return ErrConflict
	case http.StatusNotImplemented:
		return ErrNotImplemented
	case http.StatusServiceUnavailable, http.StatusBadGateway:
		return ErrUnavailable
	case http.StatusGatewayTimeout:
		return ErrDeadlineExceeded
	}
	if code >= http.StatusInternalServerError {
		return ErrSystem
	}
	return nil
}
