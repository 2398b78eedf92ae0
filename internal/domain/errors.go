package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation         = errors.New("validation failed")
	ErrUnauthenticated    = errors.New("not logged in")
	ErrUnauthorized       = errors.New("credential rejected by record store")
	ErrSessionExpired     = errors.New("session expired, please log in again")
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrConflict           = errors.New("conflict")
	ErrNetwork            = errors.New("network failure")
)

// RemoteError carries the detail message the record store attached to a
// non-2xx response. Kind is one of the sentinel errors above so callers can
// branch with errors.Is.
type RemoteError struct {
	StatusCode int
	Detail     string
	Kind       error
}

func (e *RemoteError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("record store returned %d: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("record store returned %d", e.StatusCode)
}

func (e *RemoteError) Unwrap() error {
	return e.Kind
}
