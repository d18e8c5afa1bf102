package app

import "errors"

var (
	ErrSignedOut      = errors.New("not signed in")
	ErrIncompleteForm = errors.New("booking form is incomplete")
)

// AuthError carries the identity provider's message unchanged.
type AuthError struct {
	Op  string
	Err error
}

func (e *AuthError) Error() string { return e.Err.Error() }
func (e *AuthError) Unwrap() error { return e.Err }

// SubmitError is a failed booking write. The user only sees a generic alert.
type SubmitError struct {
	Err error
}

func (e *SubmitError) Error() string { return "submit booking: " + e.Err.Error() }
func (e *SubmitError) Unwrap() error { return e.Err }

// FetchError is a failed jobs query. It is logged and never shown.
type FetchError struct {
	Err error
}

func (e *FetchError) Error() string { return "fetch jobs: " + e.Err.Error() }
func (e *FetchError) Unwrap() error { return e.Err }
