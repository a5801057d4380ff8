package apperr

import "errors"

// Sentinel errors classifying failures across the service layer. Handlers map
// these onto HTTP status codes; anything unwrapped is treated as a store error.
var (
	ErrValidation      = errors.New("validation failed")
	ErrNotFound        = errors.New("record not found")
	ErrUnauthenticated = errors.New("not authenticated")
	ErrForbidden       = errors.New("access denied")
)

// Validation wraps a user-facing message as a validation error.
func Validation(msg string) error {
	return &wrapped{msg: msg, kind: ErrValidation}
}

// NotFound wraps a user-facing message as a not-found error.
func NotFound(msg string) error {
	return &wrapped{msg: msg, kind: ErrNotFound}
}

// Forbidden wraps a user-facing message as an authorization error.
func Forbidden(msg string) error {
	return &wrapped{msg: msg, kind: ErrForbidden}
}

type wrapped struct {
	msg  string
	kind error
}

func (w *wrapped) Error() string { return w.msg }
func (w *wrapped) Unwrap() error { return w.kind }
