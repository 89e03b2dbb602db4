package core

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidMessage      = errors.New("invalid sign-in message")
	ErrInvalidSignature    = errors.New("invalid signature")
	ErrNonceMismatch       = errors.New("invalid or expired nonce")
	ErrInvalidToken        = errors.New("invalid token")
	ErrTokenExpired        = errors.New("token has expired")
	ErrForbidden           = errors.New("access denied")
	ErrAlreadyClaimed      = errors.New("address has already claimed tokens")
	ErrInsufficientBalance = errors.New("insufficient token balance")
	ErrReviewNotFound      = errors.New("review not found")
	ErrStoreOperation      = errors.New("store operation failed")
)

// ValidationError reports a malformed or missing input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Reason)
}

// NewValidationError creates a field-level validation error.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// UpstreamError wraps a failed call to an external collaborator (RPC node,
// database, completion API). The cause is logged server-side, never exposed
// to clients in production mode.
type UpstreamError struct {
	Op     string
	Status int
	Body   string
	Err    error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("upstream %s failed: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("upstream %s failed: status %d: %s", e.Op, e.Status, e.Body)
}

func (e *UpstreamError) Unwrap() error { return e.Err }
