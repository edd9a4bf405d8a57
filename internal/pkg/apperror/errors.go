package apperror

import (
	"context"
	"errors"
)

// Sentinel domain errors. Controllers and the bot dispatcher match on these
// with errors.Is and translate them into user-facing responses.
var (
	// validation
	ErrValidation    = errors.New("validation failed")
	ErrEmptyText     = errors.New("task text must not be empty")
	ErrInvalidItemID = errors.New("invalid task id")

	// authentication
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrSessionInvalid     = errors.New("session invalid or expired")
	ErrTelegramNotLinked  = errors.New("telegram account is not linked")

	// authorization surfaced as not-found so callers cannot distinguish
	// "doesn't exist" from "belongs to someone else"
	ErrTaskNotFound = errors.New("task not found")

	// conflict
	ErrUsernameTaken         = errors.New("username already taken")
	ErrTelegramAlreadyLinked = errors.New("telegram account already linked")

	// infrastructure
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// Storage wraps storage-layer failures into ErrStorageUnavailable while
// keeping the cause on the chain. Timeouts and cancellations are classified
// the same way: the request fails closed and the user may retry.
func Storage(err error) error {
	if err == nil {
		return nil
	}
	return errors.Join(ErrStorageUnavailable, err)
}

// IsTimeout reports whether err is a deadline or cancellation failure.
func IsTimeout(err error) bool {
	return errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled)
}
