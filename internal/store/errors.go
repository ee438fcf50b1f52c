package store

import (
	"errors"
	"fmt"
)

// ErrUserNotFound reports an unknown username or a dangling user reference.
var ErrUserNotFound = errors.New("user not found")

// ErrInvalidCredentials reports an authentication failure. It covers both
// unknown-user and wrong-password so callers cannot tell the two apart.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ValidationError reports rejected input: a blank note, a missing file, or
// content over the size ceiling. The message is safe to show to the user.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Validationf builds a ValidationError with a formatted message.
func Validationf(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
