package errors

import (
	"errors"
	"fmt"
)

// New returns an error with the given message. It's a passthrough to the
// standard library so that callers only need to import this package.
func New(msg string) error {
	return errors.New(msg)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

type withContext struct {
	context string
	cause   error
}

// WithContext wraps err with a short description of the operation that
// failed. The resulting message reads like "clone: exit status 128".
func WithContext(err error, context string) error {
	if err == nil {
		return nil
	}
	return withContext{context: context, cause: err}
}

func (err withContext) Error() string {
	return fmt.Sprintf("%s: %s", err.context, err.cause)
}

func (err withContext) Unwrap() error {
	return err.cause
}

// FriendlyError is an error whose message is meant to be shown to the user
// as is, without any "Error:" prefix or wrapping context.
type FriendlyError struct {
	msg string
}

// NewFriendlyError formats a FriendlyError.
func NewFriendlyError(format string, args ...interface{}) error {
	return FriendlyError{fmt.Sprintf(format, args...)}
}

func (err FriendlyError) Error() string {
	return err.msg
}

// FriendlyMessage returns the message that should be printed to the user.
func (err FriendlyError) FriendlyMessage() string {
	return err.msg
}

// RootCause unwraps every layer of context and returns the innermost error.
func RootCause(err error) error {
	for {
		unwrapped := errors.Unwrap(err)
		if unwrapped == nil {
			return err
		}
		err = unwrapped
	}
}

// GetFriendlyMessage returns the first FriendlyMessage found in err's chain.
func GetFriendlyMessage(err error) (string, bool) {
	for err != nil {
		if friendly, ok := err.(interface{ FriendlyMessage() string }); ok {
			return friendly.FriendlyMessage(), true
		}
		err = errors.Unwrap(err)
	}
	return "", false
}
