package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Business errors wrap exactly one of these sentinels so
// callers can classify with errors.Is while still carrying a message.
var (
	ErrNotFound      = errors.New("record not found")
	ErrNotAcceptable = errors.New("not acceptable")
	ErrAlreadyExists = errors.New("already exists")
)

type Error struct {
	kind    error
	message string
}

func (e *Error) Error() string { return e.message }

func (e *Error) Unwrap() error { return e.kind }

func NotFound(format string, args ...any) error {
	return &Error{kind: ErrNotFound, message: fmt.Sprintf(format, args...)}
}

func NotAcceptable(format string, args ...any) error {
	return &Error{kind: ErrNotAcceptable, message: fmt.Sprintf(format, args...)}
}

func AlreadyExists(format string, args ...any) error {
	return &Error{kind: ErrAlreadyExists, message: fmt.Sprintf(format, args...)}
}
