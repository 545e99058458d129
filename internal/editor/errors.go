package editor

import "github.com/tengjizhang/linkconv/internal/store"

// inputError is a user-facing message that classifies as
// store.ErrInvalidInput.
type inputError struct {
	msg string
}

func (e *inputError) Error() string { return e.msg }

func (e *inputError) Unwrap() error { return store.ErrInvalidInput }

var (
	ErrInvalidURL   error = &inputError{msg: "Please enter a valid URL"}
	ErrNoSelection  error = &inputError{msg: "Please select text in an editor first."}
	ErrInvalidRange error = &inputError{msg: "selection must not cross a tag or an existing link"}
	ErrTextNotFound error = &inputError{msg: "selected text not found in section"}
)
