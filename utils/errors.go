package utils

import (
	"errors"
	"fmt"
)

var (
	ErrNotLoggedIn      = errors.New("you must be logged in")
	ErrFolderPublicLink = errors.New("public links are not yet supported for folders")
	ErrEmptyName        = errors.New("name cannot be empty")
)

// FetchError reports a failed listing or search.
type FetchError struct {
	Op  string
	Err error
}

func (e *FetchError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }
func (e *FetchError) Unwrap() error { return e.Err }

// MutationError reports a failed create, rename, trash, share or upload.
type MutationError struct {
	Op  string
	Err error
}

func (e *MutationError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }
func (e *MutationError) Unwrap() error { return e.Err }

// LinkError reports a failed signed-URL or public-link retrieval.
type LinkError struct {
	Op  string
	Err error
}

func (e *LinkError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }
func (e *LinkError) Unwrap() error { return e.Err }

// AuthRequiredError is returned when an action is attempted without an
// active session. No network call has been made when it is returned.
type AuthRequiredError struct {
	Op string
}

func (e *AuthRequiredError) Error() string { return fmt.Sprintf("%s: %v", e.Op, ErrNotLoggedIn) }
func (e *AuthRequiredError) Unwrap() error { return ErrNotLoggedIn }

// Classify wraps err with wrap unless the cause is a missing session, in
// which case it becomes an AuthRequiredError.
func Classify(op string, err error, wrap func(op string, err error) error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotLoggedIn) {
		return &AuthRequiredError{Op: op}
	}
	return wrap(op, err)
}

func NewFetchError(op string, err error) error    { return &FetchError{Op: op, Err: err} }
func NewMutationError(op string, err error) error { return &MutationError{Op: op, Err: err} }
func NewLinkError(op string, err error) error     { return &LinkError{Op: op, Err: err} }

// UserMessage returns the message shown to the user for err: the innermost
// server or validation message without the operation prefixes.
func UserMessage(err error) string {
	var se interface{ UserMessage() string }
	if errors.As(err, &se) {
		return se.UserMessage()
	}
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err.Error()
		}
		err = next
	}
}
