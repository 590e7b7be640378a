// Package apperror defines the error shape returned by every user-facing
// operation.
package apperror

import (
	"errors"
	"fmt"
)

// Kind classifies an Error for presentation.
type Kind string

const (
	// KindValidation marks missing or invalid input, rejected before any
	// network call.
	KindValidation Kind = "validation"
	// KindUpstream marks a failed call to an external provider.
	KindUpstream Kind = "upstream"
	// KindConfiguration marks provider failures caused by deployment setup,
	// such as a disabled API or an invalid key.
	KindConfiguration Kind = "configuration"
	// KindMalformedResponse marks a completion that did not contain usable
	// JSON.
	KindMalformedResponse Kind = "malformedResponse"
	// KindInternal marks anything unclassified.
	KindInternal Kind = "internal"
)

// Error is a user-presentable failure with optional guidance text.
type Error struct {
	Kind    Kind
	Message string
	Detail  string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Validation returns a KindValidation error.
func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

// Upstream wraps err as a KindUpstream error.
func Upstream(msg string, err error) *Error {
	return &Error{Kind: KindUpstream, Message: msg, Err: err}
}

// Configuration wraps err as a KindConfiguration error with guidance detail.
func Configuration(msg, detail string, err error) *Error {
	return &Error{Kind: KindConfiguration, Message: msg, Detail: detail, Err: err}
}

// Malformed wraps err as a KindMalformedResponse error.
func Malformed(msg string, err error) *Error {
	return &Error{Kind: KindMalformedResponse, Message: msg, Err: err}
}

// As extracts an *Error from err's chain.
func As(err error) (*Error, bool) {
	var ae *Error
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

// KindOf returns the Kind of err, or KindInternal when err carries none.
func KindOf(err error) Kind {
	if ae, ok := As(err); ok {
		return ae.Kind
	}
	return KindInternal
}

// Ensure returns err as an *Error. Errors that are already classified are
// returned unchanged; anything else is wrapped with fallback as its message.
func Ensure(err error, fallback string) *Error {
	if err == nil {
		return nil
	}
	if ae, ok := As(err); ok {
		return ae
	}
	return &Error{Kind: KindInternal, Message: fallback, Err: err}
}
