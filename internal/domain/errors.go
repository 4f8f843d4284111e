package domain

import (
	"errors"
	"fmt"
)

// Error kinds surfaced to the presentation layer. Match with errors.Is.
var (
	// ErrIO covers filesystem, directory and window-platform failures.
	ErrIO = errors.New("io error")

	// ErrDeserialize indicates the persisted document is not valid state JSON.
	ErrDeserialize = errors.New("deserialize error")

	// ErrSerialize indicates the in-memory state could not be encoded.
	ErrSerialize = errors.New("serialize error")

	// ErrNotFound indicates the primary window (or a referenced entity) is absent.
	ErrNotFound = errors.New("not found")
)

// Error carries an error kind, the failing operation and the cause.
type Error struct {
	Kind error
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// NewError wraps err as the given kind for operation op.
func NewError(kind error, op string, err error) error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// KindOf returns the error kind carried by err, or nil when err has none.
func KindOf(err error) error {
	for _, kind := range []error{ErrIO, ErrDeserialize, ErrSerialize, ErrNotFound} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}
