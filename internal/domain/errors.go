package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals that a fetch produced no result at all.
	ErrNotFound = errors.New("not found")
	// ErrInvalidNumber signals a pagination or window argument that is not a non-negative integer.
	ErrInvalidNumber = errors.New("invalid number")
	// ErrMisconfiguredSearch signals an unscoped search with no searchable fields configured.
	ErrMisconfiguredSearch = errors.New("no full-text search fields configured")
	// ErrBuilderSpent signals a second Fetch on a single-use builder.
	ErrBuilderSpent = errors.New("query builder already fetched")
	// ErrUnsupportedPredicate signals a predicate the store adapter cannot evaluate.
	ErrUnsupportedPredicate = errors.New("unsupported predicate")
	// ErrInvalidQuery signals malformed query input such as a bad where clause.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrInvalidRecord signals a record that cannot be stored (e.g. missing slug).
	ErrInvalidRecord = errors.New("invalid record")
)

// InvalidNumberError wraps ErrInvalidNumber with the offending argument.
type InvalidNumberError struct {
	Arg   string
	Input string
}

func (e *InvalidNumberError) Error() string {
	return fmt.Sprintf("%s: %s %q", ErrInvalidNumber.Error(), e.Arg, e.Input)
}

func (e *InvalidNumberError) Unwrap() error { return ErrInvalidNumber }

// NewInvalidNumber creates an invalid number error for the named argument.
func NewInvalidNumber(arg, input string) error {
	return &InvalidNumberError{Arg: arg, Input: input}
}
