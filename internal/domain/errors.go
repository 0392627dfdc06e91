package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument reports caller input outside the accepted domain.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrDataNotFound reports a missing or incomplete coefficient table or shape.
	ErrDataNotFound = errors.New("data not found")
	// ErrNoMatch reports an identifier that maps to no known body.
	ErrNoMatch = errors.New("no match")
)

// InvalidArgumentError names the offending argument.
type InvalidArgumentError struct {
	Argument string // E.g., "loc1", "shape".
	Reason   string
}

// Error returns the error message for InvalidArgumentError.
func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid argument %s: %s", e.Argument, e.Reason)
}

// Is reports whether target is ErrInvalidArgument.
func (e *InvalidArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}

// DataNotFoundError is returned when a body's coefficient table or physical
// parameters are absent or incomplete.
type DataNotFoundError struct {
	Body string
	What string // E.g., "coefficient table", "shape".
}

// Error returns the error message for DataNotFoundError.
func (e *DataNotFoundError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("data not found: %s", e.What)
	}
	return fmt.Sprintf("data not found: %s for body %q", e.What, e.Body)
}

// Is reports whether target is ErrDataNotFound.
func (e *DataNotFoundError) Is(target error) bool {
	return target == ErrDataNotFound
}

// NoMatchError is returned when an identifier resolves to nothing. It also
// matches ErrInvalidArgument since the identifier came from the caller.
type NoMatchError struct {
	Kind  string // E.g., "planet number".
	Value string
}

// Error returns the error message for NoMatchError.
func (e *NoMatchError) Error() string {
	return fmt.Sprintf("no match for %s %s", e.Kind, e.Value)
}

// Is reports whether target is ErrNoMatch or ErrInvalidArgument.
func (e *NoMatchError) Is(target error) bool {
	return target == ErrNoMatch || target == ErrInvalidArgument
}
