package astro

import (
	"errors"
	"fmt"
)

// Sentinel causes carried by InputError. Match them with errors.Is.
var (
	ErrInvalidDate       = errors.New("invalid calendar date")
	ErrInvalidTime       = errors.New("invalid time of day")
	ErrPolarLatitude     = errors.New("ascendant undefined at the poles")
	ErrInvalidCoordinate = errors.New("invalid coordinate")
)

// InputError reports a value rejected before any calculation ran.
type InputError struct {
	Field string
	Value any
	Err   error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%s %v: %v", e.Field, e.Value, e.Err)
}

func (e *InputError) Unwrap() error {
	return e.Err
}

func inputErr(field string, value any, cause error) error {
	return &InputError{Field: field, Value: value, Err: cause}
}

// InvalidBodyError reports a body name outside the nine chart bodies.
type InvalidBodyError struct {
	Name string
}

func (e *InvalidBodyError) Error() string {
	return fmt.Sprintf("unknown body %q", e.Name)
}
