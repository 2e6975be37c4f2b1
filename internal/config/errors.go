package config

import (
	"errors"
	"fmt"
)

// Validation errors. Validate wraps them in *FieldError.
var (
	// ErrTableSize indicates a trig table size outside the supported range.
	ErrTableSize = errors.New("config: unsupported table size")

	// ErrCurveShape indicates a curve count, step or iteration count that
	// cannot form a family.
	ErrCurveShape = errors.New("config: invalid curve shape")

	// ErrScreen indicates bad screen dimensions or clip radius.
	ErrScreen = errors.New("config: invalid screen geometry")

	// ErrScale indicates a scale or speed outside its limits.
	ErrScale = errors.New("config: view out of range")

	ErrBackend    = errors.New("config: unknown backend")
	ErrColourMode = errors.New("config: unknown colour mode")
	ErrInput      = errors.New("config: invalid input repeat")
)

// FieldError names the offending field.
type FieldError struct {
	Field string
	Value any
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%v: %s = %v", e.Err, e.Field, e.Value)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
