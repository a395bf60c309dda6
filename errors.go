package twiddle

import (
	"errors"
	"fmt"
)

var (
	// ErrSizeMismatch is returned when a binary operation combines instances of different sizes.
	ErrSizeMismatch = errors.New("size mismatch")

	// ErrIndexOutOfBounds is returned when a bit index falls outside [0, size).
	ErrIndexOutOfBounds = errors.New("index out of bounds")

	// ErrInvalidParameter is returned when a constructor or mutator receives an invalid scalar.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrShapeMismatch is returned when precision, register count, k or seed differ
	// between the operands of equal/merge/estimate.
	ErrShapeMismatch = errors.New("shape mismatch")
)

// IndexError reports an out-of-bounds bit index.
//
// errors.Is(err, ErrIndexOutOfBounds) holds for every IndexError.
type IndexError struct {
	Index uint64
	Size  uint64
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("index %d out of bounds [0, %d)", e.Index, e.Size)
}

func (e *IndexError) Unwrap() error { return ErrIndexOutOfBounds }

// SizeError reports a size mismatch between two operands.
type SizeError struct {
	Expected uint64
	Actual   uint64
}

func (e *SizeError) Error() string {
	return fmt.Sprintf("size mismatch: expected %d, got %d", e.Expected, e.Actual)
}

func (e *SizeError) Unwrap() error { return ErrSizeMismatch }

// ShapeError reports a mismatch of a shape parameter (precision, k, seed, ...).
type ShapeError struct {
	Field    string
	Expected any
	Actual   any
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("shape mismatch on %s: expected %v, got %v", e.Field, e.Expected, e.Actual)
}

func (e *ShapeError) Unwrap() error { return ErrShapeMismatch }

// ParameterError reports an invalid constructor or mutator argument.
//
// Both ErrInvalidParameter and the underlying cause (if any) match errors.Is.
type ParameterError struct {
	Name   string
	Value  any
	Reason string
	cause  error
}

func (e *ParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %s=%v: %s", e.Name, e.Value, e.Reason)
}

func (e *ParameterError) Unwrap() []error {
	if e.cause != nil {
		return []error{ErrInvalidParameter, e.cause}
	}
	return []error{ErrInvalidParameter}
}

// NewParameterError builds a ParameterError. cause may be nil.
func NewParameterError(name string, value any, reason string, cause error) *ParameterError {
	return &ParameterError{Name: name, Value: value, Reason: reason, cause: cause}
}

// CheckIndex returns an *IndexError when i is not in [0, size).
func CheckIndex(i, size uint64) error {
	if i >= size {
		return &IndexError{Index: i, Size: size}
	}
	return nil
}

// CheckSize returns a *SizeError when the two sizes differ.
func CheckSize(expected, actual uint64) error {
	if expected != actual {
		return &SizeError{Expected: expected, Actual: actual}
	}
	return nil
}

// CheckShape returns a *ShapeError when expected and actual differ.
func CheckShape[T comparable](field string, expected, actual T) error {
	if expected != actual {
		return &ShapeError{Field: field, Expected: expected, Actual: actual}
	}
	return nil
}

// MaxBits is the largest bit capacity accepted by any structure.
const MaxBits uint64 = 1 << 48

// CheckCapacity validates a bit capacity against (0, MaxBits].
func CheckCapacity(size uint64) error {
	if size == 0 || size > MaxBits {
		return NewParameterError("size", size, fmt.Sprintf("must be in (0, %d]", MaxBits), nil)
	}
	return nil
}
