package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound            = errors.New("resource not found")
	ErrProfileNotFound     = fmt.Errorf("%w: user profile", ErrNotFound)
	ErrMeasurementNotFound = fmt.Errorf("%w: measurement", ErrNotFound)
	ErrRecordNotFound      = fmt.Errorf("%w: score record", ErrNotFound)

	// Input contract violations
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnsupportedGender  = fmt.Errorf("%w: unsupported gender", ErrInvalidInput)
	ErrUnsupportedHormone = fmt.Errorf("%w: unsupported hormone", ErrInvalidInput)
	ErrMalformedValue     = fmt.Errorf("%w: malformed hormone value", ErrInvalidInput)
	ErrInvalidProfile     = fmt.Errorf("%w: invalid user profile", ErrInvalidInput)
	ErrInvalidDataset     = fmt.Errorf("%w: invalid reference dataset", ErrInvalidInput)

	// Data availability
	ErrNoMeasurements = errors.New("no measurements recorded")
)

// Error constructors with context
func NewNotFoundError(resource string, id string) error {
	return fmt.Errorf("%w: %s with id %s", ErrNotFound, resource, id)
}

func NewValidationError(field string, reason string) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidInput, field, reason)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}
