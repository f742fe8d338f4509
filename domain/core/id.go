package core

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id ID) IsEmpty() bool {
	return id == ""
}

// Domain-specific ID types
type (
	UserID        ID
	MeasurementID ID
	RecordID      ID
)

// String conversions for domain IDs
func (id UserID) String() string        { return ID(id).String() }
func (id MeasurementID) String() string { return ID(id).String() }
func (id RecordID) String() string      { return ID(id).String() }

func (id UserID) IsEmpty() bool        { return ID(id).IsEmpty() }
func (id MeasurementID) IsEmpty() bool { return ID(id).IsEmpty() }
func (id RecordID) IsEmpty() bool      { return ID(id).IsEmpty() }

// NewMeasurementID creates a time-ordered measurement identifier
func NewMeasurementID() MeasurementID { return MeasurementID(NewID()) }

// NewRecordID creates a time-ordered identifier for a stored score record
func NewRecordID() RecordID { return RecordID(NewID()) }

// ParseUserID parses a string into UserID. Only UUIDs are accepted.
func ParseUserID(s string) (UserID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("%w: user ID cannot be empty", ErrInvalidInput)
	}
	if _, err := uuid.Parse(s); err != nil {
		return "", fmt.Errorf("%w: user ID %q is not a UUID", ErrInvalidInput, s)
	}
	return UserID(s), nil
}

// ParseMeasurementID parses a string into MeasurementID
func ParseMeasurementID(s string) (MeasurementID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("%w: measurement ID cannot be empty", ErrInvalidInput)
	}
	if _, err := uuid.Parse(s); err != nil {
		return "", fmt.Errorf("%w: measurement ID %q is not a UUID", ErrInvalidInput, s)
	}
	return MeasurementID(s), nil
}
