package ports

import (
	"context"

	"hormoiq/domain/core"
	"hormoiq/domain/hormone"
)

// MeasurementRepository defines the interface for hormone test storage
type MeasurementRepository interface {
	// Create stores a measurement and returns it with its assigned ID
	Create(ctx context.Context, m hormone.Measurement) (hormone.Measurement, error)

	// Get retrieves a single measurement
	Get(ctx context.Context, id core.MeasurementID) (hormone.Measurement, error)

	// ListByUser returns every measurement of a user, newest first
	ListByUser(ctx context.Context, userID core.UserID) ([]hormone.Measurement, error)

	// Delete removes a measurement owned by the user. A measurement of another
	// user reports ErrMeasurementNotFound.
	Delete(ctx context.Context, userID core.UserID, id core.MeasurementID) error

	// CountByUser returns how many measurements a user has logged
	CountByUser(ctx context.Context, userID core.UserID) (int, error)
}
