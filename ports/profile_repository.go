package ports

import (
	"context"

	"hormoiq/domain/core"
	"hormoiq/domain/hormone"
)

// ProfileRepository defines the interface for user profile storage
type ProfileRepository interface {
	// GetProfile returns the stored profile or core.ErrProfileNotFound
	GetProfile(ctx context.Context, userID core.UserID) (hormone.UserProfile, error)

	// UpsertProfile creates or replaces the profile of a user
	UpsertProfile(ctx context.Context, userID core.UserID, profile hormone.UserProfile) error
}
