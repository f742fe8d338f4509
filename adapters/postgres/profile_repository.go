package postgres

import (
	"context"
	"fmt"

	"hormoiq/domain/core"
	"hormoiq/domain/hormone"
	"hormoiq/models"
	"hormoiq/ports"

	"github.com/jmoiron/sqlx"
)

// ProfileRepositoryImpl implements ProfileRepository on the users table
type ProfileRepositoryImpl struct {
	db *sqlx.DB
}

// NewProfileRepository creates a new PostgreSQL profile repository
func NewProfileRepository(db *sqlx.DB) ports.ProfileRepository {
	return &ProfileRepositoryImpl{db: db}
}

// GetProfile retrieves the profile of a user
func (r *ProfileRepositoryImpl) GetProfile(ctx context.Context, userID core.UserID) (hormone.UserProfile, error) {
	var user models.User
	err := r.db.GetContext(ctx, &user, `
		SELECT id, age, gender, is_postmenopausal, created_at, updated_at
		FROM users
		WHERE id = $1
	`, userID.String())
	if err != nil {
		return hormone.UserProfile{}, translate(err, "get profile",
			fmt.Errorf("%w: %s", core.ErrProfileNotFound, userID))
	}
	return user.Profile(), nil
}

// UpsertProfile creates the user or replaces its profile
func (r *ProfileRepositoryImpl) UpsertProfile(ctx context.Context, userID core.UserID, profile hormone.UserProfile) error {
	user, err := models.NewUser(userID, profile)
	if err != nil {
		return err
	}

	_, err = r.db.NamedExecContext(ctx, `
		INSERT INTO users (id, age, gender, is_postmenopausal, created_at, updated_at)
		VALUES (:id, :age, :gender, :is_postmenopausal, NOW(), NOW())
		ON CONFLICT (id) DO UPDATE SET
			age = EXCLUDED.age,
			gender = EXCLUDED.gender,
			is_postmenopausal = EXCLUDED.is_postmenopausal,
			updated_at = NOW()
	`, user)
	return translate(err, "upsert profile", nil)
}
