package models

import (
	"time"

	"hormoiq/domain/core"
	"hormoiq/domain/hormone"

	"github.com/google/uuid"
)

// User represents a system user together with the profile the engines need
type User struct {
	ID               uuid.UUID `json:"id" db:"id"`
	Age              int       `json:"age" db:"age"`
	Gender           string    `json:"gender" db:"gender"`
	IsPostmenopausal bool      `json:"is_postmenopausal" db:"is_postmenopausal"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at"`
}

// NewUser builds a user row from a validated profile
func NewUser(userID core.UserID, profile hormone.UserProfile) (*User, error) {
	id, err := uuid.Parse(userID.String())
	if err != nil {
		return nil, core.NewValidationError("user_id", err.Error())
	}
	if err := profile.Validate(); err != nil {
		return nil, err
	}
	return &User{
		ID:               id,
		Age:              profile.Age,
		Gender:           string(profile.Gender),
		IsPostmenopausal: profile.Postmenopausal,
	}, nil
}

// Profile converts the row back into the domain profile
func (u *User) Profile() hormone.UserProfile {
	return hormone.UserProfile{
		Age:            u.Age,
		Gender:         hormone.Gender(u.Gender),
		Postmenopausal: u.IsPostmenopausal,
	}
}
