package ui

import (
	"time"

	"hormoiq/domain/hormone"
)

// measurementRequest is the body of POST /api/users/:id/measurements
type measurementRequest struct {
	TestDate         *time.Time `json:"test_date"`
	TimeOfDay        string     `json:"time_of_day" binding:"omitempty,oneof=morning afternoon evening night"`
	Cortisol         *float64   `json:"cortisol" binding:"omitempty,gt=0"`
	Testosterone     *float64   `json:"testosterone" binding:"omitempty,gt=0"`
	Progesterone     *float64   `json:"progesterone" binding:"omitempty,gt=0"`
	SupplementsTaken []string   `json:"supplements_taken" binding:"max=50,dive,max=100"`
	ExerciseToday    bool       `json:"exercise_today"`
}

func (r measurementRequest) toMeasurement() hormone.Measurement {
	m := hormone.Measurement{
		TimeOfDay:     hormone.TimeOfDay(r.TimeOfDay),
		Cortisol:      r.Cortisol,
		Testosterone:  r.Testosterone,
		Progesterone:  r.Progesterone,
		Interventions: r.SupplementsTaken,
		Exercised:     r.ExerciseToday,
	}
	if r.TestDate != nil {
		m.Timestamp = r.TestDate.UTC()
	}
	return m
}

// profileRequest is the body of PUT /api/users/:id/profile
type profileRequest struct {
	Age              int    `json:"age" binding:"required"`
	Gender           string `json:"gender" binding:"required"`
	IsPostmenopausal bool   `json:"is_postmenopausal"`
}

func (r profileRequest) toProfile() hormone.UserProfile {
	return hormone.UserProfile{
		Age:            r.Age,
		Gender:         hormone.Gender(r.Gender),
		Postmenopausal: r.IsPostmenopausal,
	}
}
