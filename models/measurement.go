package models

import (
	"database/sql"
	"time"

	"hormoiq/domain/core"
	"hormoiq/domain/hormone"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// HormoneTest is one row of the hormone_tests table
type HormoneTest struct {
	ID               uuid.UUID       `db:"id"`
	UserID           uuid.UUID       `db:"user_id"`
	TestDate         time.Time       `db:"test_date"`
	TimeOfDay        string          `db:"time_of_day"`
	Cortisol         sql.NullFloat64 `db:"cortisol"`
	Testosterone     sql.NullFloat64 `db:"testosterone"`
	Progesterone     sql.NullFloat64 `db:"progesterone"`
	SupplementsTaken pq.StringArray  `db:"supplements_taken"`
	ExerciseToday    bool            `db:"exercise_today"`
	CreatedAt        time.Time       `db:"created_at"`
}

// NewHormoneTest converts a measurement into its row form. A measurement without
// an ID gets a fresh time-ordered one.
func NewHormoneTest(m hormone.Measurement) (*HormoneTest, error) {
	if m.ID.IsEmpty() {
		m.ID = core.NewMeasurementID()
	}
	id, err := uuid.Parse(m.ID.String())
	if err != nil {
		return nil, core.NewValidationError("id", err.Error())
	}
	userID, err := uuid.Parse(m.UserID.String())
	if err != nil {
		return nil, core.NewValidationError("user_id", err.Error())
	}

	supplements := hormone.NormalizeInterventions(m.Interventions)
	if supplements == nil {
		supplements = []string{}
	}

	return &HormoneTest{
		ID:               id,
		UserID:           userID,
		TestDate:         m.Timestamp.UTC(),
		TimeOfDay:        string(m.TimeOfDay),
		Cortisol:         nullFloat(m.Cortisol),
		Testosterone:     nullFloat(m.Testosterone),
		Progesterone:     nullFloat(m.Progesterone),
		SupplementsTaken: pq.StringArray(supplements),
		ExerciseToday:    m.Exercised,
	}, nil
}

// Measurement converts the row into the domain type
func (t *HormoneTest) Measurement() hormone.Measurement {
	var interventions []string
	if len(t.SupplementsTaken) > 0 {
		interventions = append(interventions, t.SupplementsTaken...)
	}
	return hormone.Measurement{
		ID:            core.MeasurementID(t.ID.String()),
		UserID:        core.UserID(t.UserID.String()),
		Timestamp:     t.TestDate,
		TimeOfDay:     hormone.TimeOfDay(t.TimeOfDay),
		Cortisol:      floatPtr(t.Cortisol),
		Testosterone:  floatPtr(t.Testosterone),
		Progesterone:  floatPtr(t.Progesterone),
		Interventions: interventions,
		Exercised:     t.ExerciseToday,
	}
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
