package hormone

import (
	"fmt"
	"strings"
	"time"

	"hormoiq/domain/core"
)

// Hormone identifies one of the tracked analytes
type Hormone string

const (
	Cortisol     Hormone = "cortisol"
	Testosterone Hormone = "testosterone"
	Progesterone Hormone = "progesterone"
)

// All lists every tracked hormone in canonical order
var All = []Hormone{Cortisol, Testosterone, Progesterone}

// ParseHormone parses a hormone name, case-insensitively
func ParseHormone(s string) (Hormone, error) {
	switch Hormone(strings.ToLower(strings.TrimSpace(s))) {
	case Cortisol:
		return Cortisol, nil
	case Testosterone:
		return Testosterone, nil
	case Progesterone:
		return Progesterone, nil
	}
	return "", fmt.Errorf("%w: %q", core.ErrUnsupportedHormone, s)
}

// Unit returns the measurement unit the reference data is expressed in
func (h Hormone) Unit() string {
	switch h {
	case Cortisol:
		return "ng/mL"
	case Testosterone:
		return "ng/dL"
	case Progesterone:
		return "pg/mL"
	}
	return ""
}

// Gender is the biological sex the reference data is keyed by. Only male and female
// rows exist in the research tables.
type Gender string

const (
	Male   Gender = "male"
	Female Gender = "female"
)

// ParseGender parses a gender key. Anything other than male/female is an error.
func ParseGender(s string) (Gender, error) {
	switch Gender(strings.ToLower(strings.TrimSpace(s))) {
	case Male:
		return Male, nil
	case Female:
		return Female, nil
	}
	return "", fmt.Errorf("%w: %q", core.ErrUnsupportedGender, s)
}

// Valid reports whether g is a supported gender key
func (g Gender) Valid() bool {
	return g == Male || g == Female
}

// TimeOfDay is the coarse time-of-day bucket a test was taken in
type TimeOfDay string

const (
	Morning   TimeOfDay = "morning"
	Afternoon TimeOfDay = "afternoon"
	Evening   TimeOfDay = "evening"
	Night     TimeOfDay = "night"
)

// ParseTimeOfDay parses a time-of-day bucket
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	switch TimeOfDay(strings.ToLower(strings.TrimSpace(s))) {
	case Morning:
		return Morning, nil
	case Afternoon:
		return Afternoon, nil
	case Evening:
		return Evening, nil
	case Night:
		return Night, nil
	}
	return "", core.NewValidationError("time_of_day", fmt.Sprintf("unknown value %q", s))
}

// TimeOfDayAt buckets a local clock hour
func TimeOfDayAt(hour int) TimeOfDay {
	switch {
	case hour >= 5 && hour < 12:
		return Morning
	case hour >= 12 && hour < 17:
		return Afternoon
	case hour >= 17 && hour < 21:
		return Evening
	default:
		return Night
	}
}

// Measurement is one logged saliva test. Each hormone value is optional and
// independent of the others.
type Measurement struct {
	ID            core.MeasurementID `json:"id"`
	UserID        core.UserID        `json:"user_id"`
	Timestamp     time.Time          `json:"test_date"`
	TimeOfDay     TimeOfDay          `json:"time_of_day"`
	Cortisol      *float64           `json:"cortisol,omitempty"`
	Testosterone  *float64           `json:"testosterone,omitempty"`
	Progesterone  *float64           `json:"progesterone,omitempty"`
	Interventions []string           `json:"supplements_taken,omitempty"`
	Exercised     bool               `json:"exercise_today"`
}

// Value returns the measured value for h and whether it was reported
func (m Measurement) Value(h Hormone) (float64, bool) {
	var p *float64
	switch h {
	case Cortisol:
		p = m.Cortisol
	case Testosterone:
		p = m.Testosterone
	case Progesterone:
		p = m.Progesterone
	}
	if p == nil {
		return 0, false
	}
	return *p, true
}

// Has reports whether the test carries a value for h
func (m Measurement) Has(h Hormone) bool {
	_, ok := m.Value(h)
	return ok
}

// HormoneCount is the number of hormones reported by the test
func (m Measurement) HormoneCount() int {
	n := 0
	for _, h := range All {
		if m.Has(h) {
			n++
		}
	}
	return n
}

// HasIntervention reports whether name was logged on this test, ignoring case
// and surrounding whitespace
func (m Measurement) HasIntervention(name string) bool {
	name = strings.TrimSpace(name)
	for _, s := range m.Interventions {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return true
		}
	}
	return false
}

// UserProfile carries the demographic inputs every computation requires
type UserProfile struct {
	Age            int    `json:"age" db:"age" validate:"gte=18,lte=100"`
	Gender         Gender `json:"gender" db:"gender" validate:"required,oneof=male female"`
	Postmenopausal bool   `json:"is_postmenopausal" db:"is_postmenopausal"`
}

// IsPostmenopausal only holds for female profiles
func (p UserProfile) IsPostmenopausal() bool {
	return p.Gender == Female && p.Postmenopausal
}

// Float returns a pointer to v. Convenient for building measurements.
func Float(v float64) *float64 {
	return &v
}
