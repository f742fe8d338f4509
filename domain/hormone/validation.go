package hormone

import (
	"fmt"
	"math"

	"hormoiq/domain/core"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate checks the profile against the engine contract. The gender check comes
// first so unsupported keys surface as ErrUnsupportedGender rather than a generic
// validation failure.
func (p UserProfile) Validate() error {
	if !p.Gender.Valid() {
		return fmt.Errorf("%w: %q", core.ErrUnsupportedGender, p.Gender)
	}
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("%w: %v", core.ErrInvalidProfile, err)
	}
	return nil
}

// Validate checks the measurement against the engine contract: a timestamp must be
// present and every reported value must be a finite positive number.
func (m Measurement) Validate() error {
	if m.Timestamp.IsZero() {
		return core.NewValidationError("test_date", "timestamp is required")
	}
	for _, h := range All {
		v, ok := m.Value(h)
		if !ok {
			continue
		}
		if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
			return fmt.Errorf("%w: %s=%v in test %s", core.ErrMalformedValue, h, v, m.ID)
		}
	}
	return nil
}

// ValidateHistory validates every measurement in ms
func ValidateHistory(ms []Measurement) error {
	for i := range ms {
		if err := ms[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Bounds is the accepted logging range for one hormone
type Bounds struct {
	Min      float64
	Max      float64
	Decimals int
}

// LoggingBounds are the values the logging flow accepts. They are wider than any
// optimal range and exist to catch typos and unit mix-ups at ingest.
var LoggingBounds = map[Hormone]Bounds{
	Cortisol:     {Min: 2.0, Max: 50.0, Decimals: 1},
	Testosterone: {Min: 15.0, Max: 1200.0, Decimals: 1},
	Progesterone: {Min: 0.1, Max: 500.0, Decimals: 1},
}

// ValidateForLogging applies the ingest bounds on top of Validate
func (m Measurement) ValidateForLogging() error {
	if err := m.Validate(); err != nil {
		return err
	}
	if m.HormoneCount() == 0 {
		return core.NewValidationError("hormones", "at least one hormone value is required")
	}
	for _, h := range All {
		v, ok := m.Value(h)
		if !ok {
			continue
		}
		b := LoggingBounds[h]
		if v < b.Min || v > b.Max {
			return core.NewValidationError(string(h),
				fmt.Sprintf("must be between %g and %g %s", b.Min, b.Max, h.Unit()))
		}
	}
	return nil
}

// FormatValue renders v with the hormone's display precision
func FormatValue(h Hormone, v float64) string {
	b, ok := LoggingBounds[h]
	if !ok {
		return fmt.Sprintf("%g", v)
	}
	return fmt.Sprintf("%.*f", b.Decimals, v)
}
