package reference

import (
	"fmt"
	"math"

	"hormoiq/domain/core"
)

// Validate checks that every table is populated and sorted the way the lookups expect.
func (d *Dataset) Validate() error {
	if d == nil {
		return fmt.Errorf("%w: nil dataset", core.ErrInvalidDataset)
	}
	if d.Version == "" {
		return fmt.Errorf("%w: version is required", core.ErrInvalidDataset)
	}

	ranged := map[string]Table{
		"cortisol.male":       d.Cortisol.Male,
		"cortisol.female":     d.Cortisol.Female,
		"testosterone.male":   d.Testosterone.Male,
		"testosterone.female": d.Testosterone.Female,
	}
	for name, t := range ranged {
		if err := validateTable(name, t); err != nil {
			return err
		}
		for _, row := range t {
			if row.Min <= 0 || row.Max <= row.Min {
				return fmt.Errorf("%w: %s bracket %q needs 0 < min < max", core.ErrInvalidDataset, name, row.Label)
			}
		}
	}
	for _, t := range []struct {
		name  string
		table Table
	}{{"testosterone.male", d.Testosterone.Male}, {"testosterone.female", d.Testosterone.Female}} {
		for _, row := range t.table {
			if row.LowThreshold <= 0 {
				return fmt.Errorf("%w: %s bracket %q missing low threshold", core.ErrInvalidDataset, t.name, row.Label)
			}
		}
	}

	if err := validateTable("progesterone.premenopausal", d.Progesterone.Premenopausal); err != nil {
		return err
	}
	for _, row := range d.Progesterone.Premenopausal {
		if row.Luteal <= 0 || row.Follicular <= 0 {
			return fmt.Errorf("%w: progesterone.premenopausal bracket %q needs follicular and luteal values", core.ErrInvalidDataset, row.Label)
		}
	}
	for name, t := range map[string]Table{
		"progesterone.postmenopausal": d.Progesterone.Postmenopausal,
		"progesterone.male":           d.Progesterone.Male,
	} {
		if err := validateTable(name, t); err != nil {
			return err
		}
		for _, row := range t {
			if row.Baseline <= 0 {
				return fmt.Errorf("%w: %s bracket %q missing baseline", core.ErrInvalidDataset, name, row.Label)
			}
		}
	}

	return d.BioAge.validate()
}

func validateTable(name string, t Table) error {
	if len(t) == 0 {
		return fmt.Errorf("%w: %s has no brackets", core.ErrInvalidDataset, name)
	}
	for i := 1; i < len(t); i++ {
		if t[i].From <= t[i-1].From {
			return fmt.Errorf("%w: %s brackets not sorted at %q", core.ErrInvalidDataset, name, t[i].Label)
		}
	}
	return nil
}

func (p BioAgeParams) validate() error {
	w := p.Weights
	for name, v := range map[string]float64{
		"cortisol":            w.Cortisol,
		"testosterone_male":   w.TestosteroneMale,
		"testosterone_female": w.TestosteroneFemale,
		"progesterone":        w.Progesterone,
		"ratio":               w.Ratio,
		"behavior":            w.Behavior,
	} {
		if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: weight %s must be positive", core.ErrInvalidDataset, name)
		}
	}
	if p.MaxYounger < 0 || p.MaxOlder < 0 {
		return fmt.Errorf("%w: bio-age limits must not be negative", core.ErrInvalidDataset)
	}

	if len(p.ConfidenceTiers) == 0 {
		return fmt.Errorf("%w: no confidence tiers", core.ErrInvalidDataset)
	}
	for i, c := range p.ConfidenceTiers {
		if c.Level == "" || c.MinTests <= 0 {
			return fmt.Errorf("%w: confidence tier %d incomplete", core.ErrInvalidDataset, i)
		}
		if i > 0 {
			prev := p.ConfidenceTiers[i-1]
			if c.MinTests >= prev.MinTests || c.MinWeeks > prev.MinWeeks {
				return fmt.Errorf("%w: confidence tiers not sorted at %q", core.ErrInvalidDataset, c.Level)
			}
		}
	}

	n := len(p.PercentileTiers)
	if n == 0 {
		return fmt.Errorf("%w: no percentile tiers", core.ErrInvalidDataset)
	}
	for i := 1; i < n; i++ {
		if p.PercentileTiers[i].MinDelta >= p.PercentileTiers[i-1].MinDelta {
			return fmt.Errorf("%w: percentile tiers not sorted at %q", core.ErrInvalidDataset, p.PercentileTiers[i].Tier)
		}
	}
	if !math.IsInf(p.PercentileTiers[n-1].MinDelta, -1) {
		return fmt.Errorf("%w: last percentile tier must catch every delta", core.ErrInvalidDataset)
	}
	return nil
}
