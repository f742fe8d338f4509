package reference

import (
	"fmt"

	"hormoiq/domain/core"
	"hormoiq/domain/hormone"
)

// Resolver maps a user profile onto the bracket rows of a dataset
type Resolver struct {
	ds *Dataset
}

// NewResolver validates the dataset and wraps it. A nil dataset selects Default().
func NewResolver(ds *Dataset) (*Resolver, error) {
	if ds == nil {
		ds = Default()
	}
	if err := ds.Validate(); err != nil {
		return nil, err
	}
	return &Resolver{ds: ds}, nil
}

// MustResolver is NewResolver for datasets known to be valid, such as Default()
func MustResolver(ds *Dataset) *Resolver {
	r, err := NewResolver(ds)
	if err != nil {
		panic(err)
	}
	return r
}

// Dataset exposes the wrapped dataset; treat it as read-only
func (r *Resolver) Dataset() *Dataset { return r.ds }

// Cortisol returns the cortisol bracket for the profile
func (r *Resolver) Cortisol(p hormone.UserProfile) (Row, error) {
	t, err := pick(r.ds.Cortisol, p.Gender)
	if err != nil {
		return Row{}, err
	}
	return t.Lookup(p.Age)
}

// Testosterone returns the testosterone bracket for the profile
func (r *Resolver) Testosterone(p hormone.UserProfile) (Row, error) {
	t, err := pick(r.ds.Testosterone, p.Gender)
	if err != nil {
		return Row{}, err
	}
	return t.Lookup(p.Age)
}

// Progesterone returns the progesterone bracket. Postmenopausal women use the
// postmenopausal table regardless of age; men get the single baseline row.
func (r *Resolver) Progesterone(p hormone.UserProfile) (Row, error) {
	switch p.Gender {
	case hormone.Male:
		return r.ds.Progesterone.Male.Lookup(p.Age)
	case hormone.Female:
		if p.Postmenopausal {
			return r.ds.Progesterone.Postmenopausal.Lookup(p.Age)
		}
		return r.ds.Progesterone.Premenopausal.Lookup(p.Age)
	default:
		return Row{}, fmt.Errorf("%w: %q", core.ErrUnsupportedGender, p.Gender)
	}
}

// For dispatches on the hormone
func (r *Resolver) For(h hormone.Hormone, p hormone.UserProfile) (Row, error) {
	switch h {
	case hormone.Cortisol:
		return r.Cortisol(p)
	case hormone.Testosterone:
		return r.Testosterone(p)
	case hormone.Progesterone:
		return r.Progesterone(p)
	default:
		return Row{}, fmt.Errorf("%w: %q", core.ErrUnsupportedHormone, h)
	}
}

// Confidence returns the first confidence tier the data volume satisfies, falling
// back to the lowest tier.
func (r *Resolver) Confidence(tests int, weeks float64) ConfidenceTier {
	tiers := r.ds.BioAge.ConfidenceTiers
	for _, c := range tiers {
		if tests >= c.MinTests && weeks >= c.MinWeeks {
			return c
		}
	}
	return tiers[len(tiers)-1]
}

// Percentile returns the first percentile tier whose threshold is <= delta
func (r *Resolver) Percentile(delta float64) PercentileTier {
	tiers := r.ds.BioAge.PercentileTiers
	for _, t := range tiers {
		if delta >= t.MinDelta {
			return t
		}
	}
	return tiers[len(tiers)-1]
}

func pick(g GenderTables, gender hormone.Gender) (Table, error) {
	switch gender {
	case hormone.Male:
		return g.Male, nil
	case hormone.Female:
		return g.Female, nil
	default:
		return nil, fmt.Errorf("%w: %q", core.ErrUnsupportedGender, gender)
	}
}
