package reference

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hormoiq/domain/core"
	"hormoiq/domain/hormone"
)

func male(age int) hormone.UserProfile {
	return hormone.UserProfile{Age: age, Gender: hormone.Male}
}

func female(age int, post bool) hormone.UserProfile {
	return hormone.UserProfile{Age: age, Gender: hormone.Female, Postmenopausal: post}
}

func TestDefault_Validates(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestDefault_ReturnsIndependentCopies(t *testing.T) {
	a := Default()
	a.Cortisol.Male[0].Max = 999
	b := Default()
	assert.Equal(t, 20.0, b.Cortisol.Male[0].Max)
}

func TestTable_Lookup(t *testing.T) {
	table := Default().Testosterone.Male

	tests := []struct {
		age   int
		label string
	}{
		{18, "18-25"},
		{25, "18-25"},
		{26, "26-35"},
		{35, "26-35"},
		{36, "36-45"},
		{65, "56-65"},
		{66, "66+"},
		{100, "66+"},
		{5, "18-25"},
	}
	for _, tt := range tests {
		row, err := table.Lookup(tt.age)
		require.NoError(t, err)
		assert.Equal(t, tt.label, row.Label, "age %d", tt.age)
	}

	_, err := Table{}.Lookup(30)
	assert.ErrorIs(t, err, core.ErrInvalidDataset)
}

func TestResolver_Testosterone(t *testing.T) {
	r := MustResolver(nil)

	row, err := r.Testosterone(male(35))
	require.NoError(t, err)
	assert.Equal(t, Range{Min: 500, Max: 900}, row.Range())
	assert.Equal(t, 300.0, row.LowThreshold)

	row, err = r.Testosterone(female(60, true))
	require.NoError(t, err)
	assert.Equal(t, "56+", row.Label)
}

func TestResolver_CortisolNearestTerminalBracket(t *testing.T) {
	r := MustResolver(nil)

	row, err := r.Cortisol(male(18))
	require.NoError(t, err)
	assert.Equal(t, "20-30", row.Label)

	row, err = r.Cortisol(female(95, true))
	require.NoError(t, err)
	assert.Equal(t, "71+", row.Label)
	assert.Equal(t, 24.0, row.Max)
}

func TestResolver_Progesterone(t *testing.T) {
	r := MustResolver(nil)

	row, err := r.Progesterone(female(30, false))
	require.NoError(t, err)
	assert.Equal(t, 145.0, row.Luteal)

	row, err = r.Progesterone(female(30, true))
	require.NoError(t, err)
	assert.Equal(t, 55.0, row.Baseline)

	row, err = r.Progesterone(female(55, false))
	require.NoError(t, err)
	assert.Equal(t, "46-50", row.Label)

	row, err = r.Progesterone(male(40))
	require.NoError(t, err)
	assert.Equal(t, 25.0, row.Baseline)
}

func TestResolver_UnsupportedGender(t *testing.T) {
	r := MustResolver(nil)
	p := hormone.UserProfile{Age: 30, Gender: "other"}

	for _, h := range hormone.All {
		_, err := r.For(h, p)
		assert.ErrorIs(t, err, core.ErrUnsupportedGender, h)
		assert.ErrorIs(t, err, core.ErrInvalidInput, h)
	}

	_, err := r.For("insulin", male(30))
	assert.ErrorIs(t, err, core.ErrUnsupportedHormone)
}

func TestResolver_Confidence(t *testing.T) {
	r := MustResolver(nil)

	assert.Equal(t, "high", r.Confidence(40, 8).Level)
	assert.Equal(t, "medium", r.Confidence(40, 5).Level)
	assert.Equal(t, "medium", r.Confidence(25, 10).Level)
	assert.Equal(t, "low", r.Confidence(12, 2.5).Level)
	assert.Equal(t, "low", r.Confidence(3, 0).Level)
	assert.Equal(t, "High confidence - 85% accuracy (±2 years)", r.Confidence(40, 8).Message())
}

func TestResolver_Percentile(t *testing.T) {
	r := MustResolver(nil)

	tests := []struct {
		delta float64
		tier  string
	}{
		{15, "elite"},
		{12, "elite"},
		{8, "exceptional"},
		{3, "good"},
		{0, "average"},
		{-2, "average"},
		{-3, "below"},
		{-8, "concerning"},
		{-15, "urgent"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.tier, r.Percentile(tt.delta).Tier, "delta %v", tt.delta)
	}
}

func TestValidate_RejectsUnsortedTables(t *testing.T) {
	ds := Default()
	ds.Cortisol.Female[1], ds.Cortisol.Female[2] = ds.Cortisol.Female[2], ds.Cortisol.Female[1]
	err := ds.Validate()
	assert.ErrorIs(t, err, core.ErrInvalidDataset)
	assert.Contains(t, err.Error(), "cortisol.female")

	ds = Default()
	tiers := ds.BioAge.PercentileTiers
	tiers[0], tiers[1] = tiers[1], tiers[0]
	assert.ErrorIs(t, ds.Validate(), core.ErrInvalidDataset)

	ds = Default()
	ds.BioAge.PercentileTiers[len(ds.BioAge.PercentileTiers)-1].MinDelta = -20
	assert.ErrorIs(t, ds.Validate(), core.ErrInvalidDataset)

	ds = Default()
	ds.BioAge.Weights.Cortisol = 0
	assert.ErrorIs(t, ds.Validate(), core.ErrInvalidDataset)

	_, err = NewResolver(ds)
	assert.Error(t, err)
}

func TestLoad_DefaultRoundTrip(t *testing.T) {
	data, err := Default().Marshal()
	require.NoError(t, err)

	ds, err := Load(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, DefaultVersion, ds.Version)
	assert.True(t, math.IsInf(ds.BioAge.PercentileTiers[len(ds.BioAge.PercentileTiers)-1].MinDelta, -1))

	h1, err := ds.Hash()
	require.NoError(t, err)
	h2, err := Default().Hash()
	require.NoError(t, err)
	assert.Equal(t, h2, h1)
}

func TestLoad_RejectsUnknownFieldsAndBadData(t *testing.T) {
	_, err := Load(strings.NewReader("version: x\ncortisoll: {}\n"))
	assert.ErrorIs(t, err, core.ErrInvalidDataset)

	_, err = Load(strings.NewReader("version: x\n"))
	assert.ErrorIs(t, err, core.ErrInvalidDataset)

	_, err = LoadFile("does/not/exist.yaml")
	assert.Error(t, err)
}

func TestDatasetHash_ChangesWithContent(t *testing.T) {
	a, err := Default().Hash()
	require.NoError(t, err)

	ds := Default()
	ds.Testosterone.Male[1].Max = 950
	b, err := ds.Hash()
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
