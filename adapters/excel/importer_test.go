package excel

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"hormoiq/domain/core"
	"hormoiq/domain/hormone"
	"hormoiq/internal"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const userID = core.UserID("0190f7a4-2b7c-7d1e-9a3b-5c6d7e8f9a0b")

func quietImporter(cfg ImportConfig) *Importer {
	return NewImporter(cfg, nil, internal.NewLoggerTo(&bytes.Buffer{}, internal.LogLevelError))
}

func TestImporter_CSV(t *testing.T) {
	csv := strings.Join([]string{
		"Date,Time of Day,Cortisol,Testosterone,Progesterone,Supplements,Exercise",
		"2025-03-01 07:30,morning,12.5,650,,Vitamin D;Magnesium,",
		"2025-03-02 18:10,,14,,,Heavy Workout,",
		"2025-03-03 08:00,morning,99,,,,no",
		"2025-03-04 08:00,morning,abc,,,,",
		",,,,,,",
		"2025-03-05,morning,11,700,,,yes",
	}, "\n")

	data, err := ReadCSV(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Contains(t, data.Headers, "test_date")
	assert.Contains(t, data.Headers, "supplements_taken")

	res, err := quietImporter(DefaultImportConfig()).Convert(data, userID)
	require.NoError(t, err)
	require.Len(t, res.Measurements, 3)

	first := res.Measurements[0]
	assert.Equal(t, userID, first.UserID)
	assert.Equal(t, time.Date(2025, 3, 1, 7, 30, 0, 0, time.UTC), first.Timestamp)
	assert.Equal(t, []string{"Vitamin D", "Magnesium"}, first.Interventions)
	assert.False(t, first.Exercised)
	assert.Nil(t, first.Progesterone)

	second := res.Measurements[1]
	assert.Equal(t, hormone.Evening, second.TimeOfDay, "time of day derived from the hour")
	assert.True(t, second.Exercised, "exercise inferred from the catalog")

	assert.True(t, res.Measurements[2].Exercised)

	require.Len(t, res.Skipped, 2)
	assert.Equal(t, 4, res.Skipped[0].Row)
	assert.Contains(t, res.Skipped[0].Reason, "cortisol")
	assert.Equal(t, 5, res.Skipped[1].Row)
}

func TestImporter_StrictModeFailsOnBadRow(t *testing.T) {
	cfg := DefaultImportConfig()
	cfg.SkipInvalidRows = false
	data := &ExcelData{
		Headers: []string{"test_date", "cortisol"},
		Rows:    []RawRowData{{"test_date": "2025-03-01", "cortisol": "1"}},
	}
	_, err := quietImporter(cfg).Convert(data, userID)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrInvalidInput)
	assert.Contains(t, err.Error(), "row 2")
}

func TestImporter_MissingDateColumn(t *testing.T) {
	data := &ExcelData{Headers: []string{"cortisol"}, Rows: []RawRowData{{"cortisol": "10"}}}
	_, err := quietImporter(DefaultImportConfig()).Convert(data, userID)
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestImporter_NoValidRows(t *testing.T) {
	data := &ExcelData{
		Headers: []string{"test_date", "cortisol"},
		Rows:    []RawRowData{{"test_date": "2025-03-01", "cortisol": ""}},
	}
	_, err := quietImporter(DefaultImportConfig()).Convert(data, userID)
	assert.ErrorIs(t, err, core.ErrNoMeasurements)
}

func TestImporter_SerialDates(t *testing.T) {
	imp := quietImporter(DefaultImportConfig())
	// 45717.3125 is 2025-03-01 07:30 in the 1900 date system
	ts, err := imp.parseDate("45717.3125")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 1, 7, 30, 0, 0, time.UTC), ts)

	_, err = imp.parseDate("next tuesday")
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestWorkbookRoundTrip(t *testing.T) {
	base := time.Date(2025, 3, 1, 7, 0, 0, 0, time.UTC)
	ms := []hormone.Measurement{
		{Timestamp: base, TimeOfDay: hormone.Morning, Cortisol: hormone.Float(12), Testosterone: hormone.Float(640.5)},
		{Timestamp: base.Add(core.Day), TimeOfDay: hormone.Morning, Cortisol: hormone.Float(9.5),
			Interventions: []string{"Ashwagandha", "Light Exercise"}, Exercised: true},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteWorkbook(&buf, ms))

	path := filepath.Join(t.TempDir(), "history.xlsx")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))

	res, err := quietImporter(DefaultImportConfig()).ImportFile(path, userID)
	require.NoError(t, err)
	require.Len(t, res.Measurements, 2)
	assert.Empty(t, res.Skipped)

	got := res.Measurements[1]
	assert.Equal(t, base.Add(core.Day), got.Timestamp)
	assert.Equal(t, []string{"Ashwagandha", "Light Exercise"}, got.Interventions)
	assert.True(t, got.Exercised)
	v, ok := res.Measurements[0].Value(hormone.Testosterone)
	assert.True(t, ok)
	assert.Equal(t, 640.5, v)
}

func TestImportFile_Missing(t *testing.T) {
	_, err := quietImporter(DefaultImportConfig()).ImportFile(filepath.Join(t.TempDir(), "nope.csv"), userID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestReadJSON_ExportedHistory(t *testing.T) {
	export := `{"user": "x", "tests": [
		{"test_date": "2025-03-01T07:30:00.000Z", "time_of_day": "morning", "cortisol": 12.5,
		 "testosterone": null, "supplements_taken": ["Vitamin D", "Zinc"], "exercise_today": false},
		{"test_date": "2025-03-02T18:00:00Z", "cortisol": 14, "exercise_today": true}
	]}`

	data, err := ReadJSON(strings.NewReader(export), "")
	require.NoError(t, err)
	assert.Equal(t, []string{"test_date", "time_of_day", "cortisol", "testosterone", "supplements_taken", "exercise_today"}, data.Headers)
	assert.Equal(t, "Vitamin D;Zinc", data.Rows[0]["supplements_taken"])
	assert.Equal(t, "", data.Rows[0]["testosterone"])

	res, err := quietImporter(DefaultImportConfig()).Convert(data, userID)
	require.NoError(t, err)
	require.Len(t, res.Measurements, 2)
	assert.Equal(t, time.Date(2025, 3, 1, 7, 30, 0, 0, time.UTC), res.Measurements[0].Timestamp)
	assert.Equal(t, []string{"Vitamin D", "Zinc"}, res.Measurements[0].Interventions)
	assert.Nil(t, res.Measurements[0].Testosterone)
	assert.True(t, res.Measurements[1].Exercised)
	assert.Equal(t, hormone.Evening, res.Measurements[1].TimeOfDay)
}

func TestReadJSON_Paths(t *testing.T) {
	data, err := ReadJSON(strings.NewReader(`[{"date": "2025-03-01", "cortisol": 10}]`), "")
	require.NoError(t, err)
	assert.Equal(t, []string{"test_date", "cortisol"}, data.Headers)

	data, err = ReadJSON(strings.NewReader(`{"payload": {"rows": [{"date": "2025-03-01"}]}}`), "payload.rows")
	require.NoError(t, err)
	assert.Len(t, data.Rows, 1)

	_, err = ReadJSON(strings.NewReader(`{"count": 3}`), "")
	assert.Error(t, err)

	_, err = ReadJSON(strings.NewReader(`{not json`), "")
	assert.Error(t, err)
}
