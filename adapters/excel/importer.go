package excel

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"hormoiq/domain/core"
	"hormoiq/domain/hormone"
	"hormoiq/domain/impact"
	"hormoiq/internal"
	apperrors "hormoiq/internal/errors"

	"github.com/xuri/excelize/v2"
)

// ImportResult is the outcome of one import
type ImportResult struct {
	Measurements []hormone.Measurement `json:"measurements"`
	Skipped      []SkippedRow          `json:"skipped"`
}

// Importer maps sheet rows onto validated measurements
type Importer struct {
	config  ImportConfig
	catalog *impact.Catalog
	logger  *internal.Logger
}

// NewImporter creates an importer. The catalog decides which interventions count
// as exercise when a row has no explicit exercise column.
func NewImporter(config ImportConfig, catalog *impact.Catalog, logger *internal.Logger) *Importer {
	if catalog == nil {
		catalog = impact.DefaultCatalog()
	}
	if logger == nil {
		logger = internal.DefaultLogger
	}
	if config.Location == nil {
		config.Location = time.UTC
	}
	return &Importer{config: config, catalog: catalog, logger: logger.With("import")}
}

// ImportFile reads an xlsx or csv file and converts it for userID
func (i *Importer) ImportFile(path string, userID core.UserID) (*ImportResult, error) {
	data, err := NewDataReader(path, i.config.Sheet, i.logger).ReadData()
	if err != nil {
		return nil, apperrors.ImportFailed(path, err)
	}
	res, err := i.Convert(data, userID)
	if err != nil {
		return nil, apperrors.ImportFailed(path, err)
	}
	i.logger.Info("imported %d tests from %s (%d rows skipped)", len(res.Measurements), path, len(res.Skipped))
	return res, nil
}

// Convert maps parsed rows onto measurements. Rows failing the logging bounds are
// skipped when the config allows it and fail the import otherwise.
func (i *Importer) Convert(data *ExcelData, userID core.UserID) (*ImportResult, error) {
	if !hasColumn(data.Headers, "test_date") {
		return nil, fmt.Errorf("%w: missing test_date column", core.ErrInvalidInput)
	}

	res := &ImportResult{}
	for idx, row := range data.Rows {
		rowNum := idx + 2
		if isBlank(row) {
			continue
		}
		m, err := i.convertRow(row, userID)
		if err == nil {
			err = m.ValidateForLogging()
		}
		if err != nil {
			if !i.config.SkipInvalidRows {
				return nil, fmt.Errorf("row %d: %w", rowNum, err)
			}
			i.logger.Warn("skipping row %d: %v", rowNum, err)
			res.Skipped = append(res.Skipped, SkippedRow{Row: rowNum, Reason: err.Error()})
			continue
		}
		res.Measurements = append(res.Measurements, m)
	}

	if len(res.Measurements) == 0 {
		return nil, fmt.Errorf("%w: no valid rows in %d data rows", core.ErrNoMeasurements, len(data.Rows))
	}
	return res, nil
}

func (i *Importer) convertRow(row RawRowData, userID core.UserID) (hormone.Measurement, error) {
	ts, err := i.parseDate(row["test_date"])
	if err != nil {
		return hormone.Measurement{}, err
	}

	m := hormone.Measurement{
		ID:        core.NewMeasurementID(),
		UserID:    userID,
		Timestamp: ts,
	}

	if raw := row["time_of_day"]; raw != "" {
		if m.TimeOfDay, err = hormone.ParseTimeOfDay(raw); err != nil {
			return m, err
		}
	} else {
		m.TimeOfDay = hormone.TimeOfDayAt(ts.Hour())
	}

	for _, h := range hormone.All {
		v, err := parseValue(row[string(h)], h)
		if err != nil {
			return m, err
		}
		switch h {
		case hormone.Cortisol:
			m.Cortisol = v
		case hormone.Testosterone:
			m.Testosterone = v
		case hormone.Progesterone:
			m.Progesterone = v
		}
	}

	m.Interventions = hormone.NormalizeInterventions(i.splitList(row["supplements_taken"]))

	if raw, ok := row["exercise_today"]; ok && raw != "" {
		if m.Exercised, err = parseBool(raw); err != nil {
			return m, err
		}
	} else {
		m.Exercised = i.catalog.AnyExercise(m.Interventions)
	}
	return m, nil
}

// parseDate accepts Excel serial dates as well as the configured text layouts
func (i *Importer) parseDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, core.NewValidationError("test_date", "value is required")
	}
	if serial, err := strconv.ParseFloat(raw, 64); err == nil {
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return time.Time{}, core.NewValidationError("test_date", err.Error())
		}
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, i.config.Location), nil
	}
	for _, layout := range i.config.DateLayouts {
		if t, err := time.ParseInLocation(layout, raw, i.config.Location); err == nil {
			return t, nil
		}
	}
	return time.Time{}, core.NewValidationError("test_date", fmt.Sprintf("unrecognised date %q", raw))
}

func (i *Importer) splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	return strings.FieldsFunc(raw, func(r rune) bool {
		return strings.ContainsRune(i.config.ListSeparators, r)
	})
}

func parseValue(raw string, h hormone.Hormone) (*float64, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %s=%q", core.ErrMalformedValue, h, raw)
	}
	return &v, nil
}

func parseBool(raw string) (bool, error) {
	switch strings.ToLower(raw) {
	case "1", "true", "yes", "y", "x":
		return true, nil
	case "0", "false", "no", "n", "":
		return false, nil
	}
	return false, core.NewValidationError("exercise_today", fmt.Sprintf("unrecognised value %q", raw))
}

func hasColumn(headers []string, name string) bool {
	for _, h := range headers {
		if h == name {
			return true
		}
	}
	return false
}

func isBlank(row RawRowData) bool {
	for _, v := range row {
		if v != "" {
			return false
		}
	}
	return true
}
