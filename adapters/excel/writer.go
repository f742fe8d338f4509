package excel

import (
	"fmt"
	"io"
	"strings"

	"hormoiq/domain/hormone"

	"github.com/xuri/excelize/v2"
)

// TestsSheet is the sheet name used by WriteWorkbook
const TestsSheet = "Tests"

var exportHeaders = []string{
	"test_date", "time_of_day", "cortisol", "testosterone", "progesterone", "supplements_taken", "exercise_today",
}

// WriteWorkbook writes measurements in the layout the importer reads back
func WriteWorkbook(w io.Writer, ms []hormone.Measurement) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), TestsSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	header := make([]interface{}, len(exportHeaders))
	for i, h := range exportHeaders {
		header[i] = h
	}
	if err := f.SetSheetRow(TestsSheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, m := range ms {
		row := []interface{}{
			m.Timestamp.Format("2006-01-02 15:04:05"),
			string(m.TimeOfDay),
			cellValue(m.Cortisol),
			cellValue(m.Testosterone),
			cellValue(m.Progesterone),
			strings.Join(m.Interventions, ";"),
			m.Exercised,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(TestsSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := f.SetPanes(TestsSheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
		return fmt.Errorf("failed to freeze header: %w", err)
	}

	_, err := f.WriteTo(w)
	return err
}

func cellValue(v *float64) interface{} {
	if v == nil {
		return ""
	}
	return *v
}
