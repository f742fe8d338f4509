package excel

import "time"

// ImportConfig controls how sheets are mapped onto measurements
type ImportConfig struct {
	Sheet           string   `json:"sheet"` // empty means the first sheet
	DateLayouts     []string `json:"date_layouts"`
	ListSeparators  string   `json:"list_separators"`
	Location        *time.Location
	SkipInvalidRows bool `json:"skip_invalid_rows"`
}

// DefaultImportConfig returns sensible defaults for workbook and CSV imports
func DefaultImportConfig() ImportConfig {
	return ImportConfig{
		DateLayouts: []string{
			time.RFC3339,
			"2006-01-02 15:04:05",
			"2006-01-02 15:04",
			"2006-01-02T15:04",
			"2006-01-02",
			"01/02/2006 15:04",
			"01/02/2006",
		},
		ListSeparators:  ";,|",
		Location:        time.UTC,
		SkipInvalidRows: true,
	}
}

// Column aliases accepted in the header row
var columnAliases = map[string]string{
	"test_date":         "test_date",
	"date":              "test_date",
	"timestamp":         "test_date",
	"time_of_day":       "time_of_day",
	"cortisol":          "cortisol",
	"testosterone":      "testosterone",
	"progesterone":      "progesterone",
	"supplements_taken": "supplements_taken",
	"supplements":       "supplements_taken",
	"interventions":     "supplements_taken",
	"exercise_today":    "exercise_today",
	"exercise":          "exercise_today",
}
