package excel

// RawRowData represents a row of raw sheet data keyed by normalized header
type RawRowData map[string]string

// ExcelData represents the complete sheet
type ExcelData struct {
	Headers []string     // Normalized column headers
	Rows    []RawRowData // Data rows, in file order
}

// SkippedRow records a row the importer rejected
type SkippedRow struct {
	Row    int    `json:"row"` // 1-based, counting the header row
	Reason string `json:"reason"`
}
