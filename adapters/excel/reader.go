package excel

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"hormoiq/internal"

	"github.com/tidwall/gjson"
	"github.com/xuri/excelize/v2"
)

// DataReader handles reading Excel and CSV files
type DataReader struct {
	filePath string
	fileType string // "xlsx", "csv" or "json"
	sheet    string
	logger   *internal.Logger
}

// NewDataReader creates a new data reader that handles Excel, CSV and JSON exports.
// For JSON files the sheet names the path of the test array (empty finds it).
func NewDataReader(filePath, sheet string, logger *internal.Logger) *DataReader {
	fileType := "xlsx"
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".csv":
		fileType = "csv"
	case ".json":
		fileType = "json"
	}
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &DataReader{filePath: filePath, fileType: fileType, sheet: sheet, logger: logger.With("excel")}
}

// ReadData reads data from Excel or CSV files into structured format
func (r *DataReader) ReadData() (*ExcelData, error) {
	r.logger.Debug("reading %s file: %s", r.fileType, r.filePath)

	file, err := os.Open(r.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s file not found: %s", strings.ToUpper(r.fileType), r.filePath)
		}
		return nil, fmt.Errorf("failed to open %s file: %w", r.fileType, err)
	}
	defer file.Close()

	switch r.fileType {
	case "csv":
		return r.readCSV(file)
	case "json":
		return r.readJSON(file)
	default:
		return r.readWorkbook(file)
	}
}

// ReadWorkbook reads one sheet of an xlsx stream
func ReadWorkbook(src io.Reader, sheet string) (*ExcelData, error) {
	return (&DataReader{fileType: "xlsx", sheet: sheet, logger: internal.DefaultLogger.With("excel")}).readWorkbook(src)
}

// ReadCSV reads a CSV stream
func ReadCSV(src io.Reader) (*ExcelData, error) {
	return (&DataReader{fileType: "csv", logger: internal.DefaultLogger.With("excel")}).readCSV(src)
}

// ReadJSON reads an exported JSON history. dataPath is a gjson path to the array
// of tests; when empty the document itself or its "tests" or "data" member is used.
func ReadJSON(src io.Reader, dataPath string) (*ExcelData, error) {
	return (&DataReader{fileType: "json", sheet: dataPath, logger: internal.DefaultLogger.With("excel")}).readJSON(src)
}

func (r *DataReader) readWorkbook(src io.Reader) (*ExcelData, error) {
	start := time.Now()
	f, err := excelize.OpenReader(src)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheet := r.sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook has no sheets")
		}
		sheet = sheets[0]
	}

	// Raw values keep date cells as serial numbers instead of locale formatted text
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	r.logger.Debug("sheet %q read in %.2fms (%d rows)", sheet, float64(time.Since(start).Nanoseconds())/1e6, len(rows))

	return r.processRows(rows)
}

func (r *DataReader) readCSV(src io.Reader) (*ExcelData, error) {
	reader := csv.NewReader(src)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	return r.processRows(rows)
}

func (r *DataReader) readJSON(src io.Reader) (*ExcelData, error) {
	body, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("failed to read JSON file: %w", err)
	}
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("JSON file is not valid JSON")
	}

	var tests gjson.Result
	if r.sheet != "" {
		tests = gjson.GetBytes(body, r.sheet)
	} else {
		for _, path := range []string{"@this", "tests", "data"} {
			if res := gjson.GetBytes(body, path); res.IsArray() {
				tests = res
				break
			}
		}
	}
	if !tests.IsArray() {
		return nil, fmt.Errorf("no array of tests found in JSON file")
	}

	// Headers are the union of object keys, in first-seen order
	var headers []string
	seen := make(map[string]bool)
	var rows []RawRowData
	for _, item := range tests.Array() {
		if !item.IsObject() {
			continue
		}
		row := make(RawRowData)
		item.ForEach(func(key, value gjson.Result) bool {
			h := normalizeHeader(key.String())
			if h == "" {
				return true
			}
			if !seen[h] {
				seen[h] = true
				headers = append(headers, h)
			}
			row[h] = jsonCell(value)
			return true
		})
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("JSON file must hold at least one test object")
	}

	r.logger.Debug("JSON processed (%d columns, %d rows)", len(headers), len(rows))
	return &ExcelData{Headers: headers, Rows: rows}, nil
}

// jsonCell renders a JSON value the way a spreadsheet cell would hold it
func jsonCell(v gjson.Result) string {
	switch {
	case v.Type == gjson.Null:
		return ""
	case v.IsArray():
		parts := make([]string, 0, len(v.Array()))
		for _, el := range v.Array() {
			if s := strings.TrimSpace(el.String()); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ";")
	default:
		return strings.TrimSpace(v.String())
	}
}

// processRows converts raw string rows into ExcelData format
func (r *DataReader) processRows(rows [][]string) (*ExcelData, error) {
	if len(rows) < 2 {
		return nil, fmt.Errorf("%s file must have at least a header row and one data row", strings.ToUpper(r.fileType))
	}

	headers := make([]string, len(rows[0]))
	for i, header := range rows[0] {
		headers[i] = normalizeHeader(header)
	}

	dataRows := make([]RawRowData, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rowData := make(RawRowData, len(headers))
		for j, cell := range row {
			if j < len(headers) && headers[j] != "" {
				rowData[headers[j]] = strings.TrimSpace(cell)
			}
		}
		dataRows = append(dataRows, rowData)
	}

	r.logger.Debug("%s processed (%d columns, %d rows)", strings.ToUpper(r.fileType), len(headers), len(dataRows))
	return &ExcelData{Headers: headers, Rows: dataRows}, nil
}

func normalizeHeader(h string) string {
	key := strings.ToLower(strings.TrimSpace(h))
	key = strings.Join(strings.Fields(key), "_")
	if alias, ok := columnAliases[key]; ok {
		return alias
	}
	return key
}
