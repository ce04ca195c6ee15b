package extraction

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"
)

// SpreadsheetExtractor reads tabular files natively: XLSX workbooks via
// excelize and CSV via the standard encoding. The first non-empty row is
// taken as the header; no model call is involved.
type SpreadsheetExtractor struct {
	logger *slog.Logger
}

// NewSpreadsheetExtractor creates a spreadsheet extractor.
func NewSpreadsheetExtractor(logger *slog.Logger) *SpreadsheetExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &SpreadsheetExtractor{logger: logger}
}

// Extract parses the upload by extension.
func (e *SpreadsheetExtractor) Extract(_ context.Context, upload Upload) (Result, error) {
	switch {
	case hasExtension(upload.Filename, ".xlsx", ".xlsm"):
		return e.extractWorkbook(upload)
	case hasExtension(upload.Filename, ".csv"):
		return e.extractCSV(upload)
	default:
		return Result{}, fmt.Errorf("unsupported spreadsheet format: %s", upload.Filename)
	}
}

func (e *SpreadsheetExtractor) extractWorkbook(upload Upload) (Result, error) {
	f, err := excelize.OpenReader(bytes.NewReader(upload.Data))
	if err != nil {
		return Result{}, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			e.logger.Warn("Failed to close workbook", slog.Any("error", cerr))
		}
	}()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return Result{}, ErrNoTabularData
	}

	// Only the first sheet is read; multi-sheet workbooks are uploaded one
	// sheet at a time.
	sheet := sheets[0]
	rows, err := f.GetRows(sheet)
	if err != nil {
		return Result{}, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}

	result, err := tabulate(rows)
	if err != nil {
		return Result{}, err
	}
	result.Description = fmt.Sprintf("Sheet %q from %s", sheet, upload.Filename)

	e.logger.Info("Extracted workbook",
		slog.String("filename", upload.Filename),
		slog.String("sheet", sheet),
		slog.Int("columns", len(result.Columns)),
		slog.Int("rows", len(result.Rows)),
	)
	return result, nil
}

func (e *SpreadsheetExtractor) extractCSV(upload Upload) (Result, error) {
	reader := csv.NewReader(bytes.NewReader(upload.Data))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Result{}, fmt.Errorf("failed to parse csv: %w", err)
		}
		rows = append(rows, record)
	}

	result, err := tabulate(rows)
	if err != nil {
		return Result{}, err
	}
	result.Description = fmt.Sprintf("CSV file %s", upload.Filename)

	e.logger.Info("Extracted csv",
		slog.String("filename", upload.Filename),
		slog.Int("columns", len(result.Columns)),
		slog.Int("rows", len(result.Rows)),
	)
	return result, nil
}

// tabulate turns a raw cell grid into named columns and row maps. The first
// row with any non-blank cell becomes the header; ragged rows are padded
// with empty values.
func tabulate(grid [][]string) (Result, error) {
	headerIdx := -1
	for i, row := range grid {
		if !rowBlank(row) {
			headerIdx = i
			break
		}
	}
	if headerIdx == -1 {
		return Result{}, ErrNoTabularData
	}

	var columns []string
	for i, cell := range grid[headerIdx] {
		name := strings.TrimSpace(cell)
		if name == "" {
			name = fmt.Sprintf("Column %d", i+1)
		}
		columns = append(columns, name)
	}

	var rows []map[string]string
	for _, row := range grid[headerIdx+1:] {
		if rowBlank(row) {
			continue
		}
		record := make(map[string]string, len(columns))
		for i, column := range columns {
			if i < len(row) {
				record[column] = strings.TrimSpace(row[i])
			} else {
				record[column] = ""
			}
		}
		rows = append(rows, record)
	}
	if len(rows) == 0 {
		return Result{}, ErrNoTabularData
	}

	return Result{Columns: columns, Rows: rows}, nil
}

func rowBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func hasExtension(filename string, exts ...string) bool {
	lower := strings.ToLower(filename)
	for _, ext := range exts {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}
