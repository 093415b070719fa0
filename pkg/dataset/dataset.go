// Package dataset loads the loan-application table into a column-indexed
// frame that the rest of the pipeline reads from.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Raw column names expected in the source table.
const (
	ColLoanID      = "loan_id"
	ColDependents  = "no_of_dependents"
	ColEducation   = "education"
	ColIncome      = "income_annum"
	ColLoanAmount  = "loan_amount"
	ColLoanTerm    = "loan_term"
	ColCibilScore  = "cibil_score"
	ColResidential = "residential_assets_value"
	ColCommercial  = "commercial_assets_value"
	ColLuxury      = "luxury_assets_value"
	ColBankAsset   = "bank_asset_value"
	ColLoanStatus  = "loan_status"
)

// RequiredColumns are the columns every input dataset must carry. loan_term
// is intentionally absent: it only feeds range-step metadata when present.
var RequiredColumns = []string{
	ColDependents,
	ColEducation,
	ColIncome,
	ColLoanAmount,
	ColCibilScore,
	ColResidential,
	ColCommercial,
	ColLuxury,
	ColBankAsset,
	ColLoanStatus,
	ColLoanID,
}

// ErrDatasetNotFound indicates the input file does not exist at the
// configured path.
var ErrDatasetNotFound = errors.New("dataset not found")

// NumericConversionError reports a cell that could not be parsed as a number.
// The pipeline performs no numeric sanitization, so this is fatal.
type NumericConversionError struct {
	Column string
	Row    int
	Value  string
}

func (e *NumericConversionError) Error() string {
	return fmt.Sprintf("column %q row %d: cannot convert %q to a number", e.Column, e.Row, e.Value)
}

// Frame is an in-memory tabular dataset indexed by column name. Column names
// are whitespace-trimmed at load time; cell values are kept as read.
type Frame struct {
	Columns []string
	Rows    []map[string]string
}

// Load reads a delimited file into a Frame. A missing file yields
// ErrDatasetNotFound; a present file with malformed CSV structure or missing
// required columns is a plain error.
func Load(path string) (*Frame, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrDatasetNotFound, path)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("dataset is empty: %s", path)
	}

	// Header row, with incidental surrounding whitespace removed.
	columns := make([]string, len(records[0]))
	for i, name := range records[0] {
		columns[i] = strings.TrimSpace(name)
	}

	rows := make([]map[string]string, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(map[string]string, len(columns))
		for i, name := range columns {
			if i < len(record) {
				row[name] = record[i]
			}
		}
		rows = append(rows, row)
	}

	frame := &Frame{Columns: columns, Rows: rows}
	for _, required := range RequiredColumns {
		if !frame.HasColumn(required) {
			return nil, fmt.Errorf("dataset missing required column %q", required)
		}
	}

	return frame, nil
}

// HasColumn reports whether the frame contains a column with the given name.
func (f *Frame) HasColumn(name string) bool {
	for _, col := range f.Columns {
		if col == name {
			return true
		}
	}
	return false
}

// AddColumn appends a derived column. The value count must match the row
// count; row order is preserved.
func (f *Frame) AddColumn(name string, values []string) error {
	if len(values) != len(f.Rows) {
		return fmt.Errorf("column %q has %d values for %d rows", name, len(values), len(f.Rows))
	}
	if f.HasColumn(name) {
		return fmt.Errorf("column %q already exists", name)
	}
	f.Columns = append(f.Columns, name)
	for i := range f.Rows {
		f.Rows[i][name] = values[i]
	}
	return nil
}

// Strings returns the raw values of a column in row order.
func (f *Frame) Strings(name string) ([]string, error) {
	if !f.HasColumn(name) {
		return nil, fmt.Errorf("column not found: %s", name)
	}
	values := make([]string, len(f.Rows))
	for i, row := range f.Rows {
		values[i] = row[name]
	}
	return values, nil
}

// Float parses one cell as a float64.
func (f *Frame) Float(row int, name string) (float64, error) {
	if row < 0 || row >= len(f.Rows) {
		return 0, fmt.Errorf("row index out of range: %d", row)
	}
	raw, ok := f.Rows[row][name]
	if !ok {
		return 0, fmt.Errorf("column not found: %s", name)
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, &NumericConversionError{Column: name, Row: row, Value: raw}
	}
	return value, nil
}

// Floats parses a whole column as float64s, failing on the first bad cell.
func (f *Frame) Floats(name string) ([]float64, error) {
	if !f.HasColumn(name) {
		return nil, fmt.Errorf("column not found: %s", name)
	}
	values := make([]float64, len(f.Rows))
	for i := range f.Rows {
		value, err := f.Float(i, name)
		if err != nil {
			return nil, err
		}
		values[i] = value
	}
	return values, nil
}

// IsNumeric reports whether every cell of a column parses as a number.
// An empty frame has no numeric columns.
func (f *Frame) IsNumeric(name string) bool {
	if len(f.Rows) == 0 || !f.HasColumn(name) {
		return false
	}
	for _, row := range f.Rows {
		if _, err := strconv.ParseFloat(strings.TrimSpace(row[name]), 64); err != nil {
			return false
		}
	}
	return true
}
