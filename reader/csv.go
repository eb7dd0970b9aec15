package reader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/vegasq/kqlplay/table"
)

// BuildFromStrings builds a table from loosely typed rows, inferring every
// column's kind and nullability from the data. Declared column types are
// ignored.
//
// Inference takes two passes: the first finds the widest kind across all
// non-empty values of a column, the second parses every value as that kind.
func BuildFromStrings(def *TableDef) (*table.Table, error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}

	for i, row := range def.Rows {
		if len(row) != len(def.Columns) {
			return nil, fmt.Errorf("%w: table '%s' row %d has %d values, expected %d",
				ErrValidation, def.Name, i, len(row), len(def.Columns))
		}
	}

	text := make([][]string, len(def.Columns))
	columns := make([]table.Column, len(def.Columns))
	for c, col := range def.Columns {
		values := make([]string, len(def.Rows))
		for r, row := range def.Rows {
			s, err := rawText(row[col.Name])
			if err != nil {
				return nil, fmt.Errorf("table '%s' row %d column '%s': %w", def.Name, r, col.Name, err)
			}
			values[r] = s
		}
		text[c] = values
		columns[c] = InferColumn(col.Name, values)
	}

	return buildTable(def.Name, columns, text)
}

// BuildFromMatrix builds a table from a header and string records, as read
// from CSV.
func BuildFromMatrix(name string, header []string, records [][]string) (*table.Table, error) {
	def, err := matrixDef(name, header, records)
	if err != nil {
		return nil, err
	}
	return BuildFromStrings(def)
}

// ReadCSV reads CSV text whose first record is the header into a table
// definition for BuildFromStrings.
func ReadCSV(r io.Reader, name string) (*TableDef, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: table '%s': empty CSV input", ErrValidation, name)
		}
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV records: %w", err)
	}

	return matrixDef(name, header, records)
}

func matrixDef(name string, header []string, records [][]string) (*TableDef, error) {
	def := &TableDef{
		Name:    name,
		Columns: make([]ColumnDef, len(header)),
		Rows:    make([]map[string]interface{}, 0, len(records)),
	}
	seen := make(map[string]bool, len(header))
	for i, h := range header {
		h = strings.TrimSpace(h)
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		if seen[h] {
			return nil, fmt.Errorf("%w: table '%s' has duplicate column '%s'", ErrValidation, name, h)
		}
		seen[h] = true
		def.Columns[i] = ColumnDef{Name: h}
	}

	for i, rec := range records {
		if len(rec) != len(header) {
			return nil, fmt.Errorf("%w: table '%s' record %d has %d fields, expected %d",
				ErrValidation, name, i+1, len(rec), len(header))
		}
		row := make(map[string]interface{}, len(rec))
		for c, field := range rec {
			row[def.Columns[c].Name] = field
		}
		def.Rows = append(def.Rows, row)
	}
	return def, nil
}

// buildTable creates the table and parses every column's text as its kind.
func buildTable(name string, columns []table.Column, text [][]string) (*table.Table, error) {
	t, err := table.New(name, columns...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	rows := 0
	if len(text) > 0 {
		rows = len(text[0])
	}
	for r := 0; r < rows; r++ {
		values := make(map[string]table.Value, len(columns))
		for c, col := range columns {
			v, err := ParseValue(text[c][r], col.Type)
			if err != nil {
				return nil, fmt.Errorf("table '%s' row %d column '%s': %w", name, r, col.Name, err)
			}
			values[col.Name] = v
		}
		if err := t.AddRow(values); err != nil {
			return nil, fmt.Errorf("row %d: %w", r, err)
		}
	}
	return t, nil
}
