package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/vegasq/kqlplay/query"
	"github.com/vegasq/kqlplay/table"
)

// CSVFormatter writes rows as delimited text with a header line. The same
// formatter serves csv and tsv output.
type CSVFormatter struct {
	writer io.Writer
	comma  rune
}

// NewCSVFormatter creates a comma separated formatter
func NewCSVFormatter(w io.Writer) *CSVFormatter {
	return &CSVFormatter{writer: w, comma: ','}
}

// NewTSVFormatter creates a tab separated formatter
func NewTSVFormatter(w io.Writer) *CSVFormatter {
	return &CSVFormatter{writer: w, comma: '\t'}
}

// SetOutput sets the output writer
func (c *CSVFormatter) SetOutput(w io.Writer) {
	c.writer = w
}

// Format writes the header and one line per row. The header lists every
// column in the order it was first seen; a row without a column leaves its
// cell empty. An empty result writes nothing.
func (c *CSVFormatter) Format(result *query.ExecutionResult) error {
	if err := failure(result); err != nil {
		return err
	}
	if len(result.ResultRows) == 0 {
		return nil
	}

	columns := result.Columns()
	lines := make([][]string, 0, len(result.ResultRows)+1)
	lines = append(lines, columns)
	for _, row := range result.ResultRows {
		cells := make([]string, len(columns))
		for i, col := range columns {
			cells[i] = formatValue(row.Get(col))
		}
		lines = append(lines, cells)
	}

	w := csv.NewWriter(c.writer)
	w.Comma = c.comma
	if err := w.WriteAll(lines); err != nil {
		return fmt.Errorf("failed to write %d rows: %w", len(result.ResultRows), err)
	}
	return nil
}

// formatValue renders a cell. String cells that a spreadsheet would read as a
// formula are quoted with a leading apostrophe.
func formatValue(v table.Value) string {
	s := v.String()
	if v.Kind() != table.KindString || s == "" {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '\n', '|':
		return "'" + strings.ReplaceAll(s, "'", "''")
	}
	return s
}
