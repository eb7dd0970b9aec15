package output

import (
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/vegasq/kqlplay/query"
)

// TableFormatter outputs rows as an aligned text table for terminals.
type TableFormatter struct {
	writer io.Writer
}

// NewTableFormatter creates a new text table formatter
func NewTableFormatter(w io.Writer) *TableFormatter {
	return &TableFormatter{writer: w}
}

// SetOutput sets the output writer
func (t *TableFormatter) SetOutput(w io.Writer) {
	t.writer = w
}

// Format renders rows under a header of the result columns. Nulls are empty
// cells.
func (t *TableFormatter) Format(result *query.ExecutionResult) error {
	if err := failure(result); err != nil {
		return err
	}

	columns := result.Columns()
	tw := tablewriter.NewWriter(t.writer)
	tw.SetAutoFormatHeaders(false)
	tw.SetAutoWrapText(false)
	tw.SetHeader(columns)

	for _, row := range result.ResultRows {
		cells := make([]string, len(columns))
		for i, col := range columns {
			cells[i] = row.Get(col).String()
		}
		tw.Append(cells)
	}
	tw.Render()
	return nil
}
