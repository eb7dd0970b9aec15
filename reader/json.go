package reader

import (
	"fmt"

	"github.com/vegasq/kqlplay/table"
)

// BuildFromTyped builds a table whose column types are declared by name in
// the definition (see table.ParseKind). Every raw value is rendered as text
// and parsed as its column's kind.
func BuildFromTyped(def *TableDef) (*table.Table, error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}

	columns := make([]table.Column, len(def.Columns))
	for i, col := range def.Columns {
		if col.Type == "" {
			return nil, fmt.Errorf("%w: table '%s' column '%s'", ErrMissingColumnType, def.Name, col.Name)
		}
		kind, ok := table.ParseKind(col.Type)
		if !ok {
			return nil, fmt.Errorf("%w: table '%s' column '%s' has unknown type '%s'",
				ErrValidation, def.Name, col.Name, col.Type)
		}
		columns[i] = table.NewColumn(col.Name, kind, col.Nullable)
	}

	text := make([][]string, len(columns))
	for c, col := range columns {
		values := make([]string, len(def.Rows))
		for r, row := range def.Rows {
			s, err := rawText(row[col.Name])
			if err != nil {
				return nil, fmt.Errorf("table '%s' row %d column '%s': %w", def.Name, r, col.Name, err)
			}
			values[r] = s
		}
		text[c] = values
	}

	return buildTable(def.Name, columns, text)
}
