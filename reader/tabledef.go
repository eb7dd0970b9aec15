package reader

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"
)

var (
	// ErrValidation is returned when a table definition is malformed.
	ErrValidation = errors.New("invalid table definition")
	// ErrMissingColumnType is returned by BuildFromTyped for a column without a type.
	ErrMissingColumnType = errors.New("missing column type")
)

// TableDef is the input of the table builders: a table name, its columns and
// rows of raw values keyed by column name.
type TableDef struct {
	Name    string                   `json:"Name"`
	Columns []ColumnDef              `json:"Columns"`
	Rows    []map[string]interface{} `json:"Rows"`
}

// ColumnDef declares one column. Type and Nullable are only used by
// BuildFromTyped; the inference builder derives both from the data.
type ColumnDef struct {
	Name     string `json:"Name"`
	Type     string `json:"Type,omitempty"`
	Nullable bool   `json:"Nullable,omitempty"`
}

// Validate checks the parts of a definition every builder requires.
func (d *TableDef) Validate() error {
	if d == nil {
		return fmt.Errorf("%w: nil definition", ErrValidation)
	}
	if d.Name == "" {
		return fmt.Errorf("%w: empty table name", ErrValidation)
	}
	if len(d.Columns) == 0 {
		return fmt.Errorf("%w: table '%s' has no columns", ErrValidation, d.Name)
	}
	if len(d.Rows) == 0 {
		return fmt.Errorf("%w: table '%s' has no rows", ErrValidation, d.Name)
	}
	for i, col := range d.Columns {
		if col.Name == "" {
			return fmt.Errorf("%w: table '%s' column %d has an empty name", ErrValidation, d.Name, i)
		}
	}
	return nil
}

// DecodeTableDef reads a JSON table definition. Numbers are kept as their
// source text so no precision is lost before parsing.
func DecodeTableDef(r io.Reader) (*TableDef, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var def TableDef
	if err := dec.Decode(&def); err != nil {
		return nil, fmt.Errorf("failed to decode table definition: %w", err)
	}
	return &def, nil
}

// rawText renders a raw row value as the text the value parsers consume.
// Nil renders as "" which every builder treats as null.
func rawText(v interface{}) (string, error) {
	switch val := v.(type) {
	case nil:
		return "", nil
	case string:
		return val, nil
	case json.Number:
		return val.String(), nil
	case bool:
		return strconv.FormatBool(val), nil
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64), nil
	case float32:
		return strconv.FormatFloat(float64(val), 'g', -1, 32), nil
	case int:
		return strconv.Itoa(val), nil
	case int32:
		return strconv.FormatInt(int64(val), 10), nil
	case int64:
		return strconv.FormatInt(val, 10), nil
	case uint64:
		return strconv.FormatUint(val, 10), nil
	case time.Time:
		return val.Format(time.RFC3339Nano), nil
	case fmt.Stringer:
		return val.String(), nil
	case map[string]interface{}, []interface{}:
		return "", fmt.Errorf("%w: nested values are not supported", ErrValidation)
	default:
		return fmt.Sprint(val), nil
	}
}
