package table

import (
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
)

// Table is a named, schema-fixed, append-only collection of rows.
//
// Appends are serialized by a writer lock and published atomically: rows are
// added to a shared arena and readers capture a length-bounded slice of it, so
// a snapshot never observes rows appended after it was taken. Table is safe
// for concurrent use.
type Table struct {
	name   string
	schema *Schema

	mu   sync.Mutex // serializes writers
	rows atomic.Pointer[[]*Row]
}

// New creates an empty table with the given columns.
func New(name string, columns ...Column) (*Table, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: empty table name", ErrInvalidArgument)
	}
	schema, err := NewSchema(columns...)
	if err != nil {
		return nil, fmt.Errorf("table '%s': %w", name, err)
	}
	return NewWithSchema(name, schema), nil
}

// NewWithSchema creates an empty table over an already validated schema.
func NewWithSchema(name string, schema *Schema) *Table {
	t := &Table{name: name, schema: schema}
	empty := make([]*Row, 0)
	t.rows.Store(&empty)
	return t
}

// Name returns the table name.
func (t *Table) Name() string { return t.name }

// Schema returns the table schema.
func (t *Table) Schema() *Schema { return t.schema }

// Columns returns the column definitions in declaration order.
func (t *Table) Columns() []Column { return t.schema.Columns() }

// Rows returns a snapshot of the current rows. Later appends are not visible
// through the returned slice.
func (t *Table) Rows() []*Row {
	rows := *t.rows.Load()
	return rows[:len(rows):len(rows)]
}

// Len returns the number of rows currently published.
func (t *Table) Len() int {
	return len(*t.rows.Load())
}

// AddRow validates values against the schema and appends them as a new row.
//
// A column missing from values is stored as null when nullable and rejected
// otherwise; keys that are not schema columns are rejected. Nothing is
// published when validation fails.
func (t *Table) AddRow(values map[string]Value) error {
	for name := range values {
		if _, ok := t.schema.position(name); !ok {
			return fmt.Errorf("table '%s': %w: '%s'", t.name, ErrUnknownColumn, unknownNames(t.schema, values))
		}
	}

	row := newRow(t.schema)
	for i, col := range t.schema.columns {
		v, ok := values[col.Name]
		if !ok && !col.Nullable {
			return fmt.Errorf("table '%s': %w for column '%s'", t.name, ErrMissingRequiredValue, col.Name)
		}
		if err := col.Validate(v); err != nil {
			return fmt.Errorf("table '%s': %w", t.name, err)
		}
		row.values[i] = v
		row.set[i] = ok
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	current := *t.rows.Load()
	// Writing past len(current) never touches memory any published snapshot
	// can reach, so the arena can be extended in place.
	next := append(current, row)
	t.rows.Store(&next)
	return nil
}

func unknownNames(schema *Schema, values map[string]Value) string {
	var names []string
	for name := range values {
		if _, ok := schema.position(name); !ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	if len(names) == 1 {
		return names[0]
	}
	return fmt.Sprint(names)
}
