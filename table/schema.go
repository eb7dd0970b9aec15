package table

import "fmt"

// Schema is the fixed, ordered column list of a table. It is shared by the
// table and every one of its rows and never changes after creation.
type Schema struct {
	columns []Column
	index   map[string]int
}

// NewSchema validates and freezes a column list. Column names must be unique
// and non-empty, and every column needs a valid kind.
func NewSchema(columns ...Column) (*Schema, error) {
	s := &Schema{
		columns: make([]Column, len(columns)),
		index:   make(map[string]int, len(columns)),
	}
	for i, col := range columns {
		if col.Name == "" {
			return nil, fmt.Errorf("%w: column %d has an empty name", ErrInvalidArgument, i)
		}
		if !col.Type.Valid() {
			return nil, fmt.Errorf("%w: column '%s' has invalid type %s", ErrInvalidArgument, col.Name, col.Type)
		}
		if _, dup := s.index[col.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate column '%s'", ErrInvalidArgument, col.Name)
		}
		s.columns[i] = col
		s.index[col.Name] = i
	}
	return s, nil
}

// Len returns the number of columns.
func (s *Schema) Len() int { return len(s.columns) }

// Columns returns a copy of the column list in declaration order.
func (s *Schema) Columns() []Column {
	out := make([]Column, len(s.columns))
	copy(out, s.columns)
	return out
}

// Names returns the column names in declaration order.
func (s *Schema) Names() []string {
	names := make([]string, len(s.columns))
	for i, col := range s.columns {
		names[i] = col.Name
	}
	return names
}

// Column looks up a column by name.
func (s *Schema) Column(name string) (Column, bool) {
	i, ok := s.index[name]
	if !ok {
		return Column{}, false
	}
	return s.columns[i], true
}

func (s *Schema) position(name string) (int, bool) {
	i, ok := s.index[name]
	return i, ok
}
