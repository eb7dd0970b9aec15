package table

import "fmt"

// Column describes one column: its name, declared kind and nullability.
type Column struct {
	Name     string
	Type     Kind
	Nullable bool
}

// NewColumn creates a column definition.
func NewColumn(name string, kind Kind, nullable bool) Column {
	return Column{Name: name, Type: kind, Nullable: nullable}
}

// Validate checks that v may be stored under c: null only when the column is
// nullable, otherwise exactly the declared kind.
func (c Column) Validate(v Value) error {
	if v.IsNull() {
		if !c.Nullable {
			return fmt.Errorf("%w: column '%s' cannot be null", ErrMissingRequiredValue, c.Name)
		}
		return nil
	}
	if v.Kind() != c.Type {
		return fmt.Errorf("%w: value '%s' is of type %s, not %s, for column '%s'",
			ErrTypeMismatch, v.String(), v.Kind(), c.Type, c.Name)
	}
	return nil
}

func (c Column) String() string {
	if c.Nullable {
		return fmt.Sprintf("%s:%s?", c.Name, c.Type)
	}
	return fmt.Sprintf("%s:%s", c.Name, c.Type)
}
