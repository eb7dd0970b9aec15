package query

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/vegasq/kqlplay/table"
)

// Record is one row flowing through a pipeline: column names mapped to
// values, remembering the order in which columns were first set.
type Record struct {
	keys   []string
	values map[string]table.Value
}

// NewRecord builds a record from alternating name/value pairs in order.
func NewRecord(pairs ...interface{}) (Record, error) {
	if len(pairs)%2 != 0 {
		return Record{}, fmt.Errorf("NewRecord: odd number of arguments")
	}
	r := makeRecord(len(pairs) / 2)
	for i := 0; i < len(pairs); i += 2 {
		name, ok := pairs[i].(string)
		if !ok {
			return Record{}, fmt.Errorf("NewRecord: argument %d is %T, want string", i, pairs[i])
		}
		v, err := table.ValueOf(pairs[i+1])
		if err != nil {
			return Record{}, fmt.Errorf("NewRecord: column '%s': %w", name, err)
		}
		r.set(name, v)
	}
	return r, nil
}

func makeRecord(capacity int) Record {
	return Record{
		keys:   make([]string, 0, capacity),
		values: make(map[string]table.Value, capacity),
	}
}

// recordFromRow copies a table row into a record in schema order.
func recordFromRow(row *table.Row) Record {
	r := makeRecord(row.Schema().Len())
	row.Each(func(name string, v table.Value) {
		r.set(name, v)
	})
	return r
}

func (r *Record) set(name string, v table.Value) {
	if r.values == nil {
		r.values = make(map[string]table.Value)
	}
	if _, exists := r.values[name]; !exists {
		r.keys = append(r.keys, name)
	}
	r.values[name] = v
}

func (r Record) clone() Record {
	c := makeRecord(len(r.keys))
	for _, k := range r.keys {
		c.set(k, r.values[k])
	}
	return c
}

// Len returns the number of columns.
func (r Record) Len() int { return len(r.keys) }

// Keys returns the column names in order.
func (r Record) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// Lookup returns the value stored under name and whether the column exists.
func (r Record) Lookup(name string) (table.Value, bool) {
	v, ok := r.values[name]
	return v, ok
}

// Get returns the value stored under name, or null when absent.
func (r Record) Get(name string) table.Value {
	return r.values[name]
}

// Map returns the record as Go-native values keyed by column name.
func (r Record) Map() map[string]interface{} {
	out := make(map[string]interface{}, len(r.keys))
	for _, k := range r.keys {
		out[k] = r.values[k].Interface()
	}
	return out
}

// MarshalJSON writes the record as a JSON object with keys in column order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := r.values[k].MarshalJSON()
		if err != nil {
			return nil, fmt.Errorf("column '%s': %w", k, err)
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a flat JSON object, keeping key order.
func (r *Record) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("record: expected JSON object, got %v", tok)
	}

	out := makeRecord(0)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("record: expected object key, got %v", tok)
		}
		var raw interface{}
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("record: column '%s': %w", key, err)
		}
		v, err := table.FromJSON(raw)
		if err != nil {
			return fmt.Errorf("record: column '%s': %w", key, err)
		}
		out.set(key, v)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*r = out
	return nil
}
