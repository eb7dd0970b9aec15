package reader

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/parquet-go/parquet-go"
	"github.com/vegasq/kqlplay/table"
)

// Reader streams the rows of one flat parquet file as table values. Columns
// are mapped when the file is opened, so a Reader only exists for files the
// table model can hold.
type Reader struct {
	path    string
	file    *os.File
	pqFile  *parquet.File
	columns []parquetColumn
}

// NewReader opens path and maps its schema to table columns. Nested or
// repeated fields fail with ErrValidation.
func NewReader(path string) (*Reader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	stat, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	pqFile, err := parquet.OpenFile(file, stat.Size())
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("%s is not a parquet file: %w", path, err)
	}

	columns, err := parquetColumns(pqFile.Schema())
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &Reader{path: path, file: file, pqFile: pqFile, columns: columns}, nil
}

// Columns returns the table columns of the file in schema order.
func (r *Reader) Columns() []table.Column {
	out := make([]table.Column, len(r.columns))
	for i, c := range r.columns {
		out[i] = c.column
	}
	return out
}

// NumRows returns the row count recorded in the file footer.
func (r *Reader) NumRows() int64 {
	return r.pqFile.NumRows()
}

// Each converts every row to table values and passes it to fn in file order.
// Iteration stops at the first error, from conversion or from fn.
func (r *Reader) Each(fn func(i int, row map[string]table.Value) error) error {
	rows := parquet.NewReader(r.pqFile)
	defer func() { _ = rows.Close() }()

	for i := 0; ; i++ {
		raw := make(map[string]interface{}, len(r.columns))
		if err := rows.Read(&raw); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("%s row %d: failed to read: %w", r.path, i, err)
		}

		values := make(map[string]table.Value, len(r.columns))
		for _, c := range r.columns {
			v, err := c.convert(raw[c.column.Name])
			if err != nil {
				return fmt.Errorf("%s row %d column '%s': %w", r.path, i, c.column.Name, err)
			}
			values[c.column.Name] = v
		}
		if err := fn(i, values); err != nil {
			return err
		}
	}
}

// Close releases the file. It is safe to call more than once.
func (r *Reader) Close() error {
	if r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}

// BuildFromParquet builds a table from a parquet file. Column kinds come from
// the file schema and optional columns become nullable. Only flat files are
// supported: nested groups and repeated columns are rejected.
//
// path may be a glob pattern such as "data/*.parquet"; matching files are
// read in lexical order and must all have the same columns. A result
// without rows is rejected. An empty name defaults to the file name without
// its extension.
func BuildFromParquet(name, path string) (*table.Table, error) {
	if name == "" {
		name = TableNameFromPath(path)
	}

	files, err := expandPattern(path)
	if err != nil {
		return nil, err
	}

	var t *table.Table
	for _, file := range files {
		if t, err = appendParquetFile(t, name, file, files[0]); err != nil {
			return nil, err
		}
	}

	if t.Len() == 0 {
		return nil, fmt.Errorf("%w: table '%s' has no rows", ErrValidation, name)
	}
	return t, nil
}

// appendParquetFile adds the rows of path to t. A nil t is created from the
// file's columns; otherwise the columns must match the first file's.
func appendParquetFile(t *table.Table, name, path, first string) (*table.Table, error) {
	r, err := NewReader(path)
	if err != nil {
		return nil, fmt.Errorf("table '%s': %w", name, err)
	}
	defer func() { _ = r.Close() }()

	columns := r.Columns()
	if t == nil {
		t, err = table.New(name, columns...)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrValidation, err)
		}
	} else if !sameColumns(t.Schema().Columns(), columns) {
		return nil, fmt.Errorf("%w: table '%s': %s has different columns than %s",
			ErrValidation, name, path, first)
	}

	err = r.Each(func(i int, row map[string]table.Value) error {
		if err := t.AddRow(row); err != nil {
			return fmt.Errorf("table '%s' %s row %d: %w", name, path, i, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// expandPattern resolves a file path or glob pattern to the files it names.
func expandPattern(pattern string) ([]string, error) {
	if !strings.ContainsAny(pattern, "*?[") {
		return []string{pattern}, nil
	}

	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid glob pattern: %w", err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no files match pattern: %s", pattern)
	}

	// Limit number of files to prevent resource exhaustion
	const maxFiles = 1000
	if len(matches) > maxFiles {
		return nil, fmt.Errorf("glob pattern matched too many files (%d), maximum is %d", len(matches), maxFiles)
	}
	return matches, nil
}

func sameColumns(a, b []table.Column) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// TableNameFromPath returns the base name of path without its extension.
func TableNameFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
