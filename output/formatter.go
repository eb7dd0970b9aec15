package output

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/vegasq/kqlplay/query"
)

// ErrQueryFailed is returned by formatters that only write rows when the
// result carries execution errors instead.
var ErrQueryFailed = errors.New("query failed")

// Formatter defines the interface for output formatters.
//
// Implementers must provide Format to write a query result in the target
// format and SetOutput to change the output destination.
type Formatter interface {
	// Format writes the result in the formatter's specific format
	Format(result *query.ExecutionResult) error

	// SetOutput changes the output writer
	SetOutput(w io.Writer)
}

var constructors = map[string]func(io.Writer) Formatter{
	"json":    func(w io.Writer) Formatter { return NewJSONFormatter(w) },
	"jsonl":   func(w io.Writer) Formatter { return NewJSONLFormatter(w) },
	"csv":     func(w io.Writer) Formatter { return NewCSVFormatter(w) },
	"tsv":     func(w io.Writer) Formatter { return NewTSVFormatter(w) },
	"table":   func(w io.Writer) Formatter { return NewTableFormatter(w) },
	"msgpack": func(w io.Writer) Formatter { return NewMsgpackFormatter(w) },
	"arrow":   func(w io.Writer) Formatter { return NewArrowFormatter(w) },
}

// New returns the formatter registered under name (case-insensitive).
func New(name string, w io.Writer) (Formatter, error) {
	ctor, ok := constructors[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown output format %q (supported: %s)", name, strings.Join(Formats(), ", "))
	}
	return ctor(w), nil
}

// Formats returns the supported format names, sorted.
func Formats() []string {
	names := make([]string, 0, len(constructors))
	for name := range constructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// failure converts the execution errors of a failed result into an error.
func failure(result *query.ExecutionResult) error {
	if result == nil {
		return fmt.Errorf("%w: no result", ErrQueryFailed)
	}
	if !result.Failed() {
		return nil
	}
	errs := make([]error, len(result.ExecutionErrors))
	for i, e := range result.ExecutionErrors {
		errs[i] = e
	}
	return fmt.Errorf("%w: %w", ErrQueryFailed, errors.Join(errs...))
}
