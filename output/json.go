package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/vegasq/kqlplay/query"
)

// JSONFormatter outputs the whole result object, rows or errors, as indented
// JSON.
type JSONFormatter struct {
	writer io.Writer
}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter(w io.Writer) *JSONFormatter {
	return &JSONFormatter{writer: w}
}

// SetOutput sets the output writer
func (j *JSONFormatter) SetOutput(w io.Writer) {
	j.writer = w
}

// Format writes the result as a single JSON document
func (j *JSONFormatter) Format(result *query.ExecutionResult) error {
	if result == nil {
		return failure(result)
	}
	encoder := json.NewEncoder(j.writer)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(result); err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	return nil
}

// JSONLFormatter outputs rows as JSON Lines format
type JSONLFormatter struct {
	writer io.Writer
}

// NewJSONLFormatter creates a new JSON Lines formatter
func NewJSONLFormatter(w io.Writer) *JSONLFormatter {
	return &JSONLFormatter{writer: w}
}

// SetOutput sets the output writer
func (j *JSONLFormatter) SetOutput(w io.Writer) {
	j.writer = w
}

// Format writes rows as JSON Lines (one JSON object per line, keys in column
// order)
func (j *JSONLFormatter) Format(result *query.ExecutionResult) error {
	if err := failure(result); err != nil {
		return err
	}
	encoder := json.NewEncoder(j.writer)
	for _, row := range result.ResultRows {
		if err := encoder.Encode(row); err != nil {
			return err
		}
	}
	return nil
}
