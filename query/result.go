package query

// ErrorCode classifies an execution error.
type ErrorCode string

const (
	CodeInternalError ErrorCode = "InternalError"
	CodeUnknownTable  ErrorCode = "UnknownTable"
)

// ExecutionError describes why a query produced no rows.
type ExecutionError struct {
	Code        ErrorCode `json:"Code"`
	Description string    `json:"Description,omitempty"`
}

func (e ExecutionError) Error() string {
	if e.Description == "" {
		return string(e.Code)
	}
	return string(e.Code) + ": " + e.Description
}

// ExecutionResult is the outcome of one query: either rows or errors, never
// both. The unused field is nil and serializes as JSON null.
type ExecutionResult struct {
	ResultRows      []Record         `json:"ResultRows"`
	ExecutionErrors []ExecutionError `json:"ExecutionErrors"`
}

// Failed reports whether the query produced errors.
func (r *ExecutionResult) Failed() bool {
	return len(r.ExecutionErrors) > 0
}

// Columns returns the column names of the result rows, in first-seen order.
func (r *ExecutionResult) Columns() []string {
	seen := make(map[string]bool)
	var cols []string
	for _, row := range r.ResultRows {
		for _, k := range row.keys {
			if !seen[k] {
				seen[k] = true
				cols = append(cols, k)
			}
		}
	}
	return cols
}

func rowsResult(rows []Record) *ExecutionResult {
	if rows == nil {
		rows = []Record{}
	}
	return &ExecutionResult{ResultRows: rows}
}

func errorResult(code ErrorCode, description string) *ExecutionResult {
	return &ExecutionResult{
		ExecutionErrors: []ExecutionError{{Code: code, Description: description}},
	}
}
