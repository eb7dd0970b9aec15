package query

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/vegasq/kqlplay/table"
)

// Database is a registry of named tables that executes queries against them.
// It is safe for concurrent use.
type Database struct {
	mu     sync.RWMutex
	tables map[string]*table.Table

	eval   *Evaluator
	logger *slog.Logger
}

// Option configures a Database.
type Option func(*Database)

// WithLogger sets the logger used for query tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(db *Database) {
		if logger != nil {
			db.logger = logger
		}
	}
}

// WithFunctions sets the scalar function registry used by calls.
func WithFunctions(functions *FunctionRegistry) Option {
	return func(db *Database) {
		if functions != nil {
			db.eval = NewEvaluator(functions)
		}
	}
}

// NewDatabase creates an empty database.
func NewDatabase(opts ...Option) *Database {
	db := &Database{
		tables: make(map[string]*table.Table),
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(db)
	}
	if db.eval == nil {
		db.eval = NewEvaluator(nil)
	}
	return db
}

// AddTable registers t under its name, replacing any table with that name.
func (db *Database) AddTable(t *table.Table) error {
	if t == nil {
		return fmt.Errorf("AddTable: %w: nil table", table.ErrInvalidArgument)
	}

	db.mu.Lock()
	_, replaced := db.tables[t.Name()]
	db.tables[t.Name()] = t
	db.mu.Unlock()

	db.logger.Debug("table registered",
		slog.String("table", t.Name()),
		slog.Int("columns", t.Schema().Len()),
		slog.Int("rows", t.Len()),
		slog.Bool("replaced", replaced))
	return nil
}

// Table returns the table registered under name.
func (db *Database) Table(name string) (*table.Table, bool) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	t, ok := db.tables[name]
	return t, ok
}

// TableNames returns the registered table names, sorted.
func (db *Database) TableNames() []string {
	db.mu.RLock()
	defer db.mu.RUnlock()
	names := make([]string, 0, len(db.tables))
	for name := range db.tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DropTable removes the table registered under name and reports whether it
// existed.
func (db *Database) DropTable(name string) bool {
	db.mu.Lock()
	defer db.mu.Unlock()
	_, ok := db.tables[name]
	delete(db.tables, name)
	return ok
}

// ExecuteQuery runs q and returns its rows, or a single structured error.
// It never panics: failures of any kind are reported in the result.
func (db *Database) ExecuteQuery(q Source) (result *ExecutionResult) {
	defer func() {
		if r := recover(); r != nil {
			db.logger.Error("query panicked", slog.Any("panic", r))
			result = errorResult(CodeInternalError, fmt.Sprint(r))
		}
	}()

	rows, err := db.execute(q)
	if err != nil {
		code := CodeInternalError
		if errors.Is(err, ErrUnknownTable) {
			code = CodeUnknownTable
		}
		db.logger.Debug("query failed", slog.String("code", string(code)), slog.Any("error", err))
		return errorResult(code, err.Error())
	}

	db.logger.Debug("query executed", slog.Int("rows", len(rows)))
	return rowsResult(rows)
}

func (db *Database) execute(src Source) ([]Record, error) {
	switch node := src.(type) {
	case *TableRef:
		t, ok := db.Table(node.Name)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownTable, node.Name)
		}
		return recordsFromRows(t.Rows()), nil
	case *Pipe:
		rows, err := db.execute(node.Source)
		if err != nil {
			return nil, err
		}
		return db.eval.applyOperator(rows, node.Operator)
	case nil:
		return nil, fmt.Errorf("%w: missing query source", ErrUnsupportedExpression)
	default:
		return nil, fmt.Errorf("%w: source %s", ErrUnsupportedExpression, src.NodeKind())
	}
}
