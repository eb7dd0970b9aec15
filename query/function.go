package query

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/vegasq/kqlplay/table"
)

// Function represents a scalar function that can be evaluated
type Function interface {
	// Name returns the function name (case-insensitive)
	Name() string
	// MinArity returns the minimum number of arguments
	MinArity() int
	// MaxArity returns the maximum number of arguments (-1 for unlimited)
	MaxArity() int
	// Evaluate evaluates the function with the given arguments
	Evaluate(args []table.Value) (table.Value, error)
}

// FunctionRegistry manages function lookup and registration. It is safe for
// concurrent use; the lock is only held for lookup and replacement.
type FunctionRegistry struct {
	mu        sync.RWMutex
	functions map[string]Function
}

// NewFunctionRegistry creates an empty function registry
func NewFunctionRegistry() *FunctionRegistry {
	return &FunctionRegistry{
		functions: make(map[string]Function),
	}
}

// DefaultFunctions returns a new registry holding every builtin function.
func DefaultFunctions() *FunctionRegistry {
	r := NewFunctionRegistry()

	// conversion
	r.Register(&Base64EncodeToStringFunc{})
	r.Register(&Base64DecodeToStringFunc{})
	r.Register(&ToStringFunc{})

	// string
	r.Register(&ToUpperFunc{})
	r.Register(&ToLowerFunc{})
	r.Register(&StrlenFunc{})

	// math
	r.Register(&AbsFunc{})
	r.Register(&RoundFunc{})
	r.Register(&CeilingFunc{})
	r.Register(&SqrtFunc{})
	r.Register(&ExpFunc{})
	r.Register(&LogFunc{})
	r.Register(&PowFunc{})
	r.Register(&SignFunc{})

	// date/time
	r.Register(&NowFunc{})
	r.Register(&AgoFunc{})
	r.Register(&ToDateTimeFunc{})
	r.Register(&ToTimespanFunc{})
	r.Register(&StartOfDayFunc{})
	r.Register(GetYearFunc())
	r.Register(GetMonthFunc())
	r.Register(DayOfMonthFunc())
	r.Register(HourOfDayFunc())

	return r
}

// Register registers a function, replacing any function with the same name
func (r *FunctionRegistry) Register(f Function) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.functions[strings.ToLower(f.Name())] = f
}

// Get retrieves a function by name (case-insensitive)
func (r *FunctionRegistry) Get(name string) (Function, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, exists := r.functions[strings.ToLower(name)]
	return f, exists
}

// Names returns the registered function names, sorted.
func (r *FunctionRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.functions))
	for name := range r.functions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Call looks up name, checks the argument count and evaluates the function.
func (r *FunctionRegistry) Call(name string, args []table.Value) (table.Value, error) {
	fn, ok := r.Get(name)
	if !ok {
		return table.Null(), fmt.Errorf("%w: %s", ErrUnknownFunction, name)
	}

	minArgs := fn.MinArity()
	maxArgs := fn.MaxArity()
	if len(args) < minArgs {
		return table.Null(), fmt.Errorf("%s: %w: expected at least %d arguments, got %d",
			fn.Name(), ErrArgumentCount, minArgs, len(args))
	}
	if maxArgs >= 0 && len(args) > maxArgs {
		return table.Null(), fmt.Errorf("%s: %w: expected at most %d arguments, got %d",
			fn.Name(), ErrArgumentCount, maxArgs, len(args))
	}

	return fn.Evaluate(args)
}
