package query

import (
	"errors"
	"fmt"
)

// Limits applied while decoding a query tree
const (
	// MaxQueryLength is the maximum accepted size of an encoded query tree (1MB)
	MaxQueryLength = 1024 * 1024

	// MaxExpressionDepth is the maximum nesting depth of tree nodes
	MaxExpressionDepth = 100

	// MaxNameLength is the maximum length of a column, table or function name
	MaxNameLength = 256
)

var (
	// ErrQueryTooLong is returned when the encoded tree exceeds MaxQueryLength
	ErrQueryTooLong = errors.New("query too long")

	// ErrExpressionTooDeep is returned when nodes nest deeper than MaxExpressionDepth
	ErrExpressionTooDeep = errors.New("expression nesting too deep")

	// ErrNameTooLong is returned when a name exceeds MaxNameLength
	ErrNameTooLong = errors.New("name too long")
)

func validateQueryLength(data []byte) error {
	if len(data) > MaxQueryLength {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrQueryTooLong, len(data), MaxQueryLength)
	}
	return nil
}

func validateDepth(depth int) error {
	if depth > MaxExpressionDepth {
		return fmt.Errorf("%w: max depth %d", ErrExpressionTooDeep, MaxExpressionDepth)
	}
	return nil
}

func validateName(name string) error {
	if len(name) > MaxNameLength {
		return fmt.Errorf("%w: %d characters (max %d)", ErrNameTooLong, len(name), MaxNameLength)
	}
	return nil
}
