package table

import "errors"

var (
	// ErrUnknownColumn is returned when a column name is not part of a schema.
	ErrUnknownColumn = errors.New("unknown column")
	// ErrTypeMismatch is returned when a value's kind differs from the declared kind.
	ErrTypeMismatch = errors.New("type mismatch")
	// ErrMissingRequiredValue is returned when a non-nullable column gets no value.
	ErrMissingRequiredValue = errors.New("missing required value")
	// ErrInvalidArgument is returned for malformed table or schema definitions.
	ErrInvalidArgument = errors.New("invalid argument")
)
