package features

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfDomainCategory is returned for a categorical label the encoder tables do not know
	ErrOutOfDomainCategory = errors.New("out of domain category")
	// ErrOutOfRangeNumeric is returned for a numeric field outside its declared bounds
	ErrOutOfRangeNumeric = errors.New("out of range numeric")
	// ErrMissingField is returned when a required numeric field is absent from a submission
	ErrMissingField = errors.New("missing required field")
	// ErrSchemaMismatch is returned when encoder and trained artifacts disagree on the feature layout
	ErrSchemaMismatch = errors.New("schema mismatch")
)

// CategoryError reports an unknown label for a categorical field
type CategoryError struct {
	Field string
	Label string
}

func (e *CategoryError) Error() string {
	return fmt.Sprintf("%s: unknown label %q for %s", ErrOutOfDomainCategory, e.Label, e.Field)
}

func (e *CategoryError) Unwrap() error {
	return ErrOutOfDomainCategory
}

// RangeError reports a numeric field that failed its bound
type RangeError struct {
	Field string
	Value interface{}
	Rule  string
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s: %s=%v violates %s", ErrOutOfRangeNumeric, e.Field, e.Value, e.Rule)
}

func (e *RangeError) Unwrap() error {
	return ErrOutOfRangeNumeric
}

// MissingFieldError reports a numeric field absent from a decoded submission
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingField, e.Field)
}

func (e *MissingFieldError) Unwrap() error {
	return ErrMissingField
}

// SchemaError reports a layout disagreement between encoder and artifact
type SchemaError struct {
	Component string
	Detail    string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrSchemaMismatch, e.Component, e.Detail)
}

func (e *SchemaError) Unwrap() error {
	return ErrSchemaMismatch
}

// SchemaMismatchf builds a SchemaError for component with a formatted detail
func SchemaMismatchf(component, format string, args ...interface{}) error {
	return &SchemaError{Component: component, Detail: fmt.Sprintf(format, args...)}
}
