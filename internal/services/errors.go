package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned when an id is absent or matches no row.
	ErrNotFound = errors.New("user not found")
	// ErrStoreUnavailable wraps infrastructure failures (connection, timeout).
	ErrStoreUnavailable = errors.New("user store unavailable")
	// ErrValidationFailed is matched by every *ValidationError.
	ErrValidationFailed = errors.New("validation failed")
)

// FieldErrorKind names the rule a field violated.
type FieldErrorKind string

const (
	KindRequired      FieldErrorKind = "Required"
	KindTooLong       FieldErrorKind = "TooLong"
	KindInvalidFormat FieldErrorKind = "InvalidFormat"
	KindDuplicate     FieldErrorKind = "Duplicate"
)

// FieldError is a single field-scoped validation failure.
type FieldError struct {
	Field string         `json:"field"`
	Kind  FieldErrorKind `json:"kind"`
}

// Message returns the user-facing text for the failure.
func (e FieldError) Message() string {
	label := fieldLabel(e.Field)
	switch e.Kind {
	case KindRequired:
		return fmt.Sprintf("The %s field is required.", label)
	case KindTooLong:
		return fmt.Sprintf("The %s field must be at most %d characters.", label, fieldMaxLength(e.Field))
	case KindInvalidFormat:
		return fmt.Sprintf("The %s field is not a valid e-mail address.", label)
	case KindDuplicate:
		return fmt.Sprintf("%s already exists.", label)
	default:
		return fmt.Sprintf("The %s field is invalid.", label)
	}
}

// ValidationError carries every rule a candidate user violated.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		parts = append(parts, fe.Field+": "+string(fe.Kind))
	}
	return fmt.Sprintf("%s: %s", ErrValidationFailed, strings.Join(parts, ", "))
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}

// Has reports whether field failed with kind.
func (e *ValidationError) Has(field string, kind FieldErrorKind) bool {
	for _, fe := range e.Errors {
		if fe.Field == field && fe.Kind == kind {
			return true
		}
	}
	return false
}

// ByField groups the messages by field name, for form rendering.
func (e *ValidationError) ByField() map[string][]string {
	out := make(map[string][]string, len(e.Errors))
	for _, fe := range e.Errors {
		out[fe.Field] = append(out[fe.Field], fe.Message())
	}
	return out
}

func duplicateEmailError() *ValidationError {
	return &ValidationError{Errors: []FieldError{{Field: FieldEmail, Kind: KindDuplicate}}}
}

func storeError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStoreUnavailable, err)
}
