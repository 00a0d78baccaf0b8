package domain

import (
	"errors"
	"fmt"
)

// Domain errors classify every failure a cosmocalc request can produce.
// They are returned wrapped in *Error and can be checked with errors.Is.
var (
	// ErrValidation is returned when an input field cannot be parsed.
	ErrValidation = errors.New("cosmocalc: validation failed")

	// ErrDomain is returned when parameters or redshift are outside what
	// the engine will evaluate (H0 <= 0, non-finite values, negative z,
	// a non-positive expansion rate inside the integration domain).
	ErrDomain = errors.New("cosmocalc: parameter outside domain")

	// ErrIntegration is returned when the quadrature fails to converge.
	ErrIntegration = errors.New("cosmocalc: integration failed")
)

// Kind is a coarse-grained error category.
type Kind string

const (
	KindValidation  Kind = "validation"
	KindDomain      Kind = "domain"
	KindIntegration Kind = "integration"
)

// sentinel maps a kind to its sentinel error.
func (k Kind) sentinel() error {
	switch k {
	case KindValidation:
		return ErrValidation
	case KindDomain:
		return ErrDomain
	case KindIntegration:
		return ErrIntegration
	}
	return nil
}

// Error carries the operation and, when known, the offending field.
type Error struct {
	Op    string
	Kind  Kind
	Field string
	Err   error
}

// NewError builds an *Error. err may be nil.
func NewError(op string, kind Kind, field string, err error) *Error {
	return &Error{Op: op, Kind: kind, Field: field, Err: err}
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	base := fmt.Sprintf("%s: %s", e.Op, e.Kind)
	if e.Field != "" {
		base += fmt.Sprintf(" (field=%s)", e.Field)
	}
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is reports a match against the kind's sentinel, so callers can write
// errors.Is(err, domain.ErrDomain) without unwrapping manually.
func (e *Error) Is(target error) bool {
	if e == nil {
		return false
	}
	s := e.Kind.sentinel()
	return s != nil && target == s
}

// IsKind helps callers classify errors without depending on concrete types.
func IsKind(err error, kind Kind) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind == kind
	}
	return false
}
