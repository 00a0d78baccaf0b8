package query

import (
	"errors"
	"strings"

	"github.com/frwlab/cosmocalc/internal/domain"
)

// Field names used in FieldError.
const (
	FieldRedshift = "redshift"
	FieldH0       = "h0"
	FieldOmegaM   = "omega_m"
	FieldOmegaVac = "omega_vac"
	FieldMode     = "mode"
)

// FieldError is a single rejected input field.
type FieldError struct {
	Field   string
	Value   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Message
}

// Is matches domain.ErrValidation.
func (e *FieldError) Is(target error) bool {
	return target == domain.ErrValidation
}

// ValidationErrors aggregates every FieldError of one input, in field
// order.
type ValidationErrors []*FieldError

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, e := range v {
		msgs[i] = e.Field + ": " + e.Message
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) Unwrap() []error {
	errs := make([]error, len(v))
	for i, e := range v {
		errs[i] = e
	}
	return errs
}

// Field returns the error for field, or nil.
func (v ValidationErrors) Field(field string) *FieldError {
	for _, e := range v {
		if e.Field == field {
			return e
		}
	}
	return nil
}

// FieldErrors extracts the aggregated field errors from err.
func FieldErrors(err error) ValidationErrors {
	var v ValidationErrors
	if errors.As(err, &v) {
		return v
	}
	var fe *FieldError
	if errors.As(err, &fe) {
		return ValidationErrors{fe}
	}
	return nil
}
