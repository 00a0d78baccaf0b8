package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestError_Is(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		target error
		want   bool
	}{
		{"domain matches domain", NewError("derive", KindDomain, "h0", nil), ErrDomain, true},
		{"domain does not match validation", NewError("derive", KindDomain, "h0", nil), ErrValidation, false},
		{"integration through wrap", fmt.Errorf("age: %w", NewError("age", KindIntegration, "", errors.New("boom"))), ErrIntegration, true},
		{"unknown kind", NewError("x", Kind("other"), "", nil), ErrDomain, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.Is(tt.err, tt.target); got != tt.want {
				t.Errorf("errors.Is() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestError_UnwrapsCause(t *testing.T) {
	cause := errors.New("no convergence")
	err := NewError("distance", KindIntegration, "", cause)

	if !errors.Is(err, cause) {
		t.Errorf("errors.Is(err, cause) = false, want true")
	}
	if !IsKind(err, KindIntegration) {
		t.Errorf("IsKind(err, KindIntegration) = false, want true")
	}
	if IsKind(cause, KindIntegration) {
		t.Errorf("IsKind(cause, KindIntegration) = true, want false")
	}
}

func TestError_Message(t *testing.T) {
	err := NewError("derive", KindDomain, "h0", errors.New("must be positive"))
	want := "derive: domain (field=h0): must be positive"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}

	var nilErr *Error
	if nilErr.Error() != "<nil>" {
		t.Errorf("nil Error() = %q, want <nil>", nilErr.Error())
	}
}
