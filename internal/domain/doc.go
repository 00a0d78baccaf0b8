// Package domain contains the error vocabulary shared by every cosmocalc
// layer.
//
// It has no dependencies on infrastructure concerns (files, flags, logging)
// so that the numerical core, the query parser and the CLI all classify
// failures the same way.
//
// # Error Kinds
//
//   - [ErrValidation]: an input field is not a number
//   - [ErrDomain]: a parameter combination the engine declines to evaluate
//   - [ErrIntegration]: the quadrature did not converge
//
// Concrete failures are [*Error] values carrying the operation, kind and
// field; use errors.Is with the sentinels or [IsKind] to classify them.
package domain
