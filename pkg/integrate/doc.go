// Package integrate provides adaptive quadrature over finite and
// semi-infinite intervals.
//
// An [Integrator] holds Gauss-Legendre nodes for a low-order and a
// high-order rule. Each panel is evaluated with both; their difference is
// the panel's error estimate. The panel with the largest estimate is
// bisected until the summed estimate is within tolerance or the
// subdivision budget runs out.
//
// # Usage
//
//	q, err := integrate.New(integrate.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	v, err := q.Integrate(func(x float64) float64 { return 1 / (1 + x*x) }, 0, math.Inf(1))
//
// Infinite bounds are mapped onto [0, 1] with x = a + t/(1-t).
//
// # Errors
//
// [ErrNoConvergence] is returned when the budget is exhausted and
// [ErrNonFinite] when the integrand yields NaN or ±Inf. No partial result
// is returned in either case.
//
// An Integrator is immutable after [New] and safe for concurrent use.
package integrate
