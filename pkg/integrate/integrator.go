package integrate

import (
	"container/heap"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/integrate/quad"
)

// Func is a one-dimensional integrand.
type Func func(x float64) float64

// Result is an integral together with the work that produced it.
type Result struct {
	Value float64

	// AbsError is the summed panel error estimate.
	AbsError float64

	// Subdivisions is the number of panels in the final partition.
	Subdivisions int
}

// Integrator evaluates integrals with globally adaptive Gauss-Legendre
// quadrature. Use New to create one.
type Integrator struct {
	cfg Config

	// Nodes and weights on [-1, 1].
	lowX, lowW   []float64
	highX, highW []float64
}

// New creates an Integrator, precomputing the rule nodes with gonum.
func New(cfg Config) (*Integrator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	lowN, highN := cfg.Order, 2*cfg.Order+1
	q := &Integrator{
		cfg:   cfg,
		lowX:  make([]float64, lowN),
		lowW:  make([]float64, lowN),
		highX: make([]float64, highN),
		highW: make([]float64, highN),
	}
	quad.Legendre{}.FixedLocations(q.lowX, q.lowW, -1, 1)
	quad.Legendre{}.FixedLocations(q.highX, q.highW, -1, 1)
	return q, nil
}

// Config returns the configuration the Integrator was built with.
func (q *Integrator) Config() Config {
	return q.cfg
}

// Integrate returns the integral of f over [lower, upper]. Either bound may
// be infinite. The error estimate is dropped; use Estimate to keep it.
func (q *Integrator) Integrate(f Func, lower, upper float64) (float64, error) {
	r, err := q.Estimate(f, lower, upper)
	if err != nil {
		return 0, err
	}
	return r.Value, nil
}

// Estimate is Integrate with the error estimate and panel count retained.
func (q *Integrator) Estimate(f Func, lower, upper float64) (Result, error) {
	switch {
	case math.IsNaN(lower) || math.IsNaN(upper):
		return Result{}, fmt.Errorf("%w: [%g, %g]", ErrInvalidBounds, lower, upper)
	case lower == upper:
		return Result{}, nil
	case lower > upper:
		r, err := q.Estimate(f, upper, lower)
		r.Value = -r.Value
		return r, err
	}

	lowerInf, upperInf := math.IsInf(lower, -1), math.IsInf(upper, 1)
	switch {
	case lowerInf && upperInf:
		left, err := q.Estimate(f, lower, 0)
		if err != nil {
			return Result{}, err
		}
		right, err := q.Estimate(f, 0, upper)
		if err != nil {
			return Result{}, err
		}
		return Result{
			Value:        left.Value + right.Value,
			AbsError:     left.AbsError + right.AbsError,
			Subdivisions: left.Subdivisions + right.Subdivisions,
		}, nil
	case upperInf:
		return q.adapt(halfLine(f, lower, 1), 0, 1)
	case lowerInf:
		return q.adapt(halfLine(f, upper, -1), 0, 1)
	}
	return q.adapt(f, lower, upper)
}

// halfLine maps the integral of f over [a, ±Inf) onto t in [0, 1] with
// x = a ± c·t/(1-t), c = 1+|a|, so a tail decaying like a power of x stays
// away from t = 1 for any a. Nodes at t = 1, or whose x overflows,
// contribute 0.
func halfLine(f Func, a, sign float64) Func {
	c := 1 + math.Abs(a)
	return func(t float64) float64 {
		s := 1 - t
		if s <= 0 {
			return 0
		}
		x := a + sign*c*t/s
		if math.IsInf(x, 0) {
			return 0
		}
		return f(x) * c / (s * s)
	}
}

// panel is one subinterval of the partition.
type panel struct {
	a, b  float64
	value float64
	err   float64
}

// panelHeap orders panels by descending error estimate.
type panelHeap []panel

func (h panelHeap) Len() int           { return len(h) }
func (h panelHeap) Less(i, j int) bool { return h[i].err > h[j].err }
func (h panelHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *panelHeap) Push(x any)        { *h = append(*h, x.(panel)) }
func (h *panelHeap) Pop() any {
	old := *h
	n := len(old)
	p := old[n-1]
	*h = old[:n-1]
	return p
}

func (h panelHeap) totals() (value, err float64) {
	for _, p := range h {
		value += p.value
		err += p.err
	}
	return value, err
}

// adapt integrates f over the finite interval [a, b].
func (q *Integrator) adapt(f Func, a, b float64) (Result, error) {
	fx := make([]float64, len(q.highX))

	first, err := q.evaluate(f, a, b, fx)
	if err != nil {
		return Result{}, err
	}
	h := &panelHeap{first}

	for {
		value, errSum := h.totals()
		if errSum <= q.tolerance(value) {
			return Result{Value: value, AbsError: errSum, Subdivisions: h.Len()}, nil
		}
		if h.Len() >= q.cfg.MaxSubdivisions {
			return Result{}, fmt.Errorf("%w: %d panels, error estimate %.3g above tolerance %.3g",
				ErrNoConvergence, h.Len(), errSum, q.tolerance(value))
		}

		worst := heap.Pop(h).(panel)
		mid := worst.a + (worst.b-worst.a)/2
		if mid <= worst.a || mid >= worst.b {
			return Result{}, fmt.Errorf("%w: panel [%g, %g] cannot be bisected further",
				ErrNoConvergence, worst.a, worst.b)
		}

		left, err := q.evaluate(f, worst.a, mid, fx)
		if err != nil {
			return Result{}, err
		}
		right, err := q.evaluate(f, mid, worst.b, fx)
		if err != nil {
			return Result{}, err
		}
		heap.Push(h, left)
		heap.Push(h, right)
	}
}

func (q *Integrator) tolerance(value float64) float64 {
	return math.Max(q.cfg.AbsTol, q.cfg.RelTol*math.Abs(value))
}

// evaluate applies both rules to [a, b]. fx is scratch space of at least
// len(q.highX) values.
func (q *Integrator) evaluate(f Func, a, b float64, fx []float64) (panel, error) {
	half, mid := (b-a)/2, a+(b-a)/2

	low, err := q.rule(f, q.lowX, q.lowW, mid, half, fx[:len(q.lowX)])
	if err != nil {
		return panel{}, err
	}
	high, err := q.rule(f, q.highX, q.highW, mid, half, fx[:len(q.highX)])
	if err != nil {
		return panel{}, err
	}
	return panel{a: a, b: b, value: high, err: math.Abs(high - low)}, nil
}

func (q *Integrator) rule(f Func, xs, ws []float64, mid, half float64, fx []float64) (float64, error) {
	for i, x := range xs {
		at := mid + half*x
		v := f(at)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, fmt.Errorf("%w: f(%g) = %g", ErrNonFinite, at, v)
		}
		fx[i] = v
	}
	return half * floats.Dot(ws, fx), nil
}
