// Package cosmo computes FRW cosmological observables from a parameter set
// and a redshift.
//
// # Parameters
//
// [Derive] turns (H0, Ωm, ΩΛ) into [Parameters], adding the radiation
// density Ωrad = 4.165e-5/h² and the curvature Ωk = 1 - ΩΛ - Ωm - Ωrad, and
// classifying the [Geometry] once. Ωm and ΩΛ are not range-checked.
//
//	p, err := cosmo.Derive(70, 0.3, 0.7)
//	if err != nil {
//	    return err
//	}
//	q, err := cosmo.Default().Evaluate(p, 1.0)
//
// # Units
//
// H0 is typed. Distance integrals use [HubbleRateKmsMpc]; time integrals use
// [HubbleRateInverseSeconds], obtained with [HubbleRateKmsMpc.InverseSeconds].
// Results are in Gyr, Mpc, Gpc³ and kpc per arcsecond.
//
// # Curvature
//
// Because Ωrad is never zero, a flat selection (ΩΛ = 1 - Ωm) leaves
// Ωk = -Ωrad. With [DefaultCurvatureTolerance] that classifies as [Closed];
// pass [WithCurvatureTolerance] to widen the flat band.
//
// # Concurrency
//
// A [Calculator] is immutable and safe for concurrent use; every method is
// a pure function of its arguments.
package cosmo
