package calculator

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/frwlab/cosmocalc/pkg/cosmo"
	"github.com/frwlab/cosmocalc/pkg/integrate"
	"github.com/frwlab/cosmocalc/pkg/log"
	"github.com/frwlab/cosmocalc/pkg/query"
	"github.com/frwlab/cosmocalc/pkg/report"
)

// Calculator evaluates requests into reports.
type Calculator struct {
	cfg    Config
	calc   *cosmo.Calculator
	logger log.Logger
	opts   options
}

// New creates a Calculator. A zero Integrator or Concurrency takes its
// default; a zero CurvatureTolerance is kept and means exact flatness only.
func New(cfg Config, opts ...Option) (*Calculator, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("calculator config: %w", err)
	}
	if err := validateModuleVersions(); err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	calc, err := cosmo.NewCalculator(cfg.Integrator)
	if err != nil {
		return nil, err
	}
	return &Calculator{cfg: cfg, calc: calc, logger: o.logger, opts: o}, nil
}

// Config returns the configuration in use.
func (c *Calculator) Config() Config {
	return c.cfg
}

func (c *Calculator) params(req query.Request) (cosmo.Parameters, error) {
	p, err := req.Params(cosmo.WithCurvatureTolerance(c.cfg.CurvatureTolerance))
	if err != nil {
		return cosmo.Parameters{}, err
	}
	if req.Reflected() {
		c.logger.Warn("negative redshift reflected", log.Float64("z", req.Redshift()))
	}
	c.logger.Debug("parameters derived",
		log.String("mode", req.Mode().String()),
		log.Float64("omega_rad", p.OmegaRad()),
		log.Float64("omega_k", p.OmegaK()),
		log.String("geometry", p.Geometry().String()))
	return p, nil
}

// Evaluate computes the report for req.
func (c *Calculator) Evaluate(ctx context.Context, req query.Request) (report.Report, error) {
	if err := ctx.Err(); err != nil {
		return report.Report{}, err
	}
	p, err := c.params(req)
	if err != nil {
		return report.Report{}, err
	}
	return c.evaluate(p, req)
}

// evaluate computes the report for req with parameters already derived.
func (c *Calculator) evaluate(p cosmo.Parameters, req query.Request) (report.Report, error) {
	start := time.Now()
	q, err := c.calc.Evaluate(p, req.Redshift())
	if err != nil {
		return report.Report{}, err
	}
	c.logger.Debug("evaluated",
		log.Float64("z", req.Redshift()),
		log.Duration("took", time.Since(start)))
	return report.New(p, q), nil
}

// Sweep evaluates req moved to every redshift in zs; the redshift req was
// parsed with only selects the parameters. The first failure cancels the
// remaining points and is returned with its redshift.
func (c *Calculator) Sweep(ctx context.Context, req query.Request, zs []float64) ([]report.Report, error) {
	p, err := c.params(req)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
		done     int
	)
	out := make([]report.Report, len(zs))
	sem := make(chan struct{}, c.cfg.Concurrency)
	start := time.Now()

	fail := func(err error) {
		mu.Lock()
		defer mu.Unlock()
		if firstErr == nil {
			firstErr = err
			cancel()
		}
	}

dispatch:
	for i, z := range zs {
		select {
		case <-ctx.Done():
			break dispatch
		case sem <- struct{}{}:
		}

		wg.Add(1)
		go func(i int, z float64) {
			defer wg.Done()
			defer func() { <-sem }()
			if ctx.Err() != nil {
				return
			}

			rep, err := c.evaluate(p, req.WithRedshift(z))
			if err != nil {
				fail(fmt.Errorf("sweep at z=%g: %w", z, err))
				return
			}
			out[i] = rep

			mu.Lock()
			done++
			if c.opts.progress != nil {
				c.opts.progress(done, len(zs))
			}
			mu.Unlock()
		}(i, z)
	}
	wg.Wait()

	if firstErr != nil {
		c.logger.Error("sweep failed", log.Err(firstErr))
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.logger.Info("sweep complete",
		log.Int("points", len(zs)),
		log.Int("workers", c.cfg.Concurrency),
		log.Duration("took", time.Since(start)))
	return out, nil
}

// Grid returns steps evenly spaced redshifts from zMin to zMax inclusive.
// A single step yields just zMin.
func Grid(zMin, zMax float64, steps int) ([]float64, error) {
	switch {
	case steps < 1:
		return nil, fmt.Errorf("grid needs at least one step, got %d", steps)
	case zMin < 0 || zMax < zMin:
		return nil, fmt.Errorf("grid bounds must satisfy 0 <= z-min <= z-max, got [%g, %g]", zMin, zMax)
	case steps == 1:
		return []float64{zMin}, nil
	}
	zs := make([]float64, steps)
	dz := (zMax - zMin) / float64(steps-1)
	for i := range zs {
		zs[i] = zMin + float64(i)*dz
	}
	zs[steps-1] = zMax
	return zs, nil
}

// validateModuleVersions checks the numeric and logging packages this
// facade is built against.
func validateModuleVersions() error {
	modules := map[string]struct {
		version    string
		minVersion string
	}{
		"cosmo":     {cosmo.Version, cosmo.MinCompatibleVersion},
		"integrate": {integrate.Version, integrate.MinCompatibleVersion},
		"log":       {log.Version, log.MinCompatibleVersion},
	}

	for name, m := range modules {
		if !isVersionCompatible(m.version, m.minVersion) {
			return fmt.Errorf("module %s version %s is below minimum compatible version %s",
				name, m.version, m.minVersion)
		}
	}
	return nil
}

// isVersionCompatible reports version >= minVersion for "major.minor.patch".
func isVersionCompatible(version, minVersion string) bool {
	var vMajor, vMinor, vPatch int
	var mMajor, mMinor, mPatch int

	_, _ = fmt.Sscanf(version, "%d.%d.%d", &vMajor, &vMinor, &vPatch)
	_, _ = fmt.Sscanf(minVersion, "%d.%d.%d", &mMajor, &mMinor, &mPatch)

	if vMajor != mMajor {
		return vMajor > mMajor
	}
	if vMinor != mMinor {
		return vMinor > mMinor
	}
	return vPatch >= mPatch
}
