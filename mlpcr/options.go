package mlpcr

import "fmt"

// Unbounded requests as many components as the degrees-of-freedom bound
// allows (n-G for the within fraction, G-1 for the between fraction).
const Unbounded = -1

type config struct {
	betweenDim int
	withinDim  int
	consensus  bool
	tol        float64
}

// Option defines a functional option for configuring Fit.
type Option func(*config)

// WithNumComponents sets the requested between-group and within-group
// component counts. Either may be Unbounded (the default) to auto-select up
// to the degrees-of-freedom bound. Explicit requests beyond the bound are
// clamped with a warning.
func WithNumComponents(between, within int) Option {
	return func(c *config) {
		c.betweenDim = between
		c.withinDim = within
	}
}

// WithConsensusWeighting enables consensus PCA weighting: every group
// contributes equally to the within-group decomposition and the regression,
// independent of its observation count. The default weights groups in
// proportion to their size.
func WithConsensusWeighting(enabled bool) Option {
	return func(c *config) {
		c.consensus = enabled
	}
}

// WithRankTolerance sets the singular-value tolerance used for rank
// detection and for the pseudoinverse cutoff. A non-positive value selects
// the conventional max(rows, cols) * eps * sigmaMax default.
func WithRankTolerance(tol float64) Option {
	return func(c *config) {
		c.tol = tol
	}
}

func defaultConfig() config {
	return config{betweenDim: Unbounded, withinDim: Unbounded}
}

func (c *config) validate() error {
	if c.betweenDim < 0 && c.betweenDim != Unbounded {
		return fmt.Errorf("mlpcr: between-group component count must be non-negative or Unbounded, got %d", c.betweenDim)
	}
	if c.withinDim < 0 && c.withinDim != Unbounded {
		return fmt.Errorf("mlpcr: within-group component count must be non-negative or Unbounded, got %d", c.withinDim)
	}
	return nil
}
