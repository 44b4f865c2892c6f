// Package mlpcr implements multilevel principal component regression for
// hierarchically grouped observations (repeated measurements nested in
// groups). The feature variance is decomposed into a between-group and a
// within-group fraction by two successive PCA stages, the outcome is
// regressed jointly on scores from both, and the fitted coefficients are
// projected back into feature space. One fit yields a combined model plus
// between-only and within-only sub-models.
package mlpcr

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// ErrNoGroups is returned when no group labels are supplied; the multilevel
// decomposition is undefined without group structure.
var ErrNoGroups = errors.New("mlpcr: no group labels supplied")

var errFactorize = errors.New("mlpcr: singular value decomposition failed")

// Model is the result of a single fit. The three feature-space coefficient
// vectors all have length p+1 with the intercept first; WithinCoef's
// intercept entry is always zero. Basis and score matrices are nil when the
// corresponding fraction has no components.
type Model struct {
	Coef        []float64 // combined model, intercept first
	BetweenCoef []float64 // between-only model, carries the intercept
	WithinCoef  []float64 // within-only model, zero intercept

	BetweenBasis  *mat.Dense // p x kb feature-space basis
	BetweenScores *mat.Dense // G x kb group-level scores
	WithinBasis   *mat.Dense // p x kw feature-space basis
	WithinScores  *mat.Dense // n x kw observation-level scores

	// BetweenDims and WithinDims are the disjoint retained index sets into
	// the concatenated score columns (between block first).
	BetweenDims []int
	WithinDims  []int

	Intercept     float64
	ScoreCoef     []float64 // intercept followed by retained-score coefficients
	Rank          int       // numeric rank of the assembled score matrix
	PseudoInverse bool      // regression fell back to the pseudoinverse
	Warnings      []Warning
}

// Fit runs the full decomposition-regression-projection pipeline on the
// n x p feature matrix x, outcome y and per-observation group labels.
// Labels may be any comparable type; groups are numbered in first-appearance
// order. The call is a pure function of its inputs: no state is shared
// between invocations and independent fits may run concurrently.
//
// Recoverable conditions (clamped component requests, rank-deficiency drops)
// are reported on Model.Warnings while the fit completes; configuration
// errors abort with no partial result.
func Fit[L comparable](x *mat.Dense, y []float64, groups []L, opts ...Option) (*Model, error) {
	if len(groups) == 0 {
		return nil, ErrNoGroups
	}
	if x == nil {
		return nil, errors.New("mlpcr: nil feature matrix")
	}
	n, p := x.Dims()
	if len(groups) != n {
		return nil, fmt.Errorf("mlpcr: %d group labels for %d observations", len(groups), n)
	}
	if len(y) != n {
		return nil, fmt.Errorf("mlpcr: outcome length %d does not match %d observations", len(y), n)
	}
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	gs := buildGroups(groups, cfg.consensus)
	m := &Model{}
	xw := gs.centerWithin(x)
	if err := m.decomposeWithin(x, xw, gs, cfg.withinDim); err != nil {
		return nil, err
	}
	resid := residualExemplars(x, xw, m.WithinBasis, m.WithinScores, gs)
	if err := m.decomposeBetween(resid, cfg.betweenDim); err != nil {
		return nil, err
	}
	retained, err := m.assembleScores(gs, cfg.tol)
	if err != nil {
		return nil, err
	}
	coef, pinv, err := solveRegression(retained, y, gs.scale, cfg.tol)
	if err != nil {
		return nil, err
	}
	m.ScoreCoef = coef
	m.Intercept = coef[0]
	m.PseudoInverse = pinv
	m.projectCoefficients(p)
	return m, nil
}

// Predict applies the combined model to the rows of x.
func (m *Model) Predict(x *mat.Dense) ([]float64, error) {
	n, p := x.Dims()
	if p+1 != len(m.Coef) {
		return nil, fmt.Errorf("mlpcr: %d features, model has %d", p, len(m.Coef)-1)
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		s := m.Coef[0]
		for j := 0; j < p; j++ {
			s += x.At(i, j) * m.Coef[1+j]
		}
		out[i] = s
	}
	return out, nil
}
