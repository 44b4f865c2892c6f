// Package pcr implements ordinary principal component regression: PCA on
// the column-centered features, regression of the outcome on an
// intercept-augmented score design, and back-projection of the coefficients
// into feature space. It is the single-level case that multilevel PCR
// reduces to when the group structure carries no signal.
package pcr

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

const machEps = 2.220446049250313e-16

var errFactorize = errors.New("pcr: singular value decomposition failed")

type config struct {
	tol float64
}

// Option defines a functional option for configuring Fit.
type Option func(*config)

// WithRankTolerance sets the singular-value tolerance used for automatic
// component selection. A non-positive value selects the conventional
// max(rows, cols) * eps * sigmaMax default.
func WithRankTolerance(tol float64) Option {
	return func(c *config) {
		c.tol = tol
	}
}

// Model is the result of a principal component regression fit.
type Model struct {
	Coef      []float64  // feature-space coefficients, intercept first (length p+1)
	Basis     *mat.Dense // p x k principal directions (nil when k == 0)
	Scores    *mat.Dense // n x k projections of the uncentered data
	Intercept float64
	ScoreCoef []float64 // intercept followed by per-component coefficients
}

// Fit regresses y on the leading principal components of x. The basis comes
// from the column-centered data; scores project the original uncentered
// rows, with the intercept absorbing the offset. A negative numComponents
// auto-selects as many components as the numeric rank of the centered data
// supports; an explicit request is capped at the available singular
// vectors.
func Fit(x *mat.Dense, y []float64, numComponents int, opts ...Option) (*Model, error) {
	if x == nil {
		return nil, errors.New("pcr: nil feature matrix")
	}
	n, p := x.Dims()
	if len(y) != n {
		return nil, fmt.Errorf("pcr: outcome length %d does not match %d observations", len(y), n)
	}
	cfg := config{}
	for _, opt := range opts {
		opt(&cfg)
	}

	col := make([]float64, n)
	centered := mat.NewDense(n, p, nil)
	for j := 0; j < p; j++ {
		mat.Col(col, j, x)
		mean := stat.Mean(col, nil)
		for i := 0; i < n; i++ {
			centered.Set(i, j, col[i]-mean)
		}
	}
	var svd mat.SVD
	if !svd.Factorize(centered, mat.SVDThin) {
		return nil, errFactorize
	}
	values := svd.Values(nil)
	var v mat.Dense
	svd.VTo(&v)
	_, avail := v.Dims()

	k := numComponents
	if k < 0 {
		cutoff := cfg.tol
		if cutoff <= 0 {
			dim := n
			if p > dim {
				dim = p
			}
			cutoff = float64(dim) * machEps * values[0]
		}
		k = 0
		for _, s := range values {
			if s > cutoff {
				k++
			}
		}
	}
	if k > avail {
		k = avail
	}

	m := &Model{}
	if k > 0 {
		basis := mat.NewDense(p, k, nil)
		basis.Copy(v.Slice(0, p, 0, k))
		scores := mat.NewDense(n, k, nil)
		scores.Mul(x, basis)
		m.Basis = basis
		m.Scores = scores
	}

	design := mat.NewDense(n, 1+k, nil)
	for i := 0; i < n; i++ {
		design.Set(i, 0, 1)
	}
	if k > 0 {
		design.Slice(0, n, 1, 1+k).(*mat.Dense).Copy(m.Scores)
	}
	var coef mat.VecDense
	if err := coef.SolveVec(design, mat.NewVecDense(n, y)); err != nil {
		if _, ok := err.(mat.Condition); !ok {
			return nil, fmt.Errorf("pcr: regression solve: %w", err)
		}
	}
	m.ScoreCoef = make([]float64, 1+k)
	for i := range m.ScoreCoef {
		m.ScoreCoef[i] = coef.AtVec(i)
	}
	m.Intercept = m.ScoreCoef[0]

	m.Coef = make([]float64, p+1)
	m.Coef[0] = m.Intercept
	for c := 0; c < k; c++ {
		w := m.ScoreCoef[1+c]
		for i := 0; i < p; i++ {
			m.Coef[1+i] += m.Basis.At(i, c) * w
		}
	}
	return m, nil
}

// Predict applies the fitted model to the rows of x.
func (m *Model) Predict(x *mat.Dense) ([]float64, error) {
	n, p := x.Dims()
	if p+1 != len(m.Coef) {
		return nil, fmt.Errorf("pcr: %d features, model has %d", p, len(m.Coef)-1)
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
