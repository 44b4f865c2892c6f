package mlpcr

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// decomposeBetween extracts the between-group basis and scores from the
// group-level residual (one row per group). The basis is computed on the
// column-centered residual; the scores project the original, uncentered
// residual onto it.
func (m *Model) decomposeBetween(resid *mat.Dense, requested int) error {
	g, p := resid.Dims()
	bound := g - 1
	if bound < 0 {
		bound = 0
	}
	k := bound
	if requested != Unbounded {
		if requested > bound {
			m.Warnings = append(m.Warnings, Warning{Code: WarnBetweenClamped, Requested: requested, Clamped: bound})
		}
		k = requested
		if k > bound {
			k = bound
		}
	}
	if k == 0 {
		return nil
	}

	col := make([]float64, g)
	centered := mat.NewDense(g, p, nil)
	for j := 0; j < p; j++ {
		mat.Col(col, j, resid)
		mean := stat.Mean(col, nil)
		for i := 0; i < g; i++ {
			centered.Set(i, j, col[i]-mean)
		}
	}
	var svd mat.SVD
	if !svd.Factorize(centered, mat.SVDThin) {
		return errFactorize
	}
	var v mat.Dense
	svd.VTo(&v)
	_, avail := v.Dims()
	if k > avail {
		k = avail
	}

	basis := mat.NewDense(p, k, nil)
	basis.Copy(v.Slice(0, p, 0, k))
	scores := mat.NewDense(g, k, nil)
	scores.Mul(resid, basis)
	m.BetweenBasis = basis
	m.BetweenScores = scores
	return nil
}
