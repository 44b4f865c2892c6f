package mlpcr

import "gonum.org/v1/gonum/mat"

const machEps = 2.220446049250313e-16

// svdCutoff returns the singular-value threshold below which a value is
// treated as zero. A caller-supplied positive tolerance wins; otherwise the
// conventional max(rows, cols) * eps * sigmaMax default applies.
func svdCutoff(values []float64, rows, cols int, tol float64) float64 {
	if tol > 0 {
		return tol
	}
	if len(values) == 0 {
		return 0
	}
	dim := rows
	if cols > dim {
		dim = cols
	}
	return float64(dim) * machEps * values[0]
}

// numericRank computes the numeric rank of a as the number of singular
// values above the cutoff.
func numericRank(a *mat.Dense, tol float64) (int, error) {
	rows, cols := a.Dims()
	var svd mat.SVD
	if !svd.Factorize(a, mat.SVDNone) {
		return 0, errFactorize
	}
	values := svd.Values(nil)
	cutoff := svdCutoff(values, rows, cols, tol)
	rank := 0
	for _, v := range values {
		if v > cutoff {
			rank++
		}
	}
	return rank, nil
}
