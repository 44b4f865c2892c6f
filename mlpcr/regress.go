package mlpcr

import "gonum.org/v1/gonum/mat"

// solveRegression fits y on the intercept-augmented design of retained
// scores. When the design has full column rank the coefficients come from
// weighted ordinary least squares with W = diag(scale^2). Otherwise a
// Moore-Penrose pseudoinverse of the scale^2-weighted design is applied to
// y, with singular values at or below the cutoff left uninverted. The
// returned coefficient vector always has 1 + retained-component entries.
func solveRegression(scores *mat.Dense, y, scale []float64, tol float64) ([]float64, bool, error) {
	n := len(y)
	cols := 1
	if scores != nil {
		_, sc := scores.Dims()
		cols += sc
	}
	design := mat.NewDense(n, cols, nil)
	for i := 0; i < n; i++ {
		design.Set(i, 0, 1)
	}
	if cols > 1 {
		design.Slice(0, n, 1, cols).(*mat.Dense).Copy(scores)
	}

	rank, err := numericRank(design, tol)
	if err != nil {
		return nil, false, err
	}
	if rank == cols {
		coef, err := solveWeightedOLS(design, y, scale)
		if err == nil {
			return coef, false, nil
		}
	}
	coef, err := solvePseudoinverse(design, y, scale, tol)
	if err != nil {
		return nil, false, err
	}
	return coef, true, nil
}

// solveWeightedOLS solves (X' W X) b = X' W y with W = diag(scale^2).
func solveWeightedOLS(design *mat.Dense, y, scale []float64) ([]float64, error) {
	n, cols := design.Dims()
	weighted := mat.NewDense(n, cols, nil)
	wy := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		w := scale[i] * scale[i]
		for j := 0; j < cols; j++ {
			weighted.Set(i, j, w*design.At(i, j))
		}
		wy.SetVec(i, w*y[i])
	}
	var xtwx mat.Dense
	xtwx.Mul(design.T(), weighted)
	xtwy := mat.NewVecDense(cols, nil)
	xtwy.MulVec(design.T(), wy)

	var coef mat.VecDense
	if err := coef.SolveVec(&xtwx, xtwy); err != nil {
		if _, ok := err.(mat.Condition); !ok {
			return nil, err
		}
	}
	out := make([]float64, cols)
	for i := range out {
		out[i] = coef.AtVec(i)
	}
	return out, nil
}

// solvePseudoinverse computes pinv(diag(scale^2) X) y via SVD. The weighted
// design enters the decomposition directly, matching the reference
// behavior; y is not reweighted.
func solvePseudoinverse(design *mat.Dense, y, scale []float64, tol float64) ([]float64, error) {
	n, cols := design.Dims()
	weighted := mat.NewDense(n, cols, nil)
	for i := 0; i < n; i++ {
		w := scale[i] * scale[i]
		for j := 0; j < cols; j++ {
			weighted.Set(i, j, w*design.At(i, j))
		}
	}
	var svd mat.SVD
	if !svd.Factorize(weighted, mat.SVDThin) {
		return nil, errFactorize
	}
	values := svd.Values(nil)
	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)

	uty := mat.NewVecDense(len(values), nil)
	uty.MulVec(u.T(), mat.NewVecDense(n, y))
	cutoff := svdCutoff(values, n, cols, tol)
	for i, s := range values {
		if s > cutoff {
			uty.SetVec(i, uty.AtVec(i)/s)
		} else {
			uty.SetVec(i, 0)
		}
	}
	var coef mat.VecDense
	coef.MulVec(&v, uty)
	out := make([]float64, cols)
	for i := range out {
		out[i] = coef.AtVec(i)
	}
	return out, nil
}
