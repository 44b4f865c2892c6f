package mlpcr

import "gonum.org/v1/gonum/mat"

// decomposeWithin extracts the within-group basis and scores.
//
// The basis comes from the singular value decomposition of the group-centered,
// scale-weighted data; the leading right singular vectors of that matrix are
// the feature-space directions of within-group variance, ordered by
// descending singular value. The scores project the full, uncentered data
// onto the basis so that between-group variance aligned with within axes is
// absorbed into the within fraction; this also means within-scores are not
// forced to zero mean per group when the retained basis is incomplete.
func (m *Model) decomposeWithin(x, xw *mat.Dense, gs *groupStructure, requested int) error {
	n, p := x.Dims()
	bound := n - gs.numGroups()
	if bound < 0 {
		bound = 0
	}
	k := bound
	if requested != Unbounded {
		if requested > bound {
			m.Warnings = append(m.Warnings, Warning{Code: WarnWithinClamped, Requested: requested, Clamped: bound})
		}
		k = requested
		if k > bound {
			k = bound
		}
	}
	if k == 0 {
		return nil
	}

	weighted := mat.NewDense(n, p, nil)
	for i := 0; i < n; i++ {
		s := gs.scale[i]
		for j := 0; j < p; j++ {
			weighted.Set(i, j, s*xw.At(i, j))
		}
	}
	var svd mat.SVD
	if !svd.Factorize(weighted, mat.SVDThin) {
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
	scores := mat.NewDense(n, k, nil)
	scores.Mul(x, basis)
	m.WithinBasis = basis
	m.WithinScores = scores
	return nil
}

// residualExemplars removes the within-fraction reconstruction from the data
// and returns one representative row per group carrying the between-group
// signal. Subtracting the residual's own within-group mean strips leftover
// within-group variance caused by an incomplete within basis, leaving every
// row of a group identical; the group's first observation serves as the
// exemplar. With no within components the group-mean component x - xw is
// used directly.
func residualExemplars(x, xw *mat.Dense, basis, scores *mat.Dense, gs *groupStructure) *mat.Dense {
	n, p := x.Dims()
	resid := mat.NewDense(n, p, nil)
	if basis == nil {
		resid.Sub(x, xw)
	} else {
		var recon mat.Dense
		recon.Mul(scores, basis.T())
		resid.Sub(x, &recon)
		resid.Sub(resid, gs.centerWithin(resid))
	}
	out := mat.NewDense(gs.numGroups(), p, nil)
	for g, row := range gs.first {
		for j := 0; j < p; j++ {
			out.Set(g, j, resid.At(row, j))
		}
	}
	return out
}
