package mlpcr

import (
	"sort"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// assembleScores concatenates the expanded between-scores and the
// within-scores columnwise, determines the numeric rank of the combined
// matrix, and selects the surviving columns. A full-rank matrix keeps every
// column. Under rank deficiency only rank-1 columns survive, chosen by
// descending column variance with ties broken by original column order; the
// retained index sets stay disjoint subsets of the concatenated range, in
// stable order. Returns the retained score matrix (nil when nothing is
// retained).
func (m *Model) assembleScores(gs *groupStructure, tol float64) (*mat.Dense, error) {
	kb, kw := 0, 0
	if m.BetweenScores != nil {
		_, kb = m.BetweenScores.Dims()
	}
	if m.WithinScores != nil {
		_, kw = m.WithinScores.Dims()
	}
	total := kb + kw
	betweenDims := make([]int, 0, kb)
	for j := 0; j < kb; j++ {
		betweenDims = append(betweenDims, j)
	}
	withinDims := make([]int, 0, kw)
	for j := kb; j < total; j++ {
		withinDims = append(withinDims, j)
	}
	if total == 0 {
		m.BetweenDims = betweenDims
		m.WithinDims = withinDims
		return nil, nil
	}

	n := len(gs.index)
	combined := mat.NewDense(n, total, nil)
	if kb > 0 {
		combined.Slice(0, n, 0, kb).(*mat.Dense).Copy(gs.expand(m.BetweenScores))
	}
	if kw > 0 {
		combined.Slice(0, n, kb, total).(*mat.Dense).Copy(m.WithinScores)
	}

	rank, err := numericRank(combined, tol)
	if err != nil {
		return nil, err
	}
	m.Rank = rank
	if rank >= total {
		m.BetweenDims = betweenDims
		m.WithinDims = withinDims
		return combined, nil
	}

	keep := rank - 1
	if keep < 0 {
		keep = 0
	}
	variances := make([]float64, total)
	col := make([]float64, n)
	for j := 0; j < total; j++ {
		mat.Col(col, j, combined)
		variances[j] = stat.Variance(col, nil)
	}
	order := make([]int, total)
	for j := range order {
		order[j] = j
	}
	sort.SliceStable(order, func(a, b int) bool {
		return variances[order[a]] > variances[order[b]]
	})
	kept := make(map[int]bool, keep)
	for _, j := range order[:keep] {
		kept[j] = true
	}

	m.BetweenDims = filterIndices(betweenDims, kept)
	m.WithinDims = filterIndices(withinDims, kept)
	if kb > 0 && len(m.BetweenDims) == 0 {
		m.Warnings = append(m.Warnings, Warning{Code: WarnBetweenDropped})
	}
	if kw > 0 && len(m.WithinDims) == 0 {
		m.Warnings = append(m.Warnings, Warning{Code: WarnWithinDropped})
	}
	if keep == 0 {
		return nil, nil
	}

	retained := mat.NewDense(n, keep, nil)
	c := 0
	for j := 0; j < total; j++ {
		if !kept[j] {
			continue
		}
		mat.Col(col, j, combined)
		retained.SetCol(c, col)
		c++
	}
	return retained, nil
}

// filterIndices keeps the candidates present in the retained set,
// preserving candidate order.
func filterIndices(candidates []int, retained map[int]bool) []int {
	out := make([]int, 0, len(candidates))
	for _, j := range candidates {
		if retained[j] {
			out = append(out, j)
		}
	}
	return out
}
