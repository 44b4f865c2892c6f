package mlpcr

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// groupStructure is the segmented form of the block-diagonal group
// operators. Groups are numbered densely in first-appearance order of their
// labels, which fixes a canonical group index regardless of label type.
type groupStructure struct {
	index []int     // observation -> group
	sizes []int     // observations per group
	first []int     // exemplar (first) observation per group
	scale []float64 // per-observation weight, 1/sqrt(group size) under consensus weighting
}

func buildGroups[L comparable](labels []L, consensus bool) *groupStructure {
	gs := &groupStructure{
		index: make([]int, len(labels)),
		scale: make([]float64, len(labels)),
	}
	seen := make(map[L]int, len(labels))
	for i, label := range labels {
		g, ok := seen[label]
		if !ok {
			g = len(seen)
			seen[label] = g
			gs.sizes = append(gs.sizes, 0)
			gs.first = append(gs.first, i)
		}
		gs.index[i] = g
		gs.sizes[g]++
	}
	for i, g := range gs.index {
		if consensus {
			gs.scale[i] = 1 / math.Sqrt(float64(gs.sizes[g]))
		} else {
			gs.scale[i] = 1
		}
	}
	return gs
}

func (gs *groupStructure) numGroups() int { return len(gs.sizes) }

// centerWithin subtracts each observation's group mean, the blockwise
// application of the I - (1/m)J centering operator. Every group block of
// the result has columns summing to zero.
func (gs *groupStructure) centerWithin(src *mat.Dense) *mat.Dense {
	n, p := src.Dims()
	g := gs.numGroups()
	means := make([]float64, g*p)
	for i := 0; i < n; i++ {
		row := gs.index[i] * p
		for j := 0; j < p; j++ {
			means[row+j] += src.At(i, j)
		}
	}
	for gi := 0; gi < g; gi++ {
		inv := 1 / float64(gs.sizes[gi])
		for j := 0; j < p; j++ {
			means[gi*p+j] *= inv
		}
	}
	out := mat.NewDense(n, p, nil)
	for i := 0; i < n; i++ {
		row := gs.index[i] * p
		for j := 0; j < p; j++ {
			out.Set(i, j, src.At(i, j)-means[row+j])
		}
	}
	return out
}

// expand maps one row per group back to all of that group's observations,
// the blockwise application of the expansion operator.
func (gs *groupStructure) expand(src *mat.Dense) *mat.Dense {
	_, c := src.Dims()
	out := mat.NewDense(len(gs.index), c, nil)
	for i, g := range gs.index {
		for j := 0; j < c; j++ {
			out.Set(i, j, src.At(g, j))
		}
	}
	return out
}
