package mlpcr

import (
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func benchmarkData(n, p, groupSize int) (*mat.Dense, []float64, []int) {
	rng := rand.New(rand.NewSource(99))
	x := mat.NewDense(n, p, nil)
	y := make([]float64, n)
	groups := make([]int, n)
	for i := 0; i < n; i++ {
		g := i / groupSize
		for j := 0; j < p; j++ {
			x.Set(i, j, rng.NormFloat64()+float64(g%3))
		}
		y[i] = rng.NormFloat64() + float64(g%3)
		groups[i] = g
	}
	return x, y, groups
}

func BenchmarkFit(b *testing.B) {
	x, y, groups := benchmarkData(200, 40, 10)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Fit(x, y, groups); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkFitConsensus(b *testing.B) {
	x, y, groups := benchmarkData(200, 40, 10)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Fit(x, y, groups, WithConsensusWeighting(true)); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkFitLimitedComponents(b *testing.B) {
	x, y, groups := benchmarkData(500, 60, 25)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Fit(x, y, groups, WithNumComponents(5, 10)); err != nil {
			b.Fatal(err)
		}
	}
}
