package mlpcr

// projectCoefficients maps the fitted score-space coefficients back into
// feature space. Three length p+1 vectors come out of one fit: the combined
// model over all retained components, the between-only model, and the
// within-only model. The intercept belongs to the combined and between
// vectors; the within vector's leading entry is always zero.
func (m *Model) projectCoefficients(p int) {
	intercept := m.ScoreCoef[0]
	combined := make([]float64, p+1)
	between := make([]float64, p+1)
	within := make([]float64, p+1)
	combined[0] = intercept
	between[0] = intercept

	kb := 0
	if m.BetweenBasis != nil {
		_, kb = m.BetweenBasis.Dims()
	}
	// Retained design columns keep the concatenation order: between block
	// first, then within. ScoreCoef[1+pos] lines up with that order.
	pos := 1
	for _, ci := range m.BetweenDims {
		c := m.ScoreCoef[pos]
		pos++
		for i := 0; i < p; i++ {
			v := m.BetweenBasis.At(i, ci) * c
			combined[1+i] += v
			between[1+i] += v
		}
	}
	for _, ci := range m.WithinDims {
		c := m.ScoreCoef[pos]
		pos++
		for i := 0; i < p; i++ {
			v := m.WithinBasis.At(i, ci-kb) * c
			combined[1+i] += v
			within[1+i] += v
		}
	}
	m.Coef = combined
	m.BetweenCoef = between
	m.WithinCoef = within
}
