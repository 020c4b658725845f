package scoring

import (
	"fmt"
	"math"
)

// LinearModel is a ridge regression over the feature vector.
type LinearModel struct {
	Intercept float64   `yaml:"intercept"`
	Coef      []float64 `yaml:"coef"`
}

func (m *LinearModel) prepare(width int) error {
	if len(m.Coef) != width {
		return fmt.Errorf("linear model: %d coefficients for %d features", len(m.Coef), width)
	}
	for i, c := range m.Coef {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return fmt.Errorf("linear model: coefficient %d is not finite", i)
		}
	}
	return nil
}

// Predict returns the intercept plus the dot product of x with the coefficients.
func (m *LinearModel) Predict(x []float64) (float64, error) {
	if len(x) != len(m.Coef) {
		return 0, fmt.Errorf("linear model: got %d features, want %d", len(x), len(m.Coef))
	}
	sum := m.Intercept
	for i, v := range x {
		sum += m.Coef[i] * v
	}
	return sum, nil
}
