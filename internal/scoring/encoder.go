package scoring

import (
	"fmt"
	"math"
	"strings"
)

// TargetEncoder replaces a categorical value with the mean target seen for
// it at training time. Unknown values fall back to Prior.
type TargetEncoder struct {
	Columns []string                      `yaml:"columns"`
	Prior   float64                       `yaml:"prior"`
	Mapping map[string]map[string]float64 `yaml:"mapping"`

	index map[string]map[string]float64
}

func (e *TargetEncoder) prepare() error {
	if math.IsNaN(e.Prior) || math.IsInf(e.Prior, 0) {
		return fmt.Errorf("target encoder: prior is not finite")
	}
	e.index = make(map[string]map[string]float64, len(e.Columns))
	for _, col := range e.Columns {
		values := make(map[string]float64, len(e.Mapping[col]))
		for k, v := range e.Mapping[col] {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("target encoder: %s=%q is not finite", col, k)
			}
			values[strings.ToLower(k)] = v
		}
		e.index[col] = values
	}
	return nil
}

// Encodes reports whether column is target encoded.
func (e *TargetEncoder) Encodes(column string) bool {
	_, ok := e.index[column]
	return ok
}

// Encode returns the encoded value of a category, matched case-insensitively.
func (e *TargetEncoder) Encode(column, value string) float64 {
	if v, ok := e.index[column][strings.ToLower(value)]; ok {
		return v
	}
	return e.Prior
}

// StandardScaler centres and scales numeric columns.
type StandardScaler struct {
	Columns []string  `yaml:"columns"`
	Mean    []float64 `yaml:"mean"`
	Scale   []float64 `yaml:"scale"`
}

func (s *StandardScaler) prepare() error {
	if len(s.Mean) != len(s.Columns) || len(s.Scale) != len(s.Columns) {
		return fmt.Errorf("scaler: %d columns but %d means and %d scales",
			len(s.Columns), len(s.Mean), len(s.Scale))
	}
	for i := range s.Columns {
		if math.IsNaN(s.Mean[i]) || math.IsNaN(s.Scale[i]) {
			return fmt.Errorf("scaler: column %s has NaN parameters", s.Columns[i])
		}
	}
	return nil
}

// Transform scales the listed columns of values in place.
func (s *StandardScaler) Transform(values map[string]float64) {
	for i, col := range s.Columns {
		v, ok := values[col]
		if !ok {
			continue
		}
		scale := s.Scale[i]
		if scale == 0 {
			scale = 1
		}
		values[col] = (v - s.Mean[i]) / scale
	}
}
