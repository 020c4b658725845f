package features

import (
	"fmt"

	"estimator/internal/apperrors"
	"estimator/internal/model"
)

var strengthByLevel = map[int]float64{
	1: 10.0,
	2: 5.0,
	3: 2.0,
	4: 0.5,
	5: 0.1,
}

// Strength returns the weight of a quality level.
func Strength(level int) (float64, error) {
	s, ok := strengthByLevel[level]
	if !ok {
		return 0, fmt.Errorf("property level %d outside [%d,%d]: %w", level, BestLevel, WorstLevel, apperrors.ErrInvalidArgument)
	}
	return s, nil
}

// Synthesize expands a quality level and an area into derived features.
func Synthesize(level int, area float64) (model.DerivedFeatures, error) {
	strength, err := Strength(level)
	if err != nil {
		return model.DerivedFeatures{}, err
	}
	return model.DerivedFeatures{
		PropertyLevel:       level,
		PropertyStrength:    strength,
		PropertyAreaFactor:  strength * area,
		HighQualityProperty: level <= 2,
		IsLuxury:            level == BestLevel,
	}, nil
}
