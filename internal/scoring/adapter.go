package scoring

import (
	"fmt"
	"math"
	"strings"

	"estimator/internal/apperrors"
	"estimator/internal/model"
)

// Numeric feature names produced for every request.
const (
	FeatureRooms               = "rooms"
	FeatureFloor               = "floor"
	FeatureFloors              = "floors"
	FeatureArea                = "area"
	FeaturePropertyLevel       = "property_level"
	FeaturePropertyStrength    = "property_strength"
	FeaturePropertyAreaFactor  = "property_area_factor"
	FeatureHighQualityProperty = "high_quality_property"
	FeatureIsLuxury            = "is_luxury"
)

// Scorer turns a validated request into a price. It holds no mutable state
// and is safe for concurrent use.
type Scorer struct {
	features []string
	encoder  *TargetEncoder
	scaler   *StandardScaler
	model    Regressor
	metrics  Metrics
}

// NewScorer creates a Scorer over a loaded bundle.
func NewScorer(b *Bundle) *Scorer {
	return &Scorer{
		features: b.FeatureNames,
		encoder:  &b.TargetEncoder,
		scaler:   &b.Scaler,
		model:    b.Regressor(),
		metrics:  b.Metrics,
	}
}

// FeatureNames returns the trained feature order.
func (s *Scorer) FeatureNames() []string {
	return append([]string(nil), s.features...)
}

// Metrics returns the training-time error metrics of the model.
func (s *Scorer) Metrics() Metrics {
	return s.metrics
}

// Score predicts the price of a property. The model works on log1p(price),
// so its output is mapped back with expm1. warning is passed through to the
// result. Any failure is reported as ErrScoringFailed and no price is returned.
func (s *Scorer) Score(in model.PropertyRecord, d model.DerivedFeatures, warning string) (*model.Prediction, error) {
	x, err := s.vector(buildRow(in, d))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrScoringFailed, err)
	}

	out, err := s.model.Predict(x)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrScoringFailed, err)
	}
	price := Price(out)
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return nil, fmt.Errorf("%w: model output %v is not a finite price", apperrors.ErrScoringFailed, out)
	}

	p := &model.Prediction{PredictedPrice: price, Features: make([]float32, len(x))}
	for i, v := range x {
		p.Features[i] = float32(v)
	}
	if warning != "" {
		p.Warning = &warning
	}
	return p, nil
}

// LogPrice is the target transform the model was trained on.
func LogPrice(price float64) float64 { return math.Log1p(price) }

// Price inverts LogPrice.
func Price(logPrice float64) float64 { return math.Expm1(logPrice) }

type row struct {
	categories map[string]string
	values     map[string]float64
}

func buildRow(in model.PropertyRecord, d model.DerivedFeatures) row {
	r := row{
		categories: make(map[string]string, len(model.CategoricalColumns)),
		values: map[string]float64{
			FeatureRooms:               float64(in.Rooms),
			FeatureFloor:               float64(in.Floor),
			FeatureFloors:              float64(in.Floors),
			FeatureArea:                in.Area,
			FeaturePropertyLevel:       float64(d.PropertyLevel),
			FeaturePropertyStrength:    d.PropertyStrength,
			FeaturePropertyAreaFactor:  d.PropertyAreaFactor,
			FeatureHighQualityProperty: flag(d.HighQualityProperty),
			FeatureIsLuxury:            flag(d.IsLuxury),
		},
	}
	for _, col := range model.CategoricalColumns {
		r.categories[col] = in.Categorical(col)
	}
	return r
}

// vector lays a row out in trained feature order. Trained features the row
// lacks are 0 and row columns the model does not know are dropped.
func (s *Scorer) vector(r row) ([]float64, error) {
	values := make(map[string]float64, len(s.features))
	for _, name := range s.features {
		cat, ok := r.categories[name]
		if !ok {
			values[name] = r.values[name]
			continue
		}
		if strings.TrimSpace(cat) == "" {
			return nil, fmt.Errorf("missing value for %s", name)
		}
		if !s.encoder.Encodes(name) {
			return nil, fmt.Errorf("no encoder for categorical feature %s", name)
		}
		values[name] = s.encoder.Encode(name, cat)
	}

	s.scaler.Transform(values)

	x := make([]float64, len(s.features))
	for i, name := range s.features {
		x[i] = values[name]
	}
	return x, nil
}

func flag(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
