package scoring

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Bundle holds every trained artifact the scorer needs. It is loaded once
// and only read afterwards.
type Bundle struct {
	FeatureNames  []string       `yaml:"feature_names"`
	TargetEncoder TargetEncoder  `yaml:"target_encoder"`
	Scaler        StandardScaler `yaml:"scaler"`
	Model         Ensemble       `yaml:"model"`
	Linear        *LinearModel   `yaml:"linear"`
	Metrics       Metrics        `yaml:"metrics"`
}

// Metrics are the hold-out errors recorded at training time. They are stored
// next to every prediction.
type Metrics struct {
	MeanError float64 `yaml:"mean_error"`
	MSE       float64 `yaml:"mse"`
}

// LoadBundle reads and validates an artifact bundle from a YAML file.
func LoadBundle(path string) (*Bundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read artifact bundle: %w", err)
	}
	return ParseBundle(data)
}

// ParseBundle decodes and validates an artifact bundle.
func ParseBundle(data []byte) (*Bundle, error) {
	var b Bundle
	if err := yaml.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("decode artifact bundle: %w", err)
	}
	if err := b.prepare(); err != nil {
		return nil, fmt.Errorf("invalid artifact bundle: %w", err)
	}
	return &b, nil
}

func (b *Bundle) prepare() error {
	if len(b.FeatureNames) == 0 {
		return fmt.Errorf("feature_names is empty")
	}
	known := make(map[string]bool, len(b.FeatureNames))
	for _, name := range b.FeatureNames {
		if known[name] {
			return fmt.Errorf("feature %q listed twice", name)
		}
		known[name] = true
	}
	for _, col := range b.TargetEncoder.Columns {
		if !known[col] {
			return fmt.Errorf("encoded column %q is not a feature", col)
		}
	}
	for _, col := range b.Scaler.Columns {
		if !known[col] {
			return fmt.Errorf("scaled column %q is not a feature", col)
		}
	}

	if err := b.TargetEncoder.prepare(); err != nil {
		return err
	}
	if err := b.Scaler.prepare(); err != nil {
		return err
	}
	if b.Linear != nil {
		if len(b.Model.Trees) > 0 {
			return fmt.Errorf("bundle has both a tree ensemble and a linear model")
		}
		return b.Linear.prepare(len(b.FeatureNames))
	}
	return b.Model.prepare(len(b.FeatureNames))
}

// Regressor returns the bundle's scoring function.
func (b *Bundle) Regressor() Regressor {
	if b.Linear != nil {
		return b.Linear
	}
	return &b.Model
}
