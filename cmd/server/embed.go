//go:build embed
// +build embed

package main

import (
	_ "embed"
	"errors"
	"io/fs"
	"os"

	"go.uber.org/zap"

	"estimator/internal/scoring"
)

//go:embed model/bundle.yaml
var embeddedBundle []byte

// loadBundle prefers a bundle on disk and falls back to the one compiled
// into the binary.
func loadBundle(path string, logger *zap.Logger) (*scoring.Bundle, error) {
	_, err := os.Stat(path)
	if err == nil {
		return scoring.LoadBundle(path)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	logger.Info("Using embedded model bundle", zap.String("missing_path", path))
	return scoring.ParseBundle(embeddedBundle)
}
