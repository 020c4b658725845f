//go:build !embed
// +build !embed

package main

import (
	"go.uber.org/zap"

	"estimator/internal/scoring"
)

// loadBundle reads the model bundle from disk. Build with -tags embed to
// compile cmd/server/model/bundle.yaml into the binary instead.
func loadBundle(path string, logger *zap.Logger) (*scoring.Bundle, error) {
	logger.Debug("Reading model bundle from disk", zap.String("path", path))
	return scoring.LoadBundle(path)
}
