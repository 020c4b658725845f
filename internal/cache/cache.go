// Package cache holds the live validation ranges between dataset reloads.
package cache

import (
	"context"

	"estimator/internal/model"
)

// RangeCache stores the ranges computed from the cleaned dataset.
// Invalidate forces the next lookup to recompute them.
type RangeCache interface {
	Get(ctx context.Context) (model.Ranges, bool, error)
	Set(ctx context.Context, r model.Ranges) error
	Invalidate(ctx context.Context) error
}
