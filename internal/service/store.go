package service

import (
	"context"

	"estimator/internal/model"
	"estimator/internal/scoring"
)

// Store is the persistence the services need. *repository.Repository
// implements it.
type Store interface {
	LoadRawRecords(ctx context.Context) ([]model.RawRecord, error)
	SearchByNumber(ctx context.Context, column string, value float64) ([]model.RawRecord, error)
	SearchByText(ctx context.Context, column, text string) ([]model.RawRecord, error)
	InsertRawRecords(ctx context.Context, records []model.RawRecord) (int, error)
	ColumnValues(ctx context.Context, column string) ([]model.ColumnValue, error)

	SaveRequest(ctx context.Context, req *model.PredictionRequest) error
	SavePrediction(ctx context.Context, rec *model.PredictionRecord) (int64, error)
	ListPredictions(ctx context.Context, filter model.PredictionFilter) ([]model.PredictionRecord, error)
	DeletePredictions(ctx context.Context, n int, newest bool) (int64, error)
	DeletePrediction(ctx context.Context, id int64) error
}

// PriceScorer scores validated requests. *scoring.Scorer implements it.
type PriceScorer interface {
	Score(in model.PropertyRecord, d model.DerivedFeatures, warning string) (*model.Prediction, error)
	Metrics() scoring.Metrics
}
