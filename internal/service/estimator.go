package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"estimator/internal/apperrors"
	"estimator/internal/features"
	"estimator/internal/model"
	"estimator/internal/repository"
	"estimator/internal/validation"
)

// EstimatorService runs the prediction flow: validate against live ranges,
// classify the description, derive features, score and record the result.
type EstimatorService struct {
	store    Store
	dataset  *DatasetService
	scorer   PriceScorer
	logger   *zap.Logger
	maxLimit int
}

// NewEstimatorService creates a new estimator service. maxLimit caps the
// size of a prediction history listing.
func NewEstimatorService(store Store, dataset *DatasetService, scorer PriceScorer, maxLimit int, logger *zap.Logger) *EstimatorService {
	return &EstimatorService{
		store:    store,
		dataset:  dataset,
		scorer:   scorer,
		logger:   logger,
		maxLimit: maxLimit,
	}
}

// Predict estimates the price of a property. Validation problems come back
// as *apperrors.ValidationError; scoring problems as ErrScoringFailed.
func (s *EstimatorService) Predict(ctx context.Context, in model.PropertyRecord) (*model.PredictResponse, error) {
	ranges, err := s.dataset.Ranges(ctx)
	if err != nil {
		return nil, err
	}

	if fields := validation.Validate(in, ranges); fields != nil {
		s.logger.Info("Prediction request rejected", zap.Any("errors", fields))
		return nil, apperrors.NewValidationError(fields)
	}

	class := features.Classify(in.Description)
	if in.Description != nil && s.logger.Core().Enabled(zap.DebugLevel) {
		s.logger.Debug("Description classified",
			zap.Int("property_level", class.Level),
			zap.Any("cues", features.Matches(*in.Description)))
	}
	derived, err := features.Synthesize(class.Level, in.Area)
	if err != nil {
		s.logger.Error("Feature synthesis failed", zap.Error(err))
		return nil, apperrors.ErrScoringFailed
	}

	pred, err := s.scorer.Score(in, derived, class.Warning)
	if err != nil {
		s.logger.Error("Scoring failed", zap.Error(err))
		return nil, apperrors.ErrScoringFailed
	}

	requestID := uuid.New().String()
	s.record(ctx, requestID, in, pred)

	return &model.PredictResponse{
		RequestID:      requestID,
		PredictedPrice: pred.PredictedPrice,
		Warning:        pred.Warning,
	}, nil
}

// record persists the request and its prediction. Failures are logged only.
func (s *EstimatorService) record(ctx context.Context, requestID string, in model.PropertyRecord, pred *model.Prediction) {
	now := time.Now().UTC()
	req := &model.PredictionRequest{
		ID:        requestID,
		District:  in.District,
		Rooms:     in.Rooms,
		Floor:     in.Floor,
		Floors:    in.Floors,
		Area:      in.Area,
		Type:      in.Type,
		Cond:      in.Cond,
		Walls:     in.Walls,
		CreatedAt: now,
	}
	if err := s.store.SaveRequest(ctx, req); err != nil {
		s.logger.Warn("Failed to save prediction request", zap.String("request_id", requestID), zap.Error(err))
		return
	}

	metrics := s.scorer.Metrics()
	rec := &model.PredictionRecord{
		RequestID: requestID,
		Price:     pred.PredictedPrice,
		Warning:   pred.Warning,
		Features:  repository.FeatureVector(pred.Features),
		MeanError: &metrics.MeanError,
		MSE:       &metrics.MSE,
		CreatedAt: now,
	}
	if _, err := s.store.SavePrediction(ctx, rec); err != nil {
		s.logger.Warn("Failed to save prediction", zap.String("request_id", requestID), zap.Error(err))
	}
}

// Predictions lists stored predictions, newest first. A non-positive or
// oversized limit is clamped to the configured maximum.
func (s *EstimatorService) Predictions(ctx context.Context, filter model.PredictionFilter) (*model.PredictionsResponse, error) {
	if filter.Limit <= 0 || (s.maxLimit > 0 && filter.Limit > s.maxLimit) {
		filter.Limit = s.maxLimit
	}

	rows, err := s.store.ListPredictions(ctx, filter)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []model.PredictionRecord{}
	}
	return &model.PredictionsResponse{Results: rows, Total: len(rows)}, nil
}

// DeletePredictions removes the n newest (or oldest) stored predictions.
func (s *EstimatorService) DeletePredictions(ctx context.Context, n int, newest bool) (int64, error) {
	if n <= 0 {
		return 0, apperrors.ErrInvalidArgument
	}
	deleted, err := s.store.DeletePredictions(ctx, n, newest)
	if err != nil {
		return 0, err
	}
	s.logger.Info("Predictions deleted", zap.Int64("count", deleted), zap.Bool("newest", newest))
	return deleted, nil
}

// DeletePrediction removes one stored prediction and its request.
func (s *EstimatorService) DeletePrediction(ctx context.Context, id int64) error {
	if id <= 0 {
		return apperrors.ErrInvalidArgument
	}
	if err := s.store.DeletePrediction(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Prediction deleted", zap.Int64("id", id))
	return nil
}
