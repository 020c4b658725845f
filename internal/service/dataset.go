package service

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"go.uber.org/zap"

	"estimator/internal/apperrors"
	"estimator/internal/cache"
	"estimator/internal/cleaner"
	"estimator/internal/model"
	"estimator/internal/utils"
)

// DatasetService serves the cleaned dataset and everything derived from it.
type DatasetService struct {
	store     Store
	sanitizer *cleaner.Sanitizer
	ranges    cache.RangeCache
	logger    *zap.Logger
}

// NewDatasetService creates a new dataset service
func NewDatasetService(store Store, sanitizer *cleaner.Sanitizer, ranges cache.RangeCache, logger *zap.Logger) *DatasetService {
	return &DatasetService{
		store:     store,
		sanitizer: sanitizer,
		ranges:    ranges,
		logger:    logger,
	}
}

// Cleaned loads the stored dataset and runs it through the sanitizer.
func (s *DatasetService) Cleaned(ctx context.Context) ([]model.CleanedRecord, error) {
	raw, err := s.store.LoadRawRecords(ctx)
	if err != nil {
		return nil, err
	}
	return s.sanitizer.Clean(raw)
}

// List returns the whole cleaned dataset.
func (s *DatasetService) List(ctx context.Context) (*model.DatasetResponse, error) {
	startTime := time.Now()

	rows, err := s.Cleaned(ctx)
	if err != nil {
		return nil, err
	}

	return &model.DatasetResponse{
		Results: rows,
		Total:   len(rows),
		Took:    time.Since(startTime).Milliseconds(),
	}, nil
}

// Search matches raw dataset rows against a free-form query. Queries that
// resolve to no column, or match nothing, return ErrNoData.
func (s *DatasetService) Search(ctx context.Context, query string) (*model.SearchResponse, error) {
	q, ok := utils.ParseSearchQuery(query)
	if !ok {
		return nil, apperrors.ErrNoData
	}

	var (
		rows []model.RawRecord
		err  error
	)
	if q.Numeric {
		value, perr := strconv.ParseFloat(q.Value, 64)
		if perr != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, perr)
		}
		rows, err = s.store.SearchByNumber(ctx, q.Column, value)
	} else {
		rows, err = s.store.SearchByText(ctx, q.Column, q.Value)
	}
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, apperrors.ErrNoData
	}

	s.logger.Debug("Dataset search",
		zap.String("column", q.Column),
		zap.String("value", q.Value),
		zap.Int("results", len(rows)))

	return &model.SearchResponse{
		Column:  q.Column,
		Value:   q.Value,
		Results: rows,
		Total:   len(rows),
	}, nil
}

// Column returns one raw dataset column with row ids. An empty table is
// ErrNoData.
func (s *DatasetService) Column(ctx context.Context, column string) (*model.ColumnResponse, error) {
	values, err := s.store.ColumnValues(ctx, column)
	if err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return nil, apperrors.ErrNoData
	}
	return &model.ColumnResponse{Column: column, Results: values, Total: len(values)}, nil
}

// Statistics summarizes the cleaned dataset.
func (s *DatasetService) Statistics(ctx context.Context) (*model.Statistics, error) {
	rows, err := s.Cleaned(ctx)
	if err != nil {
		return nil, err
	}
	return cleaner.Summarize(rows)
}

// Ranges returns the live validation ranges, computing and caching them on
// a miss. Cache failures are logged and the ranges are recomputed.
func (s *DatasetService) Ranges(ctx context.Context) (model.Ranges, error) {
	r, ok, err := s.ranges.Get(ctx)
	if err != nil {
		s.logger.Warn("Range cache lookup failed", zap.Error(err))
	}
	if ok {
		return r, nil
	}

	rows, err := s.Cleaned(ctx)
	if err != nil {
		return model.Ranges{}, err
	}
	r, err = cleaner.ComputeRanges(rows)
	if err != nil {
		return model.Ranges{}, err
	}

	if err := s.ranges.Set(ctx, r); err != nil {
		s.logger.Warn("Range cache store failed", zap.Error(err))
	}
	return r, nil
}

// RefreshRanges drops the cached ranges and recomputes them.
func (s *DatasetService) RefreshRanges(ctx context.Context) (model.Ranges, error) {
	if err := s.ranges.Invalidate(ctx); err != nil {
		return model.Ranges{}, fmt.Errorf("failed to invalidate ranges: %w", err)
	}
	return s.Ranges(ctx)
}

// Export writes the cleaned dataset with its derived features as CSV.
func (s *DatasetService) Export(ctx context.Context, w io.Writer) (int, error) {
	rows, err := s.Cleaned(ctx)
	if err != nil {
		return 0, err
	}
	if err := cleaner.WriteCSV(w, rows); err != nil {
		return 0, err
	}
	return len(rows), nil
}

// Import appends raw rows read from CSV to the stored dataset and drops the
// cached ranges so the next request sees them.
func (s *DatasetService) Import(ctx context.Context, r io.Reader) (int, error) {
	rows, err := cleaner.ReadCSV(r)
	if err != nil {
		return 0, err
	}
	n, err := s.store.InsertRawRecords(ctx, rows)
	if err != nil {
		return 0, err
	}
	if err := s.ranges.Invalidate(ctx); err != nil {
		s.logger.Warn("Range cache invalidation failed", zap.Error(err))
	}

	s.logger.Info("Dataset imported", zap.Int("rows", n))
	return n, nil
}
