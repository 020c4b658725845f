package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"

	"estimator/internal/apperrors"
	"estimator/internal/cache"
	"estimator/internal/cleaner"
	"estimator/internal/model"
	"estimator/internal/scoring"
)

// fakeStore is an in-memory Store.
type fakeStore struct {
	mu          sync.Mutex
	raw         []model.RawRecord
	requests    []model.PredictionRequest
	predictions []model.PredictionRecord
	lastFilter  model.PredictionFilter
	searches    []string

	loadErr   error
	saveErr   error
	loadCalls int
	nextID    int64
}

var _ Store = (*fakeStore)(nil)

func (f *fakeStore) LoadRawRecords(context.Context) ([]model.RawRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loadCalls++
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return append([]model.RawRecord(nil), f.raw...), nil
}

func (f *fakeStore) SearchByNumber(_ context.Context, column string, value float64) ([]model.RawRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searches = append(f.searches, column+"="+strconv.FormatFloat(value, 'f', -1, 64))
	var out []model.RawRecord
	for _, r := range f.raw {
		if column == "rooms" && r.Rooms != nil && *r.Rooms == strconv.FormatFloat(value, 'f', -1, 64) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeStore) SearchByText(_ context.Context, column, text string) ([]model.RawRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searches = append(f.searches, column+"~"+text)
	var out []model.RawRecord
	for _, r := range f.raw {
		if column == "district" && r.District != nil &&
			strings.Contains(strings.ToLower(*r.District), text) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeStore) InsertRawRecords(_ context.Context, records []model.RawRecord) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.raw = append(f.raw, records...)
	return len(records), nil
}

func (f *fakeStore) SaveRequest(_ context.Context, req *model.PredictionRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	f.requests = append(f.requests, *req)
	return nil
}

func (f *fakeStore) SavePrediction(_ context.Context, rec *model.PredictionRecord) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	saved := *rec
	saved.ID = f.nextID
	f.predictions = append(f.predictions, saved)
	return saved.ID, nil
}

func (f *fakeStore) ListPredictions(_ context.Context, filter model.PredictionFilter) ([]model.PredictionRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastFilter = filter
	return append([]model.PredictionRecord(nil), f.predictions...), nil
}

func (f *fakeStore) DeletePredictions(_ context.Context, n int, _ bool) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if n > len(f.predictions) {
		n = len(f.predictions)
	}
	f.predictions = f.predictions[n:]
	return int64(n), nil
}

func (f *fakeStore) DeletePrediction(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, p := range f.predictions {
		if p.ID == id {
			f.predictions = append(f.predictions[:i], f.predictions[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrNoData
}

func (f *fakeStore) ColumnValues(_ context.Context, column string) ([]model.ColumnValue, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if column != model.ColumnDistrict {
		return nil, apperrors.ErrInvalidArgument
	}
	out := make([]model.ColumnValue, 0, len(f.raw))
	for i, r := range f.raw {
		out = append(out, model.ColumnValue{ID: int64(i + 1), Value: r.District})
	}
	return out, nil
}

// fakeScorer returns a fixed price and remembers what it was given.
type fakeScorer struct {
	price   float64
	err     error
	derived model.DerivedFeatures
	warning string
}

func (s *fakeScorer) Score(_ model.PropertyRecord, d model.DerivedFeatures, warning string) (*model.Prediction, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.derived, s.warning = d, warning
	p := &model.Prediction{PredictedPrice: s.price, Features: []float32{1, 2, 3}}
	if warning != "" {
		p.Warning = &warning
	}
	return p, nil
}

func (s *fakeScorer) Metrics() scoring.Metrics {
	return scoring.Metrics{MeanError: 9521.48, MSE: 59999999}
}

// countingCache wraps a MemoryCache and can fail on demand.
type countingCache struct {
	*cache.MemoryCache
	getErr error
	sets   int
}

func (c *countingCache) Get(ctx context.Context) (model.Ranges, bool, error) {
	if c.getErr != nil {
		return model.Ranges{}, false, c.getErr
	}
	return c.MemoryCache.Get(ctx)
}

func (c *countingCache) Set(ctx context.Context, r model.Ranges) error {
	c.sets++
	return c.MemoryCache.Set(ctx, r)
}

func sp(s string) *string { return &s }

// seedRows yields ranges rooms 1-4, floor 1-10, floors 5-16, area 30-120.
// Price tracks area so the price-per-area band keeps every row, and the top
// price appears twice so the price quantile keeps it.
func seedRows() []model.RawRecord {
	type spec struct {
		district             string
		rooms, floor, floors int
		area                 float64
	}
	specs := []spec{
		{"Kievsky", 1, 1, 5, 30},
		{"Primorsky", 2, 3, 9, 50},
		{"Kievsky", 3, 5, 16, 80},
		{"Kievsky", 4, 9, 16, 120},
		{"Primorsky", 4, 10, 16, 120},
	}
	out := make([]model.RawRecord, len(specs))
	for i, s := range specs {
		out[i] = model.RawRecord{
			Price:    sp(strconv.FormatFloat(s.area*1000, 'f', -1, 64)),
			District: sp(s.district),
			Rooms:    sp(strconv.Itoa(s.rooms)),
			Floor:    sp(strconv.Itoa(s.floor)),
			Floors:   sp(strconv.Itoa(s.floors)),
			Area:     sp(strconv.FormatFloat(s.area, 'f', -1, 64)),
			Type:     sp("Czech"),
			Cond:     sp("Renovation"),
			Walls:    sp("Brick"),
		}
	}
	return out
}

type fixture struct {
	store   *fakeStore
	cache   *countingCache
	scorer  *fakeScorer
	dataset *DatasetService
	est     *EstimatorService
}

func newFixture() *fixture {
	f := &fixture{
		store:  &fakeStore{raw: seedRows()},
		cache:  &countingCache{MemoryCache: cache.NewMemoryCache(0)},
		scorer: &fakeScorer{price: 61234.5},
	}
	logger := zap.NewNop()
	f.dataset = NewDatasetService(f.store, cleaner.NewSanitizer(cleaner.DefaultOptions(), logger), f.cache, logger)
	f.est = NewEstimatorService(f.store, f.dataset, f.scorer, 500, logger)
	return f
}

var errBoom = errors.New("boom")
