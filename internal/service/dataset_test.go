package service

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estimator/internal/apperrors"
	"estimator/internal/model"
)

func TestDatasetService_List(t *testing.T) {
	f := newFixture()

	resp, err := f.dataset.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, resp.Total)
	assert.Len(t, resp.Results, 5)
	assert.GreaterOrEqual(t, resp.Took, int64(0))
}

func TestDatasetService_List_Empty(t *testing.T) {
	f := newFixture()
	f.store.raw = nil

	_, err := f.dataset.List(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrNoData)
}

func TestDatasetService_Ranges(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	r, err := f.dataset.Ranges(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.Ranges{
		Rooms:  model.Range{Min: 1, Max: 4},
		Floor:  model.Range{Min: 1, Max: 10},
		Floors: model.Range{Min: 5, Max: 16},
		Area:   model.Range{Min: 30, Max: 120},
	}, r)

	_, err = f.dataset.Ranges(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, f.store.loadCalls, "second lookup is served from the cache")
	assert.Equal(t, 1, f.cache.sets)
}

func TestDatasetService_Ranges_CacheFailureRecomputes(t *testing.T) {
	f := newFixture()
	f.cache.getErr = errBoom

	r, err := f.dataset.Ranges(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4.0, r.Rooms.Max)
}

func TestDatasetService_RefreshRanges(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.dataset.Ranges(ctx)
	require.NoError(t, err)

	// a bigger flat arrives
	extra := seedRows()[3]
	extra.Area, extra.Price, extra.Floor = sp("150"), sp("150000"), sp("2")
	twin := extra
	twin.Floor = sp("4")
	f.store.raw = append(f.store.raw, extra, twin)

	stale, err := f.dataset.Ranges(ctx)
	require.NoError(t, err)
	assert.Equal(t, 120.0, stale.Area.Max)

	fresh, err := f.dataset.RefreshRanges(ctx)
	require.NoError(t, err)
	assert.Equal(t, 150.0, fresh.Area.Max)
	assert.Equal(t, 2, f.store.loadCalls)
}

func TestDatasetService_Search(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantSearch string
		wantTotal  int
		wantErr    error
	}{
		{name: "bare number guesses rooms", query: "2", wantSearch: "rooms=2", wantTotal: 1},
		{name: "column and digits", query: "rooms : 4", wantSearch: "rooms=4", wantTotal: 2},
		{name: "bare text resolves district", query: "kiev", wantSearch: "district~kievsky", wantTotal: 3},
		{name: "column and text", query: "district:primor", wantSearch: "district~primorsky", wantTotal: 2},
		{name: "unknown column", query: "colour:red", wantErr: apperrors.ErrNoData},
		{name: "unresolvable text", query: "zzz", wantErr: apperrors.ErrNoData},
		{name: "no matches", query: "rooms:7", wantSearch: "rooms=7", wantErr: apperrors.ErrNoData},
		{name: "empty", query: "  ", wantErr: apperrors.ErrNoData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()

			resp, err := f.dataset.Search(context.Background(), tt.query)
			if tt.wantSearch != "" {
				require.NotEmpty(t, f.store.searches)
				assert.Equal(t, tt.wantSearch, f.store.searches[0])
			}
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantTotal, resp.Total)
		})
	}
}

func TestDatasetService_Column(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	resp, err := f.dataset.Column(ctx, "district")
	require.NoError(t, err)
	assert.Equal(t, "district", resp.Column)
	assert.Equal(t, 5, resp.Total)
	require.NotNil(t, resp.Results[0].Value)
	assert.Equal(t, int64(1), resp.Results[0].ID)

	_, err = f.dataset.Column(ctx, "password")
	assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)

	f.store.raw = nil
	_, err = f.dataset.Column(ctx, "district")
	assert.ErrorIs(t, err, apperrors.ErrNoData)
}

func TestDatasetService_Statistics(t *testing.T) {
	f := newFixture()

	stats, err := f.dataset.Statistics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 120000.0, stats.TopExpensive[0].Price)
	assert.Equal(t, 30000.0, stats.TopCheap[0].Price)
	assert.Equal(t, 5, stats.TypeDistribution["Czech"])
}

func TestDatasetService_ExportImport(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	var buf bytes.Buffer
	n, err := f.dataset.Export(ctx, &buf)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.True(t, strings.HasPrefix(buf.String(), "price,district,rooms"))

	_, err = f.dataset.Ranges(ctx)
	require.NoError(t, err)

	in := "price,district,rooms,floor,floors,area,type,cond,walls\n" +
		"200000,Kievsky,4,2,16,200,Czech,Renovation,Brick\n" +
		"200000,Kievsky,4,3,16,200,Czech,Renovation,Brick\n"
	n, err = f.dataset.Import(ctx, strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Len(t, f.store.raw, 7)

	r, err := f.dataset.Ranges(ctx)
	require.NoError(t, err)
	assert.Equal(t, 200.0, r.Area.Max, "import drops the cached ranges")
}

func TestDatasetService_Import_BadCSV(t *testing.T) {
	f := newFixture()

	_, err := f.dataset.Import(context.Background(), strings.NewReader("rooms\n2\n"))
	assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
	assert.Len(t, f.store.raw, 5)
}
