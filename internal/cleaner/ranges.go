package cleaner

import (
	"fmt"

	"estimator/internal/apperrors"
	"estimator/internal/model"
)

// ComputeRanges returns the numeric bounds of the cleaned dataset that
// incoming requests are validated against. Ranges that admit no request
// area (every area within AreaMargin of the minimum) are ErrNoData.
func ComputeRanges(rows []model.CleanedRecord) (model.Ranges, error) {
	if len(rows) == 0 {
		return model.Ranges{}, apperrors.ErrNoData
	}

	first := rows[0]
	r := model.Ranges{
		Rooms:  model.Range{Min: float64(first.Rooms), Max: float64(first.Rooms)},
		Floor:  model.Range{Min: float64(first.Floor), Max: float64(first.Floor)},
		Floors: model.Range{Min: float64(first.Floors), Max: float64(first.Floors)},
		Area:   model.Range{Min: first.Area, Max: first.Area},
	}
	for _, row := range rows[1:] {
		widen(&r.Rooms, float64(row.Rooms))
		widen(&r.Floor, float64(row.Floor))
		widen(&r.Floors, float64(row.Floors))
		widen(&r.Area, row.Area)
	}
	if r.Area.Min+model.AreaMargin > r.Area.Max {
		return model.Ranges{}, fmt.Errorf("%w: area range [%v, %v] is narrower than %d",
			apperrors.ErrNoData, r.Area.Min, r.Area.Max, model.AreaMargin)
	}
	return r, nil
}

func widen(r *model.Range, v float64) {
	if v < r.Min {
		r.Min = v
	}
	if v > r.Max {
		r.Max = v
	}
}
