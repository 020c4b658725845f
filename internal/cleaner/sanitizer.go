package cleaner

import (
	"math"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"estimator/internal/apperrors"
	"estimator/internal/features"
	"estimator/internal/model"
)

// Options holds the sanitizer thresholds.
type Options struct {
	MinPrice                  float64
	MinArea                   float64
	MaxArea                   float64
	MinRooms                  int
	MaxRooms                  int
	PriceUpperQuantile        float64
	PricePerAreaLowerQuantile float64
	PricePerAreaUpperQuantile float64
}

// DefaultOptions returns the thresholds the price model was trained with.
func DefaultOptions() Options {
	return Options{
		MinPrice:                  10000,
		MinArea:                   10,
		MaxArea:                   300,
		MinRooms:                  1,
		MaxRooms:                  10,
		PriceUpperQuantile:        0.995,
		PricePerAreaLowerQuantile: 0.025,
		PricePerAreaUpperQuantile: 0.995,
	}
}

// Sanitizer turns raw real_estate rows into the cleaned dataset.
type Sanitizer struct {
	opts   Options
	logger *zap.Logger
}

// NewSanitizer creates a Sanitizer.
func NewSanitizer(opts Options, logger *zap.Logger) *Sanitizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Sanitizer{opts: opts, logger: logger}
}

// dedupKey is every column that takes part in duplicate detection.
type dedupKey struct {
	price    float64
	district string
	rooms    int
	floor    int
	floors   int
	area     float64
	typ      string
	cond     string
	walls    string
	level    int
	warning  string
}

// Clean runs the full cleaning pipeline over a dataset snapshot.
// Invalid rows are dropped silently; ErrNoData is returned only when
// nothing survives.
func (s *Sanitizer) Clean(raw []model.RawRecord) ([]model.CleanedRecord, error) {
	rows := make([]model.CleanedRecord, 0, len(raw))
	for _, r := range raw {
		row, ok := parseRecord(r)
		if !ok {
			continue
		}
		rows = append(rows, row)
	}
	s.stage("parse", len(raw), len(rows))

	n := len(rows)
	rows = dropDuplicates(rows)
	s.stage("duplicates", n, len(rows))

	n = len(rows)
	rows = filter(rows, func(r model.CleanedRecord) bool {
		return r.Price >= s.opts.MinPrice &&
			r.Area >= s.opts.MinArea && r.Area <= s.opts.MaxArea &&
			r.Rooms >= s.opts.MinRooms && r.Rooms <= s.opts.MaxRooms &&
			r.Floor <= r.Floors
	})
	s.stage("bounds", n, len(rows))

	if len(rows) > 0 {
		n = len(rows)
		upper := Quantile(column(rows, func(r model.CleanedRecord) float64 { return r.Price }), s.opts.PriceUpperQuantile)
		rows = filter(rows, func(r model.CleanedRecord) bool { return r.Price <= upper })
		s.stage("price_quantile", n, len(rows))
	}

	n = len(rows)
	rows = Disambiguate(rows)
	s.stage("cross_column", n, len(rows))

	if len(rows) > 0 {
		n = len(rows)
		ratios := column(rows, pricePerArea)
		lower := Quantile(ratios, s.opts.PricePerAreaLowerQuantile)
		upper := Quantile(ratios, s.opts.PricePerAreaUpperQuantile)
		rows = filter(rows, func(r model.CleanedRecord) bool {
			ppa := pricePerArea(r)
			return ppa >= lower && ppa <= upper
		})
		s.stage("price_per_area", n, len(rows))
	}

	s.logger.Info("Dataset cleaned",
		zap.Int("rows_in", len(raw)),
		zap.Int("rows_out", len(rows)),
		zap.Int("dropped", len(raw)-len(rows)))

	if len(rows) == 0 {
		return nil, apperrors.ErrNoData
	}
	return rows, nil
}

func (s *Sanitizer) stage(name string, in, out int) {
	s.logger.Debug("Cleaning stage",
		zap.String("stage", name),
		zap.Int("rows_in", in),
		zap.Int("rows_out", out))
}

// Disambiguate drops rows whose categorical value belongs to another column.
//
// Every value is tallied across all categorical columns. A value seen under
// more than one column is kept only under the column where it occurs most
// often (ties go to the earlier column); rows carrying it anywhere else are
// dropped.
func Disambiguate(rows []model.CleanedRecord) []model.CleanedRecord {
	tally := make(map[string]map[string]int)
	for _, r := range rows {
		for _, col := range model.CategoricalColumns {
			v := r.Categorical(col)
			if v == "" {
				continue
			}
			if tally[v] == nil {
				tally[v] = make(map[string]int)
			}
			tally[v][col]++
		}
	}

	wrong := make(map[string]map[string]bool)
	for value, byColumn := range tally {
		if len(byColumn) <= 1 {
			continue
		}
		correct, best := "", 0
		for _, col := range model.CategoricalColumns {
			if byColumn[col] > best {
				correct, best = col, byColumn[col]
			}
		}
		for col := range byColumn {
			if col == correct {
				continue
			}
			if wrong[col] == nil {
				wrong[col] = make(map[string]bool)
			}
			wrong[col][value] = true
		}
	}

	if len(wrong) == 0 {
		return rows
	}
	return filter(rows, func(r model.CleanedRecord) bool {
		for col, values := range wrong {
			if values[r.Categorical(col)] {
				return false
			}
		}
		return true
	})
}

// ToRaw converts cleaned rows back into raw rows that keep their
// classification, so a cleaned dataset can be cleaned again.
func ToRaw(rows []model.CleanedRecord) []model.RawRecord {
	out := make([]model.RawRecord, 0, len(rows))
	for _, r := range rows {
		r := r
		raw := model.RawRecord{
			Price:    strPtr(formatFloat(r.Price)),
			District: strPtr(r.District),
			Rooms:    strPtr(strconv.Itoa(r.Rooms)),
			Floor:    strPtr(strconv.Itoa(r.Floor)),
			Floors:   strPtr(strconv.Itoa(r.Floors)),
			Area:     strPtr(formatFloat(r.Area)),
			Type:     strPtr(r.Type),
			Cond:     strPtr(r.Cond),
			Walls:    strPtr(r.Walls),
			Level:    &r.PropertyLevel,
			Warning:  &r.Warning,
		}
		if r.ID != 0 {
			raw.ID = &r.ID
		}
		out = append(out, raw)
	}
	return out
}

func parseRecord(r model.RawRecord) (model.CleanedRecord, bool) {
	var row model.CleanedRecord

	if r.Level != nil {
		row.PropertyLevel = *r.Level
		if r.Warning != nil {
			row.Warning = *r.Warning
		}
	} else {
		c := features.Classify(r.Description)
		row.PropertyLevel, row.Warning = c.Level, c.Warning
	}

	for _, v := range []*string{r.Area, r.Rooms, r.Floor, r.Floors, r.Type, r.Cond, r.Walls} {
		if isMissing(v) {
			return row, false
		}
	}

	var ok bool
	if r.Price == nil {
		return row, false
	}
	if row.Price, ok = parseFloat(*r.Price); !ok {
		return row, false
	}
	if row.Area, ok = parseFloat(*r.Area); !ok {
		return row, false
	}
	if row.Rooms, ok = parseInt(*r.Rooms); !ok {
		return row, false
	}
	if row.Floor, ok = parseInt(*r.Floor); !ok {
		return row, false
	}
	if row.Floors, ok = parseInt(*r.Floors); !ok {
		return row, false
	}

	if r.ID != nil {
		row.ID = *r.ID
	}
	if r.District != nil {
		row.District = *r.District
	}
	row.Type, row.Cond, row.Walls = *r.Type, *r.Cond, *r.Walls
	return row, true
}

func isMissing(v *string) bool {
	if v == nil {
		return true
	}
	t := strings.TrimSpace(*v)
	return t == "" || t == "None"
}

func parseFloat(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func parseInt(s string) (int, bool) {
	f, ok := parseFloat(s)
	if !ok || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}

func dropDuplicates(rows []model.CleanedRecord) []model.CleanedRecord {
	seen := make(map[dedupKey]struct{}, len(rows))
	out := rows[:0:0]
	for _, r := range rows {
		k := dedupKey{
			price: r.Price, district: r.District, rooms: r.Rooms, floor: r.Floor,
			floors: r.Floors, area: r.Area, typ: r.Type, cond: r.Cond, walls: r.Walls,
			level: r.PropertyLevel, warning: r.Warning,
		}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, r)
	}
	return out
}

func filter(rows []model.CleanedRecord, keep func(model.CleanedRecord) bool) []model.CleanedRecord {
	out := make([]model.CleanedRecord, 0, len(rows))
	for _, r := range rows {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

func column(rows []model.CleanedRecord, get func(model.CleanedRecord) float64) []float64 {
	out := make([]float64, len(rows))
	for i, r := range rows {
		out[i] = get(r)
	}
	return out
}

func pricePerArea(r model.CleanedRecord) float64 {
	return r.Price / r.Area
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func strPtr(s string) *string { return &s }
