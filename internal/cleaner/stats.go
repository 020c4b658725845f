package cleaner

import (
	"fmt"
	"math"
	"sort"

	"estimator/internal/apperrors"
	"estimator/internal/model"
)

const topN = 5

// premiumPrice is the threshold of the premium listings count.
const premiumPrice = 150000

// areaBins are right-closed: a row falls into (edges[i], edges[i+1]].
var areaBins = []float64{0, 30, 50, 70, 100, 150, 200, math.Inf(1)}

// Summarize computes dataset statistics over cleaned rows.
func Summarize(rows []model.CleanedRecord) (*model.Statistics, error) {
	if len(rows) == 0 {
		return nil, apperrors.ErrNoData
	}

	stats := &model.Statistics{
		AvgPriceDistrict:      make(map[string]float64),
		TypeDistribution:      make(map[string]int),
		ConditionDistribution: make(map[string]int),
		RoomsDistribution:     make(map[int]int),
		FloorsDistribution:    make(map[int]int),
		FloorDistribution:     make(map[int]int),
		AreaDistribution:      make(map[string]int),
		SummaryStats:          make(map[string]model.Summary),
	}

	byPrice := make([]model.CleanedRecord, len(rows))
	copy(byPrice, rows)
	sort.SliceStable(byPrice, func(i, j int) bool { return byPrice[i].Price > byPrice[j].Price })
	stats.TopExpensive = head(byPrice, topN)

	sort.SliceStable(byPrice, func(i, j int) bool { return byPrice[i].Price < byPrice[j].Price })
	stats.TopCheap = head(byPrice, topN)

	districtSum := make(map[string]float64)
	districtCount := make(map[string]int)
	for i := 1; i < len(areaBins); i++ {
		stats.AreaDistribution[binLabel(i)] = 0
	}

	for _, r := range rows {
		districtSum[r.District] += r.Price
		districtCount[r.District]++
		stats.TypeDistribution[r.Type]++
		stats.ConditionDistribution[r.Cond]++
		stats.RoomsDistribution[r.Rooms]++
		stats.FloorsDistribution[r.Floors]++
		stats.FloorDistribution[r.Floor]++
		if r.Price > premiumPrice {
			stats.PriceAbove150k++
		}
		for i := 1; i < len(areaBins); i++ {
			if r.Area > areaBins[i-1] && r.Area <= areaBins[i] {
				stats.AreaDistribution[binLabel(i)]++
				break
			}
		}
	}
	for d, sum := range districtSum {
		stats.AvgPriceDistrict[d] = sum / float64(districtCount[d])
	}

	stats.SummaryStats["price"] = summarize(rows, func(r model.CleanedRecord) float64 { return r.Price })
	stats.SummaryStats["area"] = summarize(rows, func(r model.CleanedRecord) float64 { return r.Area })
	stats.SummaryStats["floor"] = summarize(rows, func(r model.CleanedRecord) float64 { return float64(r.Floor) })
	stats.SummaryStats["floors"] = summarize(rows, func(r model.CleanedRecord) float64 { return float64(r.Floors) })
	stats.SummaryStats["rooms"] = summarize(rows, func(r model.CleanedRecord) float64 { return float64(r.Rooms) })

	return stats, nil
}

func head(rows []model.CleanedRecord, n int) []model.CleanedRecord {
	if len(rows) < n {
		n = len(rows)
	}
	out := make([]model.CleanedRecord, n)
	copy(out, rows[:n])
	return out
}

func binLabel(i int) string {
	if math.IsInf(areaBins[i], 1) {
		return fmt.Sprintf("%g-inf", areaBins[i-1])
	}
	return fmt.Sprintf("%g-%g", areaBins[i-1], areaBins[i])
}

func summarize(rows []model.CleanedRecord, get func(model.CleanedRecord) float64) model.Summary {
	s := model.Summary{Min: get(rows[0]), Max: get(rows[0])}
	sum := 0.0
	for _, r := range rows {
		v := get(r)
		s.Min = math.Min(s.Min, v)
		s.Max = math.Max(s.Max, v)
		sum += v
	}
	s.Mean = sum / float64(len(rows))
	return s
}
