package model

// Summary holds min/max/mean of a numeric column.
type Summary struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Mean float64 `json:"mean"`
}

// Statistics is the aggregate view over the cleaned dataset.
type Statistics struct {
	TopExpensive          []CleanedRecord    `json:"top_expensive"`
	TopCheap              []CleanedRecord    `json:"top_cheap"`
	AvgPriceDistrict      map[string]float64 `json:"avg_price_district"`
	TypeDistribution      map[string]int     `json:"type_distribution"`
	ConditionDistribution map[string]int     `json:"condition_distribution"`
	RoomsDistribution     map[int]int        `json:"rooms_distribution"`
	FloorsDistribution    map[int]int        `json:"floors_distribution"`
	FloorDistribution     map[int]int        `json:"floor_distribution"`
	AreaDistribution      map[string]int     `json:"area_distribution"`
	SummaryStats          map[string]Summary `json:"summary_stats"`
	PriceAbove150k        int                `json:"count_price_above_150k"`
}
