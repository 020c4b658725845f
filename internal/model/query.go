package model

// PredictResponse is returned for a successful estimation
type PredictResponse struct {
	RequestID      string  `json:"request_id"`
	PredictedPrice float64 `json:"predicted_price"`
	Warning        *string `json:"warning"`
}

// ValidationResponse carries every field error of a rejected request
type ValidationResponse struct {
	ErrorList []FieldError `json:"error_list"`
}

// DatasetSearchRequest represents a dataset search query
type DatasetSearchRequest struct {
	Query string `json:"query" binding:"required"`
}

// DatasetResponse represents a page of cleaned dataset rows
type DatasetResponse struct {
	Results []CleanedRecord `json:"results"`
	Total   int             `json:"total"`
	Took    int64           `json:"took_ms"` // Response time in milliseconds
}

// SearchResponse represents raw dataset rows matched by a search
type SearchResponse struct {
	Column  string      `json:"column"`
	Value   string      `json:"value"`
	Results []RawRecord `json:"results"`
	Total   int         `json:"total"`
}

// PredictionsResponse lists stored predictions, newest first
type PredictionsResponse struct {
	Results []PredictionRecord `json:"results"`
	Total   int                `json:"total"`
}

// ColumnValue is one dataset row reduced to a single column.
type ColumnValue struct {
	ID    int64   `json:"id" db:"id"`
	Value *string `json:"value" db:"value"`
}

// ColumnResponse is a one-column view of the raw dataset
type ColumnResponse struct {
	Column  string        `json:"column"`
	Results []ColumnValue `json:"results"`
	Total   int           `json:"total"`
}
