package model

import (
	"time"

	"github.com/pgvector/pgvector-go"
)

// Prediction is the scoring adapter's result.
type Prediction struct {
	PredictedPrice float64   `json:"predicted_price"`
	Warning        *string   `json:"warning"`
	Features       []float32 `json:"-"`
}

// PredictionRequest is a persisted estimation request.
type PredictionRequest struct {
	ID        string    `json:"request_id" db:"id"`
	District  string    `json:"district" db:"district"`
	Rooms     int       `json:"rooms" db:"rooms"`
	Floor     int       `json:"floor" db:"floor"`
	Floors    int       `json:"floors" db:"floors"`
	Area      float64   `json:"area" db:"area"`
	Type      string    `json:"type" db:"type"`
	Cond      string    `json:"cond" db:"cond"`
	Walls     string    `json:"walls" db:"walls"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// PredictionRecord is a persisted prediction joined with its request.
type PredictionRecord struct {
	ID        int64           `json:"id" db:"id"`
	RequestID string          `json:"request_id" db:"request_id"`
	Price     float64         `json:"price" db:"price"`
	Warning   *string         `json:"warning,omitempty" db:"warning"`
	Features  pgvector.Vector `json:"-" db:"features"`
	MeanError *float64        `json:"mean_error,omitempty" db:"mean_error"`
	MSE       *float64        `json:"mse,omitempty" db:"mse"`
	District  string          `json:"district" db:"district"`
	Rooms     int             `json:"rooms" db:"rooms"`
	Floor     int             `json:"floor" db:"floor"`
	Floors    int             `json:"floors" db:"floors"`
	Area      float64         `json:"area" db:"area"`
	Type      string          `json:"type" db:"type"`
	Cond      string          `json:"cond" db:"cond"`
	Walls     string          `json:"walls" db:"walls"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
}

// PredictionFilter narrows a prediction history listing.
type PredictionFilter struct {
	Limit     int
	RequestID string
	// Price matches predictions within PriceWindow of it.
	Price *float64
}

// PriceWindow is the half-width of a price match in the prediction history.
const PriceWindow = 5000
