package model

// Categorical column names shared by the sanitizer, the validator and the scorer.
const (
	ColumnDistrict = "district"
	ColumnType     = "type"
	ColumnCond     = "cond"
	ColumnWalls    = "walls"
)

// CategoricalColumns lists the categorical columns in tally order.
var CategoricalColumns = []string{ColumnDistrict, ColumnType, ColumnCond, ColumnWalls}

// PropertyRecord is a single property as submitted for estimation.
// Price is absent at inference time.
type PropertyRecord struct {
	District    string   `json:"district"`
	Rooms       int      `json:"rooms"`
	Floor       int      `json:"floor"`
	Floors      int      `json:"floors"`
	Area        float64  `json:"area"`
	Type        string   `json:"type"`
	Cond        string   `json:"cond"`
	Walls       string   `json:"walls"`
	Description *string  `json:"desc,omitempty"`
	Price       *float64 `json:"price,omitempty"`
}

// Categorical returns the value of a categorical column by name.
func (p PropertyRecord) Categorical(column string) string {
	switch column {
	case ColumnDistrict:
		return p.District
	case ColumnType:
		return p.Type
	case ColumnCond:
		return p.Cond
	case ColumnWalls:
		return p.Walls
	}
	return ""
}

// RawRecord is one row of the real_estate table exactly as stored.
// Every column may be NULL, blank or non-numeric.
type RawRecord struct {
	ID          *int64  `json:"id,omitempty" db:"id"`
	Price       *string `json:"price" db:"price"`
	District    *string `json:"district" db:"district"`
	Rooms       *string `json:"rooms" db:"rooms"`
	Floor       *string `json:"floor" db:"floor"`
	Floors      *string `json:"floors" db:"floors"`
	Area        *string `json:"area" db:"area"`
	Type        *string `json:"type" db:"type"`
	Cond        *string `json:"cond" db:"cond"`
	Walls       *string `json:"walls" db:"walls"`
	Description *string `json:"desc" db:"desc"`

	// Level and Warning carry a classification made earlier, so already
	// cleaned rows are not re-classified from a dropped description.
	Level   *int    `json:"-" db:"-"`
	Warning *string `json:"-" db:"-"`
}

// CleanedRecord is a row that survived the sanitizer.
type CleanedRecord struct {
	ID            int64   `json:"id,omitempty"`
	Price         float64 `json:"price"`
	District      string  `json:"district"`
	Rooms         int     `json:"rooms"`
	Floor         int     `json:"floor"`
	Floors        int     `json:"floors"`
	Area          float64 `json:"area"`
	Type          string  `json:"type"`
	Cond          string  `json:"cond"`
	Walls         string  `json:"walls"`
	PropertyLevel int     `json:"property_level"`
	Warning       string  `json:"warning,omitempty"`
}

// Categorical returns the value of a categorical column by name.
func (r CleanedRecord) Categorical(column string) string {
	switch column {
	case ColumnDistrict:
		return r.District
	case ColumnType:
		return r.Type
	case ColumnCond:
		return r.Cond
	case ColumnWalls:
		return r.Walls
	}
	return ""
}

// Classification is the outcome of classifying a free-text description.
type Classification struct {
	Level   int    `json:"property_level"`
	Warning string `json:"warning,omitempty"`
}

// DerivedFeatures are recomputed from a quality tier and an area on every call.
type DerivedFeatures struct {
	PropertyLevel       int     `json:"property_level"`
	PropertyStrength    float64 `json:"property_strength"`
	PropertyAreaFactor  float64 `json:"property_area_factor"`
	HighQualityProperty bool    `json:"high_quality_property"`
	IsLuxury            bool    `json:"is_luxury"`
}

// AreaMargin is added to the dataset's minimum area to get the smallest
// admissible request area.
const AreaMargin = 10

// Range is an inclusive numeric interval.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Ranges holds the live numeric bounds derived from the cleaned dataset.
type Ranges struct {
	Rooms  Range `json:"rooms"`
	Floor  Range `json:"floor"`
	Floors Range `json:"floors"`
	Area   Range `json:"area"`
}

// FieldError is a single user-correctable validation problem.
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}
