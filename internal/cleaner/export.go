package cleaner

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"estimator/internal/features"
	"estimator/internal/model"
)

var exportHeader = []string{
	"price", "district", "rooms", "floor", "floors", "area", "type", "cond", "walls",
	"property_level", "warning", "property_strength", "property_area_factor",
	"high_quality_property", "is_luxury",
}

// WriteCSV writes the training feature table: every cleaned row together
// with its derived features.
func WriteCSV(w io.Writer, rows []model.CleanedRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return fmt.Errorf("csv: write header: %w", err)
	}

	for _, r := range rows {
		d, err := features.Synthesize(r.PropertyLevel, r.Area)
		if err != nil {
			return fmt.Errorf("csv: derive features for row %d: %w", r.ID, err)
		}
		record := []string{
			formatFloat(r.Price),
			r.District,
			strconv.Itoa(r.Rooms),
			strconv.Itoa(r.Floor),
			strconv.Itoa(r.Floors),
			formatFloat(r.Area),
			r.Type,
			r.Cond,
			r.Walls,
			strconv.Itoa(r.PropertyLevel),
			r.Warning,
			formatFloat(d.PropertyStrength),
			formatFloat(d.PropertyAreaFactor),
			boolFlag(d.HighQualityProperty),
			boolFlag(d.IsLuxury),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func boolFlag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
