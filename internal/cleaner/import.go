package cleaner

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"estimator/internal/apperrors"
	"estimator/internal/model"
)

// ReadCSV reads raw dataset rows from a CSV with a header line. Columns are
// matched by name, unknown columns are ignored and empty cells become NULL.
func ReadCSV(r io.Reader) ([]model.RawRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: empty csv", apperrors.ErrInvalidArgument)
	}
	if err != nil {
		return nil, fmt.Errorf("csv: read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := index["price"]; !ok {
		return nil, fmt.Errorf("%w: csv has no price column", apperrors.ErrInvalidArgument)
	}

	var rows []model.RawRecord
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv: read row %d: %w", len(rows)+1, err)
		}
		cell := func(name string) *string {
			i, ok := index[name]
			if !ok || i >= len(record) {
				return nil
			}
			v := strings.TrimSpace(record[i])
			if v == "" {
				return nil
			}
			return &v
		}
		rows = append(rows, model.RawRecord{
			Price:       cell("price"),
			District:    cell("district"),
			Rooms:       cell("rooms"),
			Floor:       cell("floor"),
			Floors:      cell("floors"),
			Area:        cell("area"),
			Type:        cell("type"),
			Cond:        cell("cond"),
			Walls:       cell("walls"),
			Description: cell("desc"),
		})
	}
	return rows, nil
}
