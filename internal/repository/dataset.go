package repository

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"estimator/internal/apperrors"
	"estimator/internal/model"
)

const rawColumns = `id, price, district, rooms, floor, floors, area, type, cond, walls, "desc"`

// searchableColumns are the real_estate columns a search may target.
var searchableColumns = map[string]bool{
	"id": true, "price": true, "district": true, "rooms": true, "floor": true,
	"floors": true, "area": true, "type": true, "cond": true, "walls": true,
}

// projectableColumns are the real_estate columns ColumnValues may return.
var projectableColumns = map[string]bool{
	"price": true, "district": true, "rooms": true, "floor": true, "floors": true,
	"area": true, "type": true, "cond": true, "walls": true, "desc": true,
}

// LoadRawRecords returns every row of the real_estate table
func (r *Repository) LoadRawRecords(ctx context.Context) ([]model.RawRecord, error) {
	query := fmt.Sprintf(`SELECT %s FROM real_estate ORDER BY id`, rawColumns)

	var records []model.RawRecord
	if err := r.db.SelectContext(ctx, &records, query); err != nil {
		return nil, fmt.Errorf("failed to load dataset: %w", err)
	}
	return records, nil
}

// SearchByNumber returns rows whose column equals value
func (r *Repository) SearchByNumber(ctx context.Context, column string, value float64) ([]model.RawRecord, error) {
	if !searchableColumns[column] {
		return nil, fmt.Errorf("column %q is not searchable: %w", column, apperrors.ErrInvalidArgument)
	}
	query := r.rebind(fmt.Sprintf(`SELECT %s FROM real_estate WHERE %s = ? ORDER BY id`, rawColumns, column))

	var records []model.RawRecord
	if err := r.db.SelectContext(ctx, &records, query, value); err != nil {
		return nil, fmt.Errorf("failed to search dataset: %w", err)
	}
	return records, nil
}

// SearchByText returns rows whose column contains text, ignoring case
func (r *Repository) SearchByText(ctx context.Context, column, text string) ([]model.RawRecord, error) {
	if !searchableColumns[column] {
		return nil, fmt.Errorf("column %q is not searchable: %w", column, apperrors.ErrInvalidArgument)
	}
	query := r.rebind(fmt.Sprintf(
		`SELECT %s FROM real_estate WHERE LOWER(CAST(%s AS TEXT)) LIKE ? ORDER BY id`, rawColumns, column))

	var records []model.RawRecord
	pattern := "%" + strings.ToLower(text) + "%"
	if err := r.db.SelectContext(ctx, &records, query, pattern); err != nil {
		return nil, fmt.Errorf("failed to search dataset: %w", err)
	}
	return records, nil
}

// ColumnValues returns the id and one column of every real_estate row
func (r *Repository) ColumnValues(ctx context.Context, column string) ([]model.ColumnValue, error) {
	if !projectableColumns[column] {
		return nil, fmt.Errorf("column %q cannot be listed: %w", column, apperrors.ErrInvalidArgument)
	}
	query := fmt.Sprintf(`SELECT id, CAST("%s" AS TEXT) AS value FROM real_estate ORDER BY id`, column)

	var values []model.ColumnValue
	if err := r.db.SelectContext(ctx, &values, query); err != nil {
		return nil, fmt.Errorf("failed to list column: %w", err)
	}
	return values, nil
}

// InsertRawRecords appends rows to the real_estate table in one transaction.
// Numeric columns that do not parse are stored as NULL.
func (r *Repository) InsertRawRecords(ctx context.Context, records []model.RawRecord) (int, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PreparexContext(ctx, r.rebind(
		`INSERT INTO real_estate (price, district, rooms, floor, floors, area, type, cond, walls, "desc")
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`))
	if err != nil {
		return 0, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for i, rec := range records {
		_, err := stmt.ExecContext(ctx,
			floatOrNull(rec.Price), rec.District, intOrNull(rec.Rooms), intOrNull(rec.Floor),
			intOrNull(rec.Floors), floatOrNull(rec.Area), rec.Type, rec.Cond, rec.Walls, rec.Description)
		if err != nil {
			return 0, fmt.Errorf("failed to insert row %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return len(records), nil
}

func floatOrNull(s *string) any {
	if s == nil {
		return nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(*s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return f
}

func intOrNull(s *string) any {
	f, ok := floatOrNull(s).(float64)
	if !ok || f != math.Trunc(f) {
		return nil
	}
	return int64(f)
}
