package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/pgvector/pgvector-go"

	"estimator/internal/apperrors"
	"estimator/internal/model"
)

// SaveRequest stores an estimation request
func (r *Repository) SaveRequest(ctx context.Context, req *model.PredictionRequest) error {
	query := r.rebind(`
		INSERT INTO requests (id, district, rooms, floor, floors, area, type, cond, walls, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	_, err := r.db.ExecContext(ctx, query,
		req.ID, req.District, req.Rooms, req.Floor, req.Floors, req.Area,
		req.Type, req.Cond, req.Walls, req.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save request: %w", err)
	}
	return nil
}

// SavePrediction stores a prediction together with its encoded feature vector
// and returns its id
func (r *Repository) SavePrediction(ctx context.Context, rec *model.PredictionRecord) (int64, error) {
	query := r.rebind(`
		INSERT INTO predictions (request_id, price, warning, features, mean_error, mse, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`)
	var id int64
	err := r.db.GetContext(ctx, &id, query,
		rec.RequestID, rec.Price, rec.Warning, rec.Features, rec.MeanError, rec.MSE, rec.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("failed to save prediction: %w", err)
	}
	return id, nil
}

// ListPredictions returns stored predictions joined with their requests, newest first
func (r *Repository) ListPredictions(ctx context.Context, filter model.PredictionFilter) ([]model.PredictionRecord, error) {
	whereClauses := []string{"1=1"}
	args := []interface{}{}

	if filter.RequestID != "" {
		whereClauses = append(whereClauses, "p.request_id = ?")
		args = append(args, filter.RequestID)
	}
	if filter.Price != nil {
		whereClauses = append(whereClauses, "p.price BETWEEN ? AND ?")
		args = append(args, *filter.Price-model.PriceWindow, *filter.Price+model.PriceWindow)
	}

	query := fmt.Sprintf(`
		SELECT
			p.id, p.request_id, p.price, p.warning, p.features, p.mean_error, p.mse,
			r.district, r.rooms, r.floor, r.floors, r.area, r.type, r.cond, r.walls,
			p.created_at
		FROM predictions p
		JOIN requests r ON p.request_id = r.id
		WHERE %s
		ORDER BY p.id DESC
	`, strings.Join(whereClauses, " AND "))
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	var records []model.PredictionRecord
	if err := r.db.SelectContext(ctx, &records, r.rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to list predictions: %w", err)
	}
	return records, nil
}

// DeletePredictions removes the n oldest (or newest) predictions together
// with their requests and returns how many predictions were deleted
func (r *Repository) DeletePredictions(ctx context.Context, n int, newest bool) (int64, error) {
	order := "ASC"
	if newest {
		order = "DESC"
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	var victims []predictionKey
	query := r.rebind(fmt.Sprintf(`SELECT id, request_id FROM predictions ORDER BY id %s LIMIT ?`, order))
	if err := tx.SelectContext(ctx, &victims, query, n); err != nil {
		return 0, fmt.Errorf("failed to select predictions: %w", err)
	}
	if len(victims) == 0 {
		return 0, nil
	}

	deleted, err := r.deletePredictionRows(ctx, tx, victims)
	if err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return deleted, nil
}

// DeletePrediction removes one prediction and its request
func (r *Repository) DeletePrediction(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	var victim predictionKey
	err = tx.GetContext(ctx, &victim, r.rebind(`SELECT id, request_id FROM predictions WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: prediction %d not found", apperrors.ErrNoData, id)
	}
	if err != nil {
		return fmt.Errorf("failed to get prediction: %w", err)
	}

	if _, err := r.deletePredictionRows(ctx, tx, []predictionKey{victim}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

type predictionKey struct {
	ID        int64  `db:"id"`
	RequestID string `db:"request_id"`
}

// deletePredictionRows deletes the given predictions and every request left
// without a prediction.
func (r *Repository) deletePredictionRows(ctx context.Context, tx *sqlx.Tx, keys []predictionKey) (int64, error) {
	ids := make([]int64, len(keys))
	requestIDs := make([]string, len(keys))
	for i, k := range keys {
		ids[i] = k.ID
		requestIDs[i] = k.RequestID
	}

	query, args, err := sqlx.In(`DELETE FROM predictions WHERE id IN (?)`, ids)
	if err != nil {
		return 0, fmt.Errorf("failed to build delete: %w", err)
	}
	res, err := tx.ExecContext(ctx, r.rebind(query), args...)
	if err != nil {
		return 0, fmt.Errorf("failed to delete predictions: %w", err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted predictions: %w", err)
	}

	query, args, err = sqlx.In(`
		DELETE FROM requests
		WHERE id IN (?)
		AND NOT EXISTS (SELECT 1 FROM predictions p WHERE p.request_id = requests.id)
	`, requestIDs)
	if err != nil {
		return 0, fmt.Errorf("failed to build delete: %w", err)
	}
	if _, err := tx.ExecContext(ctx, r.rebind(query), args...); err != nil {
		return 0, fmt.Errorf("failed to delete requests: %w", err)
	}
	return deleted, nil
}

// FeatureVector wraps an encoded feature row for storage.
func FeatureVector(features []float32) pgvector.Vector {
	return pgvector.NewVector(features)
}
