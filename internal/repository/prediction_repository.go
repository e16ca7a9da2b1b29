package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jengzang/heart-risk-backend-go/internal/models"
)

// PredictionRepository handles database operations for prediction history
type PredictionRepository struct {
	db *sql.DB
}

// NewPredictionRepository creates a new prediction repository
func NewPredictionRepository(db *sql.DB) *PredictionRepository {
	return &PredictionRepository{db: db}
}

const predictionColumns = `id, public_id, raw_input, features, cholesterol_ratio, lifestyle_index,
	prediction, label, schema_version, model_version, requested_by, created_at`

// Create stores a prediction and sets its ID
func (r *PredictionRepository) Create(ctx context.Context, p *models.Prediction) error {
	input, err := json.Marshal(p.Input)
	if err != nil {
		return fmt.Errorf("failed to encode raw input: %w", err)
	}
	vector, err := json.Marshal(p.Features)
	if err != nil {
		return fmt.Errorf("failed to encode features: %w", err)
	}

	res, err := r.db.ExecContext(ctx, `INSERT INTO predictions
		(public_id, raw_input, features, cholesterol_ratio, lifestyle_index,
		 prediction, label, schema_version, model_version, requested_by, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.PublicID, string(input), string(vector), p.CholesterolRatio, p.LifestyleIndex,
		p.Prediction, p.Label, p.SchemaVersion, p.ModelVersion, p.RequestedBy, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert prediction: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get prediction id: %w", err)
	}
	p.ID = id
	return nil
}

// GetPredictions retrieves predictions with filtering and pagination, newest first
func (r *PredictionRepository) GetPredictions(ctx context.Context, filter models.PredictionFilter) ([]models.Prediction, int64, error) {
	where, args := buildWhere(filter)

	var total int64
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM predictions"+where, args...).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count predictions: %w", err)
	}

	filter.Normalize()
	offset := (filter.Page - 1) * filter.PageSize
	query := "SELECT " + predictionColumns + " FROM predictions" + where +
		" ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?"
	args = append(args, filter.PageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query predictions: %w", err)
	}
	defer rows.Close()

	predictions := []models.Prediction{}
	for rows.Next() {
		p, err := scanPrediction(rows)
		if err != nil {
			return nil, 0, err
		}
		predictions = append(predictions, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate predictions: %w", err)
	}

	return predictions, total, nil
}

// GetPredictionByPublicID retrieves a single prediction; nil if absent
func (r *PredictionRepository) GetPredictionByPublicID(ctx context.Context, publicID string) (*models.Prediction, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+predictionColumns+" FROM predictions WHERE public_id = ?", publicID)
	p, err := scanPrediction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// GetStatRows returns the projection used for history statistics
func (r *PredictionRepository) GetStatRows(ctx context.Context, filter models.PredictionFilter) ([]models.StatRow, error) {
	where, args := buildWhere(filter)
	rows, err := r.db.QueryContext(ctx,
		"SELECT prediction, cholesterol_ratio, lifestyle_index FROM predictions"+where, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query prediction stats: %w", err)
	}
	defer rows.Close()

	var out []models.StatRow
	for rows.Next() {
		var s models.StatRow
		if err := rows.Scan(&s.Prediction, &s.CholesterolRatio, &s.LifestyleIndex); err != nil {
			return nil, fmt.Errorf("failed to scan prediction stats: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func buildWhere(filter models.PredictionFilter) (string, []interface{}) {
	var conditions []string
	var args []interface{}

	if filter.Prediction != nil {
		conditions = append(conditions, "prediction = ?")
		args = append(args, *filter.Prediction)
	}
	if filter.StartTime > 0 {
		conditions = append(conditions, "created_at >= ?")
		args = append(args, filter.StartTime)
	}
	if filter.EndTime > 0 {
		conditions = append(conditions, "created_at <= ?")
		args = append(args, filter.EndTime)
	}

	if len(conditions) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPrediction(row rowScanner) (*models.Prediction, error) {
	var p models.Prediction
	var input, vector string
	err := row.Scan(
		&p.ID, &p.PublicID, &input, &vector, &p.CholesterolRatio, &p.LifestyleIndex,
		&p.Prediction, &p.Label, &p.SchemaVersion, &p.ModelVersion, &p.RequestedBy, &p.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan prediction: %w", err)
	}
	if err := json.Unmarshal([]byte(input), &p.Input); err != nil {
		return nil, fmt.Errorf("failed to decode raw input of prediction %d: %w", p.ID, err)
	}
	if err := json.Unmarshal([]byte(vector), &p.Features); err != nil {
		return nil, fmt.Errorf("failed to decode features of prediction %d: %w", p.ID, err)
	}
	return &p, nil
}
