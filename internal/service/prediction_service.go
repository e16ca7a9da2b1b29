package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jengzang/heart-risk-backend-go/internal/features"
	"github.com/jengzang/heart-risk-backend-go/internal/inference"
	"github.com/jengzang/heart-risk-backend-go/internal/models"
	"github.com/jengzang/heart-risk-backend-go/internal/stats"
)

// ErrHistoryDisabled is returned by history queries when no store is configured
var ErrHistoryDisabled = errors.New("prediction history is disabled")

// PredictionStore persists prediction history
type PredictionStore interface {
	Create(ctx context.Context, p *models.Prediction) error
	GetPredictions(ctx context.Context, filter models.PredictionFilter) ([]models.Prediction, int64, error)
	GetPredictionByPublicID(ctx context.Context, publicID string) (*models.Prediction, error)
	GetStatRows(ctx context.Context, filter models.PredictionFilter) ([]models.StatRow, error)
}

// PredictionService runs the encode, scale, predict pipeline
type PredictionService struct {
	encoder       *features.Encoder
	classifier    inference.Classifier
	store         PredictionStore
	schemaVersion string
	modelVersion  string
	now           func() time.Time
}

// NewPredictionService creates a service over the loaded artifacts.
// A nil store disables history.
func NewPredictionService(bundle *inference.Bundle, store PredictionStore) *PredictionService {
	return &PredictionService{
		encoder:       features.NewEncoder(bundle.Labels, bundle.Scaler),
		classifier:    bundle.Classifier,
		store:         store,
		schemaVersion: bundle.SchemaVersion,
		modelVersion:  bundle.ModelVersion,
		now:           time.Now,
	}
}

// HistoryEnabled reports whether predictions are persisted
func (s *PredictionService) HistoryEnabled() bool {
	return s.store != nil
}

// Predict encodes the input, runs the classifier and records the result
func (s *PredictionService) Predict(ctx context.Context, in features.RawInput, requestedBy string) (*models.PredictionResult, error) {
	vector, breakdown, err := s.encoder.Encode(in)
	if err != nil {
		return nil, err
	}

	prediction, err := s.classifier.Predict(vector)
	if err != nil {
		return nil, fmt.Errorf("classifier failed: %w", err)
	}
	if prediction != 0 && prediction != 1 {
		return nil, fmt.Errorf("classifier returned %d, expected 0 or 1", prediction)
	}

	result := &models.PredictionResult{
		Prediction:    prediction,
		Label:         models.LabelFor(prediction),
		Breakdown:     breakdown,
		Features:      vector.Named(),
		SchemaVersion: s.schemaVersion,
		ModelVersion:  s.modelVersion,
	}

	if s.store != nil {
		record := &models.Prediction{
			PublicID:         uuid.NewString(),
			Input:            in,
			Features:         vector.Values(),
			CholesterolRatio: breakdown.CholesterolRatio,
			LifestyleIndex:   breakdown.LifestyleIndex,
			Prediction:       prediction,
			Label:            result.Label,
			SchemaVersion:    s.schemaVersion,
			ModelVersion:     s.modelVersion,
			RequestedBy:      requestedBy,
			CreatedAt:        s.now().Unix(),
		}
		if err := s.store.Create(ctx, record); err != nil {
			log.Error().Err(err).Msg("Failed to store prediction")
			return nil, fmt.Errorf("failed to store prediction: %w", err)
		}
		result.ID = record.PublicID
	}

	log.Debug().
		Str("id", result.ID).
		Int("prediction", prediction).
		Int("cholesterolRatio", breakdown.CholesterolRatio).
		Int("lifestyleIndex", breakdown.LifestyleIndex).
		Msg("Prediction served")
	return result, nil
}

// EncodeOnly returns the feature vector before and after scaling without predicting
func (s *PredictionService) EncodeOnly(in features.RawInput) (*models.EncodeResult, error) {
	raw, breakdown, err := s.encoder.Assemble(in)
	if err != nil {
		return nil, err
	}
	scaled, err := s.encoder.ScaleNumeric(raw)
	if err != nil {
		return nil, err
	}
	return &models.EncodeResult{
		Breakdown:     breakdown,
		Raw:           raw.Named(),
		Scaled:        scaled.Named(),
		SchemaVersion: s.schemaVersion,
	}, nil
}

// Schema describes the feature layout and artifact versions
func (s *PredictionService) Schema() models.SchemaInfo {
	return models.SchemaInfo{
		Features:        append([]string(nil), features.FeatureNames[:]...),
		NumericFeatures: features.NumericFeatureNames(),
		SchemaVersion:   s.schemaVersion,
		ModelVersion:    s.modelVersion,
	}
}

// GetPredictions retrieves prediction history with filtering and pagination
func (s *PredictionService) GetPredictions(ctx context.Context, filter models.PredictionFilter) (*models.PredictionsResponse, error) {
	if s.store == nil {
		return nil, ErrHistoryDisabled
	}
	filter.Normalize()
	predictions, total, err := s.store.GetPredictions(ctx, filter)
	if err != nil {
		return nil, err
	}

	totalPages := int(total) / filter.PageSize
	if int(total)%filter.PageSize > 0 {
		totalPages++
	}
	return &models.PredictionsResponse{
		Data:       predictions,
		Total:      total,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalPages: totalPages,
	}, nil
}

// GetPredictionByID retrieves a single prediction; nil if absent
func (s *PredictionService) GetPredictionByID(ctx context.Context, publicID string) (*models.Prediction, error) {
	if s.store == nil {
		return nil, ErrHistoryDisabled
	}
	return s.store.GetPredictionByPublicID(ctx, publicID)
}

// GetStats summarises the prediction history
func (s *PredictionService) GetStats(ctx context.Context, filter models.PredictionFilter) (*models.PredictionStats, error) {
	if s.store == nil {
		return nil, ErrHistoryDisabled
	}
	rows, err := s.store.GetStatRows(ctx, filter)
	if err != nil {
		return nil, err
	}

	out := &models.PredictionStats{Total: int64(len(rows))}
	lifestyle := make([]float64, 0, len(rows))
	ratios := make([]float64, 0, len(rows))
	outcomes := make([]float64, 0, len(rows))
	for _, r := range rows {
		if r.Prediction == 1 {
			out.Positive++
		}
		outcomes = append(outcomes, float64(r.Prediction))
		if r.CholesterolRatio >= 0 && r.CholesterolRatio < len(out.CholesterolRatioCounts) {
			out.CholesterolRatioCounts[r.CholesterolRatio]++
		}
		lifestyle = append(lifestyle, float64(r.LifestyleIndex))
		ratios = append(ratios, float64(r.CholesterolRatio))
	}
	out.PositiveRate = stats.Rate(out.Positive, out.Total)
	out.LifestyleIndex = stats.Summarize(lifestyle)
	out.CholesterolRatio = stats.Summarize(ratios)
	out.CholesterolRatioEntropy = stats.NormalizedEntropy(out.CholesterolRatioCounts[:])
	out.LifestyleRiskCorrelation = stats.Correlation(lifestyle, outcomes)
	return out, nil
}
