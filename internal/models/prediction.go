package models

import (
	"github.com/jengzang/heart-risk-backend-go/internal/features"
)

// Human-readable prediction labels
const (
	LabelDisease   = "Heart Disease Detected"
	LabelNoDisease = "No Heart Disease"
)

// LabelFor renders a classifier output as its display label
func LabelFor(prediction int) string {
	if prediction == 1 {
		return LabelDisease
	}
	return LabelNoDisease
}

// Prediction is a stored prediction history record
type Prediction struct {
	ID               int64             `json:"id" db:"id"`
	PublicID         string            `json:"publicId" db:"public_id"`
	Input            features.RawInput `json:"input" db:"raw_input"`                    // stored as JSON
	Features         []float64         `json:"features" db:"features"`                  // scaled, FeatureNames order, stored as JSON
	CholesterolRatio int               `json:"cholesterolRatio" db:"cholesterol_ratio"`
	LifestyleIndex   int               `json:"lifestyleIndex" db:"lifestyle_index"`
	Prediction       int               `json:"prediction" db:"prediction"`              // 1 = disease predicted
	Label            string            `json:"label" db:"label"`
	SchemaVersion    string            `json:"schemaVersion" db:"schema_version"`
	ModelVersion     string            `json:"modelVersion" db:"model_version"`
	RequestedBy      string            `json:"requestedBy,omitempty" db:"requested_by"`
	CreatedAt        int64             `json:"createdAt" db:"created_at"`               // Unix timestamp
}

// PredictionResult is returned to the caller of a prediction request
type PredictionResult struct {
	ID            string                `json:"id,omitempty"`
	Prediction    int                   `json:"prediction"`
	Label         string                `json:"label"`
	Breakdown     features.Breakdown    `json:"breakdown"`
	Features      []features.NamedValue `json:"features"`
	SchemaVersion string                `json:"schemaVersion"`
	ModelVersion  string                `json:"modelVersion"`
}

// EncodeResult shows the feature vector before and after scaling
type EncodeResult struct {
	Breakdown     features.Breakdown    `json:"breakdown"`
	Raw           []features.NamedValue `json:"raw"`
	Scaled        []features.NamedValue `json:"scaled"`
	SchemaVersion string                `json:"schemaVersion"`
}

// SchemaInfo describes the feature layout the service encodes to
type SchemaInfo struct {
	Features        []string `json:"features"`
	NumericFeatures []string `json:"numericFeatures"`
	SchemaVersion   string   `json:"schemaVersion"`
	ModelVersion    string   `json:"modelVersion"`
}
