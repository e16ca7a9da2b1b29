package models

import "github.com/jengzang/heart-risk-backend-go/internal/stats"

// PredictionStats summarises the prediction history
type PredictionStats struct {
	Total        int64   `json:"total"`
	Positive     int64   `json:"positive"`
	PositiveRate float64 `json:"positiveRate"` // 0-1

	LifestyleIndex   stats.Summary `json:"lifestyleIndex"`
	CholesterolRatio stats.Summary `json:"cholesterolRatio"`

	// records per cholesterol ratio value 0..5
	CholesterolRatioCounts  [6]int64 `json:"cholesterolRatioCounts"`
	CholesterolRatioEntropy float64  `json:"cholesterolRatioEntropy"` // 0-1

	// Pearson correlation of lifestyle index with a positive prediction
	LifestyleRiskCorrelation float64 `json:"lifestyleRiskCorrelation"`
}

// StatRow is the per-record projection the stats are computed from
type StatRow struct {
	Prediction       int
	CholesterolRatio int
	LifestyleIndex   int
}
