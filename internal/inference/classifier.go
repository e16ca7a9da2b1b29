package inference

import (
	"fmt"
	"math"
	"sync"

	"gonum.org/v1/gonum/floats"

	"github.com/jengzang/heart-risk-backend-go/internal/features"
)

// Classifier predicts 1 (disease) or 0 (no disease) for a scaled feature vector
type Classifier interface {
	Predict(v features.Vector) (int, error)
}

// LogisticClassifier is a fitted binary logistic regression
type LogisticClassifier struct {
	coefficients []float64
	intercept    float64
	threshold    float64
}

// NewLogisticClassifier validates the fitted weights against the feature layout
func NewLogisticClassifier(coefficients []float64, intercept, threshold float64) (*LogisticClassifier, error) {
	if len(coefficients) != features.NumFeatures {
		return nil, features.SchemaMismatchf("classifier", "expected %d coefficients, got %d", features.NumFeatures, len(coefficients))
	}
	if threshold <= 0 || threshold >= 1 {
		return nil, fmt.Errorf("classifier threshold %v must be in (0,1)", threshold)
	}
	return &LogisticClassifier{
		coefficients: append([]float64(nil), coefficients...),
		intercept:    intercept,
		threshold:    threshold,
	}, nil
}

// Predict thresholds the positive class probability
func (c *LogisticClassifier) Predict(v features.Vector) (int, error) {
	p := c.probability(v)
	if math.IsNaN(p) {
		return 0, fmt.Errorf("classifier produced NaN for input")
	}
	if p >= c.threshold {
		return 1, nil
	}
	return 0, nil
}

func (c *LogisticClassifier) probability(v features.Vector) float64 {
	z := floats.Dot(c.coefficients, v[:]) + c.intercept
	return 1 / (1 + math.Exp(-z))
}

// serialized guards a classifier that may not be reentrant
type serialized struct {
	mu    sync.Mutex
	inner Classifier
}

// Serialized wraps c so that at most one Predict runs at a time
func Serialized(c Classifier) Classifier {
	if s, ok := c.(*serialized); ok {
		return s
	}
	return &serialized{inner: c}
}

func (s *serialized) Predict(v features.Vector) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.Predict(v)
}
