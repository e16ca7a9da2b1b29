package inference

import (
	"fmt"

	"github.com/jengzang/heart-risk-backend-go/internal/features"
)

// StandardScaler applies a fitted (x - mean) / scale per column
type StandardScaler struct {
	columns []string
	mean    []float64
	scale   []float64
}

// NewStandardScaler validates the fitted parameters. A zero scale is treated
// as 1, matching how constant columns are fitted.
func NewStandardScaler(columns []string, mean, scale []float64) (*StandardScaler, error) {
	if len(mean) != len(columns) || len(scale) != len(columns) {
		return nil, features.SchemaMismatchf("scaler", "%d columns, %d means, %d scales", len(columns), len(mean), len(scale))
	}
	s := &StandardScaler{
		columns: append([]string(nil), columns...),
		mean:    append([]float64(nil), mean...),
		scale:   make([]float64, len(scale)),
	}
	for i, sc := range scale {
		if sc < 0 {
			return nil, fmt.Errorf("scaler column %q has negative scale %v", columns[i], sc)
		}
		if sc == 0 {
			sc = 1
		}
		s.scale[i] = sc
	}
	return s, nil
}

// Transform scales values in column order
func (s *StandardScaler) Transform(values []float64) ([]float64, error) {
	if len(values) != len(s.mean) {
		return nil, features.SchemaMismatchf("scaler", "expected %d values, got %d", len(s.mean), len(values))
	}
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = (v - s.mean[i]) / s.scale[i]
	}
	return out, nil
}

// Columns returns the fitted column names
func (s *StandardScaler) Columns() []string {
	return append([]string(nil), s.columns...)
}
