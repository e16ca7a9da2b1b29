package features

// Vector is a feature vector in FeatureNames order
type Vector [NumFeatures]float64

// NamedValue is one feature of a vector with its column name
type NamedValue struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Values returns the vector as a slice
func (v Vector) Values() []float64 {
	out := make([]float64, NumFeatures)
	copy(out, v[:])
	return out
}

// Named returns the vector as ordered name/value pairs
func (v Vector) Named() []NamedValue {
	out := make([]NamedValue, NumFeatures)
	for i, name := range FeatureNames {
		out[i] = NamedValue{Name: name, Value: v[i]}
	}
	return out
}

// Numeric extracts the continuous columns in scaler order
func (v Vector) Numeric() []float64 {
	out := make([]float64, NumNumeric)
	for i, idx := range NumericIndexes {
		out[i] = v[idx]
	}
	return out
}

// WithNumeric returns a copy of v with the continuous columns replaced
func (v Vector) WithNumeric(values []float64) (Vector, error) {
	if len(values) != NumNumeric {
		return v, SchemaMismatchf("scaler", "expected %d values, got %d", NumNumeric, len(values))
	}
	out := v
	for i, idx := range NumericIndexes {
		out[idx] = values[i]
	}
	return out, nil
}
