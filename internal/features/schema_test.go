package features

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFeatureNamesOrder(t *testing.T) {
	assert.Equal(t, 19, NumFeatures)
	assert.Equal(t, "Age", FeatureNames[0])
	assert.Equal(t, "Lifestyle_Index", FeatureNames[IdxLifestyleIndex])
	assert.Equal(t, "Alcohol Consumption_Medium", FeatureNames[NumFeatures-1])
	assert.Equal(t, []string{
		"Age", "Blood Pressure", "BMI", "Triglyceride Level",
		"Fasting Blood Sugar", "CRP Level", "Homocysteine Level",
	}, NumericFeatureNames())
}

func TestSchemaVersionIsStable(t *testing.T) {
	assert.Equal(t, "a887892c9e2a4c66a2986f823d8cd96f", SchemaVersion())
	assert.Equal(t, SchemaVersion(), SchemaVersion())

	swapped := FeatureNames
	swapped[0], swapped[1] = swapped[1], swapped[0]
	assert.NotEqual(t, SchemaVersion(), fingerprint(swapped[:]))
}

func TestCheckColumns(t *testing.T) {
	want := []string{"a", "b"}
	assert.NoError(t, CheckColumns("x", want, []string{"a", "b"}))
	assert.ErrorIs(t, CheckColumns("x", want, []string{"b", "a"}), ErrSchemaMismatch)
	assert.ErrorIs(t, CheckColumns("x", want, []string{"a"}), ErrSchemaMismatch)
}

func TestVectorNumericRoundTrip(t *testing.T) {
	var v Vector
	for i := range v {
		v[i] = float64(i)
	}
	assert.Equal(t, []float64{0, 2, 5, 7, 8, 9, 10}, v.Numeric())

	out, err := v.WithNumeric([]float64{-1, -1, -1, -1, -1, -1, -1})
	assert.NoError(t, err)
	assert.Equal(t, -1.0, out[IdxAge])
	assert.Equal(t, 1.0, out[IdxGender])
	assert.Equal(t, 0.0, v[IdxAge])

	_, err = v.WithNumeric([]float64{1})
	assert.ErrorIs(t, err, ErrSchemaMismatch)

	named := v.Named()
	assert.Equal(t, "Gender", named[1].Name)
	assert.Equal(t, 1.0, named[1].Value)
}
