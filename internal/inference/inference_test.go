package inference

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/heart-risk-backend-go/internal/features"
)

const sampleBundlePath = "../../artifacts/heart_model.yaml"

func readSample(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile(sampleBundlePath)
	require.NoError(t, err)
	return string(data)
}

func TestLoadSampleBundle(t *testing.T) {
	b, err := LoadBundle(sampleBundlePath)
	require.NoError(t, err)

	assert.Equal(t, features.SchemaVersion(), b.SchemaVersion)
	assert.Equal(t, "heart-lr-2024.1", b.ModelVersion)
	assert.Equal(t, features.NumericFeatureNames(), b.Scaler.Columns())
	assert.ElementsMatch(t, features.CategoricalFields, b.Labels.Fields())

	code, err := b.Labels.Encode(features.FieldGender, "Male")
	require.NoError(t, err)
	assert.Equal(t, 1, code)
	code, err = b.Labels.Encode(features.FieldDiabetes, "No")
	require.NoError(t, err)
	assert.Equal(t, 0, code)
}

func TestSampleBundleEndToEnd(t *testing.T) {
	b, err := LoadBundle(sampleBundlePath)
	require.NoError(t, err)
	enc := features.NewEncoder(b.Labels, b.Scaler)

	healthy := features.RawInput{
		Age: 40, Gender: features.GenderMale, BloodPressure: 120,
		FamilyHeartDisease: features.No, Diabetes: features.No, BMI: 25.0,
		HighBloodPressure: features.No, Triglyceride: 150, FastingBloodSugar: 100,
		CRP: 1.0, Homocysteine: 10.0, TotalCholesterol: 200,
		LowHDL: features.No, HighLDL: features.No, SleepHours: 7,
		Exercise: features.LevelMedium, Smoking: features.No, Stress: features.LevelMedium,
		SugarConsumption: features.LevelLow, AlcoholConsumption: features.LevelLow,
	}
	v, breakdown, err := enc.Encode(healthy)
	require.NoError(t, err)
	assert.Equal(t, 1, breakdown.CholesterolRatio)
	assert.Equal(t, 6, breakdown.LifestyleIndex)
	assert.InDelta(t, (40-49.2961)/18.1929, v[features.IdxAge], 1e-12)
	assert.Equal(t, 1.0, v[features.IdxCholesterolRatio])

	label, err := b.Classifier.Predict(v)
	require.NoError(t, err)
	assert.Equal(t, 0, label)

	again, _, err := enc.Encode(healthy)
	require.NoError(t, err)
	assert.Equal(t, v, again)

	risky := healthy
	risky.Age = 70
	risky.BloodPressure = 190
	risky.FamilyHeartDisease = features.Yes
	risky.Diabetes = features.Yes
	risky.BMI = 38
	risky.HighBloodPressure = features.Yes
	risky.Triglyceride = 400
	risky.FastingBloodSugar = 180
	risky.CRP = 15
	risky.Homocysteine = 30
	risky.TotalCholesterol = 260
	risky.LowHDL = features.Yes
	risky.HighLDL = features.Yes
	risky.SleepHours = 3
	risky.Exercise = features.LevelLow
	risky.Smoking = features.Yes
	risky.Stress = features.LevelHigh
	risky.SugarConsumption = features.LevelHigh
	risky.AlcoholConsumption = features.LevelHigh

	v, breakdown, err = enc.Encode(risky)
	require.NoError(t, err)
	assert.Equal(t, 5, breakdown.CholesterolRatio)
	assert.Equal(t, 0, breakdown.LifestyleIndex)
	label, err = b.Classifier.Predict(v)
	require.NoError(t, err)
	assert.Equal(t, 1, label)
}

func TestParseBundleSchemaMismatch(t *testing.T) {
	sample := readSample(t)

	tests := []struct {
		name string
		edit func(string) string
	}{
		{"wrong schema version", func(s string) string {
			return strings.Replace(s, features.SchemaVersion(), "deadbeef", 1)
		}},
		{"swapped model columns", func(s string) string {
			s = strings.Replace(s, "    - Age\n    - Gender\n", "    - Gender\n    - Age\n", 1)
			return s
		}},
		{"missing scaler column", func(s string) string {
			return strings.Replace(s, "    - Homocysteine Level\n  mean:", "  mean:", 1)
		}},
		{"missing label encoder", func(s string) string {
			return strings.Replace(s, "  Diabetes: [\"No\", \"Yes\"]\n", "", 1)
		}},
		{"short coefficients", func(s string) string {
			return strings.Replace(s, "    - 0.0301   # Alcohol Consumption_Medium\n", "", 1)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			edited := tt.edit(sample)
			require.NotEqual(t, sample, edited, "edit did not apply")
			_, err := ParseBundle([]byte(edited))
			assert.ErrorIs(t, err, features.ErrSchemaMismatch)
		})
	}
}

func TestParseBundleWithoutSchemaVersion(t *testing.T) {
	sample := readSample(t)
	edited := strings.Replace(sample, "schemaVersion: "+features.SchemaVersion()+"\n", "", 1)
	require.NotEqual(t, sample, edited)

	b, err := ParseBundle([]byte(edited))
	require.NoError(t, err)
	assert.Equal(t, features.SchemaVersion(), b.SchemaVersion)
}

func TestParseBundleRejectsUnknownModelType(t *testing.T) {
	edited := strings.Replace(readSample(t), "type: logistic", "type: xgboost", 1)
	_, err := ParseBundle([]byte(edited))
	assert.ErrorContains(t, err, "unsupported model type")
}

func TestLoadBundleMissingFile(t *testing.T) {
	_, err := LoadBundle(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLabelTable(t *testing.T) {
	table, err := NewLabelTable(map[string][]string{"Gender": {"Female", "Male"}})
	require.NoError(t, err)

	code, err := table.Encode("Gender", "Female")
	require.NoError(t, err)
	assert.Equal(t, 0, code)

	_, err = table.Encode("Gender", "Other")
	assert.ErrorIs(t, err, features.ErrOutOfDomainCategory)

	_, err = table.Encode("Diabetes", "No")
	assert.ErrorIs(t, err, features.ErrSchemaMismatch)

	_, err = NewLabelTable(map[string][]string{"Gender": {"Male", "Male"}})
	assert.Error(t, err)
	_, err = NewLabelTable(map[string][]string{"Gender": {}})
	assert.Error(t, err)
}

func TestStandardScaler(t *testing.T) {
	s, err := NewStandardScaler([]string{"a", "b", "c"}, []float64{1, 2, 3}, []float64{2, 0, 4})
	require.NoError(t, err)

	out, err := s.Transform([]float64{5, 7, 3})
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 5, 0}, out)

	_, err = s.Transform([]float64{1})
	assert.ErrorIs(t, err, features.ErrSchemaMismatch)

	_, err = NewStandardScaler([]string{"a"}, []float64{1, 2}, []float64{1})
	assert.ErrorIs(t, err, features.ErrSchemaMismatch)
	_, err = NewStandardScaler([]string{"a"}, []float64{1}, []float64{-1})
	assert.Error(t, err)
}

func TestLogisticClassifier(t *testing.T) {
	coef := make([]float64, features.NumFeatures)
	coef[features.IdxAge] = 1
	clf, err := NewLogisticClassifier(coef, 0, 0.5)
	require.NoError(t, err)

	var v features.Vector
	v[features.IdxAge] = 2
	label, err := clf.Predict(v)
	require.NoError(t, err)
	assert.Equal(t, 1, label)
	assert.InDelta(t, 1/(1+math.Exp(-2)), clf.probability(v), 1e-12)

	v[features.IdxAge] = -2
	label, err = clf.Predict(v)
	require.NoError(t, err)
	assert.Equal(t, 0, label)

	_, err = NewLogisticClassifier(coef[:3], 0, 0.5)
	assert.ErrorIs(t, err, features.ErrSchemaMismatch)
	_, err = NewLogisticClassifier(coef, 0, 1.5)
	assert.Error(t, err)
}

type countingClassifier struct {
	active    int
	maxActive int
	mu        sync.Mutex
}

func (c *countingClassifier) Predict(features.Vector) (int, error) {
	c.mu.Lock()
	c.active++
	if c.active > c.maxActive {
		c.maxActive = c.active
	}
	c.mu.Unlock()

	c.mu.Lock()
	c.active--
	c.mu.Unlock()
	return 0, nil
}

func TestSerializedClassifier(t *testing.T) {
	inner := &countingClassifier{}
	clf := Serialized(inner)
	assert.Same(t, clf, Serialized(clf))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = clf.Predict(features.Vector{})
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, inner.maxActive)
}
