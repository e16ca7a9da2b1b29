package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/heart-risk-backend-go/internal/features"
	"github.com/jengzang/heart-risk-backend-go/internal/inference"
	"github.com/jengzang/heart-risk-backend-go/internal/models"
)

type memoryStore struct {
	records   []models.Prediction
	createErr error
}

func (m *memoryStore) Create(_ context.Context, p *models.Prediction) error {
	if m.createErr != nil {
		return m.createErr
	}
	p.ID = int64(len(m.records) + 1)
	m.records = append(m.records, *p)
	return nil
}

func (m *memoryStore) GetPredictions(_ context.Context, filter models.PredictionFilter) ([]models.Prediction, int64, error) {
	start := (filter.Page - 1) * filter.PageSize
	if start >= len(m.records) {
		return []models.Prediction{}, int64(len(m.records)), nil
	}
	end := start + filter.PageSize
	if end > len(m.records) {
		end = len(m.records)
	}
	return m.records[start:end], int64(len(m.records)), nil
}

func (m *memoryStore) GetPredictionByPublicID(_ context.Context, publicID string) (*models.Prediction, error) {
	for i := range m.records {
		if m.records[i].PublicID == publicID {
			return &m.records[i], nil
		}
	}
	return nil, nil
}

func (m *memoryStore) GetStatRows(_ context.Context, _ models.PredictionFilter) ([]models.StatRow, error) {
	rows := make([]models.StatRow, 0, len(m.records))
	for _, r := range m.records {
		rows = append(rows, models.StatRow{
			Prediction:       r.Prediction,
			CholesterolRatio: r.CholesterolRatio,
			LifestyleIndex:   r.LifestyleIndex,
		})
	}
	return rows, nil
}

func loadBundle(t *testing.T) *inference.Bundle {
	t.Helper()
	b, err := inference.LoadBundle("../../artifacts/heart_model.yaml")
	require.NoError(t, err)
	return b
}

func healthyInput() features.RawInput {
	return features.RawInput{
		Age: 40, Gender: features.GenderMale, BloodPressure: 120,
		FamilyHeartDisease: features.No, Diabetes: features.No, BMI: 25.0,
		HighBloodPressure: features.No, Triglyceride: 150, FastingBloodSugar: 100,
		CRP: 1.0, Homocysteine: 10.0, TotalCholesterol: 200,
		LowHDL: features.No, HighLDL: features.No, SleepHours: 7,
		Exercise: features.LevelMedium, Smoking: features.No, Stress: features.LevelMedium,
		SugarConsumption: features.LevelLow, AlcoholConsumption: features.LevelLow,
	}
}

func riskyInput() features.RawInput {
	in := healthyInput()
	in.Age = 70
	in.BloodPressure = 190
	in.FamilyHeartDisease = features.Yes
	in.Diabetes = features.Yes
	in.BMI = 38
	in.HighBloodPressure = features.Yes
	in.Triglyceride = 400
	in.FastingBloodSugar = 180
	in.CRP = 15
	in.Homocysteine = 30
	in.TotalCholesterol = 260
	in.LowHDL = features.Yes
	in.HighLDL = features.Yes
	in.SleepHours = 3
	in.Exercise = features.LevelLow
	in.Smoking = features.Yes
	in.Stress = features.LevelHigh
	in.SugarConsumption = features.LevelHigh
	in.AlcoholConsumption = features.LevelHigh
	return in
}

func TestPredictStoresHistory(t *testing.T) {
	store := &memoryStore{}
	svc := NewPredictionService(loadBundle(t), store)
	svc.now = func() time.Time { return time.Unix(1700000000, 0) }

	result, err := svc.Predict(context.Background(), healthyInput(), "alice")
	require.NoError(t, err)
	assert.Equal(t, 0, result.Prediction)
	assert.Equal(t, models.LabelNoDisease, result.Label)
	assert.Equal(t, 1, result.Breakdown.CholesterolRatio)
	assert.Equal(t, 6, result.Breakdown.LifestyleIndex)
	assert.Len(t, result.Features, features.NumFeatures)
	assert.Equal(t, features.SchemaVersion(), result.SchemaVersion)
	assert.Equal(t, "heart-lr-2024.1", result.ModelVersion)
	assert.NotEmpty(t, result.ID)

	require.Len(t, store.records, 1)
	rec := store.records[0]
	assert.Equal(t, result.ID, rec.PublicID)
	assert.Equal(t, "alice", rec.RequestedBy)
	assert.Equal(t, int64(1700000000), rec.CreatedAt)
	assert.Equal(t, healthyInput(), rec.Input)

	risky, err := svc.Predict(context.Background(), riskyInput(), "")
	require.NoError(t, err)
	assert.Equal(t, 1, risky.Prediction)
	assert.Equal(t, models.LabelDisease, risky.Label)
	assert.NotEqual(t, result.ID, risky.ID)
}

func TestPredictWithoutHistory(t *testing.T) {
	svc := NewPredictionService(loadBundle(t), nil)
	assert.False(t, svc.HistoryEnabled())

	result, err := svc.Predict(context.Background(), healthyInput(), "")
	require.NoError(t, err)
	assert.Empty(t, result.ID)

	_, err = svc.GetPredictions(context.Background(), models.PredictionFilter{})
	assert.ErrorIs(t, err, ErrHistoryDisabled)
	_, err = svc.GetPredictionByID(context.Background(), "x")
	assert.ErrorIs(t, err, ErrHistoryDisabled)
	_, err = svc.GetStats(context.Background(), models.PredictionFilter{})
	assert.ErrorIs(t, err, ErrHistoryDisabled)
}

func TestPredictRejectsInvalidInput(t *testing.T) {
	store := &memoryStore{}
	svc := NewPredictionService(loadBundle(t), store)

	in := healthyInput()
	in.Gender = "Other"
	_, err := svc.Predict(context.Background(), in, "")
	assert.ErrorIs(t, err, features.ErrOutOfDomainCategory)

	in = healthyInput()
	in.Age = 150
	_, err = svc.Predict(context.Background(), in, "")
	assert.ErrorIs(t, err, features.ErrOutOfRangeNumeric)

	assert.Empty(t, store.records)
}

func TestPredictStoreFailure(t *testing.T) {
	svc := NewPredictionService(loadBundle(t), &memoryStore{createErr: errors.New("disk full")})
	_, err := svc.Predict(context.Background(), healthyInput(), "")
	assert.ErrorContains(t, err, "disk full")
}

type fixedClassifier int

func (f fixedClassifier) Predict(features.Vector) (int, error) { return int(f), nil }

func TestPredictRejectsNonBinaryOutput(t *testing.T) {
	b := loadBundle(t)
	b.Classifier = fixedClassifier(2)
	svc := NewPredictionService(b, nil)
	_, err := svc.Predict(context.Background(), healthyInput(), "")
	assert.Error(t, err)
}

func TestEncodeOnly(t *testing.T) {
	svc := NewPredictionService(loadBundle(t), nil)
	result, err := svc.EncodeOnly(healthyInput())
	require.NoError(t, err)

	require.Len(t, result.Raw, features.NumFeatures)
	require.Len(t, result.Scaled, features.NumFeatures)
	assert.Equal(t, features.FieldAge, result.Raw[features.IdxAge].Name)
	assert.Equal(t, 40.0, result.Raw[features.IdxAge].Value)
	assert.InDelta(t, (40-49.2961)/18.1929, result.Scaled[features.IdxAge].Value, 1e-12)
	// categorical columns are not scaled
	assert.Equal(t, result.Raw[features.IdxGender], result.Scaled[features.IdxGender])
}

func TestSchema(t *testing.T) {
	svc := NewPredictionService(loadBundle(t), nil)
	info := svc.Schema()
	assert.Equal(t, features.FeatureNames[:], info.Features)
	assert.Len(t, info.NumericFeatures, features.NumNumeric)
	assert.Equal(t, features.SchemaVersion(), info.SchemaVersion)

	info.Features[0] = "mutated"
	assert.Equal(t, features.FieldAge, features.FeatureNames[0])
}

func TestGetPredictionsPagination(t *testing.T) {
	store := &memoryStore{}
	svc := NewPredictionService(loadBundle(t), store)
	for i := 0; i < 5; i++ {
		_, err := svc.Predict(context.Background(), healthyInput(), "")
		require.NoError(t, err)
	}

	resp, err := svc.GetPredictions(context.Background(), models.PredictionFilter{Page: 2, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(5), resp.Total)
	assert.Equal(t, 3, resp.TotalPages)
	assert.Len(t, resp.Data, 2)

	found, err := svc.GetPredictionByID(context.Background(), store.records[3].PublicID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, int64(4), found.ID)

	missing, err := svc.GetPredictionByID(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestGetStats(t *testing.T) {
	store := &memoryStore{}
	svc := NewPredictionService(loadBundle(t), store)
	for _, in := range []features.RawInput{healthyInput(), healthyInput(), riskyInput()} {
		_, err := svc.Predict(context.Background(), in, "")
		require.NoError(t, err)
	}

	st, err := svc.GetStats(context.Background(), models.PredictionFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), st.Total)
	assert.Equal(t, int64(1), st.Positive)
	assert.InDelta(t, 1.0/3, st.PositiveRate, 1e-12)
	assert.Equal(t, [6]int64{0, 2, 0, 0, 0, 1}, st.CholesterolRatioCounts)
	assert.Equal(t, 3, st.LifestyleIndex.Count)
	assert.Equal(t, 0.0, st.LifestyleIndex.Min)
	assert.Equal(t, 6.0, st.LifestyleIndex.Max)
	assert.InDelta(t, -1.0, st.LifestyleRiskCorrelation, 1e-12)
	assert.Greater(t, st.CholesterolRatioEntropy, 0.0)
	assert.Less(t, st.CholesterolRatioEntropy, 1.0)
}
