package features

import (
	"fmt"
	"strings"

	"github.com/spaolacci/murmur3"
)

// Feature names as frozen at training time
const (
	FieldAge                = "Age"
	FieldGender             = "Gender"
	FieldBloodPressure      = "Blood Pressure"
	FieldFamilyHeartDisease = "Family Heart Disease"
	FieldDiabetes           = "Diabetes"
	FieldBMI                = "BMI"
	FieldHighBloodPressure  = "High Blood Pressure"
	FieldTriglyceride       = "Triglyceride Level"
	FieldFastingBloodSugar  = "Fasting Blood Sugar"
	FieldCRP                = "CRP Level"
	FieldHomocysteine       = "Homocysteine Level"
	FieldCholesterolRatio   = "Cholesterol Ratio"
	FieldLifestyleIndex     = "Lifestyle_Index"
	FieldSugarHigh          = "Sugar Consumption_High"
	FieldSugarLow           = "Sugar Consumption_Low"
	FieldSugarMedium        = "Sugar Consumption_Medium"
	FieldAlcoholHigh        = "Alcohol Consumption_High"
	FieldAlcoholLow         = "Alcohol Consumption_Low"
	FieldAlcoholMedium      = "Alcohol Consumption_Medium"

	// one-hot prefixes, also used in error reports
	FieldSugarConsumption   = "Sugar Consumption"
	FieldAlcoholConsumption = "Alcohol Consumption"
)

// Positions in the feature vector
const (
	IdxAge = iota
	IdxGender
	IdxBloodPressure
	IdxFamilyHeartDisease
	IdxDiabetes
	IdxBMI
	IdxHighBloodPressure
	IdxTriglyceride
	IdxFastingBloodSugar
	IdxCRP
	IdxHomocysteine
	IdxCholesterolRatio
	IdxLifestyleIndex
	IdxSugarHigh
	IdxSugarLow
	IdxSugarMedium
	IdxAlcoholHigh
	IdxAlcoholLow
	IdxAlcoholMedium

	NumFeatures
)

// FeatureNames is the column order the classifier was trained on
var FeatureNames = [NumFeatures]string{
	FieldAge,
	FieldGender,
	FieldBloodPressure,
	FieldFamilyHeartDisease,
	FieldDiabetes,
	FieldBMI,
	FieldHighBloodPressure,
	FieldTriglyceride,
	FieldFastingBloodSugar,
	FieldCRP,
	FieldHomocysteine,
	FieldCholesterolRatio,
	FieldLifestyleIndex,
	FieldSugarHigh,
	FieldSugarLow,
	FieldSugarMedium,
	FieldAlcoholHigh,
	FieldAlcoholLow,
	FieldAlcoholMedium,
}

// NumNumeric is the number of continuous features passed through the scaler
const NumNumeric = 7

// NumericIndexes lists the scaled columns, in scaler column order
var NumericIndexes = [NumNumeric]int{
	IdxAge,
	IdxBloodPressure,
	IdxBMI,
	IdxTriglyceride,
	IdxFastingBloodSugar,
	IdxCRP,
	IdxHomocysteine,
}

// CategoricalFields are label-encoded through the category table
var CategoricalFields = []string{
	FieldGender,
	FieldFamilyHeartDisease,
	FieldDiabetes,
	FieldHighBloodPressure,
}

// NumericFeatureNames returns the scaler column names in order
func NumericFeatureNames() []string {
	names := make([]string, NumNumeric)
	for i, idx := range NumericIndexes {
		names[i] = FeatureNames[idx]
	}
	return names
}

// SchemaVersion fingerprints the ordered feature names. Artifacts trained on a
// different column order carry a different fingerprint.
func SchemaVersion() string {
	return fingerprint(FeatureNames[:])
}

func fingerprint(names []string) string {
	h1, h2 := murmur3.Sum128([]byte(strings.Join(names, "|")))
	return fmt.Sprintf("%016x%016x", h1, h2)
}

// CheckColumns verifies that got matches want exactly, in order
func CheckColumns(component string, want, got []string) error {
	if len(got) != len(want) {
		return SchemaMismatchf(component, "expected %d columns, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			return SchemaMismatchf(component, "column %d is %q, expected %q", i, got[i], want[i])
		}
	}
	return nil
}
