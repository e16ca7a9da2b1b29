package features

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// CategoryTable maps a categorical label to the integer code fitted at
// training time. Implementations must fail on labels they have never seen.
type CategoryTable interface {
	Encode(field, label string) (int, error)
}

// Scaler transforms the continuous columns, in NumericFeatureNames order
type Scaler interface {
	Transform(values []float64) ([]float64, error)
}

// Breakdown exposes the engineered intermediate values of one encoding
type Breakdown struct {
	CholesterolBucket int       `json:"cholesterolBucket"`
	CholesterolRatio  int       `json:"cholesterolRatio"`
	Lifestyle         Lifestyle `json:"lifestyle"`
	LifestyleIndex    int       `json:"lifestyleIndex"`
}

// Encoder turns RawInput into the classifier's feature vector. It holds only
// read-only dependencies and is safe for concurrent use.
type Encoder struct {
	categories CategoryTable
	scaler     Scaler
	validate   *validator.Validate
}

// NewEncoder creates an encoder over the fitted category table and scaler
func NewEncoder(categories CategoryTable, scaler Scaler) *Encoder {
	return &Encoder{
		categories: categories,
		scaler:     scaler,
		validate:   newValidator(),
	}
}

// Encode assembles and scales the feature vector for in
func (e *Encoder) Encode(in RawInput) (Vector, Breakdown, error) {
	v, b, err := e.Assemble(in)
	if err != nil {
		return Vector{}, Breakdown{}, err
	}
	scaled, err := e.ScaleNumeric(v)
	if err != nil {
		return Vector{}, Breakdown{}, err
	}
	return scaled, b, nil
}

// Assemble builds the unscaled feature vector in FeatureNames order
func (e *Encoder) Assemble(in RawInput) (Vector, Breakdown, error) {
	var v Vector
	var b Breakdown

	if err := e.checkRanges(in); err != nil {
		return v, b, err
	}

	gender, err := e.categories.Encode(FieldGender, string(in.Gender))
	if err != nil {
		return v, b, err
	}
	familyHD, err := e.categories.Encode(FieldFamilyHeartDisease, string(in.FamilyHeartDisease))
	if err != nil {
		return v, b, err
	}
	diabetes, err := e.categories.Encode(FieldDiabetes, string(in.Diabetes))
	if err != nil {
		return v, b, err
	}
	hbp, err := e.categories.Encode(FieldHighBloodPressure, string(in.HighBloodPressure))
	if err != nil {
		return v, b, err
	}

	ratio, err := CholesterolRatio(in.TotalCholesterol, in.LowHDL, in.HighLDL)
	if err != nil {
		return v, b, err
	}
	lifestyle, err := ScoreLifestyle(in.SleepHours, in.Exercise, in.Smoking, in.Stress)
	if err != nil {
		return v, b, err
	}
	sugar, err := OneHot(FieldSugarConsumption, in.SugarConsumption)
	if err != nil {
		return v, b, err
	}
	alcohol, err := OneHot(FieldAlcoholConsumption, in.AlcoholConsumption)
	if err != nil {
		return v, b, err
	}

	v[IdxAge] = float64(in.Age)
	v[IdxGender] = float64(gender)
	v[IdxBloodPressure] = float64(in.BloodPressure)
	v[IdxFamilyHeartDisease] = float64(familyHD)
	v[IdxDiabetes] = float64(diabetes)
	v[IdxBMI] = in.BMI
	v[IdxHighBloodPressure] = float64(hbp)
	v[IdxTriglyceride] = float64(in.Triglyceride)
	v[IdxFastingBloodSugar] = float64(in.FastingBloodSugar)
	v[IdxCRP] = in.CRP
	v[IdxHomocysteine] = in.Homocysteine
	v[IdxCholesterolRatio] = float64(ratio)
	v[IdxLifestyleIndex] = float64(lifestyle.Index())
	copy(v[IdxSugarHigh:IdxSugarMedium+1], sugar[:])
	copy(v[IdxAlcoholHigh:IdxAlcoholMedium+1], alcohol[:])

	b = Breakdown{
		CholesterolBucket: CholesterolBucket(in.TotalCholesterol),
		CholesterolRatio:  ratio,
		Lifestyle:         lifestyle,
		LifestyleIndex:    lifestyle.Index(),
	}
	return v, b, nil
}

// ScaleNumeric passes the continuous columns through the scaler and leaves
// every other column untouched
func (e *Encoder) ScaleNumeric(v Vector) (Vector, error) {
	scaled, err := e.scaler.Transform(v.Numeric())
	if err != nil {
		return Vector{}, fmt.Errorf("failed to scale numeric features: %w", err)
	}
	return v.WithNumeric(scaled)
}

func (e *Encoder) checkRanges(in RawInput) error {
	err := e.validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("failed to validate input: %w", err)
	}
	fe := verrs[0]
	if fe.Tag() == "required" {
		return &CategoryError{Field: fe.Field(), Label: ""}
	}
	rule := fe.Tag()
	if fe.Param() != "" {
		rule += "=" + fe.Param()
	}
	return &RangeError{Field: fe.Field(), Value: fe.Value(), Rule: rule}
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}
