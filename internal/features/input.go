package features

import (
	"encoding/json"
	"strings"
)

// Gender is the self-reported gender label from the intake form
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
)

// YesNo is a binary form answer
type YesNo string

const (
	No  YesNo = "No"
	Yes YesNo = "Yes"
)

// Level is a three-step Low/Medium/High form answer
type Level string

const (
	LevelLow    Level = "Low"
	LevelMedium Level = "Medium"
	LevelHigh   Level = "High"
)

// RawInput is one intake form submission.
//
// Numeric bounds are declared as binding tags so gin request binding and the
// encoder's own range check apply the same rules. Categorical labels are not
// restricted here: they are checked against the encoder tables and rejected
// as out-of-domain categories.
type RawInput struct {
	Age                int     `json:"age" binding:"min=1,max=120"`
	Gender             Gender  `json:"gender" binding:"required"`
	BloodPressure      int     `json:"bloodPressure" binding:"min=80,max=200"`
	FamilyHeartDisease YesNo   `json:"familyHeartDisease" binding:"required"`
	Diabetes           YesNo   `json:"diabetes" binding:"required"`
	BMI                float64 `json:"bmi" binding:"min=10,max=50"`
	HighBloodPressure  YesNo   `json:"highBloodPressure" binding:"required"`
	Triglyceride       int     `json:"triglyceride" binding:"min=50,max=500"`
	FastingBloodSugar  int     `json:"fastingBloodSugar" binding:"min=50,max=200"`
	CRP                float64 `json:"crp" binding:"min=0,max=20"`
	Homocysteine       float64 `json:"homocysteine" binding:"min=0,max=100"`

	TotalCholesterol int   `json:"totalCholesterol" binding:"min=100,max=400"`
	LowHDL           YesNo `json:"lowHDL" binding:"required"`
	HighLDL          YesNo `json:"highLDL" binding:"required"`

	SleepHours int   `json:"sleepHours" binding:"min=0,max=12"`
	Exercise   Level `json:"exercise" binding:"required"`
	Smoking    YesNo `json:"smoking" binding:"required"`
	Stress     Level `json:"stress" binding:"required"`

	SugarConsumption   Level `json:"sugarConsumption" binding:"required"`
	AlcoholConsumption Level `json:"alcoholConsumption" binding:"required"`
}

// numericJSONFields are the numeric keys a submission must carry
var numericJSONFields = []string{
	"age", "bloodPressure", "bmi", "triglyceride", "fastingBloodSugar",
	"crp", "homocysteine", "totalCholesterol", "sleepHours",
}

// UnmarshalJSON decodes a submission and rejects one that omits a numeric
// field or sends it as null. Keys match case-insensitively, like the decoder.
func (in *RawInput) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	present := make(map[string]bool, len(fields))
	for key, raw := range fields {
		if strings.TrimSpace(string(raw)) != "null" {
			present[strings.ToLower(key)] = true
		}
	}
	for _, name := range numericJSONFields {
		if !present[strings.ToLower(name)] {
			return &MissingFieldError{Field: name}
		}
	}

	type plain RawInput
	return json.Unmarshal(data, (*plain)(in))
}
