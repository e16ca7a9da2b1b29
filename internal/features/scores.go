package features

// CholesterolBucket buckets total cholesterol (mg/dL): <200 normal, 200-239
// borderline, >=240 high
func CholesterolBucket(totalCholesterol int) int {
	switch {
	case totalCholesterol < 200:
		return 0
	case totalCholesterol < 240:
		return 1
	default:
		return 2
	}
}

// CholesterolRatio combines the cholesterol bucket with the HDL/LDL flags into
// a single ordinal in [0,5]
func CholesterolRatio(totalCholesterol int, lowHDL, highLDL YesNo) (int, error) {
	low, err := yesNoFlag("Low HDL", lowHDL)
	if err != nil {
		return 0, err
	}
	high, err := yesNoFlag("High LDL", highLDL)
	if err != nil {
		return 0, err
	}

	offset := 0
	switch {
	case low && high:
		offset = 3
	case low:
		offset = 2
	case high:
		offset = 1
	}
	return CholesterolBucket(totalCholesterol) + offset, nil
}

// SleepScore rates nightly sleep: 7-9h optimal, 5-7h or 9-11h suboptimal
func SleepScore(hours int) int {
	switch {
	case hours >= 7 && hours <= 9:
		return 2
	case hours >= 5 && hours < 7, hours > 9 && hours <= 11:
		return 1
	default:
		return 0
	}
}

// ExerciseScore maps exercise habits, more is better
func ExerciseScore(level Level) (int, error) {
	switch level {
	case LevelLow:
		return 0, nil
	case LevelMedium:
		return 1, nil
	case LevelHigh:
		return 2, nil
	}
	return 0, &CategoryError{Field: "Exercise Habits", Label: string(level)}
}

// SmokingScore maps smoking status, not smoking is better
func SmokingScore(smoking YesNo) (int, error) {
	switch smoking {
	case No:
		return 2, nil
	case Yes:
		return 0, nil
	}
	return 0, &CategoryError{Field: "Smoking", Label: string(smoking)}
}

// StressScore maps stress level, less is better
func StressScore(level Level) (int, error) {
	switch level {
	case LevelLow:
		return 2, nil
	case LevelMedium:
		return 1, nil
	case LevelHigh:
		return 0, nil
	}
	return 0, &CategoryError{Field: "Stress Level", Label: string(level)}
}

// Lifestyle holds the sub-scores of the lifestyle index
type Lifestyle struct {
	Sleep    int `json:"sleep"`
	Exercise int `json:"exercise"`
	Smoking  int `json:"smoking"`
	Stress   int `json:"stress"`
}

// Index is the unweighted sum of the sub-scores, in [0,8]
func (l Lifestyle) Index() int {
	return l.Sleep + l.Exercise + l.Smoking + l.Stress
}

// ScoreLifestyle computes the lifestyle sub-scores
func ScoreLifestyle(sleepHours int, exercise Level, smoking YesNo, stress Level) (Lifestyle, error) {
	var l Lifestyle
	var err error

	l.Sleep = SleepScore(sleepHours)
	if l.Exercise, err = ExerciseScore(exercise); err != nil {
		return Lifestyle{}, err
	}
	if l.Smoking, err = SmokingScore(smoking); err != nil {
		return Lifestyle{}, err
	}
	if l.Stress, err = StressScore(stress); err != nil {
		return Lifestyle{}, err
	}
	return l, nil
}

// LifestyleIndex is sleep + exercise + smoking + stress score
func LifestyleIndex(sleepHours int, exercise Level, smoking YesNo, stress Level) (int, error) {
	l, err := ScoreLifestyle(sleepHours, exercise, smoking, stress)
	if err != nil {
		return 0, err
	}
	return l.Index(), nil
}

// OneHot encodes a level as High, Low, Medium indicator bits
func OneHot(field string, level Level) ([3]float64, error) {
	switch level {
	case LevelHigh:
		return [3]float64{1, 0, 0}, nil
	case LevelLow:
		return [3]float64{0, 1, 0}, nil
	case LevelMedium:
		return [3]float64{0, 0, 1}, nil
	}
	return [3]float64{}, &CategoryError{Field: field, Label: string(level)}
}

func yesNoFlag(field string, v YesNo) (bool, error) {
	switch v {
	case Yes:
		return true, nil
	case No:
		return false, nil
	}
	return false, &CategoryError{Field: field, Label: string(v)}
}
