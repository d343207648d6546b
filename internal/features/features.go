// Package features derives the numeric feature vector used by the risk
// scorer from a validated questionnaire.
package features

import (
	"github.com/rotisserie/eris"

	"github.com/kalgen-innolab/dnacare/internal/questionnaire"
)

// Features is the derived, immutable feature vector for one submission.
type Features struct {
	Age                float64 `json:"age"`
	BMI                float64 `json:"bmi"`
	GenderMale         float64 `json:"gender_male"`
	WaistCircumference float64 `json:"waist_circumference"`

	METHours    float64 `json:"met_hours"`
	SleepScore  float64 `json:"sleep_score"`
	StressScore float64 `json:"stress_score"`
	SmokingRisk float64 `json:"smoking_risk"`
	AlcoholRisk float64 `json:"alcohol_risk"`

	TotalCholesterol float64 `json:"total_cholesterol"`
	BPMedication     float64 `json:"bp_medication"`
	HbA1c            float64 `json:"hba1c"`
	FastingGlucose   float64 `json:"fasting_glucose"`
	DiabetesSymptoms float64 `json:"diabetes_symptoms"`

	HealthConditionScore float64 `json:"health_condition_score"`
	SymptomSeverity      float64 `json:"symptom_severity"`

	DiabetesFamilyHistory float64 `json:"diabetes_family_history"`
	CancerFamilyHistory   float64 `json:"cancer_family_history"`
	CVDFamilyHistory      float64 `json:"cvd_family_history"`

	HasDiabetes bool `json:"has_diabetes"`
	HasCVD      bool `json:"has_cvd"`
	HasCancer   bool `json:"has_cancer"`
}

// Male reports whether the sex-coded feature is male.
func (f Features) Male() bool { return f.GenderMale == 1 }

// Map returns the vector keyed by feature name. Flags are encoded as 0 or 1.
func (f Features) Map() map[string]float64 {
	return map[string]float64{
		"age":                     f.Age,
		"bmi":                     f.BMI,
		"gender_male":             f.GenderMale,
		"waist_circumference":     f.WaistCircumference,
		"met_hours":               f.METHours,
		"sleep_score":             f.SleepScore,
		"stress_score":            f.StressScore,
		"smoking_risk":            f.SmokingRisk,
		"alcohol_risk":            f.AlcoholRisk,
		"total_cholesterol":       f.TotalCholesterol,
		"bp_medication":           f.BPMedication,
		"hba1c":                   f.HbA1c,
		"fasting_glucose":         f.FastingGlucose,
		"diabetes_symptoms":       f.DiabetesSymptoms,
		"health_condition_score":  f.HealthConditionScore,
		"symptom_severity":        f.SymptomSeverity,
		"diabetes_family_history": f.DiabetesFamilyHistory,
		"cancer_family_history":   f.CancerFamilyHistory,
		"cvd_family_history":      f.CVDFamilyHistory,
		"has_diabetes":            flag(f.HasDiabetes),
		"has_cvd":                 flag(f.HasCVD),
		"has_cancer":              flag(f.HasCancer),
	}
}

func flag(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// Extract maps answers to features. Answers must have passed
// questionnaire.Validate; a value outside the vocabularies or a non-positive
// height is reported as an error instead of being defaulted.
func Extract(a *questionnaire.Answers) (Features, error) {
	if a == nil {
		return Features{}, eris.New("features: nil answers")
	}
	if a.Personal.HeightCM <= 0 {
		return Features{}, eris.Errorf("features: height must be positive, got %v", a.Personal.HeightCM)
	}

	var f Features
	var err error

	f.Age = float64(a.Personal.Age)
	f.BMI = BMI(a.Personal.WeightKG, a.Personal.HeightCM)
	if a.Personal.Sex == questionnaire.SexMale {
		f.GenderMale = 1
	}
	f.WaistCircumference = a.Personal.WaistCM

	if f.METHours, err = METHours(a.Activity); err != nil {
		return Features{}, err
	}

	l := a.Lifestyle
	if f.SleepScore, err = lookup(sleepScores, l.Sleep, "sleep_hours"); err != nil {
		return Features{}, err
	}
	if f.StressScore, err = lookup(stressScores, l.Stress, "stress_level"); err != nil {
		return Features{}, err
	}
	if f.SmokingRisk, err = lookup(smokingRisks, l.Smoking, "smoking"); err != nil {
		return Features{}, err
	}
	if l.Alcohol {
		f.AlcoholRisk = 1
	}
	if f.TotalCholesterol, err = lookup(cholesterolMgDL, l.Cholesterol, "total_cholesterol"); err != nil {
		return Features{}, err
	}
	if f.BPMedication, err = lookup(bpMedication, l.BPMedication, "blood_pressure_medication"); err != nil {
		return Features{}, err
	}
	if f.HbA1c, err = labValue(hba1cPercent, l.HbA1c, l.HbA1cPercent, "hba1c"); err != nil {
		return Features{}, err
	}
	if f.FastingGlucose, err = labValue(glucoseMgDL, l.FastingGlucose, l.FastingGlucoseMgDL, "fasting_glucose"); err != nil {
		return Features{}, err
	}
	if f.DiabetesSymptoms, err = meanSeverity([]questionnaire.Frequency{
		l.FrequentHunger, l.FrequentThirst, l.FrequentUrination,
	}, "diabetes_symptoms"); err != nil {
		return Features{}, err
	}

	h := a.Health
	if f.HealthConditionScore, err = HealthConditionScore(h.Conditions); err != nil {
		return Features{}, err
	}
	symptoms := h.Symptoms.List()
	values := make([]questionnaire.Frequency, len(symptoms))
	for i, s := range symptoms {
		values[i] = s.Value
	}
	if f.SymptomSeverity, err = meanSeverity(values, "symptoms"); err != nil {
		return Features{}, err
	}

	if f.DiabetesFamilyHistory, err = lookup(familyHistory, h.DiabetesHistory, "diabetes_history"); err != nil {
		return Features{}, err
	}
	if f.CancerFamilyHistory, err = lookup(familyHistory, h.CancerHistory, "cancer_history"); err != nil {
		return Features{}, err
	}
	if f.CVDFamilyHistory, err = lookup(familyHistory, h.CVDHistory, "cvd_history"); err != nil {
		return Features{}, err
	}

	f.HasDiabetes = h.HasCondition(questionnaire.ConditionDiabetes)
	f.HasCVD = h.HasCondition(questionnaire.ConditionCardiovascular)
	f.HasCancer = h.HasCondition(questionnaire.ConditionCancer)

	return f, nil
}

// BMI returns weight / (height in metres)^2.
func BMI(weightKG, heightCM float64) float64 {
	m := heightCM / 100
	return weightKG / (m * m)
}

// METHours returns weekly MET-hours: intensity MET x sessions per week x
// hours per session.
func METHours(act questionnaire.Activity) (float64, error) {
	met, err := lookup(intensityMET, act.Intensity, "intensity")
	if err != nil {
		return 0, err
	}
	times, err := lookup(sessionsPerWeek, act.Frequency, "exercise_frequency")
	if err != nil {
		return 0, err
	}
	hours, err := lookup(sessionHours, act.Duration, "duration")
	if err != nil {
		return 0, err
	}
	return met * times * hours, nil
}

// SleepScore scores a sleep bucket; the optimal 7-9h bucket scores 1.
func SleepScore(s questionnaire.SleepDuration) (float64, error) {
	return lookup(sleepScores, s, "sleep_hours")
}

// HealthConditionScore is 0.1 for an explicit "none", otherwise the summed
// condition weights divided by 3 and capped at 1. An empty list scores 0.
func HealthConditionScore(conditions []questionnaire.Condition) (float64, error) {
	if len(conditions) == 1 && conditions[0] == questionnaire.ConditionNone {
		return noConditionScore, nil
	}
	var total float64
	for _, c := range conditions {
		if c == questionnaire.ConditionNone {
			continue
		}
		w, err := lookup(conditionWeights, c, "conditions")
		if err != nil {
			return 0, err
		}
		total += w
	}
	return min(total/conditionDivisor, 1), nil
}

func meanSeverity(values []questionnaire.Frequency, field string) (float64, error) {
	if len(values) == 0 {
		return 0, eris.Errorf("features: %s: no answers", field)
	}
	var total float64
	for _, v := range values {
		s, err := lookup(severity, v, field)
		if err != nil {
			return 0, err
		}
		total += s
	}
	return total / float64(len(values)), nil
}

func labValue(table map[questionnaire.LabLevel]float64, bucket questionnaire.LabLevel, measured *float64, field string) (float64, error) {
	if measured != nil {
		return *measured, nil
	}
	return lookup(table, bucket, field)
}

func lookup[K ~string](table map[K]float64, key K, field string) (float64, error) {
	v, ok := table[key]
	if !ok {
		return 0, eris.Errorf("features: %s: unknown value %q", field, string(key))
	}
	return v, nil
}
