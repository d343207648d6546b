package questionnaire

import (
	"strings"
)

// Upper bounds for numeric answers.
const (
	MaxAge          = 120
	MaxHeightCM     = 300.0
	MaxWeightKG     = 500.0
	MaxWaistCM      = 200.0
	MaxHbA1cPercent = 20.0
	MaxGlucoseMgDL  = 500.0
)

// ValidationError lists every answer field that failed validation.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "questionnaire: invalid fields: " + strings.Join(e.Fields, ", ")
}

// Normalize rewrites legacy form labels to canonical codes, trims free text
// and drops "none" from a condition list that also names real conditions.
func Normalize(a *Answers) {
	a.Personal.Name = strings.TrimSpace(a.Personal.Name)
	a.Personal.Phone = strings.TrimSpace(a.Personal.Phone)
	a.Personal.Sex = sexVocab.canonical(a.Personal.Sex)
	a.Personal.ActivityLevel = activityVocab.canonical(a.Personal.ActivityLevel)

	a.Activity.Frequency = frequencyVocab.canonical(a.Activity.Frequency)
	a.Activity.Duration = durationVocab.canonical(a.Activity.Duration)
	a.Activity.Intensity = intensityVocab.canonical(a.Activity.Intensity)

	l := &a.Lifestyle
	l.Sleep = sleepVocab.canonical(l.Sleep)
	l.Stress = stressVocab.canonical(l.Stress)
	l.Smoking = smokingVocab.canonical(l.Smoking)
	l.Cholesterol = cholesterolVocab.canonical(l.Cholesterol)
	l.BPMedication = bpVocab.canonical(l.BPMedication)
	if l.HbA1c != "" {
		l.HbA1c = hba1cVocab.canonical(l.HbA1c)
	}
	if l.FastingGlucose != "" {
		l.FastingGlucose = glucoseVocab.canonical(l.FastingGlucose)
	}
	l.FrequentHunger = severityVocab.canonical(l.FrequentHunger)
	l.FrequentThirst = severityVocab.canonical(l.FrequentThirst)
	l.FrequentUrination = severityVocab.canonical(l.FrequentUrination)

	h := &a.Health
	h.DiabetesHistory = familyVocab.canonical(h.DiabetesHistory)
	h.CancerHistory = familyVocab.canonical(h.CancerHistory)
	h.CVDHistory = familyVocab.canonical(h.CVDHistory)
	h.Conditions = normalizeConditions(h.Conditions)

	s := &h.Symptoms
	for _, f := range []*Frequency{
		&s.Fatigue, &s.JointPain, &s.Digestive, &s.SkinIssues,
		&s.Headaches, &s.Mood, &s.Cognitive, &s.SleepIssues,
	} {
		*f = severityVocab.canonical(*f)
	}
}

func normalizeConditions(in []Condition) []Condition {
	seen := make(map[Condition]bool, len(in))
	out := make([]Condition, 0, len(in))
	hasReal := false
	for _, c := range in {
		c = conditionVocab.canonical(c)
		if seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
		if c != ConditionNone {
			hasReal = true
		}
	}
	if !hasReal {
		return out
	}
	filtered := out[:0]
	for _, c := range out {
		if c != ConditionNone {
			filtered = append(filtered, c)
		}
	}
	return filtered
}

// Validate checks every mandatory field, range and vocabulary. It returns a
// *ValidationError naming all failing fields, or nil.
func Validate(a *Answers) error {
	var fields []string
	bad := func(name string) { fields = append(fields, name) }

	p := a.Personal
	if p.Name == "" {
		bad("name")
	}
	if !(p.Age > 0 && p.Age <= MaxAge) {
		bad("age")
	}
	if !p.Sex.Valid() {
		bad("sex")
	}
	if !inRange(p.HeightCM, MaxHeightCM) {
		bad("height")
	}
	if !inRange(p.WeightKG, MaxWeightKG) {
		bad("weight")
	}
	if !inRange(p.WaistCM, MaxWaistCM) {
		bad("waist_circumference")
	}
	if !p.ActivityLevel.Valid() {
		bad("activity_level")
	}

	if !a.Activity.Frequency.Valid() {
		bad("exercise_frequency")
	}
	if !a.Activity.Duration.Valid() {
		bad("duration")
	}
	if !a.Activity.Intensity.Valid() {
		bad("intensity")
	}

	l := a.Lifestyle
	if !l.Sleep.Valid() {
		bad("sleep_hours")
	}
	if !l.Stress.Valid() {
		bad("stress_level")
	}
	if !l.Smoking.Valid() {
		bad("smoking")
	}
	if !l.Cholesterol.Valid() {
		bad("total_cholesterol")
	}
	if !l.BPMedication.Valid() {
		bad("blood_pressure_medication")
	}
	if !labValid(l.HbA1c, l.HbA1cPercent, MaxHbA1cPercent) {
		bad("hba1c")
	}
	if !labValid(l.FastingGlucose, l.FastingGlucoseMgDL, MaxGlucoseMgDL) {
		bad("fasting_glucose")
	}
	if !l.FrequentHunger.Valid() {
		bad("frequent_hunger")
	}
	if !l.FrequentThirst.Valid() {
		bad("frequent_thirst")
	}
	if !l.FrequentUrination.Valid() {
		bad("frequent_urination")
	}

	h := a.Health
	for _, c := range h.Conditions {
		if !c.Valid() {
			bad("conditions")
			break
		}
	}
	if !h.DiabetesHistory.Valid() {
		bad("diabetes_history")
	}
	if !h.CancerHistory.Valid() {
		bad("cancer_history")
	}
	if !h.CVDHistory.Valid() {
		bad("cvd_history")
	}
	for _, s := range h.Symptoms.List() {
		if !s.Value.Valid() {
			bad("symptom_" + s.Name)
		}
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// inRange reports whether 0 < x <= max. NaN is out of range.
func inRange(x, max float64) bool {
	return x > 0 && x <= max
}

func labValid(bucket LabLevel, value *float64, max float64) bool {
	if value != nil {
		return inRange(*value, max)
	}
	return bucket.Valid()
}
