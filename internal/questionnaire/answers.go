// Package questionnaire defines the health questionnaire answers, their
// closed vocabularies and the boundary validation run before scoring.
package questionnaire

import "time"

// Answers is one submitted questionnaire.
type Answers struct {
	Personal  Personal  `json:"personal" yaml:"personal"`
	Activity  Activity  `json:"activity" yaml:"activity"`
	Lifestyle Lifestyle `json:"lifestyle" yaml:"lifestyle"`
	Health    Health    `json:"health" yaml:"health"`
	Genetic   Genetic   `json:"genetic" yaml:"genetic"`

	// SubmittedAt is set by the caller when the form is received.
	SubmittedAt time.Time `json:"timestamp,omitempty" yaml:"timestamp,omitempty"`
}

// Personal holds identity and body measurements.
type Personal struct {
	Name          string        `json:"name" yaml:"name"`
	Phone         string        `json:"phone,omitempty" yaml:"phone,omitempty"`
	Age           int           `json:"age" yaml:"age"`
	Sex           Sex           `json:"sex" yaml:"sex"`
	HeightCM      float64       `json:"height" yaml:"height"`
	WeightKG      float64       `json:"weight" yaml:"weight"`
	WaistCM       float64       `json:"waist_circumference" yaml:"waist_circumference"`
	Occupation    string        `json:"occupation,omitempty" yaml:"occupation,omitempty"`
	ActivityLevel ActivityLevel `json:"activity_level" yaml:"activity_level"`
}

// Activity describes the exercise routine.
type Activity struct {
	Frequency ExerciseFrequency `json:"exercise_frequency" yaml:"exercise_frequency"`
	Duration  ExerciseDuration  `json:"duration" yaml:"duration"`
	Intensity Intensity         `json:"intensity" yaml:"intensity"`
}

// Lifestyle holds habits, lab results and diabetes symptoms. HbA1c and
// fasting glucose are given either as a bucket or as a measured value; the
// measured value wins when both are present.
type Lifestyle struct {
	Sleep        SleepDuration    `json:"sleep_hours" yaml:"sleep_hours"`
	Stress       StressLevel      `json:"stress_level" yaml:"stress_level"`
	Smoking      SmokingStatus    `json:"smoking" yaml:"smoking"`
	Alcohol      bool             `json:"alcohol" yaml:"alcohol"`
	Cholesterol  CholesterolLevel `json:"total_cholesterol" yaml:"total_cholesterol"`
	BPMedication BPMedication     `json:"blood_pressure_medication" yaml:"blood_pressure_medication"`

	HbA1c              LabLevel `json:"hba1c,omitempty" yaml:"hba1c,omitempty"`
	HbA1cPercent       *float64 `json:"hba1c_percent,omitempty" yaml:"hba1c_percent,omitempty"`
	FastingGlucose     LabLevel `json:"fasting_glucose,omitempty" yaml:"fasting_glucose,omitempty"`
	FastingGlucoseMgDL *float64 `json:"fasting_glucose_mg_dl,omitempty" yaml:"fasting_glucose_mg_dl,omitempty"`

	FrequentHunger    Frequency `json:"frequent_hunger" yaml:"frequent_hunger"`
	FrequentThirst    Frequency `json:"frequent_thirst" yaml:"frequent_thirst"`
	FrequentUrination Frequency `json:"frequent_urination" yaml:"frequent_urination"`
}

// Health holds diagnosed conditions, family history and wellness symptoms.
type Health struct {
	Conditions      []Condition   `json:"conditions" yaml:"conditions"`
	Medications     string        `json:"medications,omitempty" yaml:"medications,omitempty"`
	DiabetesHistory FamilyHistory `json:"diabetes_history" yaml:"diabetes_history"`
	CancerHistory   FamilyHistory `json:"cancer_history" yaml:"cancer_history"`
	CVDHistory      FamilyHistory `json:"cvd_history" yaml:"cvd_history"`
	Symptoms        Symptoms      `json:"symptoms" yaml:"symptoms"`
}

// HasCondition reports whether c is among the diagnosed conditions.
func (h Health) HasCondition(c Condition) bool {
	for _, x := range h.Conditions {
		if x == c {
			return true
		}
	}
	return false
}

// Symptoms is the eight-item wellness scale.
type Symptoms struct {
	Fatigue     Frequency `json:"fatigue" yaml:"fatigue"`
	JointPain   Frequency `json:"joint_pain" yaml:"joint_pain"`
	Digestive   Frequency `json:"digestive" yaml:"digestive"`
	SkinIssues  Frequency `json:"skin_issues" yaml:"skin_issues"`
	Headaches   Frequency `json:"headaches" yaml:"headaches"`
	Mood        Frequency `json:"mood" yaml:"mood"`
	Cognitive   Frequency `json:"cognitive" yaml:"cognitive"`
	SleepIssues Frequency `json:"sleep_issues" yaml:"sleep_issues"`
}

// NamedSymptom pairs a wellness symptom key with its answer.
type NamedSymptom struct {
	Name  string
	Value Frequency
}

// List returns the eight symptoms in form order.
func (s Symptoms) List() []NamedSymptom {
	return []NamedSymptom{
		{"fatigue", s.Fatigue},
		{"joint_pain", s.JointPain},
		{"digestive", s.Digestive},
		{"skin_issues", s.SkinIssues},
		{"headaches", s.Headaches},
		{"mood", s.Mood},
		{"cognitive", s.Cognitive},
		{"sleep_issues", s.SleepIssues},
	}
}

// Genetic records prior genetic testing.
type Genetic struct {
	HadTesting bool   `json:"had_testing" yaml:"had_testing"`
	Findings   string `json:"findings,omitempty" yaml:"findings,omitempty"`
}
