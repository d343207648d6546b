package questionnaire

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v float64) *float64 { return &v }

func validAnswers() *Answers {
	return &Answers{
		Personal: Personal{
			Name:          "Budi",
			Age:           45,
			Sex:           SexMale,
			HeightCM:      170,
			WeightKG:      90,
			WaistCM:       100,
			ActivityLevel: ActivitySedentary,
		},
		Activity: Activity{
			Frequency: FrequencyNever,
			Duration:  DurationUnder15m,
			Intensity: IntensityLight,
		},
		Lifestyle: Lifestyle{
			Sleep:             SleepUnder5h,
			Stress:            StressVeryHigh,
			Smoking:           SmokingActive,
			Alcohol:           true,
			Cholesterol:       CholesterolHigh,
			BPMedication:      BPMedicationNo,
			HbA1c:             LabUnknown,
			FastingGlucose:    LabUnknown,
			FrequentHunger:    FreqNever,
			FrequentThirst:    FreqNever,
			FrequentUrination: FreqNever,
		},
		Health: Health{
			Conditions:      []Condition{ConditionNone},
			DiabetesHistory: FamilyNone,
			CancerHistory:   FamilyNone,
			CVDHistory:      FamilyNone,
			Symptoms: Symptoms{
				Fatigue: FreqNever, JointPain: FreqNever, Digestive: FreqNever, SkinIssues: FreqNever,
				Headaches: FreqNever, Mood: FreqNever, Cognitive: FreqNever, SleepIssues: FreqNever,
			},
		},
	}
}

func TestValidate_Valid(t *testing.T) {
	assert.NoError(t, Validate(validAnswers()))
}

func TestValidate_Fields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(a *Answers)
		field  string
	}{
		{"empty name", func(a *Answers) { a.Personal.Name = "" }, "name"},
		{"zero age", func(a *Answers) { a.Personal.Age = 0 }, "age"},
		{"age too high", func(a *Answers) { a.Personal.Age = 121 }, "age"},
		{"bad sex", func(a *Answers) { a.Personal.Sex = "other" }, "sex"},
		{"zero height", func(a *Answers) { a.Personal.HeightCM = 0 }, "height"},
		{"negative weight", func(a *Answers) { a.Personal.WeightKG = -1 }, "weight"},
		{"zero waist", func(a *Answers) { a.Personal.WaistCM = 0 }, "waist_circumference"},
		{"nan height", func(a *Answers) { a.Personal.HeightCM = math.NaN() }, "height"},
		{"nan weight", func(a *Answers) { a.Personal.WeightKG = math.NaN() }, "weight"},
		{"nan waist", func(a *Answers) { a.Personal.WaistCM = math.NaN() }, "waist_circumference"},
		{"infinite weight", func(a *Answers) { a.Personal.WeightKG = math.Inf(1) }, "weight"},
		{"nan hba1c value", func(a *Answers) { a.Lifestyle.HbA1cPercent = ptr(math.NaN()) }, "hba1c"},
		{"bad intensity", func(a *Answers) { a.Activity.Intensity = "extreme" }, "intensity"},
		{"bad sleep", func(a *Answers) { a.Lifestyle.Sleep = "" }, "sleep_hours"},
		{"missing hba1c", func(a *Answers) { a.Lifestyle.HbA1c = "" }, "hba1c"},
		{"hba1c value out of range", func(a *Answers) { a.Lifestyle.HbA1cPercent = ptr(25) }, "hba1c"},
		{"glucose value zero", func(a *Answers) { a.Lifestyle.FastingGlucoseMgDL = ptr(0) }, "fasting_glucose"},
		{"bad condition", func(a *Answers) { a.Health.Conditions = []Condition{"flu"} }, "conditions"},
		{"bad family history", func(a *Answers) { a.Health.CVDHistory = "cousin" }, "cvd_history"},
		{"missing symptom", func(a *Answers) { a.Health.Symptoms.Mood = "" }, "symptom_mood"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := validAnswers()
			tt.mutate(a)
			err := Validate(a)
			require.Error(t, err)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Contains(t, verr.Fields, tt.field)
		})
	}
}

func TestValidate_CollectsAllFields(t *testing.T) {
	a := validAnswers()
	a.Personal.Name = ""
	a.Personal.HeightCM = 0
	a.Lifestyle.Stress = "extreme"

	var verr *ValidationError
	require.True(t, errors.As(Validate(a), &verr))
	assert.Equal(t, []string{"name", "height", "stress_level"}, verr.Fields)
	assert.Contains(t, verr.Error(), "name, height, stress_level")
}

func TestValidate_NumericLabOverridesMissingBucket(t *testing.T) {
	a := validAnswers()
	a.Lifestyle.HbA1c = ""
	a.Lifestyle.HbA1cPercent = ptr(6.1)
	a.Lifestyle.FastingGlucose = ""
	a.Lifestyle.FastingGlucoseMgDL = ptr(101)
	assert.NoError(t, Validate(a))
}

func TestValidate_EmptyConditionsAllowed(t *testing.T) {
	a := validAnswers()
	a.Health.Conditions = nil
	assert.NoError(t, Validate(a))
}

func TestNormalize_LegacyLabels(t *testing.T) {
	a := validAnswers()
	a.Personal.Name = "  Budi  "
	a.Personal.Sex = "Laki-laki"
	a.Personal.ActivityLevel = "Moderately active"
	a.Activity.Frequency = "3-4 times per week"
	a.Activity.Duration = "30-45 minutes"
	a.Activity.Intensity = "Very vigorous"
	a.Lifestyle.Sleep = "7-9 hours (optimal)"
	a.Lifestyle.Stress = "Very high"
	a.Lifestyle.Smoking = "Passive smoker"
	a.Lifestyle.Cholesterol = "Medium (200-239 mg/dL)"
	a.Lifestyle.BPMedication = "Yes routinely"
	a.Lifestyle.HbA1c = "5.7-6.4% (prediabetes)"
	a.Lifestyle.FastingGlucose = "Diabetes: ≥126 mg/dL (7.0 mmol/L)"
	a.Lifestyle.FrequentHunger = "Sometimes"
	a.Health.Conditions = []Condition{"Cardiovascular disease", "Skin conditions"}
	a.Health.DiabetesHistory = "Parent"
	a.Health.Symptoms.Fatigue = "Rarely"

	Normalize(a)

	assert.Equal(t, "Budi", a.Personal.Name)
	assert.Equal(t, SexMale, a.Personal.Sex)
	assert.Equal(t, ActivityModeratelyActive, a.Personal.ActivityLevel)
	assert.Equal(t, Frequency3To4PerWeek, a.Activity.Frequency)
	assert.Equal(t, Duration30To45m, a.Activity.Duration)
	assert.Equal(t, IntensityVeryVigorous, a.Activity.Intensity)
	assert.Equal(t, Sleep7To9h, a.Lifestyle.Sleep)
	assert.Equal(t, StressVeryHigh, a.Lifestyle.Stress)
	assert.Equal(t, SmokingPassive, a.Lifestyle.Smoking)
	assert.Equal(t, CholesterolMedium, a.Lifestyle.Cholesterol)
	assert.Equal(t, BPMedicationRoutine, a.Lifestyle.BPMedication)
	assert.Equal(t, LabPrediabetes, a.Lifestyle.HbA1c)
	assert.Equal(t, LabDiabetes, a.Lifestyle.FastingGlucose)
	assert.Equal(t, FreqSometimes, a.Lifestyle.FrequentHunger)
	assert.Equal(t, []Condition{ConditionCardiovascular, ConditionSkin}, a.Health.Conditions)
	assert.Equal(t, FamilyParent, a.Health.DiabetesHistory)
	assert.Equal(t, FreqRarely, a.Health.Symptoms.Fatigue)
	assert.NoError(t, Validate(a))
}

func TestNormalize_UnknownValueKept(t *testing.T) {
	a := validAnswers()
	a.Lifestyle.Smoking = "Vaping"
	Normalize(a)
	assert.Equal(t, SmokingStatus("Vaping"), a.Lifestyle.Smoking)
	assert.Error(t, Validate(a))
}

func TestNormalizeConditions(t *testing.T) {
	tests := []struct {
		name string
		in   []Condition
		want []Condition
	}{
		{"none alone", []Condition{ConditionNone}, []Condition{ConditionNone}},
		{"none dropped with others", []Condition{ConditionNone, ConditionDiabetes}, []Condition{ConditionDiabetes}},
		{"duplicates removed", []Condition{ConditionCancer, "Cancer", ConditionCancer}, []Condition{ConditionCancer}},
		{"empty", nil, []Condition{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeConditions(tt.in))
		})
	}
}

func TestHasCondition(t *testing.T) {
	h := Health{Conditions: []Condition{ConditionDiabetes, ConditionCancer}}
	assert.True(t, h.HasCondition(ConditionDiabetes))
	assert.True(t, h.HasCondition(ConditionCancer))
	assert.False(t, h.HasCondition(ConditionCardiovascular))
}

func TestSymptomsList_Order(t *testing.T) {
	list := Symptoms{Fatigue: FreqOften, SleepIssues: FreqAlways}.List()
	require.Len(t, list, 8)
	assert.Equal(t, "fatigue", list[0].Name)
	assert.Equal(t, FreqOften, list[0].Value)
	assert.Equal(t, "sleep_issues", list[7].Name)
	assert.Equal(t, FreqAlways, list[7].Value)
}

const yamlAnswers = `
personal:
  name: Siti
  age: 52
  sex: Female
  height: 158
  weight: 61
  waist_circumference: 82
  activity_level: lightly_active
activity:
  exercise_frequency: 1_2_per_week
  duration: 30_45m
  intensity: medium
lifestyle:
  sleep_hours: 5_7h
  stress_level: moderate
  smoking: non_smoker
  alcohol: false
  total_cholesterol: unknown
  blood_pressure_medication: not_routine
  hba1c_percent: 5.9
  fasting_glucose: normal
  frequent_hunger: never
  frequent_thirst: sometimes
  frequent_urination: never
health:
  conditions: [hypertension]
  diabetes_history: parent
  cancer_history: none
  cvd_history: sibling
  symptoms:
    fatigue: sometimes
    joint_pain: often
    digestive: never
    skin_issues: never
    headaches: rarely
    mood: never
    cognitive: never
    sleep_issues: sometimes
genetic:
  had_testing: true
  findings: APOE e3/e4
`

func TestDecode_YAML(t *testing.T) {
	a, err := Decode([]byte(yamlAnswers), "")
	require.NoError(t, err)

	assert.Equal(t, "Siti", a.Personal.Name)
	assert.Equal(t, SexFemale, a.Personal.Sex)
	require.NotNil(t, a.Lifestyle.HbA1cPercent)
	assert.InDelta(t, 5.9, *a.Lifestyle.HbA1cPercent, 1e-9)
	assert.Equal(t, []Condition{ConditionHypertension}, a.Health.Conditions)
	assert.True(t, a.Genetic.HadTesting)
	assert.NoError(t, Validate(a))
}

func TestDecode_YAMLNaNMeasurementsRejected(t *testing.T) {
	doc := strings.NewReplacer(
		"height: 158", "height: .nan",
		"waist_circumference: 82", "waist_circumference: .nan",
	).Replace(yamlAnswers)

	a, err := Decode([]byte(doc), "yaml")
	require.NoError(t, err)
	assert.True(t, math.IsNaN(a.Personal.HeightCM))

	var verr *ValidationError
	require.True(t, errors.As(Validate(a), &verr))
	assert.Equal(t, []string{"height", "waist_circumference"}, verr.Fields)
}

func TestDecode_JSON(t *testing.T) {
	data := `{"personal":{"name":"Ana","age":30,"sex":"female","height":160,"weight":55,
		"waist_circumference":70,"activity_level":"very_active"}}`
	a, err := Decode([]byte(data), "")
	require.NoError(t, err)
	assert.Equal(t, "Ana", a.Personal.Name)
	assert.Equal(t, ActivityVeryActive, a.Personal.ActivityLevel)
}

func TestDecode_UnknownFieldRejected(t *testing.T) {
	_, err := Decode([]byte(`{"personal":{"nickname":"x"}}`), "json")
	assert.Error(t, err)

	_, err = Decode([]byte("personal:\n  nickname: x\n"), "yaml")
	assert.Error(t, err)
}

func TestDecode_UnsupportedFormat(t *testing.T) {
	_, err := Decode([]byte("a=b"), "toml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "siti.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yamlAnswers), 0o644))

	a, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 52, a.Personal.Age)

	_, err = ReadFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
