package questionnaire

import "strings"

// Sex is the respondent's sex as used by the sex-specific CVD tables.
type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

// ActivityLevel is the work activity level.
type ActivityLevel string

const (
	ActivitySedentary        ActivityLevel = "sedentary"
	ActivityLightlyActive    ActivityLevel = "lightly_active"
	ActivityModeratelyActive ActivityLevel = "moderately_active"
	ActivityVeryActive       ActivityLevel = "very_active"
)

// ExerciseFrequency is how often the respondent exercises per week.
type ExerciseFrequency string

const (
	FrequencyNever        ExerciseFrequency = "never"
	Frequency1To2PerWeek  ExerciseFrequency = "1_2_per_week"
	Frequency3To4PerWeek  ExerciseFrequency = "3_4_per_week"
	Frequency5PlusPerWeek ExerciseFrequency = "5_plus_per_week"
)

// ExerciseDuration is the typical session length.
type ExerciseDuration string

const (
	DurationUnder15m ExerciseDuration = "under_15m"
	Duration15To30m  ExerciseDuration = "15_30m"
	Duration30To45m  ExerciseDuration = "30_45m"
	Duration45To60m  ExerciseDuration = "45_60m"
	DurationOver60m  ExerciseDuration = "over_60m"
)

// Intensity is the typical exercise intensity.
type Intensity string

const (
	IntensityLight        Intensity = "light"
	IntensityMedium       Intensity = "medium"
	IntensityVigorous     Intensity = "vigorous"
	IntensityVeryVigorous Intensity = "very_vigorous"
)

// SleepDuration is the average nightly sleep bucket.
type SleepDuration string

const (
	SleepUnder5h SleepDuration = "under_5h"
	Sleep5To7h   SleepDuration = "5_7h"
	Sleep7To9h   SleepDuration = "7_9h"
	SleepOver9h  SleepDuration = "over_9h"
)

// StressLevel is the self-reported overall stress.
type StressLevel string

const (
	StressLow      StressLevel = "low"
	StressModerate StressLevel = "moderate"
	StressHigh     StressLevel = "high"
	StressVeryHigh StressLevel = "very_high"
)

// SmokingStatus is the respondent's smoking exposure.
type SmokingStatus string

const (
	SmokingNone    SmokingStatus = "non_smoker"
	SmokingPassive SmokingStatus = "passive"
	SmokingActive  SmokingStatus = "active"
)

// CholesterolLevel is the total cholesterol bucket.
type CholesterolLevel string

const (
	CholesterolLow     CholesterolLevel = "low"
	CholesterolMedium  CholesterolLevel = "medium"
	CholesterolHigh    CholesterolLevel = "high"
	CholesterolUnknown CholesterolLevel = "unknown"
)

// BPMedication is the use of blood pressure lowering medication.
type BPMedication string

const (
	BPMedicationNo         BPMedication = "no"
	BPMedicationNotRoutine BPMedication = "not_routine"
	BPMedicationRoutine    BPMedication = "routine"
)

// LabLevel is a bucketed HbA1c or fasting glucose result.
type LabLevel string

const (
	LabNormal      LabLevel = "normal"
	LabPrediabetes LabLevel = "prediabetes"
	LabDiabetes    LabLevel = "diabetes"
	LabUnknown     LabLevel = "unknown"
)

// Frequency is the severity scale shared by diabetes and wellness symptoms.
type Frequency string

const (
	FreqNever     Frequency = "never"
	FreqRarely    Frequency = "rarely"
	FreqSometimes Frequency = "sometimes"
	FreqOften     Frequency = "often"
	FreqAlways    Frequency = "always"
)

// Condition is a currently diagnosed condition.
type Condition string

const (
	ConditionNone            Condition = "none"
	ConditionHypertension    Condition = "hypertension"
	ConditionHighCholesterol Condition = "high_cholesterol"
	ConditionDiabetes        Condition = "diabetes"
	ConditionCardiovascular  Condition = "cardiovascular_disease"
	ConditionCancer          Condition = "cancer"
	ConditionAutoimmune      Condition = "autoimmune"
	ConditionInflammatory    Condition = "inflammatory"
	ConditionDigestive       Condition = "digestive"
	ConditionSkin            Condition = "skin"
)

// FamilyHistory is the closest relative with a given disease.
type FamilyHistory string

const (
	FamilyNone        FamilyHistory = "none"
	FamilyGrandparent FamilyHistory = "grandparent"
	FamilyParent      FamilyHistory = "parent"
	FamilySibling     FamilyHistory = "sibling"
)

// vocabulary is a closed set of codes plus the legacy form labels that map
// onto them.
type vocabulary[T ~string] struct {
	codes   []T
	aliases map[string]T
}

func newVocabulary[T ~string](codes []T, aliases map[string]T) vocabulary[T] {
	folded := make(map[string]T, len(aliases))
	for k, v := range aliases {
		folded[strings.ToLower(strings.TrimSpace(k))] = v
	}
	return vocabulary[T]{codes: codes, aliases: folded}
}

func (v vocabulary[T]) valid(x T) bool {
	for _, c := range v.codes {
		if c == x {
			return true
		}
	}
	return false
}

// canonical returns the code for x, resolving legacy labels. Unknown values
// are returned unchanged so validation can report them.
func (v vocabulary[T]) canonical(x T) T {
	if v.valid(x) {
		return x
	}
	key := strings.ToLower(strings.TrimSpace(string(x)))
	if c, ok := v.aliases[key]; ok {
		return c
	}
	for _, c := range v.codes {
		if string(c) == key {
			return c
		}
	}
	return x
}

var (
	sexVocab = newVocabulary([]Sex{SexMale, SexFemale}, map[string]Sex{
		"Male": SexMale, "Laki-laki": SexMale,
		"Female": SexFemale, "Perempuan": SexFemale,
	})
	activityVocab = newVocabulary(
		[]ActivityLevel{ActivitySedentary, ActivityLightlyActive, ActivityModeratelyActive, ActivityVeryActive},
		map[string]ActivityLevel{
			"Sedentary": ActivitySedentary, "Lightly active": ActivityLightlyActive,
			"Moderately active": ActivityModeratelyActive, "Very active": ActivityVeryActive,
		})
	frequencyVocab = newVocabulary(
		[]ExerciseFrequency{FrequencyNever, Frequency1To2PerWeek, Frequency3To4PerWeek, Frequency5PlusPerWeek},
		map[string]ExerciseFrequency{
			"Never": FrequencyNever, "1-2 times per week": Frequency1To2PerWeek,
			"3-4 times per week": Frequency3To4PerWeek, "5+ times per week": Frequency5PlusPerWeek,
		})
	durationVocab = newVocabulary(
		[]ExerciseDuration{DurationUnder15m, Duration15To30m, Duration30To45m, Duration45To60m, DurationOver60m},
		map[string]ExerciseDuration{
			"<15 minutes": DurationUnder15m, "15-30 minutes": Duration15To30m, "30-45 minutes": Duration30To45m,
			"45-60 minutes": Duration45To60m, "60+ minutes": DurationOver60m,
		})
	intensityVocab = newVocabulary(
		[]Intensity{IntensityLight, IntensityMedium, IntensityVigorous, IntensityVeryVigorous},
		map[string]Intensity{
			"Light": IntensityLight, "Medium": IntensityMedium,
			"Vigorous": IntensityVigorous, "Very vigorous": IntensityVeryVigorous,
		})
	sleepVocab = newVocabulary(
		[]SleepDuration{SleepUnder5h, Sleep5To7h, Sleep7To9h, SleepOver9h},
		map[string]SleepDuration{
			"< 5 hours (insufficient)": SleepUnder5h, "5-7 hours (below optimal)": Sleep5To7h,
			"7-9 hours (optimal)": Sleep7To9h, "9+ hours (excessive)": SleepOver9h,
		})
	stressVocab = newVocabulary(
		[]StressLevel{StressLow, StressModerate, StressHigh, StressVeryHigh},
		map[string]StressLevel{"Very high": StressVeryHigh})
	smokingVocab = newVocabulary(
		[]SmokingStatus{SmokingNone, SmokingPassive, SmokingActive},
		map[string]SmokingStatus{
			"Non-smoker": SmokingNone, "Passive smoker": SmokingPassive, "Active smoker": SmokingActive,
		})
	cholesterolVocab = newVocabulary(
		[]CholesterolLevel{CholesterolLow, CholesterolMedium, CholesterolHigh, CholesterolUnknown},
		map[string]CholesterolLevel{
			"Low (<200 mg/dL)": CholesterolLow, "Medium (200-239 mg/dL)": CholesterolMedium,
			"High (≥240 mg/dL)": CholesterolHigh,
		})
	bpVocab = newVocabulary(
		[]BPMedication{BPMedicationNo, BPMedicationNotRoutine, BPMedicationRoutine},
		map[string]BPMedication{
			"Not routine": BPMedicationNotRoutine, "Yes routinely": BPMedicationRoutine,
		})
	hba1cVocab = newVocabulary(
		[]LabLevel{LabNormal, LabPrediabetes, LabDiabetes, LabUnknown},
		map[string]LabLevel{
			"<5.7% (normal)": LabNormal, "5.7-6.4% (prediabetes)": LabPrediabetes, ">6.5% (diabetes)": LabDiabetes,
		})
	glucoseVocab = newVocabulary(
		[]LabLevel{LabNormal, LabPrediabetes, LabDiabetes, LabUnknown},
		map[string]LabLevel{
			"Normal: <100 mg/dL (5.6 mmol/L)":             LabNormal,
			"Prediabetes: 100-125 mg/dL (5.6-6.9 mmol/L)": LabPrediabetes,
			"Diabetes: ≥126 mg/dL (7.0 mmol/L)":           LabDiabetes,
		})
	severityVocab = newVocabulary(
		[]Frequency{FreqNever, FreqRarely, FreqSometimes, FreqOften, FreqAlways}, nil)
	conditionVocab = newVocabulary(
		[]Condition{
			ConditionNone, ConditionHypertension, ConditionHighCholesterol, ConditionDiabetes,
			ConditionCardiovascular, ConditionCancer, ConditionAutoimmune, ConditionInflammatory,
			ConditionDigestive, ConditionSkin,
		},
		map[string]Condition{
			"High cholesterol": ConditionHighCholesterol, "Cardiovascular disease": ConditionCardiovascular,
			"Autoimmune condition": ConditionAutoimmune, "Inflammatory condition": ConditionInflammatory,
			"Digestive disorders": ConditionDigestive, "Skin conditions": ConditionSkin,
		})
	familyVocab = newVocabulary(
		[]FamilyHistory{FamilyNone, FamilyGrandparent, FamilyParent, FamilySibling}, nil)
)

// Valid reports whether s is a canonical code.
func (s Sex) Valid() bool { return sexVocab.valid(s) }

// Valid reports whether a is a canonical code.
func (a ActivityLevel) Valid() bool { return activityVocab.valid(a) }

// Valid reports whether f is a canonical code.
func (f ExerciseFrequency) Valid() bool { return frequencyVocab.valid(f) }

// Valid reports whether d is a canonical code.
func (d ExerciseDuration) Valid() bool { return durationVocab.valid(d) }

// Valid reports whether i is a canonical code.
func (i Intensity) Valid() bool { return intensityVocab.valid(i) }

// Valid reports whether s is a canonical code.
func (s SleepDuration) Valid() bool { return sleepVocab.valid(s) }

// Valid reports whether s is a canonical code.
func (s StressLevel) Valid() bool { return stressVocab.valid(s) }

// Valid reports whether s is a canonical code.
func (s SmokingStatus) Valid() bool { return smokingVocab.valid(s) }

// Valid reports whether c is a canonical code.
func (c CholesterolLevel) Valid() bool { return cholesterolVocab.valid(c) }

// Valid reports whether b is a canonical code.
func (b BPMedication) Valid() bool { return bpVocab.valid(b) }

// Valid reports whether l is a canonical code.
func (l LabLevel) Valid() bool { return hba1cVocab.valid(l) }

// Valid reports whether f is a canonical code.
func (f Frequency) Valid() bool { return severityVocab.valid(f) }

// Valid reports whether c is a canonical code.
func (c Condition) Valid() bool { return conditionVocab.valid(c) }

// Valid reports whether h is a canonical code.
func (h FamilyHistory) Valid() bool { return familyVocab.valid(h) }
