// Package submission defines the persisted shape of an assessed
// questionnaire and the sinks it is written to.
package submission

import (
	"strconv"
	"strings"
	"time"

	"github.com/kalgen-innolab/dnacare/internal/features"
	"github.com/kalgen-innolab/dnacare/internal/questionnaire"
	"github.com/kalgen-innolab/dnacare/internal/recommend"
	"github.com/kalgen-innolab/dnacare/internal/scorer"
)

// TimeLayout is used for timestamps in flat exports.
const TimeLayout = "2006-01-02T15:04:05.000000Z07:00"

// Record is one assessed submission.
type Record struct {
	ID          string    `json:"id"`
	SubmittedAt time.Time `json:"timestamp"`
	Locale      string    `json:"locale"`
	Variant     string    `json:"variant"`
	ConfigHash  string    `json:"config_hash"`

	Answers         questionnaire.Answers           `json:"answers"`
	Features        features.Features               `json:"features"`
	Scores          scorer.RiskScores               `json:"scores"`
	Tiers           map[scorer.Category]scorer.Tier `json:"tiers"`
	Recommendations recommend.Set                   `json:"recommendations"`
}

var riskColumns = map[scorer.Category]string{
	scorer.CategoryMetabolic: "metabolic_risk",
	scorer.CategoryCVD:       "cvd_risk",
	scorer.CategoryDiabetes:  "diabetes_risk",
	scorer.CategoryCancer:    "cancer_risk",
}

// Columns returns the flat export header.
func Columns() []string {
	cols := []string{
		"id", "timestamp",
		"name", "phone", "age", "sex", "height", "weight", "occupation",
		"activity_level", "waist_circumference",
		"exercise_frequency", "duration", "intensity",
		"sleep_hours", "stress_level", "smoking", "alcohol", "total_cholesterol",
		"blood_pressure_medication", "hba1c", "fasting_glucose",
		"frequent_hunger", "frequent_thirst", "frequent_urination",
		"conditions", "medications", "diabetes_history", "cancer_history", "cvd_history",
	}
	for _, s := range (questionnaire.Symptoms{}).List() {
		cols = append(cols, "symptom_"+s.Name)
	}
	cols = append(cols, "had_testing", "findings", "bmi")
	for _, c := range scorer.Categories {
		cols = append(cols, riskColumns[c])
	}
	return append(cols, "locale", "variant", "config_hash")
}

// Row flattens r in Columns order. Skipped categories read "N/A".
func (r *Record) Row() []string {
	p := r.Answers.Personal
	a := r.Answers.Activity
	l := r.Answers.Lifestyle
	h := r.Answers.Health

	conditions := make([]string, len(h.Conditions))
	for i, c := range h.Conditions {
		conditions[i] = string(c)
	}

	row := []string{
		r.ID, r.SubmittedAt.UTC().Format(TimeLayout),
		p.Name, p.Phone, strconv.Itoa(p.Age), string(p.Sex), num(p.HeightCM), num(p.WeightKG), p.Occupation,
		string(p.ActivityLevel), num(p.WaistCM),
		string(a.Frequency), string(a.Duration), string(a.Intensity),
		string(l.Sleep), string(l.Stress), string(l.Smoking), yesNo(l.Alcohol), string(l.Cholesterol),
		string(l.BPMedication), lab(l.HbA1c, l.HbA1cPercent), lab(l.FastingGlucose, l.FastingGlucoseMgDL),
		string(l.FrequentHunger), string(l.FrequentThirst), string(l.FrequentUrination),
		strings.Join(conditions, ","), h.Medications, string(h.DiabetesHistory), string(h.CancerHistory), string(h.CVDHistory),
	}
	for _, s := range h.Symptoms.List() {
		row = append(row, string(s.Value))
	}
	row = append(row, yesNo(r.Answers.Genetic.HadTesting), r.Answers.Genetic.Findings, strconv.FormatFloat(r.Features.BMI, 'f', 2, 64))
	for _, c := range scorer.Categories {
		row = append(row, r.Scores.PercentString(c))
	}
	return append(row, r.Locale, r.Variant, r.ConfigHash)
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func lab(bucket questionnaire.LabLevel, value *float64) string {
	if value != nil {
		return num(*value)
	}
	return string(bucket)
}
