package scorer

import (
	"fmt"
	"math"

	"github.com/kalgen-innolab/dnacare/internal/config"
	"github.com/kalgen-innolab/dnacare/internal/features"
)

// Category identifies a risk dimension.
type Category string

const (
	CategoryMetabolic Category = "metabolic_lifestyle"
	CategoryCVD       Category = "cvd_stroke"
	CategoryDiabetes  Category = "diabetes"
	CategoryCancer    Category = "cancer"
)

// Categories lists every category in display order.
var Categories = []Category{CategoryMetabolic, CategoryCVD, CategoryDiabetes, CategoryCancer}

// RiskScores maps category to score. A missing category means the
// respondent already has the condition; it is not a zero risk.
type RiskScores map[Category]float64

// Get returns the score for c and whether it was computed.
func (r RiskScores) Get(c Category) (float64, bool) {
	v, ok := r[c]
	return v, ok
}

// Percent returns the score as a percentage rounded to one decimal, or nil
// when the category was skipped.
func (r RiskScores) Percent(c Category) *float64 {
	v, ok := r[c]
	if !ok {
		return nil
	}
	p := math.Round(v*1000) / 10
	return &p
}

// PercentString formats Percent, using "N/A" for skipped categories.
func (r RiskScores) PercentString(c Category) string {
	p := r.Percent(c)
	if p == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.1f", *p)
}

// Score computes every applicable category. Metabolic is always present;
// the others are skipped when the matching condition is already diagnosed.
func Score(f features.Features, cfg config.ScoringConfig) RiskScores {
	scores := RiskScores{
		CategoryMetabolic: MetabolicRisk(f, cfg),
	}
	if !f.HasCVD {
		scores[CategoryCVD] = CVDRisk(f, cfg)
	}
	if !f.HasDiabetes {
		scores[CategoryDiabetes] = DiabetesRisk(f, cfg)
	}
	if !f.HasCancer {
		scores[CategoryCancer] = CancerRisk(f, cfg)
	}
	return scores
}

// MetabolicRisk scores metabolic and lifestyle risk.
func MetabolicRisk(f features.Features, cfg config.ScoringConfig) float64 {
	m := cfg.Metabolic
	risk := m.BMIWeight*excess(f.BMI, m.BMIRange) +
		m.ActivityWeight*inactivity(f.METHours, m.METCap) +
		m.StressWeight*f.StressScore +
		m.SmokingWeight*f.SmokingRisk +
		m.AlcoholWeight*f.AlcoholRisk +
		m.SleepWeight*(1-f.SleepScore)
	return finish(risk, m.Multiplier, cfg.Clamp)
}

// CVDRisk converts Framingham-style points to a probability, adds family
// history and amplifies.
func CVDRisk(f features.Features, cfg config.ScoringConfig) float64 {
	c := cfg.CVD
	risk := CVDProbability(CVDPoints(f, c), c)
	risk += f.CVDFamilyHistory * c.FamilyHistoryWeight
	return finish(risk, c.Multiplier, cfg.Clamp)
}

// DiabetesRisk scores diabetes risk. A zero waist circumference is replaced
// by the configured default.
func DiabetesRisk(f features.Features, cfg config.ScoringConfig) float64 {
	d := cfg.Diabetes
	waist := f.WaistCircumference
	if waist <= 0 {
		waist = d.DefaultWaist
	}
	risk := d.BMIWeight*excess(f.BMI, d.BMIRange) +
		d.WaistWeight*excess(waist, d.WaistRange) +
		d.HbA1cWeight*ramp(f.HbA1c, d.HbA1cRange) +
		d.GlucoseWeight*ramp(f.FastingGlucose, d.GlucoseRange) +
		d.ActivityWeight*inactivity(f.METHours, d.METCap) +
		d.FamilyHistoryWeight*f.DiabetesFamilyHistory*d.FamilyHistoryScale +
		d.SymptomsWeight*f.DiabetesSymptoms
	return finish(risk, d.Multiplier, cfg.Clamp)
}

// CancerRisk scores cancer risk. The age term is not clamped.
func CancerRisk(f features.Features, cfg config.ScoringConfig) float64 {
	c := cfg.Cancer
	risk := c.AgeWeight*scale(f.Age, c.AgeRange) +
		c.SmokingWeight*f.SmokingRisk +
		c.AlcoholWeight*f.AlcoholRisk +
		c.BMIWeight*excess(f.BMI, c.BMIRange) +
		c.FamilyHistoryWeight*f.CancerFamilyHistory*c.FamilyHistoryScale
	return finish(risk, c.Multiplier, cfg.Clamp)
}

// finish amplifies, caps at 1 and clamps to the variant bounds.
func finish(risk, multiplier float64, b config.Bounds) float64 {
	return clamp(math.Min(risk*multiplier, 1), b)
}

func clamp(x float64, b config.Bounds) float64 {
	return math.Max(b.Min, math.Min(b.Max, x))
}

func scale(x float64, r config.Range) float64 {
	return (x - r.Low) / (r.High - r.Low)
}

// excess is the normalized amount above r.Low, floored at 0 and uncapped.
func excess(x float64, r config.Range) float64 {
	return math.Max(0, scale(x, r))
}

func ramp(x float64, r config.Range) float64 {
	return math.Min(math.Max(scale(x, r), 0), 1)
}

func inactivity(metHours, limit float64) float64 {
	return 1 - math.Min(metHours/limit, 1)
}
