// Package scorer turns a feature vector into per-category risk scores.
package scorer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/kalgen-innolab/dnacare/internal/config"
)

// DefaultScoringConfig returns the calibrated variant, the canonical one.
func DefaultScoringConfig() config.ScoringConfig {
	return CalibratedConfig()
}

// CalibratedConfig returns the amplified variant with the exponential CVD
// conversion and scores clamped to [0.01, 0.99].
func CalibratedConfig() config.ScoringConfig {
	bmi := config.Range{Low: 18.5, High: 32}
	return config.ScoringConfig{
		Variant: config.VariantCalibrated,
		Clamp:   config.Bounds{Min: 0.01, Max: 0.99},
		Metabolic: config.MetabolicConfig{
			BMIWeight:      0.22,
			ActivityWeight: 0.18,
			StressWeight:   0.18,
			SmokingWeight:  0.15,
			AlcoholWeight:  0.10,
			SleepWeight:    0.10,
			BMIRange:       bmi,
			METCap:         35,
			Multiplier:     1.15,
		},
		CVD: config.CVDConfig{
			AgeBands: []config.AgeBand{
				{MinAge: 75, Male: 14, Female: 17},
				{MinAge: 70, Male: 13, Female: 15},
				{MinAge: 65, Male: 12, Female: 13},
				{MinAge: 60, Male: 11, Female: 11},
				{MinAge: 55, Male: 9, Female: 9},
				{MinAge: 50, Male: 7, Female: 7},
				{MinAge: 45, Male: 4, Female: 4},
				{MinAge: 40, Male: 1, Female: 1},
				{MinAge: 35, Male: -3, Female: -2},
				{MinAge: 0, Male: -8, Female: -6},
			},
			CholesterolBands: []config.CholesterolBand{
				{MinMgDL: 280, Male: 5, Female: 5},
				{MinMgDL: 240, Male: 4, Female: 4},
				{MinMgDL: 200, Male: 3, Female: 3},
				{MinMgDL: 160, Male: 2, Female: 2},
			},
			OlderAge:               70,
			CholesterolOlderAdjust: -1,
			BPMedicationAbove:      0,
			BPMedicationPoints:     4,
			SmokingAbove:           0.5,
			SmokerMalePoints:       3,
			SmokerFemalePoints:     3,
			DiabetesPoints:         3,
			DiabetesHbA1c:          6.5,
			DiabetesGlucose:        126,
			Method:                 config.CVDMethodExponential,
			Rate:                   0.06,
			Offset:                 8,
			ProbabilityBounds:      config.Bounds{Min: 0.01, Max: 0.99},
			FamilyHistoryWeight:    0.08,
			Multiplier:             1.2,
		},
		Diabetes: config.DiabetesConfig{
			BMIWeight:           0.25,
			WaistWeight:         0.20,
			HbA1cWeight:         0.15,
			GlucoseWeight:       0.15,
			ActivityWeight:      0.10,
			FamilyHistoryWeight: 0.05,
			SymptomsWeight:      0.10,
			BMIRange:            bmi,
			WaistRange:          config.Range{Low: 65, High: 110},
			HbA1cRange:          config.Range{Low: 4.5, High: 6.5},
			GlucoseRange:        config.Range{Low: 70, High: 126},
			METCap:              35,
			DefaultWaist:        80,
			FamilyHistoryScale:  0.1,
			Multiplier:          1.25,
		},
		Cancer: config.CancerConfig{
			AgeWeight:           0.30,
			SmokingWeight:       0.25,
			AlcoholWeight:       0.20,
			BMIWeight:           0.15,
			FamilyHistoryWeight: 0.10,
			AgeRange:            config.Range{Low: 18, High: 75},
			BMIRange:            bmi,
			FamilyHistoryScale:  0.1,
			Multiplier:          1.2,
		},
		Recommend: config.RecommendConfig{
			MetabolicThreshold:  0.30,
			CVDThreshold:        0.25,
			DiabetesThreshold:   0.30,
			CancerThreshold:     0.25,
			BaseAdviceCount:     5,
			ShowAllCategories:   false,
			OverweightBMI:       25,
			SmokingAbove:        0.5,
			StressAbove:         0.6,
			SymptomsAbove:       0.5,
			AlcoholAbove:        0.5,
			AdvancedCancerScore: 0.5,
			AdvancedCancerAge:   40,
		},
		Tiers: config.TierCutoffs{Moderate: 0.30, High: 0.50},
	}
}

// LinearConfig returns the earlier unamplified variant: CVD points divided
// by 20 and scores clamped to [0, 1].
func LinearConfig() config.ScoringConfig {
	return config.ScoringConfig{
		Variant: config.VariantLinear,
		Clamp:   config.Bounds{Min: 0, Max: 1},
		Metabolic: config.MetabolicConfig{
			BMIWeight:      0.25,
			ActivityWeight: 0.20,
			StressWeight:   0.20,
			SmokingWeight:  0.15,
			AlcoholWeight:  0.10,
			SleepWeight:    0.10,
			BMIRange:       config.Range{Low: 18.5, High: 30},
			METCap:         40,
			Multiplier:     1,
		},
		CVD: config.CVDConfig{
			AgeBands: []config.AgeBand{
				{MinAge: 75, Male: 11, Female: 16},
				{MinAge: 70, Male: 11, Female: 12},
				{MinAge: 65, Male: 10, Female: 9},
				{MinAge: 60, Male: 8, Female: 7},
				{MinAge: 55, Male: 6, Female: 4},
				{MinAge: 50, Male: 4, Female: 3},
				{MinAge: 45, Male: 3, Female: 2},
				{MinAge: 40, Male: 2, Female: 1},
				{MinAge: 35, Male: 1, Female: 0},
			},
			CholesterolBands: []config.CholesterolBand{
				{MinMgDL: 280, Male: 3, Female: 4},
				{MinMgDL: 240, Male: 2, Female: 2},
				{MinMgDL: 200, Male: 1, Female: 1},
			},
			BPMedicationAbove:   0.5,
			BPMedicationPoints:  2,
			SmokingAbove:        0.5,
			SmokerMalePoints:    4,
			SmokerFemalePoints:  3,
			Method:              config.CVDMethodLinear,
			Divisor:             20,
			FamilyHistoryWeight: 0.1,
			Multiplier:          1,
		},
		Diabetes: config.DiabetesConfig{
			BMIWeight:           0.25,
			WaistWeight:         0.20,
			HbA1cWeight:         0.15,
			GlucoseWeight:       0.15,
			ActivityWeight:      0.10,
			FamilyHistoryWeight: 0.05,
			SymptomsWeight:      0.10,
			BMIRange:            config.Range{Low: 18.5, High: 35},
			WaistRange:          config.Range{Low: 70, High: 120},
			HbA1cRange:          config.Range{Low: 0, High: 6.0},
			GlucoseRange:        config.Range{Low: 0, High: 120},
			METCap:              40,
			DefaultWaist:        80,
			FamilyHistoryScale:  0.1,
			Multiplier:          1,
		},
		Cancer: config.CancerConfig{
			AgeWeight:           0.30,
			SmokingWeight:       0.25,
			AlcoholWeight:       0.20,
			BMIWeight:           0.15,
			FamilyHistoryWeight: 0.10,
			AgeRange:            config.Range{Low: 20, High: 80},
			BMIRange:            config.Range{Low: 18.5, High: 35},
			FamilyHistoryScale:  0.1,
			Multiplier:          1,
		},
		Recommend: config.RecommendConfig{
			MetabolicThreshold:  0.40,
			CVDThreshold:        0.30,
			DiabetesThreshold:   0.40,
			CancerThreshold:     0.30,
			BaseAdviceCount:     4,
			ShowAllCategories:   true,
			OverweightBMI:       25,
			SmokingAbove:        0.5,
			StressAbove:         0.6,
			SymptomsAbove:       0.5,
			AlcoholAbove:        0.5,
			AdvancedCancerScore: 0.5,
			AdvancedCancerAge:   40,
		},
		Tiers: config.TierCutoffs{Moderate: 0.40, High: 0.60},
	}
}

// Preset returns the built-in config for a variant name.
func Preset(variant string) (config.ScoringConfig, error) {
	switch variant {
	case config.VariantCalibrated, "":
		return CalibratedConfig(), nil
	case config.VariantLinear:
		return LinearConfig(), nil
	default:
		return config.ScoringConfig{}, eris.Errorf("scorer: unknown variant %q", variant)
	}
}

// LoadConfig reads a YAML scoring document and layers it over the preset it
// names (or fallback when it names none). Lists such as age bands replace
// the preset's lists entirely.
func LoadConfig(path, fallback string) (config.ScoringConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return config.ScoringConfig{}, eris.Wrapf(err, "scorer: read %s", path)
	}

	var head struct {
		Variant string `yaml:"variant"`
	}
	if err := yaml.Unmarshal(data, &head); err != nil {
		return config.ScoringConfig{}, eris.Wrapf(err, "scorer: parse %s", path)
	}
	variant := head.Variant
	if variant == "" {
		variant = fallback
	}

	cfg, err := Preset(variant)
	if err != nil {
		return config.ScoringConfig{}, err
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return config.ScoringConfig{}, eris.Wrapf(err, "scorer: decode %s", path)
	}
	return cfg, nil
}

// Resolve builds and validates the scoring config selected by settings.
func Resolve(s config.ScoringSettings) (config.ScoringConfig, error) {
	var (
		cfg config.ScoringConfig
		err error
	)
	if s.File != "" {
		cfg, err = LoadConfig(s.File, s.Variant)
	} else {
		cfg, err = Preset(s.Variant)
	}
	if err != nil {
		return config.ScoringConfig{}, err
	}
	if err := ValidateConfig(cfg); err != nil {
		return config.ScoringConfig{}, err
	}
	return cfg, nil
}

// ValidateConfig checks that a ScoringConfig is internally consistent.
func ValidateConfig(c config.ScoringConfig) error {
	var errs []string

	// All weights must be non-negative.
	weights := map[string]float64{
		"metabolic.bmi_weight":           c.Metabolic.BMIWeight,
		"metabolic.activity_weight":      c.Metabolic.ActivityWeight,
		"metabolic.stress_weight":        c.Metabolic.StressWeight,
		"metabolic.smoking_weight":       c.Metabolic.SmokingWeight,
		"metabolic.alcohol_weight":       c.Metabolic.AlcoholWeight,
		"metabolic.sleep_weight":         c.Metabolic.SleepWeight,
		"cvd.family_history_weight":      c.CVD.FamilyHistoryWeight,
		"diabetes.bmi_weight":            c.Diabetes.BMIWeight,
		"diabetes.waist_weight":          c.Diabetes.WaistWeight,
		"diabetes.hba1c_weight":          c.Diabetes.HbA1cWeight,
		"diabetes.glucose_weight":        c.Diabetes.GlucoseWeight,
		"diabetes.activity_weight":       c.Diabetes.ActivityWeight,
		"diabetes.family_history_weight": c.Diabetes.FamilyHistoryWeight,
		"diabetes.symptoms_weight":       c.Diabetes.SymptomsWeight,
		"cancer.age_weight":              c.Cancer.AgeWeight,
		"cancer.smoking_weight":          c.Cancer.SmokingWeight,
		"cancer.alcohol_weight":          c.Cancer.AlcoholWeight,
		"cancer.bmi_weight":              c.Cancer.BMIWeight,
		"cancer.family_history_weight":   c.Cancer.FamilyHistoryWeight,
	}
	for name, w := range weights {
		if !(w >= 0) {
			errs = append(errs, fmt.Sprintf("%s must be >= 0", name))
		}
	}

	multipliers := map[string]float64{
		"metabolic.multiplier": c.Metabolic.Multiplier,
		"cvd.multiplier":       c.CVD.Multiplier,
		"diabetes.multiplier":  c.Diabetes.Multiplier,
		"cancer.multiplier":    c.Cancer.Multiplier,
		"metabolic.met_cap":    c.Metabolic.METCap,
		"diabetes.met_cap":     c.Diabetes.METCap,
	}
	for name, m := range multipliers {
		if !(m > 0) {
			errs = append(errs, fmt.Sprintf("%s must be > 0", name))
		}
	}

	ranges := map[string]config.Range{
		"metabolic.bmi_range":    c.Metabolic.BMIRange,
		"diabetes.bmi_range":     c.Diabetes.BMIRange,
		"diabetes.waist_range":   c.Diabetes.WaistRange,
		"diabetes.hba1c_range":   c.Diabetes.HbA1cRange,
		"diabetes.glucose_range": c.Diabetes.GlucoseRange,
		"cancer.age_range":       c.Cancer.AgeRange,
		"cancer.bmi_range":       c.Cancer.BMIRange,
	}
	for name, r := range ranges {
		if !(r.High > r.Low) {
			errs = append(errs, fmt.Sprintf("%s high (%.2f) must be > low (%.2f)", name, r.High, r.Low))
		}
	}

	errs = append(errs, checkBounds("clamp", c.Clamp)...)

	switch c.CVD.Method {
	case config.CVDMethodExponential:
		if !(c.CVD.Rate > 0) {
			errs = append(errs, "cvd.rate must be > 0")
		}
		errs = append(errs, checkBounds("cvd.probability_bounds", c.CVD.ProbabilityBounds)...)
	case config.CVDMethodLinear:
		if !(c.CVD.Divisor > 0) {
			errs = append(errs, "cvd.divisor must be > 0")
		}
	default:
		errs = append(errs, fmt.Sprintf("cvd.method %q must be %s or %s", c.CVD.Method, config.CVDMethodExponential, config.CVDMethodLinear))
	}

	if len(c.CVD.AgeBands) == 0 {
		errs = append(errs, "cvd.age_bands must not be empty")
	}
	for i := 1; i < len(c.CVD.AgeBands); i++ {
		if c.CVD.AgeBands[i].MinAge >= c.CVD.AgeBands[i-1].MinAge {
			errs = append(errs, "cvd.age_bands must be ordered by descending min_age")
			break
		}
	}
	for i := 1; i < len(c.CVD.CholesterolBands); i++ {
		if c.CVD.CholesterolBands[i].MinMgDL >= c.CVD.CholesterolBands[i-1].MinMgDL {
			errs = append(errs, "cvd.cholesterol_bands must be ordered by descending min_mg_dl")
			break
		}
	}

	thresholds := map[string]float64{
		"recommend.metabolic_threshold": c.Recommend.MetabolicThreshold,
		"recommend.cvd_threshold":       c.Recommend.CVDThreshold,
		"recommend.diabetes_threshold":  c.Recommend.DiabetesThreshold,
		"recommend.cancer_threshold":    c.Recommend.CancerThreshold,
	}
	for name, th := range thresholds {
		if !(th >= 0 && th <= 1) {
			errs = append(errs, fmt.Sprintf("%s must be between 0 and 1", name))
		}
	}
	if c.Recommend.BaseAdviceCount < 1 || c.Recommend.BaseAdviceCount > MaxBaseAdvice {
		errs = append(errs, fmt.Sprintf("recommend.base_advice_count must be between 1 and %d", MaxBaseAdvice))
	}

	if !(0 < c.Tiers.Moderate && c.Tiers.Moderate < c.Tiers.High && c.Tiers.High <= 1) {
		errs = append(errs, "tiers must satisfy 0 < moderate < high <= 1")
	}

	// NaN or Inf in fields not checked above (points, offsets, defaults).
	if _, err := json.Marshal(c); err != nil {
		errs = append(errs, "values must be finite numbers")
	}

	if len(errs) > 0 {
		return eris.Errorf("scorer: config validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// MaxBaseAdvice is the number of base advice items defined per category.
const MaxBaseAdvice = 5

func checkBounds(name string, b config.Bounds) []string {
	if !(0 <= b.Min && b.Min < b.Max && b.Max <= 1) {
		return []string{fmt.Sprintf("%s must satisfy 0 <= min < max <= 1", name)}
	}
	return nil
}
