package scorer

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kalgen-innolab/dnacare/internal/config"
	"github.com/kalgen-innolab/dnacare/internal/features"
)

// scenario is a 45-year-old male smoker, 170 cm / 90 kg, waist 100 cm, who
// never exercises, sleeps under 5h, reports very high stress, drinks, has
// high cholesterol and unknown lab values.
func scenario() features.Features {
	return features.Features{
		Age:                  45,
		BMI:                  90 / (1.7 * 1.7),
		GenderMale:           1,
		WaistCircumference:   100,
		METHours:             0,
		SleepScore:           0.2,
		StressScore:          1.0,
		SmokingRisk:          1.0,
		AlcoholRisk:          1.0,
		TotalCholesterol:     260,
		BPMedication:         0,
		HbA1c:                5.7,
		FastingGlucose:       100,
		HealthConditionScore: 0.1,
	}
}

// healthy is a 25-year-old active female non-smoker.
func healthy() features.Features {
	return features.Features{
		Age:                25,
		BMI:                55 / (1.65 * 1.65),
		WaistCircumference: 70,
		METHours:           7.0 * 5.5 * 0.875,
		SleepScore:         1.0,
		StressScore:        0.2,
		TotalCholesterol:   180,
		HbA1c:              5.4,
		FastingGlucose:     90,
	}
}

func TestScore_CalibratedScenario(t *testing.T) {
	scores := Score(scenario(), CalibratedConfig())

	require.Len(t, scores, 4)
	assert.InDelta(t, 0.99, scores[CategoryMetabolic], 1e-9)
	assert.InDelta(t, 0.8162, scores[CategoryCVD], 0.0005)
	assert.InDelta(t, 0.8250, scores[CategoryDiabetes], 0.0005)
	assert.InDelta(t, 0.8791, scores[CategoryCancer], 0.0005)

	tiers := Tiers(scores, CalibratedConfig().Tiers)
	for _, c := range Categories {
		assert.Equal(t, TierHigh, tiers[c], "category %s", c)
	}
}

func TestScore_LinearScenario(t *testing.T) {
	scores := Score(scenario(), LinearConfig())

	require.Len(t, scores, 4)
	assert.InDelta(t, 1.0, scores[CategoryMetabolic], 1e-9)
	assert.InDelta(t, 0.45, scores[CategoryCVD], 1e-9)
	assert.InDelta(t, 0.6790, scores[CategoryDiabetes], 0.0005)
	assert.InDelta(t, 0.6899, scores[CategoryCancer], 0.0005)
}

func TestScore_CalibratedHealthy(t *testing.T) {
	scores := Score(healthy(), CalibratedConfig())

	assert.InDelta(t, 0.0811, scores[CategoryMetabolic], 0.0005)
	assert.InDelta(t, 0.2560, scores[CategoryCVD], 0.0005)
	assert.Less(t, scores[CategoryDiabetes], 0.30)
	assert.Less(t, scores[CategoryCancer], 0.25)
	assert.Equal(t, TierLow, Classify(scores[CategoryMetabolic], CalibratedConfig().Tiers))
}

func TestScore_SkipsDiagnosedConditions(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(f *features.Features)
		missing Category
	}{
		{"cvd", func(f *features.Features) { f.HasCVD = true }, CategoryCVD},
		{"diabetes", func(f *features.Features) { f.HasDiabetes = true }, CategoryDiabetes},
		{"cancer", func(f *features.Features) { f.HasCancer = true }, CategoryCancer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := scenario()
			tt.mutate(&f)
			for _, cfg := range []config.ScoringConfig{CalibratedConfig(), LinearConfig()} {
				scores := Score(f, cfg)
				_, ok := scores.Get(tt.missing)
				assert.False(t, ok)
				assert.Len(t, scores, 3)
				_, ok = scores.Get(CategoryMetabolic)
				assert.True(t, ok)
			}
		})
	}

	f := scenario()
	f.HasCVD, f.HasDiabetes, f.HasCancer = true, true, true
	assert.Equal(t, []Category{CategoryMetabolic}, keys(Score(f, CalibratedConfig())))
}

func keys(r RiskScores) []Category {
	var out []Category
	for _, c := range Categories {
		if _, ok := r[c]; ok {
			out = append(out, c)
		}
	}
	return out
}

func TestScore_CalibratedBounds(t *testing.T) {
	cfg := CalibratedConfig()
	for _, age := range []float64{1, 18, 35, 50, 75, 120} {
		for _, bmi := range []float64{12, 18.5, 25, 40, 80} {
			for _, risk := range []float64{0, 0.3, 1} {
				for _, male := range []float64{0, 1} {
					f := features.Features{
						Age: age, BMI: bmi, GenderMale: male, WaistCircumference: 0,
						METHours: 68.75 * (1 - risk), SleepScore: 1 - risk*0.8,
						StressScore: risk, SmokingRisk: risk, AlcoholRisk: risk,
						TotalCholesterol: 150 + risk*150, BPMedication: risk,
						HbA1c: 4 + risk*6, FastingGlucose: 60 + risk*140,
						DiabetesSymptoms: risk, CVDFamilyHistory: 3 * risk,
						DiabetesFamilyHistory: 3 * risk, CancerFamilyHistory: 3 * risk,
					}
					for c, s := range Score(f, cfg) {
						assert.GreaterOrEqual(t, s, 0.01, "%s age=%v bmi=%v risk=%v", c, age, bmi, risk)
						assert.LessOrEqual(t, s, 0.99, "%s age=%v bmi=%v risk=%v", c, age, bmi, risk)
					}
					for c, s := range Score(f, LinearConfig()) {
						assert.GreaterOrEqual(t, s, 0.0, "%s", c)
						assert.LessOrEqual(t, s, 1.0, "%s", c)
					}
				}
			}
		}
	}
}

func TestCancerRisk_LowerClamp(t *testing.T) {
	f := features.Features{Age: 10, BMI: 18}
	assert.Equal(t, 0.01, CancerRisk(f, CalibratedConfig()))
	assert.Equal(t, 0.0, CancerRisk(f, LinearConfig()))
}

func TestDiabetesRisk_ZeroWaistUsesDefault(t *testing.T) {
	cfg := CalibratedConfig()
	f := scenario()
	f.WaistCircumference = 0
	withZero := DiabetesRisk(f, cfg)
	f.WaistCircumference = 80
	assert.InDelta(t, DiabetesRisk(f, cfg), withZero, 1e-12)
}

func TestDiabetesRisk_FamilyHistoryIsAttenuated(t *testing.T) {
	cfg := LinearConfig()
	f := healthy()
	base := DiabetesRisk(f, cfg)
	f.DiabetesFamilyHistory = 3
	assert.InDelta(t, 0.05*3*0.1, DiabetesRisk(f, cfg)-base, 1e-12)
}

func TestCVDPoints(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.CVDConfig
		f    features.Features
		want float64
	}{
		{
			name: "calibrated scenario",
			cfg:  CalibratedConfig().CVD,
			f:    scenario(),
			want: 4 + 4 + 3,
		},
		{
			name: "calibrated young female low cholesterol",
			cfg:  CalibratedConfig().CVD,
			f:    features.Features{Age: 25, TotalCholesterol: 150},
			want: -6,
		},
		{
			name: "calibrated older diabetic female on bp meds",
			cfg:  CalibratedConfig().CVD,
			f:    features.Features{Age: 72, TotalCholesterol: 290, BPMedication: 1, HbA1c: 7.5, FastingGlucose: 90},
			want: 15 + (5 - 1) + 4 + 3,
		},
		{
			name: "calibrated bp not routine counts",
			cfg:  CalibratedConfig().CVD,
			f:    features.Features{Age: 50, GenderMale: 1, TotalCholesterol: 200, BPMedication: 0.5},
			want: 7 + 3 + 4,
		},
		{
			name: "calibrated glucose marks diabetic",
			cfg:  CalibratedConfig().CVD,
			f:    features.Features{Age: 39, GenderMale: 1, TotalCholesterol: 180, FastingGlucose: 126},
			want: -3 + 2 + 3,
		},
		{
			name: "calibrated diagnosed diabetes",
			cfg:  CalibratedConfig().CVD,
			f:    features.Features{Age: 80, GenderMale: 1, TotalCholesterol: 220, HasDiabetes: true},
			want: 14 + (3 - 1) + 3,
		},
		{
			name: "linear scenario",
			cfg:  LinearConfig().CVD,
			f:    scenario(),
			want: 3 + 2 + 4,
		},
		{
			name: "linear female smoker on bp meds",
			cfg:  LinearConfig().CVD,
			f:    features.Features{Age: 62, TotalCholesterol: 290, SmokingRisk: 1, BPMedication: 1},
			want: 7 + 4 + 3 + 2,
		},
		{
			name: "linear bp not routine ignored",
			cfg:  LinearConfig().CVD,
			f:    features.Features{Age: 30, GenderMale: 1, TotalCholesterol: 180, BPMedication: 0.5, HbA1c: 8},
			want: 0,
		},
		{
			name: "linear female 75",
			cfg:  LinearConfig().CVD,
			f:    features.Features{Age: 75, TotalCholesterol: 200},
			want: 16 + 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CVDPoints(tt.f, tt.cfg))
		})
	}
}

func TestCVDProbability(t *testing.T) {
	exp := CalibratedConfig().CVD
	assert.InDelta(t, 1-math.Exp(-0.06*19), CVDProbability(11, exp), 1e-12)
	assert.Equal(t, 0.01, CVDProbability(-8, exp))
	assert.Equal(t, 0.99, CVDProbability(100, exp))

	lin := LinearConfig().CVD
	assert.Equal(t, 0.45, CVDProbability(9, lin))
	assert.Equal(t, 1.0, CVDProbability(25, lin))
}

func TestRiskScores_Percent(t *testing.T) {
	scores := RiskScores{CategoryMetabolic: 0.81623, CategoryCVD: 0.01}

	p := scores.Percent(CategoryMetabolic)
	require.NotNil(t, p)
	assert.Equal(t, 81.6, *p)
	assert.Equal(t, "81.6", scores.PercentString(CategoryMetabolic))
	assert.Equal(t, "1.0", scores.PercentString(CategoryCVD))
	assert.Nil(t, scores.Percent(CategoryCancer))
	assert.Equal(t, "N/A", scores.PercentString(CategoryCancer))
}

func TestClassify(t *testing.T) {
	cutoffs := config.TierCutoffs{Moderate: 0.3, High: 0.5}
	tests := []struct {
		score float64
		want  Tier
	}{
		{0.0, TierLow},
		{0.2999, TierLow},
		{0.3, TierModerate},
		{0.4999, TierModerate},
		{0.5, TierHigh},
		{0.99, TierHigh},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.score, cutoffs), "score %v", tt.score)
	}
}

func TestConfigHash(t *testing.T) {
	a := ConfigHash(CalibratedConfig())
	assert.Len(t, a, 32)
	assert.Equal(t, a, ConfigHash(CalibratedConfig()))
	assert.NotEqual(t, a, ConfigHash(LinearConfig()))

	tweaked := CalibratedConfig()
	tweaked.Metabolic.Multiplier = 1.2
	assert.NotEqual(t, a, ConfigHash(tweaked))
}

func TestValidateConfig_Presets(t *testing.T) {
	assert.NoError(t, ValidateConfig(CalibratedConfig()))
	assert.NoError(t, ValidateConfig(LinearConfig()))
	assert.Equal(t, CalibratedConfig(), DefaultScoringConfig())
}

func TestValidateConfig_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *config.ScoringConfig)
		want   string
	}{
		{"negative weight", func(c *config.ScoringConfig) { c.Metabolic.StressWeight = -0.1 }, "metabolic.stress_weight must be >= 0"},
		{"zero multiplier", func(c *config.ScoringConfig) { c.Cancer.Multiplier = 0 }, "cancer.multiplier must be > 0"},
		{"inverted range", func(c *config.ScoringConfig) { c.Diabetes.WaistRange = config.Range{Low: 110, High: 65} }, "diabetes.waist_range"},
		{"clamp outside unit", func(c *config.ScoringConfig) { c.Clamp.Max = 1.5 }, "clamp must satisfy"},
		{"inverted clamp", func(c *config.ScoringConfig) { c.Clamp = config.Bounds{Min: 0.9, Max: 0.1} }, "clamp must satisfy"},
		{"unknown method", func(c *config.ScoringConfig) { c.CVD.Method = "logistic" }, "cvd.method"},
		{"zero rate", func(c *config.ScoringConfig) { c.CVD.Rate = 0 }, "cvd.rate must be > 0"},
		{"zero divisor", func(c *config.ScoringConfig) { c.CVD.Method = config.CVDMethodLinear }, "cvd.divisor must be > 0"},
		{"empty age bands", func(c *config.ScoringConfig) { c.CVD.AgeBands = nil }, "cvd.age_bands must not be empty"},
		{"unordered age bands", func(c *config.ScoringConfig) {
			c.CVD.AgeBands = []config.AgeBand{{MinAge: 40}, {MinAge: 50}}
		}, "descending min_age"},
		{"unordered cholesterol", func(c *config.ScoringConfig) {
			c.CVD.CholesterolBands = []config.CholesterolBand{{MinMgDL: 200}, {MinMgDL: 240}}
		}, "descending min_mg_dl"},
		{"threshold above one", func(c *config.ScoringConfig) { c.Recommend.CVDThreshold = 1.2 }, "recommend.cvd_threshold"},
		{"base advice too large", func(c *config.ScoringConfig) { c.Recommend.BaseAdviceCount = 6 }, "base_advice_count"},
		{"tiers not ascending", func(c *config.ScoringConfig) { c.Tiers = config.TierCutoffs{Moderate: 0.6, High: 0.4} }, "tiers must satisfy"},
		{"nan weight", func(c *config.ScoringConfig) { c.Metabolic.BMIWeight = math.NaN() }, "metabolic.bmi_weight must be >= 0"},
		{"nan multiplier", func(c *config.ScoringConfig) { c.Metabolic.Multiplier = math.NaN() }, "metabolic.multiplier must be > 0"},
		{"nan range", func(c *config.ScoringConfig) { c.Cancer.AgeRange.High = math.NaN() }, "cancer.age_range"},
		{"nan clamp", func(c *config.ScoringConfig) { c.Clamp.Max = math.NaN() }, "clamp must satisfy"},
		{"nan rate", func(c *config.ScoringConfig) { c.CVD.Rate = math.NaN() }, "cvd.rate must be > 0"},
		{"nan threshold", func(c *config.ScoringConfig) { c.Recommend.CancerThreshold = math.NaN() }, "recommend.cancer_threshold"},
		{"nan tier", func(c *config.ScoringConfig) { c.Tiers.High = math.NaN() }, "tiers must satisfy"},
		{"nan offset", func(c *config.ScoringConfig) { c.CVD.Offset = math.NaN() }, "values must be finite numbers"},
		{"infinite default waist", func(c *config.ScoringConfig) { c.Diabetes.DefaultWaist = math.Inf(1) }, "values must be finite numbers"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := CalibratedConfig()
			tt.mutate(&cfg)
			err := ValidateConfig(cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestPreset(t *testing.T) {
	cfg, err := Preset("")
	require.NoError(t, err)
	assert.Equal(t, config.VariantCalibrated, cfg.Variant)

	cfg, err = Preset(config.VariantLinear)
	require.NoError(t, err)
	assert.Equal(t, config.VariantLinear, cfg.Variant)

	_, err = Preset("v3")
	assert.Error(t, err)
}

func TestLoadConfig_OverlaysPreset(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scoring.yaml")
	doc := `
variant: linear
metabolic:
  multiplier: 1.1
recommend:
  show_all_categories: false
cvd:
  age_bands:
    - {min_age: 50, male: 5, female: 5}
    - {min_age: 0, male: 0, female: 0}
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	cfg, err := LoadConfig(path, config.VariantCalibrated)
	require.NoError(t, err)
	assert.Equal(t, config.VariantLinear, cfg.Variant)
	assert.Equal(t, 1.1, cfg.Metabolic.Multiplier)
	assert.Equal(t, 0.25, cfg.Metabolic.BMIWeight)
	assert.False(t, cfg.Recommend.ShowAllCategories)
	assert.Len(t, cfg.CVD.AgeBands, 2)
	assert.Equal(t, config.CVDMethodLinear, cfg.CVD.Method)
	assert.NoError(t, ValidateConfig(cfg))
}

func TestLoadConfig_FallbackVariant(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scoring.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tiers:\n  moderate: 0.25\n  high: 0.55\n"), 0o644))

	cfg, err := LoadConfig(path, config.VariantCalibrated)
	require.NoError(t, err)
	assert.Equal(t, config.VariantCalibrated, cfg.Variant)
	assert.Equal(t, 0.25, cfg.Tiers.Moderate)
	assert.Equal(t, 1.15, cfg.Metabolic.Multiplier)
}

func TestLoadConfig_NaNRejectedByValidate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scoring.yaml")
	doc := "metabolic:\n  multiplier: .nan\n  bmi_weight: .nan\nclamp:\n  max: .nan\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	cfg, err := LoadConfig(path, config.VariantCalibrated)
	require.NoError(t, err)
	require.True(t, math.IsNaN(cfg.Metabolic.Multiplier))

	err = ValidateConfig(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "metabolic.multiplier must be > 0")
	assert.Contains(t, err.Error(), "metabolic.bmi_weight must be >= 0")
	assert.Contains(t, err.Error(), "clamp must satisfy")

	_, err = Resolve(config.ScoringSettings{Variant: config.VariantCalibrated, File: path})
	assert.Error(t, err)
}

func TestLoadConfig_UnknownField(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scoring.yaml")
	require.NoError(t, os.WriteFile(path, []byte("metabolic:\n  bmi_wieght: 0.3\n"), 0o644))

	_, err := LoadConfig(path, config.VariantCalibrated)
	assert.Error(t, err)
}

func TestResolve(t *testing.T) {
	cfg, err := Resolve(config.ScoringSettings{Variant: config.VariantLinear})
	require.NoError(t, err)
	assert.Equal(t, LinearConfig(), cfg)

	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("clamp:\n  min: 0.5\n  max: 0.2\n"), 0o644))
	_, err = Resolve(config.ScoringSettings{Variant: config.VariantCalibrated, File: path})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config validation failed")

	_, err = Resolve(config.ScoringSettings{File: filepath.Join(dir, "missing.yaml")})
	assert.Error(t, err)
}
