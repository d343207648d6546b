package config

// Scoring variants.
const (
	VariantCalibrated = "calibrated"
	VariantLinear     = "linear"
)

// CVD probability conversion methods.
const (
	CVDMethodExponential = "exponential"
	CVDMethodLinear      = "linear"
)

// ScoringConfig is the complete parameter set for one scoring variant. Every
// weight, normalization range, multiplier, clamp bound, points table,
// threshold and tier cutoff used by the engine lives here.
type ScoringConfig struct {
	Variant   string          `yaml:"variant" json:"variant" mapstructure:"variant"`
	Clamp     Bounds          `yaml:"clamp" json:"clamp" mapstructure:"clamp"`
	Metabolic MetabolicConfig `yaml:"metabolic" json:"metabolic" mapstructure:"metabolic"`
	CVD       CVDConfig       `yaml:"cvd" json:"cvd" mapstructure:"cvd"`
	Diabetes  DiabetesConfig  `yaml:"diabetes" json:"diabetes" mapstructure:"diabetes"`
	Cancer    CancerConfig    `yaml:"cancer" json:"cancer" mapstructure:"cancer"`
	Recommend RecommendConfig `yaml:"recommend" json:"recommend" mapstructure:"recommend"`
	Tiers     TierCutoffs     `yaml:"tiers" json:"tiers" mapstructure:"tiers"`
}

// Bounds is an inclusive [Min, Max] interval.
type Bounds struct {
	Min float64 `yaml:"min" json:"min" mapstructure:"min"`
	Max float64 `yaml:"max" json:"max" mapstructure:"max"`
}

// Range maps a raw value onto [0, 1] via (x - Low) / (High - Low).
type Range struct {
	Low  float64 `yaml:"low" json:"low" mapstructure:"low"`
	High float64 `yaml:"high" json:"high" mapstructure:"high"`
}

// MetabolicConfig weights the metabolic and lifestyle score.
type MetabolicConfig struct {
	BMIWeight      float64 `yaml:"bmi_weight" json:"bmi_weight" mapstructure:"bmi_weight"`
	ActivityWeight float64 `yaml:"activity_weight" json:"activity_weight" mapstructure:"activity_weight"`
	StressWeight   float64 `yaml:"stress_weight" json:"stress_weight" mapstructure:"stress_weight"`
	SmokingWeight  float64 `yaml:"smoking_weight" json:"smoking_weight" mapstructure:"smoking_weight"`
	AlcoholWeight  float64 `yaml:"alcohol_weight" json:"alcohol_weight" mapstructure:"alcohol_weight"`
	SleepWeight    float64 `yaml:"sleep_weight" json:"sleep_weight" mapstructure:"sleep_weight"`

	BMIRange   Range   `yaml:"bmi_range" json:"bmi_range" mapstructure:"bmi_range"`
	METCap     float64 `yaml:"met_cap" json:"met_cap" mapstructure:"met_cap"`
	Multiplier float64 `yaml:"multiplier" json:"multiplier" mapstructure:"multiplier"`
}

// AgeBand awards points by sex to ages >= MinAge. Bands are ordered by
// descending MinAge; the first matching band wins.
type AgeBand struct {
	MinAge float64 `yaml:"min_age" json:"min_age" mapstructure:"min_age"`
	Male   float64 `yaml:"male" json:"male" mapstructure:"male"`
	Female float64 `yaml:"female" json:"female" mapstructure:"female"`
}

// CholesterolBand awards points by sex to total cholesterol >= MinMgDL.
// Bands are ordered by descending MinMgDL.
type CholesterolBand struct {
	MinMgDL float64 `yaml:"min_mg_dl" json:"min_mg_dl" mapstructure:"min_mg_dl"`
	Male    float64 `yaml:"male" json:"male" mapstructure:"male"`
	Female  float64 `yaml:"female" json:"female" mapstructure:"female"`
}

// CVDConfig holds the Framingham-style points tables and the points to
// probability conversion.
type CVDConfig struct {
	AgeBands         []AgeBand         `yaml:"age_bands" json:"age_bands" mapstructure:"age_bands"`
	CholesterolBands []CholesterolBand `yaml:"cholesterol_bands" json:"cholesterol_bands" mapstructure:"cholesterol_bands"`

	// At or above OlderAge, CholesterolOlderAdjust is added to the cholesterol
	// points (negative values reduce them).
	OlderAge               float64 `yaml:"older_age" json:"older_age" mapstructure:"older_age"`
	CholesterolOlderAdjust float64 `yaml:"cholesterol_older_adjust" json:"cholesterol_older_adjust" mapstructure:"cholesterol_older_adjust"`

	BPMedicationAbove  float64 `yaml:"bp_medication_above" json:"bp_medication_above" mapstructure:"bp_medication_above"`
	BPMedicationPoints float64 `yaml:"bp_medication_points" json:"bp_medication_points" mapstructure:"bp_medication_points"`

	SmokingAbove       float64 `yaml:"smoking_above" json:"smoking_above" mapstructure:"smoking_above"`
	SmokerMalePoints   float64 `yaml:"smoker_male_points" json:"smoker_male_points" mapstructure:"smoker_male_points"`
	SmokerFemalePoints float64 `yaml:"smoker_female_points" json:"smoker_female_points" mapstructure:"smoker_female_points"`

	DiabetesPoints  float64 `yaml:"diabetes_points" json:"diabetes_points" mapstructure:"diabetes_points"`
	DiabetesHbA1c   float64 `yaml:"diabetes_hba1c" json:"diabetes_hba1c" mapstructure:"diabetes_hba1c"`
	DiabetesGlucose float64 `yaml:"diabetes_glucose" json:"diabetes_glucose" mapstructure:"diabetes_glucose"`

	// Method is CVDMethodExponential (1 - exp(-Rate*(points+Offset)),
	// clamped to ProbabilityBounds) or CVDMethodLinear (points/Divisor, capped at 1).
	Method            string  `yaml:"method" json:"method" mapstructure:"method"`
	Rate              float64 `yaml:"rate" json:"rate" mapstructure:"rate"`
	Offset            float64 `yaml:"offset" json:"offset" mapstructure:"offset"`
	ProbabilityBounds Bounds  `yaml:"probability_bounds" json:"probability_bounds" mapstructure:"probability_bounds"`
	Divisor           float64 `yaml:"divisor" json:"divisor" mapstructure:"divisor"`

	FamilyHistoryWeight float64 `yaml:"family_history_weight" json:"family_history_weight" mapstructure:"family_history_weight"`
	Multiplier          float64 `yaml:"multiplier" json:"multiplier" mapstructure:"multiplier"`
}

// DiabetesConfig weights the diabetes score.
type DiabetesConfig struct {
	BMIWeight           float64 `yaml:"bmi_weight" json:"bmi_weight" mapstructure:"bmi_weight"`
	WaistWeight         float64 `yaml:"waist_weight" json:"waist_weight" mapstructure:"waist_weight"`
	HbA1cWeight         float64 `yaml:"hba1c_weight" json:"hba1c_weight" mapstructure:"hba1c_weight"`
	GlucoseWeight       float64 `yaml:"glucose_weight" json:"glucose_weight" mapstructure:"glucose_weight"`
	ActivityWeight      float64 `yaml:"activity_weight" json:"activity_weight" mapstructure:"activity_weight"`
	FamilyHistoryWeight float64 `yaml:"family_history_weight" json:"family_history_weight" mapstructure:"family_history_weight"`
	SymptomsWeight      float64 `yaml:"symptoms_weight" json:"symptoms_weight" mapstructure:"symptoms_weight"`

	BMIRange     Range   `yaml:"bmi_range" json:"bmi_range" mapstructure:"bmi_range"`
	WaistRange   Range   `yaml:"waist_range" json:"waist_range" mapstructure:"waist_range"`
	HbA1cRange   Range   `yaml:"hba1c_range" json:"hba1c_range" mapstructure:"hba1c_range"`
	GlucoseRange Range   `yaml:"glucose_range" json:"glucose_range" mapstructure:"glucose_range"`
	METCap       float64 `yaml:"met_cap" json:"met_cap" mapstructure:"met_cap"`

	// DefaultWaist replaces a waist circumference of zero.
	DefaultWaist       float64 `yaml:"default_waist" json:"default_waist" mapstructure:"default_waist"`
	FamilyHistoryScale float64 `yaml:"family_history_scale" json:"family_history_scale" mapstructure:"family_history_scale"`
	Multiplier         float64 `yaml:"multiplier" json:"multiplier" mapstructure:"multiplier"`
}

// CancerConfig weights the cancer score.
type CancerConfig struct {
	AgeWeight           float64 `yaml:"age_weight" json:"age_weight" mapstructure:"age_weight"`
	SmokingWeight       float64 `yaml:"smoking_weight" json:"smoking_weight" mapstructure:"smoking_weight"`
	AlcoholWeight       float64 `yaml:"alcohol_weight" json:"alcohol_weight" mapstructure:"alcohol_weight"`
	BMIWeight           float64 `yaml:"bmi_weight" json:"bmi_weight" mapstructure:"bmi_weight"`
	FamilyHistoryWeight float64 `yaml:"family_history_weight" json:"family_history_weight" mapstructure:"family_history_weight"`

	// AgeRange is applied without clamping.
	AgeRange           Range   `yaml:"age_range" json:"age_range" mapstructure:"age_range"`
	BMIRange           Range   `yaml:"bmi_range" json:"bmi_range" mapstructure:"bmi_range"`
	FamilyHistoryScale float64 `yaml:"family_history_scale" json:"family_history_scale" mapstructure:"family_history_scale"`
	Multiplier         float64 `yaml:"multiplier" json:"multiplier" mapstructure:"multiplier"`
}

// RecommendConfig holds the per-category thresholds and the secondary
// feature gates for extra advice.
type RecommendConfig struct {
	MetabolicThreshold float64 `yaml:"metabolic_threshold" json:"metabolic_threshold" mapstructure:"metabolic_threshold"`
	CVDThreshold       float64 `yaml:"cvd_threshold" json:"cvd_threshold" mapstructure:"cvd_threshold"`
	DiabetesThreshold  float64 `yaml:"diabetes_threshold" json:"diabetes_threshold" mapstructure:"diabetes_threshold"`
	CancerThreshold    float64 `yaml:"cancer_threshold" json:"cancer_threshold" mapstructure:"cancer_threshold"`

	BaseAdviceCount   int  `yaml:"base_advice_count" json:"base_advice_count" mapstructure:"base_advice_count"`
	ShowAllCategories bool `yaml:"show_all_categories" json:"show_all_categories" mapstructure:"show_all_categories"`

	OverweightBMI float64 `yaml:"overweight_bmi" json:"overweight_bmi" mapstructure:"overweight_bmi"`
	SmokingAbove  float64 `yaml:"smoking_above" json:"smoking_above" mapstructure:"smoking_above"`
	StressAbove   float64 `yaml:"stress_above" json:"stress_above" mapstructure:"stress_above"`
	SymptomsAbove float64 `yaml:"symptoms_above" json:"symptoms_above" mapstructure:"symptoms_above"`
	AlcoholAbove  float64 `yaml:"alcohol_above" json:"alcohol_above" mapstructure:"alcohol_above"`

	// SpotMas replaces Kalscanner69 when the cancer score is above
	// AdvancedCancerScore and age is above AdvancedCancerAge.
	AdvancedCancerScore float64 `yaml:"advanced_cancer_score" json:"advanced_cancer_score" mapstructure:"advanced_cancer_score"`
	AdvancedCancerAge   float64 `yaml:"advanced_cancer_age" json:"advanced_cancer_age" mapstructure:"advanced_cancer_age"`
}

// TierCutoffs split scores into low (< Moderate), moderate (< High) and high.
type TierCutoffs struct {
	Moderate float64 `yaml:"moderate" json:"moderate" mapstructure:"moderate"`
	High     float64 `yaml:"high" json:"high" mapstructure:"high"`
}
