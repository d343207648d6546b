package features

import q "github.com/kalgen-innolab/dnacare/internal/questionnaire"

const (
	noConditionScore = 0.1
	conditionDivisor = 3.0
)

var intensityMET = map[q.Intensity]float64{
	q.IntensityLight:        2.5,
	q.IntensityMedium:       4.5,
	q.IntensityVigorous:     7.0,
	q.IntensityVeryVigorous: 10.0,
}

var sessionsPerWeek = map[q.ExerciseFrequency]float64{
	q.FrequencyNever:        0,
	q.Frequency1To2PerWeek:  1.5,
	q.Frequency3To4PerWeek:  3.5,
	q.Frequency5PlusPerWeek: 5.5,
}

var sessionHours = map[q.ExerciseDuration]float64{
	q.DurationUnder15m: 0.25,
	q.Duration15To30m:  0.375,
	q.Duration30To45m:  0.625,
	q.Duration45To60m:  0.875,
	q.DurationOver60m:  1.25,
}

// Too little and too much sleep both score below the optimal bucket.
var sleepScores = map[q.SleepDuration]float64{
	q.SleepUnder5h: 0.2,
	q.Sleep5To7h:   0.6,
	q.Sleep7To9h:   1.0,
	q.SleepOver9h:  0.6,
}

var stressScores = map[q.StressLevel]float64{
	q.StressLow:      0.2,
	q.StressModerate: 0.4,
	q.StressHigh:     0.7,
	q.StressVeryHigh: 1.0,
}

var smokingRisks = map[q.SmokingStatus]float64{
	q.SmokingNone:    0.0,
	q.SmokingPassive: 0.3,
	q.SmokingActive:  1.0,
}

// Representative mg/dL per bucket.
var cholesterolMgDL = map[q.CholesterolLevel]float64{
	q.CholesterolLow:     180,
	q.CholesterolMedium:  220,
	q.CholesterolHigh:    260,
	q.CholesterolUnknown: 200,
}

var bpMedication = map[q.BPMedication]float64{
	q.BPMedicationNo:         0,
	q.BPMedicationNotRoutine: 0.5,
	q.BPMedicationRoutine:    1,
}

var hba1cPercent = map[q.LabLevel]float64{
	q.LabNormal:      5.4,
	q.LabPrediabetes: 6.0,
	q.LabDiabetes:    7.5,
	q.LabUnknown:     5.7,
}

var glucoseMgDL = map[q.LabLevel]float64{
	q.LabNormal:      90,
	q.LabPrediabetes: 112,
	q.LabDiabetes:    140,
	q.LabUnknown:     100,
}

var severity = map[q.Frequency]float64{
	q.FreqNever:     0,
	q.FreqRarely:    0.25,
	q.FreqSometimes: 0.5,
	q.FreqOften:     0.75,
	q.FreqAlways:    1.0,
}

var conditionWeights = map[q.Condition]float64{
	q.ConditionHypertension:    0.7,
	q.ConditionHighCholesterol: 0.6,
	q.ConditionDiabetes:        0.8,
	q.ConditionCardiovascular:  0.9,
	q.ConditionCancer:          0.9,
	q.ConditionAutoimmune:      0.7,
	q.ConditionInflammatory:    0.6,
	q.ConditionDigestive:       0.5,
	q.ConditionSkin:            0.4,
}

var familyHistory = map[q.FamilyHistory]float64{
	q.FamilyNone:        0,
	q.FamilyGrandparent: 1,
	q.FamilyParent:      2,
	q.FamilySibling:     3,
}
