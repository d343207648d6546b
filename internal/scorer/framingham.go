package scorer

import (
	"math"

	"github.com/kalgen-innolab/dnacare/internal/config"
	"github.com/kalgen-innolab/dnacare/internal/features"
)

// CVDPoints is a simplified Framingham score without systolic pressure or
// HDL. Blood pressure medication stands in for treated hypertension.
func CVDPoints(f features.Features, c config.CVDConfig) float64 {
	male := f.Male()
	var points float64

	for _, b := range c.AgeBands {
		if f.Age >= b.MinAge {
			points += bySex(male, b.Male, b.Female)
			break
		}
	}

	var chol float64
	for _, b := range c.CholesterolBands {
		if f.TotalCholesterol >= b.MinMgDL {
			chol = bySex(male, b.Male, b.Female)
			break
		}
	}
	if c.CholesterolOlderAdjust != 0 && f.Age >= c.OlderAge {
		chol += c.CholesterolOlderAdjust
	}
	points += chol

	if f.BPMedication > c.BPMedicationAbove {
		points += c.BPMedicationPoints
	}
	if f.SmokingRisk > c.SmokingAbove {
		points += bySex(male, c.SmokerMalePoints, c.SmokerFemalePoints)
	}
	if c.DiabetesPoints != 0 && diabetic(f, c) {
		points += c.DiabetesPoints
	}
	return points
}

// CVDProbability converts points with the configured method.
func CVDProbability(points float64, c config.CVDConfig) float64 {
	if c.Method == config.CVDMethodLinear {
		return math.Min(points/c.Divisor, 1)
	}
	p := 1 - math.Exp(-c.Rate*(points+c.Offset))
	return clamp(p, c.ProbabilityBounds)
}

func diabetic(f features.Features, c config.CVDConfig) bool {
	return f.HbA1c >= c.DiabetesHbA1c || f.FastingGlucose >= c.DiabetesGlucose || f.HasDiabetes
}

func bySex(male bool, m, fe float64) float64 {
	if male {
		return m
	}
	return fe
}
