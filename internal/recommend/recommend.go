// Package recommend turns risk scores into advice entries and follow-up
// products. Output is language neutral; see package locale for text.
package recommend

import (
	"github.com/kalgen-innolab/dnacare/internal/config"
	"github.com/kalgen-innolab/dnacare/internal/features"
	"github.com/kalgen-innolab/dnacare/internal/scorer"
)

// CategoryGeneral keys the entry emitted when no category crosses its
// threshold.
const CategoryGeneral scorer.Category = "general"

// Kind describes why an entry was produced.
type Kind string

const (
	KindSpecific      Kind = "specific"
	KindMonitor       Kind = "monitor"
	KindNotApplicable Kind = "not_applicable"
	KindGeneral       Kind = "general"
)

// Entry is the advice for one category.
type Entry struct {
	Category scorer.Category `json:"category"`
	Kind     Kind            `json:"kind"`
	Advice   []AdviceID      `json:"advice"`
	Product  ProductKey      `json:"product,omitempty"`
}

// Set is an ordered list of entries in category display order.
type Set struct {
	Entries []Entry `json:"entries"`
}

// Find returns the entry for c.
func (s Set) Find(c scorer.Category) (Entry, bool) {
	for _, e := range s.Entries {
		if e.Category == c {
			return e, true
		}
	}
	return Entry{}, false
}

// Categories returns the categories that got specific advice.
func (s Set) Categories() []scorer.Category {
	var out []scorer.Category
	for _, e := range s.Entries {
		if e.Kind == KindSpecific {
			out = append(out, e.Category)
		}
	}
	return out
}

// General reports whether the set is the single all-clear entry.
func (s Set) General() bool {
	return len(s.Entries) == 1 && s.Entries[0].Kind == KindGeneral
}

// Threshold returns the inclusive threshold for c.
func Threshold(c scorer.Category, rc config.RecommendConfig) float64 {
	switch c {
	case scorer.CategoryMetabolic:
		return rc.MetabolicThreshold
	case scorer.CategoryCVD:
		return rc.CVDThreshold
	case scorer.CategoryDiabetes:
		return rc.DiabetesThreshold
	case scorer.CategoryCancer:
		return rc.CancerThreshold
	}
	return 1
}

// Generate builds the recommendation set. A category at or above its
// threshold gets its base advice plus gated extras. Without show-all, an
// empty result collapses into one general entry.
func Generate(scores scorer.RiskScores, f features.Features, cfg config.ScoringConfig) Set {
	rc := cfg.Recommend
	var set Set
	for _, c := range scorer.Categories {
		score, ok := scores.Get(c)
		switch {
		case ok && score >= Threshold(c, rc):
			set.Entries = append(set.Entries, Entry{
				Category: c,
				Kind:     KindSpecific,
				Advice:   specificAdvice(c, f, rc),
				Product:  SelectProduct(c, score, f, rc),
			})
		case !rc.ShowAllCategories:
		case ok:
			set.Entries = append(set.Entries, Entry{
				Category: c,
				Kind:     KindMonitor,
				Advice:   clone(monitorAdvice),
				Product:  ProductGeneralScreening,
			})
		default:
			set.Entries = append(set.Entries, Entry{
				Category: c,
				Kind:     KindNotApplicable,
				Advice:   clone(notApplicableAdvice),
				Product:  ProductGeneralScreening,
			})
		}
	}
	if len(set.Entries) == 0 {
		set.Entries = []Entry{{
			Category: CategoryGeneral,
			Kind:     KindGeneral,
			Advice:   clone(generalAdvice),
		}}
	}
	return set
}

// SelectProduct picks the follow-up product for a category that crossed
// its threshold.
func SelectProduct(c scorer.Category, score float64, f features.Features, rc config.RecommendConfig) ProductKey {
	a, ok := catalog[c]
	if !ok {
		return ProductGeneralScreening
	}
	if c == scorer.CategoryCancer && score > rc.AdvancedCancerScore && f.Age > rc.AdvancedCancerAge {
		return ProductSpotMas
	}
	return a.product
}

func specificAdvice(c scorer.Category, f features.Features, rc config.RecommendConfig) []AdviceID {
	a := catalog[c]
	n := min(rc.BaseAdviceCount, len(a.base))
	out := make([]AdviceID, 0, n+len(a.extras))
	out = append(out, a.base[:n]...)
	for _, e := range a.extras {
		if e.gate.open(f, rc) {
			out = append(out, e.id)
		}
	}
	return out
}

func (g gate) open(f features.Features, rc config.RecommendConfig) bool {
	switch g {
	case gateOverweight:
		return f.BMI > rc.OverweightBMI
	case gateSmoking:
		return f.SmokingRisk > rc.SmokingAbove
	case gateStress:
		return f.StressScore > rc.StressAbove
	case gateSymptoms:
		return f.DiabetesSymptoms > rc.SymptomsAbove
	case gateAlcohol:
		return f.AlcoholRisk > rc.AlcoholAbove
	}
	return false
}

func clone(ids []AdviceID) []AdviceID {
	return append([]AdviceID(nil), ids...)
}
