package assessment

import (
	"github.com/kalgen-innolab/dnacare/internal/config"
	"github.com/kalgen-innolab/dnacare/internal/locale"
	"github.com/kalgen-innolab/dnacare/internal/recommend"
	"github.com/kalgen-innolab/dnacare/internal/scorer"
)

// Report is the localized presentation of a Result.
type Report struct {
	Lang            string           `json:"lang"`
	Title           string           `json:"title"`
	Header          string           `json:"header"`
	Subtext         string           `json:"subtext"`
	Risks           []RiskLine       `json:"risks"`
	RecommendHeader string           `json:"recommendation_header"`
	Recommendations []Recommendation `json:"recommendations"`
	// Note is set when every category is below its threshold.
	Note string `json:"note,omitempty"`
}

// RiskLine is one category in the risk summary. Percent is nil when the
// category was skipped because the condition is already diagnosed.
type RiskLine struct {
	Category scorer.Category `json:"category"`
	Label    string          `json:"label"`
	Percent  *float64        `json:"percent"`
	Display  string          `json:"display"`
	Tier     scorer.Tier     `json:"tier,omitempty"`
	Level    string          `json:"level"`
}

// Recommendation is one localized advice entry.
type Recommendation struct {
	Category scorer.Category `json:"category"`
	Kind     recommend.Kind  `json:"kind"`
	Label    string          `json:"label"`
	Advice   []string        `json:"advice"`
	Product  *locale.Product `json:"product,omitempty"`
}

// BuildReport renders res in the catalog's language.
func BuildReport(res *Result, cfg config.ScoringConfig, cat locale.Catalog) Report {
	rep := Report{
		Lang:            cat.Lang(),
		Title:           cat.Message(locale.MsgTitle),
		Header:          cat.Message(locale.MsgResultHeader),
		Subtext:         cat.ResultSubtext(cfg.Tiers),
		RecommendHeader: cat.Message(locale.MsgRecommendHeader),
	}

	for _, c := range scorer.Categories {
		line := RiskLine{
			Category: c,
			Label:    cat.Category(c),
			Percent:  res.Scores.Percent(c),
			Display:  res.Scores.PercentString(c),
		}
		if t, ok := res.Tiers[c]; ok {
			line.Tier = t
			line.Level = cat.Tier(t)
			line.Display += "%"
		} else {
			line.Level = cat.Message(locale.MsgNotApplicable)
		}
		rep.Risks = append(rep.Risks, line)
	}

	if res.Recommendations.General() {
		rep.Note = cat.Message(locale.MsgLowRiskSuccess)
	}
	for _, e := range res.Recommendations.Entries {
		r := Recommendation{
			Category: e.Category,
			Kind:     e.Kind,
			Label:    cat.Category(e.Category),
			Advice:   make([]string, len(e.Advice)),
		}
		if e.Kind == recommend.KindGeneral {
			r.Label = cat.Message(locale.MsgGeneralMaintenance)
		}
		for i, id := range e.Advice {
			r.Advice[i] = cat.Advice(id)
		}
		if e.Product != "" {
			p := cat.Product(e.Product)
			r.Product = &p
		}
		rep.Recommendations = append(rep.Recommendations, r)
	}
	return rep
}
