// Package locale resolves display strings for assessment output. The
// engine packages emit stable keys; everything user facing is looked up
// here per language.
package locale

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/language"

	"github.com/kalgen-innolab/dnacare/internal/config"
	"github.com/kalgen-innolab/dnacare/internal/recommend"
	"github.com/kalgen-innolab/dnacare/internal/scorer"
)

// Supported languages, English first so it wins on no match.
var Supported = []language.Tag{language.English, language.Indonesian}

var matcher = language.NewMatcher(Supported)

// Message keys for free-standing strings.
const (
	MsgTitle              = "title"
	MsgResultHeader       = "result_header"
	MsgResultSubtext      = "result_subtext"
	MsgRecommendHeader    = "recommendation_header"
	MsgNotApplicable      = "risk_na"
	MsgLowRiskSuccess     = "low_risk_success"
	MsgGeneralMaintenance = "general_maintenance"
	MsgMandatoryFields    = "mandatory_fields_error"
	MsgSaveError          = "save_error"
	MsgInternalError      = "internal_error"
	MsgMoreInformation    = "check_promo"
)

// Product is the localized follow-up product card.
type Product struct {
	Key     recommend.ProductKey `json:"key"`
	Caption string               `json:"caption"`
	Link    string               `json:"link"`
}

type texts struct {
	messages   map[string]string
	categories map[scorer.Category]string
	tiers      map[scorer.Tier]string
	advice     map[recommend.AdviceID]string
	products   map[recommend.ProductKey]string
	fields     map[string]string
}

// Catalog holds the strings for one language.
type Catalog struct {
	Tag language.Tag
	t   *texts
}

var catalogs = map[string]*texts{
	"en": english,
	"id": indonesian,
}

// Match picks the best supported language for the given preferences. Each
// preference may be a bare code ("id") or an Accept-Language header value.
// Unparseable input is skipped; no match yields English.
func Match(prefs ...string) language.Tag {
	var tags []language.Tag
	for _, p := range prefs {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		parsed, _, err := language.ParseAcceptLanguage(p)
		if err != nil {
			continue
		}
		tags = append(tags, parsed...)
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return Supported[0]
	}
	return Supported[idx]
}

// For returns the catalog for tag, falling back to English.
func For(tag language.Tag) Catalog {
	base, _ := tag.Base()
	if t, ok := catalogs[base.String()]; ok {
		return Catalog{Tag: tag, t: t}
	}
	return Catalog{Tag: language.English, t: english}
}

// Lookup matches prefs and returns the catalog.
func Lookup(prefs ...string) Catalog {
	return For(Match(prefs...))
}

// Lang returns the two-letter language code.
func (c Catalog) Lang() string {
	base, _ := c.Tag.Base()
	return base.String()
}

// Message returns a free-standing string, or the key when missing.
func (c Catalog) Message(key string) string {
	return pick(c.t.messages, english.messages, key, key)
}

// Category returns the display label of a risk category.
func (c Catalog) Category(cat scorer.Category) string {
	return pick(c.t.categories, english.categories, cat, string(cat))
}

// Tier returns the display label of a risk tier.
func (c Catalog) Tier(t scorer.Tier) string {
	return pick(c.t.tiers, english.tiers, t, string(t))
}

// Advice returns the text of an advice item.
func (c Catalog) Advice(id recommend.AdviceID) string {
	return pick(c.t.advice, english.advice, id, string(id))
}

// Product returns the caption and contact link for a product.
func (c Catalog) Product(p recommend.ProductKey) Product {
	return Product{
		Key:     p,
		Caption: pick(c.t.products, english.products, p, string(p)),
		Link:    contactLinks[p],
	}
}

// ResultSubtext describes the tier cutoffs in percent.
func (c Catalog) ResultSubtext(t config.TierCutoffs) string {
	m, h := t.Moderate*100, t.High*100
	return fmt.Sprintf(c.Message(MsgResultSubtext), m, m, h, h)
}

// Field returns the form label of a validated field.
func (c Catalog) Field(name string) string {
	return pick(c.t.fields, english.fields, name, name)
}

// MandatoryFields formats the missing-field error for the given field names.
func (c Catalog) MandatoryFields(fields []string) string {
	labels := make([]string, len(fields))
	for i, f := range fields {
		labels[i] = c.Field(f)
	}
	return fmt.Sprintf(c.Message(MsgMandatoryFields), strings.Join(labels, ", "))
}

// Missing lists keys in the English catalog that lang lacks, plus advice
// and product keys the generator can emit but English lacks.
func Missing(lang string) []string {
	t, ok := catalogs[lang]
	if !ok {
		return []string{"language " + lang}
	}
	var out []string
	for _, id := range recommend.AllAdvice() {
		if _, ok := t.advice[id]; !ok {
			out = append(out, "advice "+string(id))
		}
	}
	for _, p := range recommend.Products {
		if _, ok := t.products[p]; !ok {
			out = append(out, "product "+string(p))
		}
	}
	for _, cat := range scorer.Categories {
		if _, ok := t.categories[cat]; !ok {
			out = append(out, "category "+string(cat))
		}
	}
	for k := range english.messages {
		if _, ok := t.messages[k]; !ok {
			out = append(out, "message "+k)
		}
	}
	slices.Sort(out)
	return out
}

func pick[K comparable](m, fallback map[K]string, key K, def string) string {
	if s, ok := m[key]; ok {
		return s
	}
	if s, ok := fallback[key]; ok {
		return s
	}
	return def
}
