// Package store persists assessed submissions in SQLite or Postgres.
package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rotisserie/eris"

	"github.com/kalgen-innolab/dnacare/internal/scorer"
	"github.com/kalgen-innolab/dnacare/internal/submission"
)

// ErrNotFound is returned when a submission ID is unknown.
var ErrNotFound = eris.New("store: submission not found")

// Filter narrows ListSubmissions and Stats.
type Filter struct {
	Since   time.Time `json:"since,omitempty"`
	Variant string    `json:"variant,omitempty"`
	Limit   int       `json:"limit,omitempty"`
	Offset  int       `json:"offset,omitempty"`
}

// DefaultLimit caps ListSubmissions when Filter.Limit is unset.
const DefaultLimit = 100

func (f Filter) limit() int {
	if f.Limit <= 0 {
		return DefaultLimit
	}
	return f.Limit
}

// Stats aggregates stored submissions. Means skip submissions where the
// category was not scored.
type Stats struct {
	Count int                         `json:"count"`
	Mean  map[scorer.Category]float64 `json:"mean"`
	// Scored counts submissions with a score per category.
	Scored map[scorer.Category]int `json:"scored"`
}

// Store is the submission persistence interface.
type Store interface {
	SaveSubmission(ctx context.Context, r *submission.Record) error
	GetSubmission(ctx context.Context, id string) (*submission.Record, error)
	ListSubmissions(ctx context.Context, f Filter) ([]submission.Record, error)
	Stats(ctx context.Context, f Filter) (*Stats, error)

	Migrate(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}

// riskArgs returns the four nullable risk columns in category order.
func riskArgs(scores scorer.RiskScores) []any {
	out := make([]any, len(scorer.Categories))
	for i, c := range scorer.Categories {
		if v, ok := scores.Get(c); ok {
			out[i] = v
		}
	}
	return out
}

func decodeRecord(data []byte) (*submission.Record, error) {
	var r submission.Record
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, eris.Wrap(err, "store: unmarshal record")
	}
	return &r, nil
}

func newStats() *Stats {
	return &Stats{
		Mean:   make(map[scorer.Category]float64, len(scorer.Categories)),
		Scored: make(map[scorer.Category]int, len(scorer.Categories)),
	}
}

const statsSelect = `SELECT COUNT(*),
	AVG(metabolic_risk), COUNT(metabolic_risk),
	AVG(cvd_risk), COUNT(cvd_risk),
	AVG(diabetes_risk), COUNT(diabetes_risk),
	AVG(cancer_risk), COUNT(cancer_risk)
	FROM submissions WHERE 1=1`

// fillStats copies scanned aggregates; means are nil when nothing was
// scored.
func fillStats(st *Stats, means []*float64, counts []int) {
	for i, c := range scorer.Categories {
		st.Scored[c] = counts[i]
		if means[i] != nil {
			st.Mean[c] = *means[i]
		}
	}
}
