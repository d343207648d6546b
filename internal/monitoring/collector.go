package monitoring

import (
	"context"
	"sync"
	"time"

	"github.com/rotisserie/eris"

	"github.com/kalgen-innolab/dnacare/internal/scorer"
	"github.com/kalgen-innolab/dnacare/internal/store"
	"github.com/kalgen-innolab/dnacare/internal/submission"
)

// SinkSnapshot is one sink's outcomes since the previous collection.
type SinkSnapshot struct {
	Name     string  `json:"name"`
	Written  int64   `json:"written"`
	Failed   int64   `json:"failed"`
	FailRate float64 `json:"fail_rate"`
	Breaker  string  `json:"breaker"`
}

// MetricsSnapshot holds a point-in-time view of submission health.
type MetricsSnapshot struct {
	// Stored submissions within the lookback window.
	Submissions int                         `json:"submissions"`
	MeanRisk    map[scorer.Category]float64 `json:"mean_risk,omitempty"`

	StoreChecked   bool   `json:"store_checked"`
	StoreReachable bool   `json:"store_reachable"`
	StoreError     string `json:"store_error,omitempty"`

	Sinks []SinkSnapshot `json:"sinks"`

	// Metadata.
	LookbackHours int       `json:"lookback_hours"`
	CollectedAt   time.Time `json:"collected_at"`
}

// StatsQuerier is the part of store.Store the collector reads.
type StatsQuerier interface {
	Ping(ctx context.Context) error
	Stats(ctx context.Context, f store.Filter) (*store.Stats, error)
}

// SinkReporter exposes cumulative sink outcomes. *submission.Dispatcher
// satisfies it.
type SinkReporter interface {
	Stats() []submission.SinkStats
}

// Collector gathers metrics from the store and the sink dispatcher. Sink
// counts are reported as deltas between collections.
type Collector struct {
	store StatsQuerier
	sinks SinkReporter

	mu   sync.Mutex
	last map[string]submission.SinkStats
}

// NewCollector creates a new metrics collector. Either source may be nil.
func NewCollector(st StatsQuerier, sinks SinkReporter) *Collector {
	return &Collector{store: st, sinks: sinks, last: make(map[string]submission.SinkStats)}
}

// Collect gathers a snapshot over the given lookback window. An unreachable
// store is reported in the snapshot, not as an error.
func (c *Collector) Collect(ctx context.Context, lookbackHours int) (*MetricsSnapshot, error) {
	now := time.Now().UTC()
	snap := &MetricsSnapshot{
		LookbackHours: lookbackHours,
		CollectedAt:   now,
	}

	if c.sinks != nil {
		snap.Sinks = c.sinkDeltas(c.sinks.Stats())
	}

	if c.store == nil {
		return snap, nil
	}
	snap.StoreChecked = true
	if err := c.store.Ping(ctx); err != nil {
		snap.StoreError = err.Error()
		return snap, nil
	}
	snap.StoreReachable = true

	st, err := c.store.Stats(ctx, store.Filter{
		Since: now.Add(-time.Duration(lookbackHours) * time.Hour),
	})
	if err != nil {
		return nil, eris.Wrap(err, "monitoring: submission stats")
	}
	snap.Submissions = st.Count
	snap.MeanRisk = st.Mean

	return snap, nil
}

func (c *Collector) sinkDeltas(current []submission.SinkStats) []SinkSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]SinkSnapshot, 0, len(current))
	for _, s := range current {
		prev := c.last[s.Name]
		d := SinkSnapshot{
			Name:    s.Name,
			Written: s.Written - prev.Written,
			Failed:  s.Failed - prev.Failed,
			Breaker: s.Breaker,
		}
		if total := d.Written + d.Failed; total > 0 {
			d.FailRate = float64(d.Failed) / float64(total)
		}
		out = append(out, d)
		c.last[s.Name] = s
	}
	return out
}
