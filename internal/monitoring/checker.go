// Package monitoring watches submission persistence and posts alerts to a
// webhook when sinks fail or the store is unreachable.
package monitoring

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kalgen-innolab/dnacare/internal/config"
)

const defaultCheckInterval = 5 * time.Minute

// Checker evaluates persistence health on a fixed interval. An alert is
// delivered once when it first fires and again only after it has cleared.
type Checker struct {
	collector *Collector
	alerter   *Alerter
	cfg       config.MonitoringConfig

	mu     sync.Mutex
	active map[string]struct{}
}

// NewChecker creates a background persistence checker.
func NewChecker(collector *Collector, alerter *Alerter, cfg config.MonitoringConfig) *Checker {
	return &Checker{
		collector: collector,
		alerter:   alerter,
		cfg:       cfg,
		active:    make(map[string]struct{}),
	}
}

// Run checks on every tick until ctx is cancelled.
func (c *Checker) Run(ctx context.Context) {
	interval := time.Duration(c.cfg.CheckIntervalSecs) * time.Second
	if interval <= 0 {
		interval = defaultCheckInterval
	}
	zap.L().Info("monitoring: persistence checker started",
		zap.Duration("interval", interval),
		zap.Int("lookback_hours", c.cfg.LookbackWindowHours),
		zap.Bool("webhook", c.cfg.WebhookURL != ""),
	)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			zap.L().Info("monitoring: persistence checker stopped")
			return
		case <-ticker.C:
			c.Check(ctx)
		}
	}
}

// Check runs one cycle. It returns every alert currently firing; only the
// ones that were not firing on the previous cycle are sent.
func (c *Checker) Check(ctx context.Context) []Alert {
	snap, err := c.collector.Collect(ctx, c.cfg.LookbackWindowHours)
	if err != nil {
		zap.L().Error("monitoring: collect failed", zap.Error(err))
		return nil
	}

	var failed int64
	for _, s := range snap.Sinks {
		failed += s.Failed
	}
	zap.L().Debug("monitoring: persistence snapshot",
		zap.Int("submissions", snap.Submissions),
		zap.Int("sinks", len(snap.Sinks)),
		zap.Int64("sink_failures", failed),
		zap.Bool("store_reachable", snap.StoreReachable),
	)

	alerts := c.alerter.Evaluate(snap)
	fresh := c.transition(alerts)
	if len(fresh) > 0 {
		sent := c.alerter.SendAlerts(ctx, fresh)
		zap.L().Warn("monitoring: persistence alerts raised",
			zap.Int("firing", len(alerts)),
			zap.Int("new", len(fresh)),
			zap.Int("sent", sent),
		)
	}
	return alerts
}

// transition records the firing set and returns alerts that were not
// firing before. Alerts absent from this cycle are cleared.
func (c *Checker) transition(alerts []Alert) []Alert {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := make(map[string]struct{}, len(alerts))
	var fresh []Alert
	for _, a := range alerts {
		k := alertKey(a)
		next[k] = struct{}{}
		if _, ok := c.active[k]; !ok {
			fresh = append(fresh, a)
		}
	}
	for k := range c.active {
		if _, ok := next[k]; !ok {
			zap.L().Info("monitoring: alert cleared", zap.String("alert", k))
		}
	}
	c.active = next
	return fresh
}

func alertKey(a Alert) string {
	if sink, ok := a.Details["sink"].(string); ok {
		return string(a.Type) + ":" + sink
	}
	return string(a.Type)
}
