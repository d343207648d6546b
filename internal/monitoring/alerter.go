package monitoring

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/kalgen-innolab/dnacare/internal/config"
)

// AlertType identifies the kind of alert.
type AlertType string

const (
	AlertSinkFailureRate  AlertType = "sink_failure_rate"
	AlertBreakerOpen      AlertType = "sink_breaker_open"
	AlertStoreUnavailable AlertType = "store_unavailable"
)

const defaultMinWrites = 5

// Alert represents a single alert to be sent.
type Alert struct {
	Type      AlertType      `json:"type"`
	Severity  string         `json:"severity"`
	Message   string         `json:"message"`
	Details   map[string]any `json:"details,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// Alerter evaluates a MetricsSnapshot against configured thresholds
// and sends alerts via webhook when thresholds are breached.
type Alerter struct {
	cfg    config.MonitoringConfig
	client *http.Client
}

// NewAlerter creates a new Alerter with the given monitoring config.
func NewAlerter(cfg config.MonitoringConfig) *Alerter {
	return &Alerter{
		cfg:    cfg,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// Evaluate checks the snapshot against thresholds and returns any alerts.
func (a *Alerter) Evaluate(snap *MetricsSnapshot) []Alert {
	var alerts []Alert
	now := time.Now().UTC()

	minWrites := int64(a.cfg.MinWrites)
	if minWrites <= 0 {
		minWrites = defaultMinWrites
	}

	for _, s := range snap.Sinks {
		attempted := s.Written + s.Failed
		if attempted >= minWrites && s.FailRate > a.cfg.FailureRateThreshold {
			alerts = append(alerts, Alert{
				Type:     AlertSinkFailureRate,
				Severity: "high",
				Message: fmt.Sprintf(
					"Sink %s failure rate %.1f%% exceeds threshold %.1f%% (%d failed / %d attempted)",
					s.Name, s.FailRate*100, a.cfg.FailureRateThreshold*100, s.Failed, attempted,
				),
				Details: map[string]any{
					"sink":         s.Name,
					"failure_rate": s.FailRate,
					"threshold":    a.cfg.FailureRateThreshold,
					"failed":       s.Failed,
					"attempted":    attempted,
				},
				Timestamp: now,
			})
		}
		if s.Breaker == "open" {
			alerts = append(alerts, Alert{
				Type:      AlertBreakerOpen,
				Severity:  "high",
				Message:   fmt.Sprintf("Sink %s breaker is open; submissions are not reaching it", s.Name),
				Details:   map[string]any{"sink": s.Name},
				Timestamp: now,
			})
		}
	}

	if snap.StoreChecked && !snap.StoreReachable {
		alerts = append(alerts, Alert{
			Type:      AlertStoreUnavailable,
			Severity:  "critical",
			Message:   "Submission store is unreachable",
			Details:   map[string]any{"error": snap.StoreError},
			Timestamp: now,
		})
	}

	return alerts
}

// SendAlerts delivers alerts to the configured webhook URL.
// Returns the number of alerts successfully sent.
func (a *Alerter) SendAlerts(ctx context.Context, alerts []Alert) int {
	if a.cfg.WebhookURL == "" || len(alerts) == 0 {
		return 0
	}

	sent := 0
	for _, alert := range alerts {
		if err := a.sendWebhook(ctx, alert); err != nil {
			zap.L().Error("monitoring: failed to send alert",
				zap.String("type", string(alert.Type)),
				zap.Error(err),
			)
			continue
		}
		zap.L().Info("monitoring: alert sent",
			zap.String("type", string(alert.Type)),
			zap.String("severity", alert.Severity),
		)
		sent++
	}
	return sent
}

// sendWebhook posts a single alert to the webhook URL.
func (a *Alerter) sendWebhook(ctx context.Context, alert Alert) error {
	payload, err := json.Marshal(alert)
	if err != nil {
		return eris.Wrap(err, "monitoring: marshal alert")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.cfg.WebhookURL, bytes.NewReader(payload))
	if err != nil {
		return eris.Wrap(err, "monitoring: create webhook request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return eris.Wrap(err, "monitoring: webhook request")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode >= 400 {
		return eris.Errorf("monitoring: webhook returned status %d", resp.StatusCode)
	}
	return nil
}
