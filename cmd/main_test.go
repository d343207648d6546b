package main

import (
	"os"
	"testing"

	"go.uber.org/zap"

	"github.com/kalgen-innolab/dnacare/internal/config"
)

func TestMain(m *testing.M) {
	zap.ReplaceGlobals(zap.NewNop())
	cfg = &config.Config{
		Store:       config.StoreConfig{Driver: "sqlite"},
		Scoring:     config.ScoringSettings{Variant: config.VariantCalibrated},
		Submissions: config.SubmissionsConfig{Sinks: []string{"store"}, XLSXSheet: "Submissions"},
		Retry:       config.RetryConfig{MaxAttempts: 1, BreakerThreshold: 5, BreakerCooldownS: 30},
		Batch:       config.BatchConfig{Concurrency: 4},
		Server:      config.ServerConfig{Port: 8080, AllowedOrigins: []string{"*"}},
	}
	os.Exit(m.Run())
}
