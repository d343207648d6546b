package scorer

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"

	"github.com/kalgen-innolab/dnacare/internal/config"
)

// Tier is a coarse risk band.
type Tier string

const (
	TierLow      Tier = "low"
	TierModerate Tier = "moderate"
	TierHigh     Tier = "high"
)

// Classify places a score into a tier. Cutoffs are inclusive lower bounds.
func Classify(score float64, t config.TierCutoffs) Tier {
	switch {
	case score < t.Moderate:
		return TierLow
	case score < t.High:
		return TierModerate
	default:
		return TierHigh
	}
}

// Tiers classifies every computed score.
func Tiers(scores RiskScores, t config.TierCutoffs) map[Category]Tier {
	out := make(map[Category]Tier, len(scores))
	for c, s := range scores {
		out[c] = Classify(s, t)
	}
	return out
}

// ConfigHash returns a SHA-256 hash of the scoring config for reproducibility.
func ConfigHash(cfg config.ScoringConfig) string {
	data, err := json.Marshal(cfg)
	if err != nil {
		return ""
	}
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:16]) // 32 hex chars
}
