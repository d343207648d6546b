package store

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kalgen-innolab/dnacare/internal/features"
	"github.com/kalgen-innolab/dnacare/internal/questionnaire"
	"github.com/kalgen-innolab/dnacare/internal/scorer"
	"github.com/kalgen-innolab/dnacare/internal/submission"
)

var base = time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)

func record(id string, at time.Time, variant string, scores scorer.RiskScores) *submission.Record {
	return &submission.Record{
		ID:          id,
		SubmittedAt: at,
		Locale:      "en",
		Variant:     variant,
		ConfigHash:  "hash-" + variant,
		Answers: questionnaire.Answers{
			Personal: questionnaire.Personal{Name: "Sari " + id, Age: 38, HeightCM: 160, WeightKG: 60},
		},
		Features: features.Features{Age: 38, BMI: 23.44},
		Scores:   scores,
	}
}

func newTestSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func TestSQLite_SaveAndGet(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	r := record("s1", base, "calibrated", scorer.RiskScores{
		scorer.CategoryMetabolic: 0.42,
		scorer.CategoryCVD:       0.18,
	})
	require.NoError(t, s.SaveSubmission(ctx, r))

	got, err := s.GetSubmission(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "s1", got.ID)
	assert.True(t, base.Equal(got.SubmittedAt))
	assert.Equal(t, "Sari s1", got.Answers.Personal.Name)
	assert.InDelta(t, 0.42, got.Scores[scorer.CategoryMetabolic], 1e-9)
	_, ok := got.Scores[scorer.CategoryCancer]
	assert.False(t, ok)
}

func TestSQLite_GetNotFound(t *testing.T) {
	s := newTestSQLite(t)
	_, err := s.GetSubmission(context.Background(), "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLite_DuplicateID(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()
	r := record("dup", base, "calibrated", scorer.RiskScores{})
	require.NoError(t, s.SaveSubmission(ctx, r))
	err := s.SaveSubmission(ctx, r)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert submission dup")
}

func TestSQLite_ListSubmissions(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()
	for i := range 5 {
		variant := "calibrated"
		if i%2 == 1 {
			variant = "linear"
		}
		r := record(fmt.Sprintf("s%d", i), base.Add(time.Duration(i)*time.Hour), variant, scorer.RiskScores{})
		require.NoError(t, s.SaveSubmission(ctx, r))
	}

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"all newest first", Filter{}, []string{"s4", "s3", "s2", "s1", "s0"}},
		{"limit", Filter{Limit: 2}, []string{"s4", "s3"}},
		{"offset", Filter{Limit: 2, Offset: 2}, []string{"s2", "s1"}},
		{"variant", Filter{Variant: "linear"}, []string{"s3", "s1"}},
		{"since", Filter{Since: base.Add(3 * time.Hour)}, []string{"s4", "s3"}},
		{"since in other zone", Filter{Since: base.Add(3 * time.Hour).In(time.FixedZone("WIB", 7*3600))}, []string{"s4", "s3"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.ListSubmissions(ctx, tt.filter)
			require.NoError(t, err)
			ids := make([]string, len(got))
			for i, r := range got {
				ids[i] = r.ID
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestSQLite_Stats(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	require.NoError(t, s.SaveSubmission(ctx, record("a", base, "calibrated", scorer.RiskScores{
		scorer.CategoryMetabolic: 0.2, scorer.CategoryCVD: 0.4,
	})))
	require.NoError(t, s.SaveSubmission(ctx, record("b", base, "calibrated", scorer.RiskScores{
		scorer.CategoryMetabolic: 0.6,
	})))

	st, err := s.Stats(ctx, Filter{})
	require.NoError(t, err)
	assert.Equal(t, 2, st.Count)
	assert.InDelta(t, 0.4, st.Mean[scorer.CategoryMetabolic], 1e-9)
	assert.InDelta(t, 0.4, st.Mean[scorer.CategoryCVD], 1e-9)
	assert.Equal(t, 1, st.Scored[scorer.CategoryCVD])
	assert.Equal(t, 0, st.Scored[scorer.CategoryCancer])
	_, ok := st.Mean[scorer.CategoryCancer]
	assert.False(t, ok)

	empty, err := s.Stats(ctx, Filter{Variant: "linear"})
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Count)
}

func TestSQLite_Ping(t *testing.T) {
	s := newTestSQLite(t)
	assert.NoError(t, s.Ping(context.Background()))
}

func TestSQLite_MigrateIdempotent(t *testing.T) {
	s := newTestSQLite(t)
	assert.NoError(t, s.Migrate(context.Background()))
}

func TestSQLite_ImplementsInterfaces(t *testing.T) {
	var _ Store = (*SQLiteStore)(nil)
	var _ Store = (*PostgresStore)(nil)
	var _ submission.Saver = (*SQLiteStore)(nil)
}
