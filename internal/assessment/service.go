// Package assessment runs a questionnaire through validation, feature
// extraction, scoring and recommendation, and hands accepted submissions
// to the configured sinks.
package assessment

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/kalgen-innolab/dnacare/internal/config"
	"github.com/kalgen-innolab/dnacare/internal/features"
	"github.com/kalgen-innolab/dnacare/internal/locale"
	"github.com/kalgen-innolab/dnacare/internal/questionnaire"
	"github.com/kalgen-innolab/dnacare/internal/recommend"
	"github.com/kalgen-innolab/dnacare/internal/scorer"
	"github.com/kalgen-innolab/dnacare/internal/submission"
)

// Result is the outcome of one assessment.
type Result struct {
	ID              string                          `json:"id,omitempty"`
	SubmittedAt     time.Time                       `json:"timestamp"`
	Features        features.Features               `json:"features"`
	Scores          scorer.RiskScores               `json:"scores"`
	Tiers           map[scorer.Category]scorer.Tier `json:"tiers"`
	Recommendations recommend.Set                   `json:"recommendations"`
	Report          Report                          `json:"report"`

	answers questionnaire.Answers
}

// PersistError reports that a scored submission could not be written.
// The Result returned alongside it is still valid.
type PersistError struct {
	ID  string
	Err error
}

func (e *PersistError) Error() string {
	return "assessment: persist submission " + e.ID + ": " + e.Err.Error()
}

func (e *PersistError) Unwrap() error { return e.Err }

// Writer receives accepted submissions. *submission.Dispatcher satisfies it.
type Writer interface {
	Write(ctx context.Context, r *submission.Record) error
}

// Service evaluates questionnaires against one scoring config.
type Service struct {
	cfg    config.ScoringConfig
	hash   string
	writer Writer
	now    func() time.Time
	newID  func() string
}

// Option configures a Service.
type Option func(*Service)

// WithWriter sets where Submit persists records. Without one Submit only
// scores.
func WithWriter(w Writer) Option {
	return func(s *Service) { s.writer = w }
}

// WithClock overrides the submission timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDGenerator overrides submission ID generation.
func WithIDGenerator(fn func() string) Option {
	return func(s *Service) { s.newID = fn }
}

// NewService creates a Service. cfg is expected to have passed
// scorer.ValidateConfig.
func NewService(cfg config.ScoringConfig, opts ...Option) *Service {
	s := &Service{
		cfg:   cfg,
		hash:  scorer.ConfigHash(cfg),
		now:   time.Now,
		newID: func() string { return uuid.New().String() },
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Config returns the scoring config in use.
func (s *Service) Config() config.ScoringConfig { return s.cfg }

// Hash returns the config hash stored with every submission.
func (s *Service) Hash() string { return s.hash }

// Evaluate scores answers without persisting. langs are language
// preferences for the report, most preferred first. A validation failure
// is returned as a wrapped *questionnaire.ValidationError.
func (s *Service) Evaluate(a *questionnaire.Answers, langs ...string) (*Result, error) {
	if a == nil {
		return nil, eris.New("assessment: nil answers")
	}
	ans := *a
	questionnaire.Normalize(&ans)
	if err := questionnaire.Validate(&ans); err != nil {
		return nil, eris.Wrap(err, "assessment: validate answers")
	}

	f, err := features.Extract(&ans)
	if err != nil {
		return nil, eris.Wrap(err, "assessment: extract features")
	}

	scores := scorer.Score(f, s.cfg)
	res := &Result{
		SubmittedAt:     ans.SubmittedAt,
		Features:        f,
		Scores:          scores,
		Tiers:           scorer.Tiers(scores, s.cfg.Tiers),
		Recommendations: recommend.Generate(scores, f, s.cfg),
		answers:         ans,
	}
	res.Report = BuildReport(res, s.cfg, locale.Lookup(langs...))
	return res, nil
}

// Submit evaluates answers, assigns an ID and timestamp, and writes the
// record. When writing fails the Result is returned together with a
// *PersistError.
func (s *Service) Submit(ctx context.Context, a *questionnaire.Answers, langs ...string) (*Result, error) {
	res, err := s.Evaluate(a, langs...)
	if err != nil {
		return nil, err
	}

	res.ID = s.newID()
	if res.SubmittedAt.IsZero() {
		res.SubmittedAt = s.now().UTC()
	}
	res.answers.SubmittedAt = res.SubmittedAt

	if s.writer == nil {
		return res, nil
	}

	rec := s.Record(res, res.Report.Lang)
	if err := s.writer.Write(ctx, rec); err != nil {
		zap.L().Error("submission not persisted",
			zap.String("id", res.ID),
			zap.String("variant", s.cfg.Variant),
			zap.Any("scores", res.Scores),
			zap.Error(err),
		)
		return res, &PersistError{ID: res.ID, Err: err}
	}

	zap.L().Info("submission persisted",
		zap.String("id", res.ID),
		zap.String("variant", s.cfg.Variant),
		zap.Strings("recommended", categoryNames(res.Recommendations.Categories())),
	)
	return res, nil
}

// Record converts a result to its persisted form.
func (s *Service) Record(res *Result, lang string) *submission.Record {
	return &submission.Record{
		ID:              res.ID,
		SubmittedAt:     res.SubmittedAt,
		Locale:          lang,
		Variant:         s.cfg.Variant,
		ConfigHash:      s.hash,
		Answers:         res.answers,
		Features:        res.Features,
		Scores:          res.Scores,
		Tiers:           res.Tiers,
		Recommendations: res.Recommendations,
	}
}

// InvalidFields returns the failing field names when err is a validation
// failure.
func InvalidFields(err error) ([]string, bool) {
	var ve *questionnaire.ValidationError
	if errors.As(err, &ve) {
		return ve.Fields, true
	}
	return nil, false
}

func categoryNames(cs []scorer.Category) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = string(c)
	}
	return out
}
