package main

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/kalgen-innolab/dnacare/internal/assessment"
	"github.com/kalgen-innolab/dnacare/internal/config"
	"github.com/kalgen-innolab/dnacare/internal/scorer"
	"github.com/kalgen-innolab/dnacare/internal/store"
	"github.com/kalgen-innolab/dnacare/internal/submission"
)

// appEnv holds the store, sinks and assessment service shared by the
// assess, batch and serve commands.
type appEnv struct {
	Store      store.Store // nil in score-only mode
	Dispatcher *submission.Dispatcher
	Service    *assessment.Service
}

// Close releases the sinks and the store.
func (e *appEnv) Close() {
	if e.Dispatcher != nil {
		if err := e.Dispatcher.Close(); err != nil {
			zap.L().Warn("close sinks", zap.Error(err))
		}
	}
	if e.Store != nil {
		_ = e.Store.Close()
	}
}

func initStore(ctx context.Context) (store.Store, error) {
	switch cfg.Store.Driver {
	case "sqlite":
		dsn := cfg.Store.DatabaseURL
		if dsn == "" {
			dsn = "dnacare.db"
		}
		return store.NewSQLite(dsn)
	case "postgres":
		return store.NewPostgres(ctx, cfg.Store.DatabaseURL, &store.PoolConfig{
			MaxConns: cfg.Store.MaxConns,
			MinConns: cfg.Store.MinConns,
		})
	default:
		return nil, eris.Errorf("unsupported store driver: %s", cfg.Store.Driver)
	}
}

func initScoring() (config.ScoringConfig, error) {
	sc, err := scorer.Resolve(cfg.Scoring)
	if err != nil {
		return config.ScoringConfig{}, eris.Wrap(err, "resolve scoring config")
	}
	return sc, nil
}

func usesStore() bool {
	for _, s := range cfg.Submissions.Sinks {
		if s == submission.SinkStore {
			return true
		}
	}
	return false
}

// initEnv builds the environment for mode ("score", "persist" or "serve").
// In score mode nothing is opened and Submit only scores. Callers should
// defer env.Close().
func initEnv(ctx context.Context, mode string) (*appEnv, error) {
	if err := cfg.Validate(mode); err != nil {
		return nil, err
	}

	sc, err := initScoring()
	if err != nil {
		return nil, err
	}

	env := &appEnv{}
	if mode == "score" {
		env.Service = assessment.NewService(sc)
		return env, nil
	}

	// serve always needs the store for lookups.
	if mode == "serve" || usesStore() {
		st, err := initStore(ctx)
		if err != nil {
			return nil, err
		}
		if err := st.Migrate(ctx); err != nil {
			_ = st.Close()
			return nil, eris.Wrap(err, "migrate store")
		}
		env.Store = st
	}

	var saver submission.Saver
	if env.Store != nil {
		saver = env.Store
	}
	sinks, err := submission.Build(cfg, saver)
	if err != nil {
		env.Close()
		return nil, err
	}
	env.Dispatcher = submission.NewDispatcher(cfg.Retry, sinks...)
	env.Service = assessment.NewService(sc, assessment.WithWriter(env.Dispatcher))

	zap.L().Info("assessment environment ready",
		zap.String("variant", sc.Variant),
		zap.String("config_hash", env.Service.Hash()),
		zap.Strings("sinks", env.Dispatcher.Names()),
	)
	return env, nil
}
