package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/kalgen-innolab/dnacare/internal/submission"
)

// Pool is the subset of *pgxpool.Pool the store uses. pgxmock satisfies it.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool Pool
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	maxConns := int32(10)
	minConns := int32(2)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool}, nil
}

// NewPostgresWithPool wraps an existing pool.
func NewPostgresWithPool(pool Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS submissions (
	id             TEXT PRIMARY KEY,
	submitted_at   TIMESTAMPTZ NOT NULL,
	locale         TEXT NOT NULL,
	variant        TEXT NOT NULL,
	config_hash    TEXT NOT NULL,
	name           TEXT NOT NULL,
	bmi            DOUBLE PRECISION NOT NULL,
	metabolic_risk DOUBLE PRECISION,
	cvd_risk       DOUBLE PRECISION,
	diabetes_risk  DOUBLE PRECISION,
	cancer_risk    DOUBLE PRECISION,
	record         JSONB NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_submissions_submitted_at ON submissions(submitted_at DESC);
CREATE INDEX IF NOT EXISTS idx_submissions_variant ON submissions(variant);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return eris.Wrap(s.pool.Ping(ctx), "postgres: ping")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) SaveSubmission(ctx context.Context, r *submission.Record) error {
	data, err := json.Marshal(r)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal record")
	}
	args := []any{
		r.ID, r.SubmittedAt.UTC(), r.Locale, r.Variant, r.ConfigHash,
		r.Answers.Personal.Name, r.Features.BMI,
	}
	args = append(args, riskArgs(r.Scores)...)
	args = append(args, data)

	_, err = s.pool.Exec(ctx,
		`INSERT INTO submissions (id, submitted_at, locale, variant, config_hash, name, bmi,
			metabolic_risk, cvd_risk, diabetes_risk, cancer_risk, record)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		args...,
	)
	return eris.Wrapf(err, "postgres: insert submission %s", r.ID)
}

func (s *PostgresStore) GetSubmission(ctx context.Context, id string) (*submission.Record, error) {
	var data []byte
	err := s.pool.QueryRow(ctx, `SELECT record FROM submissions WHERE id = $1`, id).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, eris.Wrapf(ErrNotFound, "id %s", id)
	}
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: get submission %s", id)
	}
	return decodeRecord(data)
}

func (s *PostgresStore) where(f Filter) (string, []any) {
	var query string
	var args []any
	if !f.Since.IsZero() {
		args = append(args, f.Since.UTC())
		query += fmt.Sprintf(` AND submitted_at >= $%d`, len(args))
	}
	if f.Variant != "" {
		args = append(args, f.Variant)
		query += fmt.Sprintf(` AND variant = $%d`, len(args))
	}
	return query, args
}

func (s *PostgresStore) ListSubmissions(ctx context.Context, f Filter) ([]submission.Record, error) {
	cond, args := s.where(f)
	query := `SELECT record FROM submissions WHERE 1=1` + cond + ` ORDER BY submitted_at DESC, id`
	args = append(args, f.limit())
	query += fmt.Sprintf(` LIMIT $%d`, len(args))
	if f.Offset > 0 {
		args = append(args, f.Offset)
		query += fmt.Sprintf(` OFFSET $%d`, len(args))
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list submissions")
	}
	defer rows.Close()

	var out []submission.Record
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, eris.Wrap(err, "postgres: scan submission")
		}
		r, err := decodeRecord(data)
		if err != nil {
			return nil, err
		}
		out = append(out, *r)
	}
	return out, eris.Wrap(rows.Err(), "postgres: list submissions iterate")
}

func (s *PostgresStore) Stats(ctx context.Context, f Filter) (*Stats, error) {
	cond, args := s.where(f)
	st := newStats()
	means := make([]*float64, 4)
	counts := make([]int, 4)
	err := s.pool.QueryRow(ctx, statsSelect+cond, args...).Scan(
		&st.Count,
		&means[0], &counts[0], &means[1], &counts[1],
		&means[2], &counts[2], &means[3], &counts[3],
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: stats")
	}
	fillStats(st, means, counts)
	return st, nil
}
