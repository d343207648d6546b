package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/kalgen-innolab/dnacare/internal/submission"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// sqliteTime keeps timestamps lexically sortable.
const sqliteTime = "2006-01-02T15:04:05.000000000Z"

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS submissions (
	id             TEXT PRIMARY KEY,
	submitted_at   TEXT NOT NULL,
	locale         TEXT NOT NULL,
	variant        TEXT NOT NULL,
	config_hash    TEXT NOT NULL,
	name           TEXT NOT NULL,
	bmi            REAL NOT NULL,
	metabolic_risk REAL,
	cvd_risk       REAL,
	diabetes_risk  REAL,
	cancer_risk    REAL,
	record         TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_submissions_submitted_at ON submissions(submitted_at);
CREATE INDEX IF NOT EXISTS idx_submissions_variant ON submissions(variant);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Ping(ctx context.Context) error {
	return eris.Wrap(s.db.PingContext(ctx), "sqlite: ping")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) SaveSubmission(ctx context.Context, r *submission.Record) error {
	data, err := json.Marshal(r)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal record")
	}
	args := []any{
		r.ID, r.SubmittedAt.UTC().Format(sqliteTime), r.Locale, r.Variant, r.ConfigHash,
		r.Answers.Personal.Name, r.Features.BMI,
	}
	args = append(args, riskArgs(r.Scores)...)
	args = append(args, string(data))

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO submissions (id, submitted_at, locale, variant, config_hash, name, bmi,
			metabolic_risk, cvd_risk, diabetes_risk, cancer_risk, record)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		args...,
	)
	return eris.Wrapf(err, "sqlite: insert submission %s", r.ID)
}

func (s *SQLiteStore) GetSubmission(ctx context.Context, id string) (*submission.Record, error) {
	var data string
	err := s.db.QueryRowContext(ctx, `SELECT record FROM submissions WHERE id = ?`, id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, eris.Wrapf(ErrNotFound, "id %s", id)
	}
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: get submission %s", id)
	}
	return decodeRecord([]byte(data))
}

func (s *SQLiteStore) where(f Filter) (string, []any) {
	var query string
	var args []any
	if !f.Since.IsZero() {
		query += ` AND submitted_at >= ?`
		args = append(args, f.Since.UTC().Format(sqliteTime))
	}
	if f.Variant != "" {
		query += ` AND variant = ?`
		args = append(args, f.Variant)
	}
	return query, args
}

func (s *SQLiteStore) ListSubmissions(ctx context.Context, f Filter) ([]submission.Record, error) {
	cond, args := s.where(f)
	query := `SELECT record FROM submissions WHERE 1=1` + cond + ` ORDER BY submitted_at DESC, id LIMIT ?`
	args = append(args, f.limit())
	if f.Offset > 0 {
		query += ` OFFSET ?`
		args = append(args, f.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list submissions")
	}
	defer rows.Close()

	var out []submission.Record
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan submission")
		}
		r, err := decodeRecord([]byte(data))
		if err != nil {
			return nil, err
		}
		out = append(out, *r)
	}
	return out, eris.Wrap(rows.Err(), "sqlite: list submissions iterate")
}

func (s *SQLiteStore) Stats(ctx context.Context, f Filter) (*Stats, error) {
	cond, args := s.where(f)
	st := newStats()
	means := make([]*float64, 4)
	counts := make([]int, 4)
	err := s.db.QueryRowContext(ctx, statsSelect+cond, args...).Scan(
		&st.Count,
		&means[0], &counts[0], &means[1], &counts[1],
		&means[2], &counts[2], &means[3], &counts[3],
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: stats")
	}
	fillStats(st, means, counts)
	return st, nil
}
