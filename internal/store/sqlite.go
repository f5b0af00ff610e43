package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/TheDarkNight21/a16z-oss-api/internal/model"
)

// SQLiteStore implements SnapshotStore using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

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
CREATE TABLE IF NOT EXISTS company_seen (
	slug           TEXT PRIMARY KEY,
	first_seen_iso TEXT NOT NULL,
	last_seen_iso  TEXT NOT NULL,
	updated_at     DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS builds (
	id              TEXT PRIMARY KEY,
	total_companies INTEGER NOT NULL,
	matched         INTEGER NOT NULL,
	quarantined     INTEGER NOT NULL,
	match_rate      REAL NOT NULL,
	created_at      DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_builds_created_at ON builds(created_at);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// PriorFirstSeen returns slug -> first_seen_iso from previous runs.
func (s *SQLiteStore) PriorFirstSeen(ctx context.Context) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT slug, first_seen_iso FROM company_seen`)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: query prior first seen")
	}
	defer rows.Close()

	seen := make(map[string]string)
	for rows.Next() {
		var slug, firstSeen string
		if err := rows.Scan(&slug, &firstSeen); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan prior first seen")
		}
		seen[slug] = firstSeen
	}
	return seen, eris.Wrap(rows.Err(), "sqlite: iterate prior first seen")
}

// SaveSnapshot upserts timestamps for every company and inserts a build row.
// Existing first_seen_iso values are kept; last_seen_iso always advances.
func (s *SQLiteStore) SaveSnapshot(ctx context.Context, companies []model.Company, stats model.MergeStats) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "sqlite: begin snapshot tx")
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO company_seen (slug, first_seen_iso, last_seen_iso, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(slug) DO UPDATE SET
			last_seen_iso = excluded.last_seen_iso,
			updated_at    = excluded.updated_at`)
	if err != nil {
		return eris.Wrap(err, "sqlite: prepare snapshot upsert")
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for _, c := range companies {
		if _, err := stmt.ExecContext(ctx, c.Slug, c.FirstSeenISO, c.LastSeenISO, now); err != nil {
			return eris.Wrapf(err, "sqlite: upsert company_seen %s", c.Slug)
		}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO builds (id, total_companies, matched, quarantined, match_rate, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		uuid.New().String(), len(companies), stats.Matched, stats.UnmatchedPortfolio, stats.MatchRate, now,
	)
	if err != nil {
		return eris.Wrap(err, "sqlite: insert build row")
	}

	return eris.Wrap(tx.Commit(), "sqlite: commit snapshot")
}
