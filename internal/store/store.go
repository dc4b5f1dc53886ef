// Package store keeps the audit trail of LLM calls and tutor exchanges in a
// local SQLite database. Tables are declared with ent's schema types and
// migrated by ent; queries are built with ent's SQL builder.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/schema"

	_ "modernc.org/sqlite" // pure Go, no cgo
)

// Applied to the single connection when the store opens.
var pragmas = []string{
	"PRAGMA journal_mode = WAL",
	"PRAGMA busy_timeout = 5000",
	"PRAGMA foreign_keys = ON",
	"PRAGMA synchronous = NORMAL",
}

type Store struct {
	db  *sql.DB
	drv *entsql.Driver
	seq *sequence
}

// Open connects to the SQLite database at dsn and brings its schema up to
// date. dsn may be a file path or "file::memory:?cache=shared".
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// Pragmas are per connection, so keep exactly one.
	db.SetMaxOpenConns(1)

	s := &Store{db: db, drv: entsql.OpenDB(dialect.SQLite, db)}
	if err := s.init(context.Background()); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) init(ctx context.Context) error {
	for _, p := range pragmas {
		if _, err := s.db.ExecContext(ctx, p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	m, err := schema.NewMigrate(s.drv)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	if err := m.Create(ctx, Tables...); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	s.seq, err = newSequence(ctx, s.db, eventSequence)
	return err
}

// DB exposes the handle for ad hoc queries.
func (s *Store) DB() *sql.DB { return s.db }

func (s *Store) Close() error { return s.drv.Close() }

func (s *Store) EventRepo() EventRepo { return &eventRepo{db: s.db, seq: s.seq} }

func (s *Store) TutorRepo() TutorRepo { return &tutorRepo{db: s.db, seq: s.seq} }

// DefaultDBPath is LUDUS_DB if set, else ludus/ludus.db under
// $XDG_DATA_HOME or ~/.local/share. The parent directory is created.
func DefaultDBPath() (string, error) {
	p := os.Getenv("LUDUS_DB")
	if p == "" {
		base := os.Getenv("XDG_DATA_HOME")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("resolve home dir: %w", err)
			}
			base = filepath.Join(home, ".local", "share")
		}
		p = filepath.Join(base, "ludus", "ludus.db")
	}
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
