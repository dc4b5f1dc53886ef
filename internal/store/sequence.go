package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// eventSequence numbers LLM events and tutor exchanges together, so the
// two logs can be read back interleaved in the order things happened.
const eventSequence = "events"

type sequence struct {
	mu   sync.Mutex
	db   *sql.DB
	name string
}

func newSequence(ctx context.Context, db *sql.DB, name string) (*sequence, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Insert(SequencesTable.Name).
		Columns("name", "value").
		Values(name, 0).
		OnConflict(entsql.DoNothing()).
		Query()
	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("seed sequence %q: %w", name, err)
	}
	return &sequence{db: db, name: name}, nil
}

// Next returns 1, 2, 3... across restarts.
func (s *sequence) Next(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("next %s: %w", s.name, err)
	}
	defer tx.Rollback()

	b := entsql.Dialect(dialect.SQLite)
	upd, args := b.Update(SequencesTable.Name).Add("value", 1).Where(entsql.EQ("name", s.name)).Query()
	if _, err := tx.ExecContext(ctx, upd, args...); err != nil {
		return 0, fmt.Errorf("next %s: %w", s.name, err)
	}
	sel, args := b.Select("value").From(entsql.Table(SequencesTable.Name)).Where(entsql.EQ("name", s.name)).Query()
	var v int64
	if err := tx.QueryRowContext(ctx, sel, args...).Scan(&v); err != nil {
		return 0, fmt.Errorf("next %s: %w", s.name, err)
	}
	return v, tx.Commit()
}
