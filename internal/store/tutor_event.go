package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

var tutorExchangeColumns = []string{
	"id", "sequence", "timestamp", "channel", "lesson", "question", "reply",
	"demo", "fallback", "latency_ms", "error_message",
}

// tutorRepo implements TutorRepo on the tutor_exchanges table.
type tutorRepo struct {
	db  *sql.DB
	seq *sequence
}

func (r *tutorRepo) AppendExchange(ctx context.Context, data TutorExchangeData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	var lesson any
	if data.Lesson != nil {
		lesson = *data.Lesson
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(TutorExchangesTable.Name).
		Columns(tutorExchangeColumns[1:]...).
		Values(
			seqNum, time.Now().UTC(), data.Channel, lesson, data.Question, data.Reply,
			data.Demo, data.Fallback, data.LatencyMs, data.ErrorMessage,
		).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save tutor exchange: %w", err)
	}
	return nil
}

func (r *tutorRepo) RecentExchanges(ctx context.Context, opts QueryOpts) ([]TutorExchange, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select(tutorExchangeColumns...).
		From(entsql.Table(TutorExchangesTable.Name))
	applyQueryOpts(sel, opts)

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query tutor exchanges: %w", err)
	}
	defer rows.Close()

	var out []TutorExchange
	for rows.Next() {
		var (
			e      TutorExchange
			lesson sql.NullInt64
		)
		err := rows.Scan(
			&e.ID, &e.Sequence, &e.Timestamp, &e.Channel, &lesson, &e.Question, &e.Reply,
			&e.Demo, &e.Fallback, &e.LatencyMs, &e.ErrorMessage,
		)
		if err != nil {
			return nil, fmt.Errorf("scan tutor exchange: %w", err)
		}
		if lesson.Valid {
			l := int(lesson.Int64)
			e.Lesson = &l
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
