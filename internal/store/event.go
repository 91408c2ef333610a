package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// builder renders every statement for the SQLite dialect.
var builder = entsql.Dialect(dialect.SQLite)

// sequenceCounter manages the global monotonic sequence number shared
// across all event tables. Per-table auto-increment IDs can't order an
// answer against the level event that closed its attempt; the shared
// counter can. The mutex serializes within the process; the RETURNING
// clause makes the increment atomic at the database level.
type sequenceCounter struct {
	mu  sync.Mutex
	drv *entsql.Driver
}

// newSequenceCounter seeds the single counter row if it is missing.
func newSequenceCounter(ctx context.Context, drv *entsql.Driver) (*sequenceCounter, error) {
	q, args := builder.Insert(sequenceTable).
		Columns("id", "next_val").
		Values(1, 1).
		OnConflict(entsql.ConflictColumns("id"), entsql.DoNothing()).
		Query()
	if err := drv.Exec(ctx, q, args, nil); err != nil {
		return nil, fmt.Errorf("seed sequence: %w", err)
	}
	return &sequenceCounter{drv: drv}, nil
}

// Next atomically returns the next sequence number and increments the counter.
func (sc *sequenceCounter) Next(ctx context.Context) (int64, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	q, args := builder.Update(sequenceTable).
		Add("next_val", 1).
		Where(entsql.EQ("id", 1)).
		Returning("next_val").
		Query()

	var rows entsql.Rows
	if err := sc.drv.Query(ctx, q, args, &rows); err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return 0, fmt.Errorf("next sequence: %w", err)
		}
		return 0, errors.New("next sequence: counter row missing")
	}
	var next int64
	if err := rows.Scan(&next); err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return next - 1, nil
}

// eventRepo implements EventRepo on the ent SQL builder and the global
// sequence counter.
type eventRepo struct {
	drv *entsql.Driver
	seq *sequenceCounter
}

// insert stamps an event row with the next sequence and the current time.
func (r *eventRepo) insert(ctx context.Context, table string, columns []string, values []any) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return err
	}
	q, args := builder.Insert(table).
		Columns(append([]string{"sequence", "timestamp"}, columns...)...).
		Values(append([]any{seqNum, nowMillis()}, values...)...).
		Query()
	return r.drv.Exec(ctx, q, args, nil)
}

// query runs sel and hands each row to scan.
func (r *eventRepo) query(ctx context.Context, sel *entsql.Selector, scan func(*entsql.Rows) error) error {
	q, args := sel.Query()
	var rows entsql.Rows
	if err := r.drv.Query(ctx, q, args, &rows); err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		if err := scan(&rows); err != nil {
			return err
		}
	}
	return rows.Err()
}

// apply narrows sel to opts, newest first.
func (opts QueryOpts) apply(sel *entsql.Selector) *entsql.Selector {
	var preds []*entsql.Predicate
	if opts.After > 0 {
		preds = append(preds, entsql.GT(sel.C("sequence"), opts.After))
	}
	if opts.Before > 0 {
		preds = append(preds, entsql.LT(sel.C("sequence"), opts.Before))
	}
	if !opts.From.IsZero() {
		preds = append(preds, entsql.GTE(sel.C("timestamp"), opts.From.UnixMilli()))
	}
	if !opts.To.IsZero() {
		preds = append(preds, entsql.LTE(sel.C("timestamp"), opts.To.UnixMilli()))
	}
	if len(preds) > 0 {
		sel.Where(entsql.And(preds...))
	}
	sel.OrderBy(entsql.Desc(sel.C("sequence")))
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}
	return sel
}

func nowMillis() int64 { return time.Now().UnixMilli() }
