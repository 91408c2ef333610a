package store

import (
	"context"
	"fmt"
	"strings"

	entsql "entgo.io/ent/dialect/sql"
)

// Progress is the learner state kept between runs. Zero values mean the
// field was never saved.
type Progress struct {
	MaxUnlockedLevel int
	Score            int
}

// ProgressStore persists Progress. Implementations are best-effort: the
// caller treats every error as "use defaults".
type ProgressStore interface {
	LoadProgress(ctx context.Context) (Progress, error)
	SaveProgress(ctx context.Context, p Progress) error
	ResetProgress(ctx context.Context) error
}

// Progress keys, shared by the SQLite table and the Redis hash.
const (
	keyMaxUnlockedLevel = "max_unlocked_level"
	keyScore            = "score"
)

// sqliteProgress keeps Progress in the progress key-value table.
type sqliteProgress struct {
	drv *entsql.Driver
}

func (p *sqliteProgress) LoadProgress(ctx context.Context) (Progress, error) {
	q, args := builder.Select("key", "value").From(builder.Table(progressTable)).Query()
	var rows entsql.Rows
	if err := p.drv.Query(ctx, q, args, &rows); err != nil {
		return Progress{}, fmt.Errorf("load progress: %w", err)
	}
	defer rows.Close()

	var out Progress
	for rows.Next() {
		var key string
		var value int
		if err := rows.Scan(&key, &value); err != nil {
			return Progress{}, fmt.Errorf("scan progress: %w", err)
		}
		switch key {
		case keyMaxUnlockedLevel:
			out.MaxUnlockedLevel = value
		case keyScore:
			out.Score = value
		}
	}
	return out, rows.Err()
}

// SaveProgress upserts both keys in one transaction.
func (p *sqliteProgress) SaveProgress(ctx context.Context, prog Progress) error {
	tx, err := p.drv.Tx(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}

	now := nowMillis()
	q, args := builder.Insert(progressTable).
		Columns("key", "value", "updated_at").
		Values(keyMaxUnlockedLevel, prog.MaxUnlockedLevel, now).
		Values(keyScore, prog.Score, now).
		OnConflict(entsql.ConflictColumns("key"), entsql.ResolveWithNewValues()).
		Query()
	if err := tx.Exec(ctx, q, args, nil); err != nil {
		tx.Rollback()
		return fmt.Errorf("save progress: %w", err)
	}
	return tx.Commit()
}

func (p *sqliteProgress) ResetProgress(ctx context.Context) error {
	q, args := builder.Delete(progressTable).Query()
	if err := p.drv.Exec(ctx, q, args, nil); err != nil {
		return fmt.Errorf("reset progress: %w", err)
	}
	return nil
}

// IsRedisURL reports whether url selects the Redis progress backend.
func IsRedisURL(url string) bool {
	return strings.HasPrefix(url, "redis://") || strings.HasPrefix(url, "rediss://")
}

// OpenProgress picks the progress backend for url: Redis for redis://
// and rediss:// URLs, otherwise the SQLite store s. The returned close
// function releases a Redis connection and is a no-op for SQLite.
func OpenProgress(ctx context.Context, url string, s *Store) (ProgressStore, func() error, error) {
	if IsRedisURL(url) {
		rp, err := OpenRedisProgress(ctx, url)
		if err != nil {
			return nil, nil, err
		}
		return rp, rp.Close, nil
	}
	if url != "" && url != "sqlite" {
		return nil, nil, fmt.Errorf("unsupported progress URL %q", url)
	}
	if s == nil {
		return nil, nil, fmt.Errorf("sqlite progress requested without a store")
	}
	return s.Progress(), func() error { return nil }, nil
}
