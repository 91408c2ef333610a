package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

func (r *eventRepo) AppendLevelEvent(ctx context.Context, data LevelEventData) error {
	switch data.Action {
	case LevelStart, LevelPass, LevelFail, LevelAbandon:
	default:
		return fmt.Errorf("unknown level action %q", data.Action)
	}

	err := r.insert(ctx, levelEventTable,
		[]string{"attempt_id", "level", "mode", "native", "target", "action", "answered", "correct", "score"},
		[]any{data.AttemptID, data.Level, data.Mode, data.Native, data.Target,
			data.Action, data.Answered, data.Correct, data.Score},
	)
	if err != nil {
		return fmt.Errorf("save level event: %w", err)
	}
	return nil
}

// LevelStats folds level events into one row per (level, mode). Answer
// counts come from finished attempts only.
func (r *eventRepo) LevelStats(ctx context.Context) ([]LevelStat, error) {
	t := builder.Table(levelEventTable)
	sel := builder.Select("level", "mode", "action", "answered", "correct").
		From(t).
		OrderBy(t.C("level"), t.C("mode"), t.C("sequence"))

	var out []LevelStat
	err := r.query(ctx, sel, func(rows *entsql.Rows) error {
		var (
			level             int
			mode, action      string
			answered, correct int
		)
		if err := rows.Scan(&level, &mode, &action, &answered, &correct); err != nil {
			return err
		}
		if n := len(out); n == 0 || out[n-1].Level != level || out[n-1].Mode != mode {
			out = append(out, LevelStat{Level: level, Mode: mode})
		}
		s := &out[len(out)-1]
		switch action {
		case LevelStart:
			s.Attempts++
		case LevelPass:
			s.Passes++
		case LevelFail:
			s.Fails++
		}
		if action == LevelPass || action == LevelFail {
			s.Answered += answered
			s.Correct += correct
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query level stats: %w", err)
	}
	return out, nil
}
