package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

var answerEventColumns = []string{
	"id", "sequence", "timestamp", "attempt_id", "level", "mode",
	"native", "target", "question_id", "given", "expected", "correct",
}

func (r *eventRepo) AppendAnswerEvent(ctx context.Context, data AnswerEventData) error {
	err := r.insert(ctx, answerEventTable,
		[]string{"attempt_id", "level", "mode", "native", "target", "question_id", "given", "expected", "correct"},
		[]any{data.AttemptID, data.Level, data.Mode, data.Native, data.Target,
			data.QuestionID, data.Given, data.Expected, data.Correct},
	)
	if err != nil {
		return fmt.Errorf("save answer event: %w", err)
	}
	return nil
}

func (r *eventRepo) RecentAnswers(ctx context.Context, opts QueryOpts) ([]AnswerRecord, error) {
	t := builder.Table(answerEventTable)
	sel := opts.apply(builder.Select(answerEventColumns...).From(t))

	var out []AnswerRecord
	err := r.query(ctx, sel, func(rows *entsql.Rows) error {
		var rec AnswerRecord
		var ts int64
		if err := rows.Scan(&rec.ID, &rec.Sequence, &ts, &rec.AttemptID, &rec.Level, &rec.Mode,
			&rec.Native, &rec.Target, &rec.QuestionID, &rec.Given, &rec.Expected, &rec.Correct); err != nil {
			return err
		}
		rec.Timestamp = time.UnixMilli(ts)
		out = append(out, rec)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query answer events: %w", err)
	}
	return out, nil
}
