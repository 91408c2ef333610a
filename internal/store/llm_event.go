package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

var llmEventColumns = []string{
	"id", "sequence", "timestamp", "provider", "model", "purpose", "input_tokens",
	"output_tokens", "latency_ms", "success", "error_message", "request_body", "response_body",
}

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	err := r.insert(ctx, llmRequestTable,
		[]string{"provider", "model", "purpose", "input_tokens", "output_tokens",
			"latency_ms", "success", "error_message", "request_body", "response_body"},
		[]any{data.Provider, data.Model, data.Purpose, data.InputTokens, data.OutputTokens,
			data.LatencyMs, data.Success, data.ErrorMessage, data.RequestBody, data.ResponseBody},
	)
	if err != nil {
		return fmt.Errorf("save LLM request event: %w", err)
	}
	return nil
}

func scanLLMEvent(rows *entsql.Rows) (LLMEvent, error) {
	var e LLMEvent
	var ts int64
	err := rows.Scan(&e.ID, &e.Sequence, &ts, &e.Provider, &e.Model, &e.Purpose, &e.InputTokens,
		&e.OutputTokens, &e.LatencyMs, &e.Success, &e.ErrorMessage, &e.RequestBody, &e.ResponseBody)
	if err != nil {
		return LLMEvent{}, err
	}
	e.Timestamp = time.UnixMilli(ts)
	return e, nil
}

func (r *eventRepo) QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error) {
	sel := opts.apply(builder.Select(llmEventColumns...).From(builder.Table(llmRequestTable)))

	var out []LLMEvent
	err := r.query(ctx, sel, func(rows *entsql.Rows) error {
		e, err := scanLLMEvent(rows)
		if err != nil {
			return err
		}
		out = append(out, e)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query LLM events: %w", err)
	}
	return out, nil
}

func (r *eventRepo) GetLLMEvent(ctx context.Context, id int) (*LLMEvent, error) {
	sel := builder.Select(llmEventColumns...).
		From(builder.Table(llmRequestTable)).
		Where(entsql.EQ("id", id))

	var found *LLMEvent
	err := r.query(ctx, sel, func(rows *entsql.Rows) error {
		e, err := scanLLMEvent(rows)
		if err != nil {
			return err
		}
		found = &e
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("get LLM event %d: %w", id, err)
	}
	return found, nil
}

func (r *eventRepo) LLMUsageByPurpose(ctx context.Context) ([]LLMPurposeUsage, error) {
	sel := builder.Select(
		"purpose",
		entsql.Count("*"),
		entsql.Sum("input_tokens"),
		entsql.Sum("output_tokens"),
		entsql.Avg("latency_ms"),
	).
		From(builder.Table(llmRequestTable)).
		GroupBy("purpose").
		OrderBy("purpose")

	var out []LLMPurposeUsage
	err := r.query(ctx, sel, func(rows *entsql.Rows) error {
		var u LLMPurposeUsage
		var avg float64
		if err := rows.Scan(&u.Purpose, &u.Calls, &u.InputTokens, &u.OutputTokens, &avg); err != nil {
			return err
		}
		u.AvgLatencyMs = int64(avg)
		out = append(out, u)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query LLM usage by purpose: %w", err)
	}
	return out, nil
}

func (r *eventRepo) LLMUsageByModel(ctx context.Context) ([]LLMModelUsage, error) {
	sel := builder.Select(
		"model",
		entsql.Count("*"),
		entsql.Sum("input_tokens"),
		entsql.Sum("output_tokens"),
	).
		From(builder.Table(llmRequestTable)).
		GroupBy("model").
		OrderBy("model")

	var out []LLMModelUsage
	err := r.query(ctx, sel, func(rows *entsql.Rows) error {
		var u LLMModelUsage
		if err := rows.Scan(&u.Model, &u.Calls, &u.InputTokens, &u.OutputTokens); err != nil {
			return err
		}
		out = append(out, u)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query LLM usage by model: %w", err)
	}
	return out, nil
}
