package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/abhisek/lexplanet/internal/store"
)

// LoggingProvider is a decorator that logs every LLM request and records
// it as an event when a repo is available.
type LoggingProvider struct {
	inner     Provider
	provider  string
	eventRepo store.EventRepo
	log       *slog.Logger
}

// WithLogging wraps a Provider with request logging. repo may be nil.
func WithLogging(p Provider, providerName string, repo store.EventRepo) Provider {
	return &LoggingProvider{
		inner:     p,
		provider:  providerName,
		eventRepo: repo,
		log:       slog.Default().With("component", "llm"),
	}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	purpose := PurposeFrom(ctx)
	schema := ""
	if req.Schema != nil {
		schema = req.Schema.Name
	}

	resp, err := l.inner.Generate(ctx, req)

	latencyMs := time.Since(start).Milliseconds()

	data := store.LLMRequestEventData{
		Provider:    l.provider,
		Model:       l.inner.ModelID(),
		Purpose:     purpose,
		LatencyMs:   latencyMs,
		Success:     err == nil,
		RequestBody: serializeRequest(req),
	}

	if resp != nil {
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		if resp.Model != "" {
			data.Model = resp.Model
		}
		data.ResponseBody = string(resp.Content)
	}

	if err != nil {
		data.ErrorMessage = err.Error()
		l.log.Warn("llm request failed",
			"provider", data.Provider, "model", data.Model, "purpose", purpose, "schema", schema,
			"latency_ms", latencyMs, "error", err)
	} else {
		l.log.Info("llm request",
			"provider", data.Provider, "model", data.Model, "purpose", purpose, "schema", schema,
			"latency_ms", latencyMs, "input_tokens", data.InputTokens, "output_tokens", data.OutputTokens)
	}

	if l.eventRepo != nil {
		// Logging failures never fail the request.
		if logErr := l.eventRepo.AppendLLMRequest(ctx, data); logErr != nil {
			l.log.Warn("record llm request event failed", "error", logErr)
		}
	}

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

// serializeRequest builds a readable representation of the LLM request.
func serializeRequest(req Request) string {
	var b strings.Builder

	if req.System != "" {
		b.WriteString("[system]\n")
		b.WriteString(req.System)
		b.WriteString("\n\n")
	}

	for _, m := range req.Messages {
		fmt.Fprintf(&b, "[%s]\n%s\n\n", m.Role, m.Content)
	}

	if req.Schema != nil {
		if def, err := json.Marshal(req.Schema.Definition); err == nil {
			fmt.Fprintf(&b, "[schema: %s]\n%s\n", req.Schema.Name, def)
		}
	}

	return b.String()
}
