// Package llm talks to the hosted models that write level briefings.
// Every vendor sits behind Provider; replies to schema requests are
// unwrapped and validated here so callers only ever see conforming JSON.
package llm

import (
	"context"
	"encoding/json"
)

// Provider generates one reply per request.
type Provider interface {
	// Generate returns Content that satisfies req.Schema when one is set.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID is the configured model, used for event records and pricing.
	ModelID() string
}

// Request is a single-turn generation: a system prompt, the learner
// context as user messages, and the schema of the expected object.
type Request struct {
	System   string
	Messages []Message

	// Schema selects the vendor's structured output mode. Nil asks for
	// plain text.
	Schema *Schema

	MaxTokens int

	// Temperature in [0, 1]. Zero leaves the vendor default.
	Temperature float64
}

type Message struct {
	Role    Role
	Content string
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema is a named JSON Schema, e.g. "level-briefing".
type Schema struct {
	// Name doubles as the OpenAI json_schema name, so it must be
	// kebab-case.
	Name string

	// Description tells the model what the object is for. Providers
	// without a native field for it append it to the system prompt.
	Description string

	Definition map[string]any
}

type Response struct {
	// Content is the validated JSON object when the request carried a
	// Schema, and the reply text encoded as a JSON string otherwise.
	Content json.RawMessage

	Usage Usage

	// Model is the model that served the request, which for routed
	// vendors can differ from ModelID.
	Model string

	// StopReason is StopEnd or StopMaxTokens.
	StopReason string
}

// Normalized stop reasons.
const (
	StopEnd       = "end"
	StopMaxTokens = "max_tokens"
)

type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
