package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// schemaCache holds compiled schemas. Keys are the *Schema itself, so
// two definitions sharing a name never collide.
var schemaCache sync.Map // map[*Schema]*jsonschema.Schema

// Validate checks raw against the schema definition.
func (s *Schema) Validate(raw json.RawMessage) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	compiled, err := s.compiled()
	if err != nil {
		return fmt.Errorf("compile schema %q: %w", s.Name, err)
	}
	if err := compiled.Validate(parsed); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

func (s *Schema) compiled() (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(s); ok {
		return cached.(*jsonschema.Schema), nil
	}

	// The compiler wants decoded JSON values, not Go literals.
	defBytes, err := json.Marshal(s.Definition)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(defBytes))
	if err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	url := "schema://" + s.Name + ".json"
	if err := c.AddResource(url, doc); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, err
	}

	schemaCache.Store(s, compiled)
	return compiled, nil
}

// decodeContent turns a provider's reply text into Response.Content.
// Without a schema the text is returned as a JSON string. With one, a
// markdown fence around the object is dropped, a reply cut off at the
// token limit becomes ErrMaxTokensExceeded, and anything else that
// fails validation becomes ErrInvalidResponse.
func decodeContent(ctx context.Context, req Request, text, stop string) (json.RawMessage, error) {
	if req.Schema == nil {
		b, err := json.Marshal(text)
		if err != nil {
			return nil, fmt.Errorf("encode reply text: %w", err)
		}
		return b, nil
	}

	raw := json.RawMessage(unfence(text))
	err := req.Schema.Validate(raw)
	if err == nil {
		return raw, nil
	}

	purpose := PurposeFrom(ctx)
	if stop == StopMaxTokens {
		return nil, &ErrMaxTokensExceeded{Purpose: purpose, MaxTokens: req.MaxTokens, Content: raw}
	}
	return nil, &ErrInvalidResponse{
		Purpose: purpose,
		Schema:  req.Schema.Name,
		Content: raw,
		Err:     err,
	}
}

// unfence strips surrounding whitespace and a ```json fence.
func unfence(text string) string {
	t := strings.TrimSpace(text)
	if !strings.HasPrefix(t, "```") {
		return t
	}
	t = strings.TrimPrefix(t, "```")
	if nl := strings.IndexByte(t, '\n'); nl >= 0 {
		t = t[nl+1:]
	} else {
		t = strings.TrimPrefix(t, "json")
	}
	t = strings.TrimSuffix(strings.TrimSpace(t), "```")
	return strings.TrimSpace(t)
}

// withSchemaHint appends the schema description to the system prompt
// for vendors that have no field for it.
func withSchemaHint(req Request) string {
	if req.Schema == nil || req.Schema.Description == "" {
		return req.System
	}
	hint := fmt.Sprintf("Reply with a single JSON object (%s): %s.", req.Schema.Name, req.Schema.Description)
	if req.System == "" {
		return hint
	}
	return req.System + "\n\n" + hint
}
