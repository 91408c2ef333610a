package llm

import (
	"slices"
	"testing"

	"google.golang.org/genai"
)

func TestGeminiSchema_Briefing(t *testing.T) {
	s := geminiSchema(testBriefingSchema.Definition)

	if s.Type != genai.TypeObject {
		t.Fatalf("type = %s", s.Type)
	}
	wantOrder := []string{"title", "explanation", "examples"}
	if !slices.Equal(s.PropertyOrdering, wantOrder) {
		t.Fatalf("PropertyOrdering = %v, want %v", s.PropertyOrdering, wantOrder)
	}
	if !slices.Equal(s.Required, wantOrder) {
		t.Fatalf("Required = %v", s.Required)
	}

	examples := s.Properties["examples"]
	if examples.Type != genai.TypeArray {
		t.Fatalf("examples type = %s", examples.Type)
	}
	if examples.MinItems == nil || *examples.MinItems != 1 || examples.MaxItems == nil || *examples.MaxItems != 4 {
		t.Fatalf("examples bounds = %v/%v", examples.MinItems, examples.MaxItems)
	}

	item := examples.Items
	if item.Type != genai.TypeObject || item.Properties["content"].Type != genai.TypeString {
		t.Fatalf("example item = %+v", item)
	}
	if !slices.Equal(item.PropertyOrdering, []string{"label", "content"}) {
		t.Fatalf("item ordering = %v", item.PropertyOrdering)
	}
}

func TestGeminiSchema_OptionalPropertiesSortAfterRequired(t *testing.T) {
	s := geminiSchema(map[string]any{
		"type": "object",
		"properties": map[string]any{
			"topic": map[string]any{"type": "string", "enum": []any{"articles", "verbs"}},
			"notes": map[string]any{"type": "string"},
			"title": map[string]any{"type": "string"},
			"level": map[string]any{"type": "integer"},
		},
		"required": []string{"title"},
	})

	if want := []string{"title", "level", "notes", "topic"}; !slices.Equal(s.PropertyOrdering, want) {
		t.Fatalf("PropertyOrdering = %v, want %v", s.PropertyOrdering, want)
	}
	if s.Properties["level"].Type != genai.TypeInteger {
		t.Fatalf("level type = %s", s.Properties["level"].Type)
	}
	if len(s.Properties["topic"].Enum) != 2 {
		t.Fatalf("topic enum = %v", s.Properties["topic"].Enum)
	}
}

func TestIntValue(t *testing.T) {
	for _, v := range []any{4, int64(4), float64(4)} {
		if n, ok := intValue(v); !ok || n != 4 {
			t.Errorf("intValue(%T) = %d, %v", v, n, ok)
		}
	}
	if _, ok := intValue("4"); ok {
		t.Error("intValue accepted a string")
	}
}
