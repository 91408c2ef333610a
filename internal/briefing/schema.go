package briefing

import "github.com/abhisek/lexplanet/internal/llm"

// Schema defines the JSON schema for generated level briefings.
var Schema = &llm.Schema{
	Name:        "level-briefing",
	Description: "A short grammar briefing shown before a language level",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title": map[string]any{
				"type":        "string",
				"description": "Lesson title in the learner's language (2-6 words)",
			},
			"explanation": map[string]any{
				"type":        "string",
				"description": "The grammar point in 2-4 plain sentences, in the learner's language",
			},
			"examples": map[string]any{
				"type":        "array",
				"description": "2-4 short examples",
				"minItems":    1,
				"maxItems":    4,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"label": map[string]any{
							"type":        "string",
							"description": "What the example shows, in the learner's language",
						},
						"content": map[string]any{
							"type":        "string",
							"description": "The example sentence in the language being learned",
						},
					},
					"required":             []any{"label", "content"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"title", "explanation", "examples"},
		"additionalProperties": false,
	},
}
