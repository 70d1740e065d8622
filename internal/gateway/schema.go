package gateway

// schemaDef names a JSON schema and its definition for structured output
type schemaDef struct {
	Name       string
	Definition map[string]any
}

// practicePromptSchema constrains prompt generation output
var practicePromptSchema = schemaDef{
	Name: "practice-prompt",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"text":        map[string]any{"type": "string"},
			"translation": map[string]any{"type": "string"},
			"vocabulary": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"word":              map[string]any{"type": "string"},
						"definition":        map[string]any{"type": "string"},
						"englishEquivalent": map[string]any{"type": "string"},
						"wordType":          map[string]any{"type": "string"},
					},
					"required": []any{"word", "definition", "englishEquivalent", "wordType"},
				},
			},
		},
		"required": []any{"text", "translation", "vocabulary"},
	},
}

// slangPromptSchema constrains slang sentence output
var slangPromptSchema = schemaDef{
	Name: "slang-prompt",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"sentence": map[string]any{"type": "string"},
			"terms": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"term":     map[string]any{"type": "string"},
						"meaning":  map[string]any{"type": "string"},
						"wordType": map[string]any{"type": "string"},
					},
					"required": []any{"term", "meaning", "wordType"},
				},
			},
		},
		"required": []any{"sentence", "terms"},
	},
}

// speechAnalysisSchema constrains recording analysis output
var speechAnalysisSchema = schemaDef{
	Name: "speech-analysis",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"score": map[string]any{
				"type":    "integer",
				"minimum": 0,
				"maximum": 100,
			},
			"strengths": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
			"improvements": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
			"detailedAnalysis": map[string]any{"type": "string"},
		},
		"required": []any{"score", "strengths", "improvements", "detailedAnalysis"},
	},
}
