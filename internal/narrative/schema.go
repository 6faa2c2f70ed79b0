package narrative

import "github.com/abhisek/quizsense/internal/llm"

func stringList(description string) map[string]any {
	return map[string]any{
		"type":        "array",
		"items":       map[string]any{"type": "string"},
		"description": description,
	}
}

// NarrativeSchema defines the JSON schema for narrative quiz feedback.
var NarrativeSchema = &llm.Schema{
	Name:        "narrative-feedback",
	Description: "Personalized feedback on one quiz attempt",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"summary": map[string]any{
				"type":        "string",
				"minLength":   1,
				"description": "3-5 sentence analysis of the performance",
			},
			"strengths":           stringList("1-3 specific strengths"),
			"areasForImprovement": stringList("1-3 specific areas for improvement"),
			"recommendations":     stringList("2-4 concrete study recommendations"),
			"timeManagement": map[string]any{
				"type":        "string",
				"description": "Time management advice, or an empty string if none is needed",
			},
		},
		"required":             []any{"summary", "strengths", "areasForImprovement", "recommendations", "timeManagement"},
		"additionalProperties": false,
	},
}
