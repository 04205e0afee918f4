package analysis

import "github.com/abhisek/focusflow/internal/llm"

func rating(description string) map[string]any {
	return map[string]any{
		"type":        "integer",
		"minimum":     MinRating,
		"maximum":     MaxRating,
		"description": description,
	}
}

// AnalysisSchema defines the JSON schema for a study-session analysis.
var AnalysisSchema = &llm.Schema{
	Name:        "study-analysis",
	Description: "Ratings, summary and suggestions inferred from study session notes",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"concentration": rating("A rating of the user's concentration on a scale of 1 to 100, based on their notes."),
			"studyCapacity": rating("A rating of the user's study capacity or productivity on a scale of 1 to 100."),
			"stress":        rating("An inferred rating of the user's stress level on a scale of 1 to 100 (where 1 is low stress and 100 is high stress)."),
			"happiness":     rating("An inferred rating of the user's happiness or mood on a scale of 1 to 100."),
			"summary": map[string]any{
				"type":        "string",
				"description": "A brief, encouraging summary of the study period, highlighting trends or key points.",
			},
			"suggestions": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "A list of 2-3 actionable and personalized suggestions for the user to improve their next study sessions.",
			},
		},
		"required":             []any{"concentration", "studyCapacity", "stress", "happiness", "summary", "suggestions"},
		"additionalProperties": false,
	},
}
