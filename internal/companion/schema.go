package companion

import "github.com/abhisek/soulsupport/internal/llm"

// ReplySchema constrains companion output to a short reply plus a concern
// level the chat screen acts on.
var ReplySchema = &llm.Schema{
	Name:        "companion-reply",
	Description: "A supportive reply to the user's latest message",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"reply": map[string]any{
				"type":        "string",
				"description": "Two to four warm, plain sentences addressed to the user",
				"minLength":   1,
			},
			"concern": map[string]any{
				"type":        "string",
				"description": "How worrying the user's message is",
				"enum":        []any{string(ConcernNone), string(ConcernElevated), string(ConcernCrisis)},
			},
		},
		"required":             []any{"reply", "concern"},
		"additionalProperties": false,
	},
}
