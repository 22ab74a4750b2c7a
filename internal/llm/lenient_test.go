package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsReject(t *testing.T) {
	tests := []struct {
		name    string
		content string
		reject  bool
	}{
		{"bare sentinel", "REJECT", true},
		{"sentinel with whitespace", "  REJECT\n", true},
		{"fenced sentinel", "```\nREJECT\n```", true},
		{"sentinel in prose", "The text is a header, so: REJECT", true},
		{"json object", `{"progressiveNumber": 1}`, false},
		{"json mentioning the word", `{"description": "REJECT button assembly"}`, false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.reject, IsReject(tt.content))
		})
	}
}

func TestExtractJSONPayload(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected string
	}{
		{
			name:     "plain object",
			content:  `{"progressiveNumber": 1}`,
			expected: `{"progressiveNumber": 1}`,
		},
		{
			name:     "fenced with language tag",
			content:  "```json\n{\"progressiveNumber\": 1}\n```",
			expected: `{"progressiveNumber": 1}`,
		},
		{
			name:     "fenced without language tag",
			content:  "```\n{\"progressiveNumber\": 2}\n```",
			expected: `{"progressiveNumber": 2}`,
		},
		{
			name:     "surrounding prose",
			content:  "Here is the result:\n{\"progressiveNumber\": 3}\nHope that helps.",
			expected: `{"progressiveNumber": 3}`,
		},
		{
			name:     "no object at all",
			content:  "nothing useful",
			expected: "nothing useful",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractJSONPayload(tt.content))
		})
	}
}
