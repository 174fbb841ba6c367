package llm

import (
	"errors"
	"testing"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "raw json object",
			input:    `{"summary": "ok"}`,
			expected: `{"summary": "ok"}`,
		},
		{
			name:     "json with leading text",
			input:    `Here is the review: {"warnings": ["Friday is full"]}`,
			expected: `{"warnings": ["Friday is full"]}`,
		},
		{
			name:     "json in code block",
			input:    "```json\n{\"summary\": \"ok\"}\n```",
			expected: `{"summary": "ok"}`,
		},
		{
			name:     "json in plain code block",
			input:    "```\n{\"summary\": \"ok\"}\n```",
			expected: `{"summary": "ok"}`,
		},
		{
			name:     "json array",
			input:    `["monday", "tuesday"]`,
			expected: `["monday", "tuesday"]`,
		},
		{
			name:     "nested json",
			input:    `{"outer": {"inner": {"deep": true}}}`,
			expected: `{"outer": {"inner": {"deep": true}}}`,
		},
		{
			name: "markdown with explanation",
			input: `Here's my reading:

` + "```json" + `
{
  "summary": "Balanced week",
  "suggestions": []
}
` + "```" + `

Let me know if you need anything else.`,
			expected: `{
  "summary": "Balanced week",
  "suggestions": []
}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractJSON(tt.input)
			if got != tt.expected {
				t.Errorf("extractJSON() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestDecodeReply(t *testing.T) {
	var r Review
	if err := decodeReply("Sure!\n```json\n{\"summary\": \"Light Monday\"}\n```", &r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Summary != "Light Monday" {
		t.Errorf("got summary %q", r.Summary)
	}

	if err := decodeReply("I cannot review this.", &r); !errors.Is(err, ErrInvalidJSON) {
		t.Errorf("got error %v, want %v", err, ErrInvalidJSON)
	}
}
