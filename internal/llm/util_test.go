package llm

import (
	"testing"
)

func TestCleanJSONBlock(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "json code block",
			input:    "```json\n{\"score\": 85}\n```",
			expected: `{"score": 85}`,
		},
		{
			name:     "generic code block",
			input:    "```\n{\"score\": 85}\n```",
			expected: `{"score": 85}`,
		},
		{
			name:     "code block with language identifier",
			input:    "```javascript\n{\"score\": 85}\n```",
			expected: `{"score": 85}`,
		},
		{
			name:     "plain JSON untouched",
			input:    `{"score": 85}`,
			expected: `{"score": 85}`,
		},
		{
			name:     "surrounding whitespace trimmed",
			input:    "  \n{\"score\": 85}\n  ",
			expected: `{"score": 85}`,
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CleanJSONBlock(tt.input)
			if result != tt.expected {
				t.Errorf("CleanJSONBlock() = %q, want %q", result, tt.expected)
			}
		})
	}
}
