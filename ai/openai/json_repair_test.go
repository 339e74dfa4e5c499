package openai

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRepairJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "valid json unchanged",
			input: `{"class": "rate_limits", "text": "100 req/min"}`,
			want:  `{"class": "rate_limits", "text": "100 req/min"}`,
		},
		{
			name:  "missing opening quote after brace",
			input: `{class": "service_name"}`,
			want:  `{"class": "service_name"}`,
		},
		{
			name:  "missing opening quote after comma",
			input: `{"class": "service_name", text": "Storage Service"}`,
			want:  `{"class": "service_name", "text": "Storage Service"}`,
		},
		{
			name:  "trailing comma in array",
			input: `{"extractions": [{"class": "version_number", "text": "2.0"},]}`,
			want:  `{"extractions": [{"class": "version_number", "text": "2.0"}]}`,
		},
		{
			name:  "trailing comma in object",
			input: "{\"class\": \"version_number\",\n}",
			want:  "{\"class\": \"version_number\"\n}",
		},
		{
			name:  "string contents untouched",
			input: `{"text": "a, b\", c}"}`,
			want:  `{"text": "a, b\", c}"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := repairJSON(tt.input)
			assert.Equal(t, tt.want, got)
			assert.True(t, json.Valid([]byte(got)), "repaired output should be valid JSON: %s", got)
		})
	}
}

func TestStripCodeFences(t *testing.T) {
	assert.Equal(t, `{"a":1}`, stripCodeFences("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripCodeFences("```{\"a\":1}```"))
	assert.Equal(t, `{"a":1}`, stripCodeFences("  {\"a\":1}  "))
}
