package openai

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/poiesic/metadex/ai"
)

const extractionResponseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "extractions": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "class": {
            "type": "string",
            "enum": ["service_name", "version_number", "document_category", "rate_limits", "deprecated_items"]
          },
          "text": {
            "type": "string"
          },
          "attributes": {
            "type": "object",
            "additionalProperties": {"type": "string"}
          }
        },
        "required": ["class", "text"],
        "additionalProperties": false
      }
    }
  },
  "required": ["extractions"],
  "additionalProperties": false
}`

const extractionPromptTemplate = `%s

Output ONLY valid JSON which complies with the schema given below. Do not include any preamble, explanation,
greeting, or acknowledgment. Start your response directly with the opening brace { and end with the closing
brace }. Your output must exactly follow this schema:

%s

Rules:
- The class field must be exactly one of: %s.
- Copy the extracted text from the document; do not paraphrase.
- Emit one entry per rate limit statement and one entry per deprecated item.
- Leave a field out entirely when the document gives no signal for it. Do not hallucinate.
- If nothing can be identified, return "extractions": [].
- The JSON must parse without errors; no trailing commas, no extra keys, and no extraneous text outside the object.
%s`

// buildSystemPrompt creates the system prompt from the task description and worked examples.
func buildSystemPrompt(task string, examples []ai.Example) string {
	var sb strings.Builder
	for _, ex := range examples {
		sb.WriteString("\nExample:\nInput: ")
		sb.WriteString(fmt.Sprintf("%q", ex.Text))
		sb.WriteString("\nOutput:\n")
		sb.WriteString(renderExample(ex.Extractions))
		sb.WriteString("\n")
	}
	return fmt.Sprintf(extractionPromptTemplate,
		strings.TrimSpace(task),
		extractionResponseSchema,
		strings.Join(ai.Labels, ", "),
		sb.String())
}

// renderExample formats spans the way the model is expected to answer.
func renderExample(spans []ai.Extraction) string {
	resp := response{Extractions: make([]span, 0, len(spans))}
	for _, s := range spans {
		resp.Extractions = append(resp.Extractions, span{Class: s.Class, Text: s.Text, Attributes: s.Attributes})
	}
	out, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		// Only plain strings are marshalled; this cannot fail.
		panic(err)
	}
	return string(out)
}
