package stages

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/xeipuuv/gojsonschema"

	"github.com/jonathan/resume-forge/internal/llm"
	"github.com/jonathan/resume-forge/internal/types"
)

// outputSchema is the JSON Schema every stage response must satisfy before
// the typed parse. Schema rejection and JSON syntax errors are both reported
// as retryable issues, never as fatal errors.
const outputSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["items"],
  "properties": {
    "items": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["text", "source_id"],
        "properties": {
          "text": {"type": "string", "minLength": 1},
          "source_id": {"type": "string", "minLength": 1},
          "jd_phrase": {"type": "string"}
        }
      }
    },
    "state_for_downstream": {
      "type": "object",
      "properties": {
        "base_ids": {"type": "array", "items": {"type": "string"}},
        "leading_verbs": {"type": "array", "items": {"type": "string"}},
        "numeric_claims": {"type": "array", "items": {"type": "string"}},
        "jd_phrases": {"type": "array", "items": {"type": "string"}}
      }
    }
  }
}`

var structValidator = validator.New()

// ParseOutput parses a generation response into a typed StageOutput. On any
// failure it returns nil output and the issues describing what was malformed;
// a parse failure is treated identically to a validation failure upstream.
func ParseOutput(raw string) (*types.StageOutput, []string) {
	cleaned := llm.CleanJSONBlock(raw)

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(outputSchema),
		gojsonschema.NewStringLoader(cleaned),
	)
	if err != nil {
		return nil, []string{fmt.Sprintf("response is not valid JSON: %v", err)}
	}
	if !result.Valid() {
		issues := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			field := desc.Field()
			if field == "" {
				field = "(root)"
			}
			issues = append(issues, fmt.Sprintf("response schema violation at %s: %s", field, desc.Description()))
		}
		return nil, issues
	}

	var output types.StageOutput
	if err := json.Unmarshal([]byte(cleaned), &output); err != nil {
		return nil, []string{fmt.Sprintf("failed to decode response JSON: %v", err)}
	}

	if err := structValidator.Struct(&output); err != nil {
		return nil, []string{fmt.Sprintf("response failed structural validation: %v", err)}
	}

	return &output, nil
}
