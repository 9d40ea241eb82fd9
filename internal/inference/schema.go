package inference

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"google.golang.org/genai"

	"github.com/hetulpatel/MantleCoop/internal/eligibility"
)

const decisionSchemaName = "eligibility_decision"

// decisionSchemaJSON is both sent to OpenAI-compatible servers as the strict
// response format and used to validate every reply locally.
const decisionSchemaJSON = `{
  "type": "object",
  "properties": {
    "isEligible": {
      "type": "boolean",
      "description": "Whether the member is eligible for a loan."
    },
    "reason": {
      "type": "string",
      "description": "The reason for the eligibility decision."
    }
  },
  "required": ["isEligible", "reason"],
  "additionalProperties": false
}`

var decisionSchema = mustCompile(decisionSchemaJSON)

func mustCompile(raw string) *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(raw))
	if err != nil {
		panic(fmt.Sprintf("inference: compile decision schema: %v", err))
	}
	return s
}

// genAIDecisionSchema mirrors decisionSchemaJSON for the Gemini API.
func genAIDecisionSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"isEligible": {Type: genai.TypeBoolean, Description: "Whether the member is eligible for a loan."},
			"reason":     {Type: genai.TypeString, Description: "The reason for the eligibility decision."},
		},
		Required: []string{"isEligible", "reason"},
	}
}

// SchemaError reports a reply that does not conform to the decision schema.
type SchemaError struct {
	Problems []string
}

func (e *SchemaError) Error() string {
	return "inference: reply does not match decision schema: " + strings.Join(e.Problems, "; ")
}

// decodeDecision extracts the JSON object from a model reply, validates it
// against the decision schema and decodes it.
func decodeDecision(raw string) (eligibility.Decision, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return eligibility.Decision{}, fmt.Errorf("inference: empty reply")
	}
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return eligibility.Decision{}, fmt.Errorf("inference: reply has no JSON object")
	}
	raw = raw[start : end+1]

	result, err := decisionSchema.Validate(gojsonschema.NewStringLoader(raw))
	if err != nil {
		return eligibility.Decision{}, fmt.Errorf("inference: parse reply: %w", err)
	}
	if !result.Valid() {
		problems := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			problems[i] = desc.String()
		}
		return eligibility.Decision{}, &SchemaError{Problems: problems}
	}

	var decision eligibility.Decision
	if err := json.Unmarshal([]byte(raw), &decision); err != nil {
		return eligibility.Decision{}, fmt.Errorf("inference: decode reply: %w", err)
	}
	if strings.TrimSpace(decision.Reason) == "" {
		return eligibility.Decision{}, &SchemaError{Problems: []string{"reason: must not be blank"}}
	}
	return decision, nil
}
