package inference

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/hetulpatel/MantleCoop/internal/eligibility"
	"github.com/hetulpatel/MantleCoop/internal/llm"
)

const history = "Average balance: $2,500 over last 12 months.\nAll payments on time.\nOne overdraft 3 years ago.\nRegular monthly deposits of $5,000.\nEmployed for 5 years at the same company."

type fakeBackend struct {
	reply   string
	err     error
	prompts []Prompt
}

func (f *fakeBackend) Name() string { return "fake" }

func (f *fakeBackend) Generate(_ context.Context, prompt Prompt) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.reply, f.err
}

func TestBuildPrompt_EmbedsHistoryVerbatim(t *testing.T) {
	raw := "  line one\n\tline \"two\" {{braces}} ü  \n"
	p := BuildPrompt(eligibility.Request{AccountHistory: raw})

	assert.Equal(t, systemPrompt, p.System)
	assert.Contains(t, p.User, "Account History: "+raw)
	assert.Contains(t, p.User, "payment history, average balance")
	assert.Contains(t, p.User, "isEligible")
	assert.Contains(t, p.User, "reason")
}

func TestNewAdapter_RequiresBackend(t *testing.T) {
	_, err := NewAdapter(nil)
	assert.Error(t, err)
}

func TestAdapter_Infer(t *testing.T) {
	cases := []struct {
		name     string
		reply    string
		eligible bool
		reason   string
	}{
		{"plain json", `{"isEligible": true, "reason": "Consistent payment history"}`, true, "Consistent payment history"},
		{"fenced json", "```json\n{\"isEligible\": false, \"reason\": \"Recent overdrafts\"}\n```", false, "Recent overdrafts"},
		{"surrounding prose", `Here you go: {"reason": "Stable income", "isEligible": true} Thanks.`, true, "Stable income"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			backend := &fakeBackend{reply: tc.reply}
			a, err := NewAdapter(backend)
			require.NoError(t, err)

			got, err := a.Infer(context.Background(), eligibility.Request{AccountHistory: history})
			require.NoError(t, err)
			assert.Equal(t, eligibility.Decision{IsEligible: tc.eligible, Reason: tc.reason}, got)
			require.Len(t, backend.prompts, 1)
			assert.Contains(t, backend.prompts[0].User, history)
		})
	}
}

func TestAdapter_InferRejectsNonConformingReplies(t *testing.T) {
	cases := map[string]string{
		"empty":          "",
		"no json":        "The member is eligible.",
		"broken json":    `{"isEligible": true, "reason": }`,
		"missing reason": `{"isEligible": true}`,
		"missing flag":   `{"reason": "Consistent payment history"}`,
		"string flag":    `{"isEligible": "yes", "reason": "Consistent payment history"}`,
		"numeric reason": `{"isEligible": true, "reason": 42}`,
		"extra field":    `{"isEligible": true, "reason": "ok", "score": 0.9}`,
		"blank reason":   `{"isEligible": false, "reason": "   "}`,
	}
	for name, reply := range cases {
		t.Run(name, func(t *testing.T) {
			backend := &fakeBackend{reply: reply}
			a, err := NewAdapter(backend)
			require.NoError(t, err)

			got, err := a.Infer(context.Background(), eligibility.Request{AccountHistory: history})
			assert.Error(t, err)
			assert.Equal(t, eligibility.Decision{}, got)
			assert.Len(t, backend.prompts, 1)
		})
	}
}

func TestAdapter_InferSchemaErrorDetails(t *testing.T) {
	a, err := NewAdapter(&fakeBackend{reply: `{"isEligible": "yes"}`})
	require.NoError(t, err)

	_, err = a.Infer(context.Background(), eligibility.Request{AccountHistory: history})
	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.NotEmpty(t, schemaErr.Problems)
	assert.Contains(t, strings.Join(schemaErr.Problems, " "), "reason")
}

func TestAdapter_InferBackendError(t *testing.T) {
	cause := errors.New("context deadline exceeded")
	backend := &fakeBackend{err: cause}
	a, err := NewAdapter(backend)
	require.NoError(t, err)

	_, err = a.Infer(context.Background(), eligibility.Request{AccountHistory: history})
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "fake")
	assert.Len(t, backend.prompts, 1)
}

type fakeCompleter struct {
	system, user string
	schema       llm.Schema
	reply        string
}

func (f *fakeCompleter) CompleteJSON(_ context.Context, system, user string, schema llm.Schema) (string, error) {
	f.system, f.user, f.schema = system, user, schema
	return f.reply, nil
}

func TestOpenAIBackend_SendsDecisionSchema(t *testing.T) {
	completer := &fakeCompleter{reply: `{"isEligible": true, "reason": "ok"}`}
	backend, err := NewOpenAIBackend(completer)
	require.NoError(t, err)
	a, err := NewAdapter(backend)
	require.NoError(t, err)

	got, err := a.Infer(context.Background(), eligibility.Request{AccountHistory: history})
	require.NoError(t, err)
	assert.True(t, got.IsEligible)

	assert.Equal(t, systemPrompt, completer.system)
	assert.Contains(t, completer.user, history)
	assert.Equal(t, decisionSchemaName, completer.schema.Name)

	var schema map[string]any
	require.NoError(t, json.Unmarshal(completer.schema.Definition, &schema))
	assert.Equal(t, false, schema["additionalProperties"])
	assert.ElementsMatch(t, []any{"isEligible", "reason"}, schema["required"])
}

type fakeGenerator struct {
	schema *genai.Schema
	reply  string
}

func (f *fakeGenerator) GenerateJSON(_ context.Context, _, _ string, schema *genai.Schema) (string, error) {
	f.schema = schema
	return f.reply, nil
}

func TestGeminiBackend_SendsDecisionSchema(t *testing.T) {
	gen := &fakeGenerator{reply: `{"isEligible": false, "reason": "Insufficient balance"}`}
	backend, err := NewGeminiBackend(gen)
	require.NoError(t, err)
	a, err := NewAdapter(backend)
	require.NoError(t, err)

	got, err := a.Infer(context.Background(), eligibility.Request{AccountHistory: history})
	require.NoError(t, err)
	assert.Equal(t, eligibility.Decision{IsEligible: false, Reason: "Insufficient balance"}, got)

	require.NotNil(t, gen.schema)
	assert.Equal(t, genai.TypeObject, gen.schema.Type)
	assert.ElementsMatch(t, []string{"isEligible", "reason"}, gen.schema.Required)
	assert.Equal(t, genai.TypeBoolean, gen.schema.Properties["isEligible"].Type)
	assert.Equal(t, genai.TypeString, gen.schema.Properties["reason"].Type)
}

func TestBackendConstructorsRequireClient(t *testing.T) {
	_, err := NewOpenAIBackend(nil)
	assert.Error(t, err)
	_, err = NewGeminiBackend(nil)
	assert.Error(t, err)
}
