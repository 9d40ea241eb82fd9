package inference

import (
	"context"
	"encoding/json"
	"fmt"

	"google.golang.org/genai"

	"github.com/hetulpatel/MantleCoop/internal/llm"
)

// JSONCompleter is the subset of *llm.Client used by OpenAIBackend.
type JSONCompleter interface {
	CompleteJSON(ctx context.Context, systemPrompt, userPrompt string, schema llm.Schema) (string, error)
}

// OpenAIBackend asks an OpenAI-compatible server for a schema-constrained reply.
type OpenAIBackend struct {
	client JSONCompleter
}

func NewOpenAIBackend(client JSONCompleter) (*OpenAIBackend, error) {
	if client == nil {
		return nil, fmt.Errorf("inference: openai client is required")
	}
	return &OpenAIBackend{client: client}, nil
}

func (b *OpenAIBackend) Name() string { return "openai" }

func (b *OpenAIBackend) Generate(ctx context.Context, prompt Prompt) (string, error) {
	return b.client.CompleteJSON(ctx, prompt.System, prompt.User, llm.Schema{
		Name:        decisionSchemaName,
		Description: "Loan eligibility decision for a cooperative member.",
		Definition:  json.RawMessage(decisionSchemaJSON),
	})
}

// JSONGenerator is the subset of *gemini.Client used by GeminiBackend.
type JSONGenerator interface {
	GenerateJSON(ctx context.Context, systemPrompt, userPrompt string, schema *genai.Schema) (string, error)
}

// GeminiBackend asks the Gemini API for a schema-constrained reply.
type GeminiBackend struct {
	client JSONGenerator
}

func NewGeminiBackend(client JSONGenerator) (*GeminiBackend, error) {
	if client == nil {
		return nil, fmt.Errorf("inference: gemini client is required")
	}
	return &GeminiBackend{client: client}, nil
}

func (b *GeminiBackend) Name() string { return "gemini" }

func (b *GeminiBackend) Generate(ctx context.Context, prompt Prompt) (string, error) {
	return b.client.GenerateJSON(ctx, prompt.System, prompt.User, genAIDecisionSchema())
}
