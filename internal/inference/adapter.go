package inference

import (
	"context"
	"fmt"

	"github.com/hetulpatel/MantleCoop/internal/eligibility"
)

// Backend sends one prompt to a structured-output model and returns its raw reply.
type Backend interface {
	Name() string
	Generate(ctx context.Context, prompt Prompt) (string, error)
}

// Adapter turns a validated request into exactly one backend call and a
// schema-checked decision. It keeps no state between calls.
type Adapter struct {
	backend Backend
}

var _ eligibility.Inferer = (*Adapter)(nil)

// NewAdapter creates an adapter over backend.
func NewAdapter(backend Backend) (*Adapter, error) {
	if backend == nil {
		return nil, fmt.Errorf("inference: backend is required")
	}
	return &Adapter{backend: backend}, nil
}

// Infer implements eligibility.Inferer.
func (a *Adapter) Infer(ctx context.Context, req eligibility.Request) (eligibility.Decision, error) {
	raw, err := a.backend.Generate(ctx, BuildPrompt(req))
	if err != nil {
		return eligibility.Decision{}, fmt.Errorf("inference: %s call: %w", a.backend.Name(), err)
	}
	decision, err := decodeDecision(raw)
	if err != nil {
		return eligibility.Decision{}, fmt.Errorf("inference: %s reply: %w", a.backend.Name(), err)
	}
	return decision, nil
}
