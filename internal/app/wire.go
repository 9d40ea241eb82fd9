package app

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/hetulpatel/MantleCoop/internal/cache"
	"github.com/hetulpatel/MantleCoop/internal/config"
	"github.com/hetulpatel/MantleCoop/internal/eligibility"
	"github.com/hetulpatel/MantleCoop/internal/eligibility/metrics"
	"github.com/hetulpatel/MantleCoop/internal/gemini"
	"github.com/hetulpatel/MantleCoop/internal/inference"
	"github.com/hetulpatel/MantleCoop/internal/llm"
)

// NewBackend builds the inference backend for the configured provider.
func NewBackend(ctx context.Context, cfg config.LLMConfig) (inference.Backend, error) {
	switch cfg.Provider {
	case config.ProviderOpenAI, "":
		client, err := llm.New(llm.Config{
			APIKey:      cfg.APIKey,
			BaseURL:     cfg.BaseURL,
			Model:       cfg.Model,
			Temperature: cfg.Temperature,
			MaxTokens:   cfg.MaxTokens,
			Timeout:     cfg.Timeout,
		})
		if err != nil {
			return nil, err
		}
		return inference.NewOpenAIBackend(client)
	case config.ProviderGemini:
		client, err := gemini.New(ctx, gemini.Config{
			APIKey:      cfg.GeminiAPIKey,
			Model:       cfg.GeminiModel,
			Temperature: cfg.Temperature,
			MaxTokens:   cfg.MaxTokens,
			Timeout:     cfg.Timeout,
		})
		if err != nil {
			return nil, err
		}
		return inference.NewGeminiBackend(client)
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}

// NewSequenceStore returns a Redis-backed store when an address is
// configured and an in-process one otherwise. The closer is never nil.
func NewSequenceStore(cfg config.RedisConfig) (eligibility.SequenceStore, func() error, error) {
	if cfg.Addr == "" {
		return eligibility.NewMemorySequenceStore(), func() error { return nil }, nil
	}
	store, err := cache.NewRedisSequenceCache(cfg.Addr, cfg.Password, cfg.DB, cfg.TTL, cfg.Prefix)
	if err != nil {
		return nil, nil, err
	}
	return store, store.Close, nil
}

// Service bundles a ready eligibility service with the resources it holds.
type Service struct {
	*eligibility.Service
	Backend string
	close   func() error
}

func (s *Service) Close() error {
	if s == nil || s.close == nil {
		return nil
	}
	return s.close()
}

// NewService wires backend, sequence store and metrics into an
// eligibility service.
func NewService(ctx context.Context, cfg *config.Config, reg prometheus.Registerer, logger *zap.Logger) (*Service, error) {
	if err := cfg.ValidateLLM(); err != nil {
		return nil, err
	}
	backend, err := NewBackend(ctx, cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("inference backend: %w", err)
	}
	adapter, err := inference.NewAdapter(backend)
	if err != nil {
		return nil, err
	}
	seqs, closeSeqs, err := NewSequenceStore(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("sequence store: %w", err)
	}

	var m *metrics.Metrics
	if reg != nil {
		m = metrics.New(reg)
	}
	svc, err := eligibility.NewService(eligibility.Config{
		Inferer:   adapter,
		Sequences: seqs,
		Metrics:   m,
		Logger:    logger,
	})
	if err != nil {
		_ = closeSeqs()
		return nil, err
	}
	return &Service{Service: svc, Backend: backend.Name(), close: closeSeqs}, nil
}
