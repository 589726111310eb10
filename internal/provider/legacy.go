package provider

import (
	"context"
	"errors"
	"fmt"
	"iter"

	"github.com/go-logr/logr"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"listmodels/internal/clierr"
	"listmodels/internal/config"
	"listmodels/internal/lister"
)

// LegacySource lists models through the github.com/google/generative-ai-go
// client. It only speaks to the Gemini API.
type LegacySource struct {
	client *genai.Client
	log    logr.Logger
}

// NewLegacy creates a generative-ai-go client authenticated with cfg.APIKey.
func NewLegacy(ctx context.Context, cfg *config.Config, log logr.Logger) (*LegacySource, error) {
	if cfg.Backend == config.BackendVertexAI {
		return nil, clierr.New(clierr.CodeInvalidConfig,
			"the gemini-legacy provider does not support the vertex-ai backend",
			"use --provider "+Gemini,
		)
	}

	opts := []option.ClientOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithEndpoint(cfg.BaseURL))
	}
	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	log.V(1).Info("created client", "apiKey", config.MaskKey(cfg.APIKey))
	return &LegacySource{client: client, log: log}, nil
}

// Models drives the ModelInfoIterator until iterator.Done.
func (s *LegacySource) Models(ctx context.Context) iter.Seq2[lister.Descriptor, error] {
	return func(yield func(lister.Descriptor, error) bool) {
		it := s.client.ListModels(ctx)
		for {
			info, err := it.Next()
			if errors.Is(err, iterator.Done) {
				return
			}
			if err != nil {
				yield(lister.Descriptor{}, fmt.Errorf("error listing models: %w", err))
				return
			}
			if !yield(fromModelInfo(info), nil) {
				return
			}
		}
	}
}

// Ping asks model for a single output token.
func (s *LegacySource) Ping(ctx context.Context, model string) error {
	m := s.client.GenerativeModel(model)
	m.SetMaxOutputTokens(1)
	_, err := m.GenerateContent(ctx, genai.Text("hi"))
	return err
}

// Close releases the underlying client.
func (s *LegacySource) Close() error {
	return s.client.Close()
}

func fromModelInfo(info *genai.ModelInfo) lister.Descriptor {
	if info == nil {
		return lister.Descriptor{}
	}
	return lister.Descriptor{
		Name:             info.Name,
		SupportedMethods: info.SupportedGenerationMethods,
	}
}
