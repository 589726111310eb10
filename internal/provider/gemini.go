package provider

import (
	"context"
	"fmt"
	"iter"

	"github.com/go-logr/logr"
	"google.golang.org/genai"

	"listmodels/internal/config"
	"listmodels/internal/lister"
)

// GeminiSource lists models through the google.golang.org/genai client,
// against either the Gemini API or Vertex AI.
type GeminiSource struct {
	client *genai.Client
	log    logr.Logger
}

// NewGemini creates a genai client for the backend selected in cfg.
func NewGemini(ctx context.Context, cfg *config.Config, log logr.Logger) (*GeminiSource, error) {
	cc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.Backend == config.BackendVertexAI {
		cc.APIKey = ""
		cc.Backend = genai.BackendVertexAI
		cc.Project = cfg.Project
		cc.Location = cfg.Location
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions.BaseURL = cfg.BaseURL
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}
	log.V(1).Info("created client", "backend", cfg.Backend, "apiKey", config.MaskKey(cfg.APIKey))
	return &GeminiSource{client: client, log: log}, nil
}

// Models pages through client.Models.All as the caller iterates.
func (s *GeminiSource) Models(ctx context.Context) iter.Seq2[lister.Descriptor, error] {
	return func(yield func(lister.Descriptor, error) bool) {
		for model, err := range s.client.Models.All(ctx) {
			if err != nil {
				yield(lister.Descriptor{}, err)
				return
			}
			if !yield(fromModel(model), nil) {
				return
			}
		}
	}
}

// Ping asks model for a single output token.
func (s *GeminiSource) Ping(ctx context.Context, model string) error {
	_, err := s.client.Models.GenerateContent(ctx, model, genai.Text("hi"), &genai.GenerateContentConfig{
		MaxOutputTokens: 1,
	})
	return err
}

// Close is a no-op; the genai client holds no closable resources.
func (s *GeminiSource) Close() error {
	return nil
}

func fromModel(m *genai.Model) lister.Descriptor {
	if m == nil {
		return lister.Descriptor{}
	}
	return lister.Descriptor{
		Name:             m.Name,
		SupportedMethods: m.SupportedActions,
	}
}
