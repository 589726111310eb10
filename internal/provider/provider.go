package provider

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-logr/logr"

	"listmodels/internal/clierr"
	"listmodels/internal/config"
	"listmodels/internal/lister"
	"listmodels/internal/probe"
)

const (
	Gemini       = "gemini"
	GeminiLegacy = "gemini-legacy"
)

// Provider is a remote model service.
type Provider interface {
	lister.Source
	probe.Pinger
	Close() error
}

// Names lists the supported provider names.
func Names() []string {
	return []string{Gemini, GeminiLegacy}
}

// New creates the provider named in cfg.
func New(ctx context.Context, cfg *config.Config, log logr.Logger) (Provider, error) {
	log = log.WithName("provider").WithValues("provider", cfg.Provider)
	switch cfg.Provider {
	case Gemini, "":
		return NewGemini(ctx, cfg, log)
	case GeminiLegacy:
		return NewLegacy(ctx, cfg, log)
	default:
		return nil, clierr.New(clierr.CodeUnknownProvider,
			fmt.Sprintf("unknown provider %q", cfg.Provider),
			"supported providers: "+strings.Join(Names(), ", "),
		)
	}
}
