package probe

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/go-logr/logr"
)

// DefaultCandidates are tried in order when none are configured.
var DefaultCandidates = []string{
	"gemini-1.5-flash",
	"gemini-1.5-pro",
	"gemini-1.0-pro",
	"gemini-pro",
	"models/gemini-1.5-flash",
	"models/gemini-pro",
}

// Pinger sends a minimal generation request to a model.
type Pinger interface {
	Ping(ctx context.Context, model string) error
}

// Prober finds the first candidate model that answers.
type Prober struct {
	out io.Writer
	log logr.Logger
}

// New creates a Prober reporting progress to out.
func New(out io.Writer, log logr.Logger) *Prober {
	return &Prober{out: out, log: log}
}

// Run pings each candidate in order and returns the first that succeeds.
// When all fail the last failure is returned.
func (p *Prober) Run(ctx context.Context, pinger Pinger, candidates []string) (string, error) {
	if len(candidates) == 0 {
		candidates = DefaultCandidates
	}

	var last error
	for _, model := range candidates {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		fmt.Fprintf(p.out, "Testing: %s ... ", model)
		if err := pinger.Ping(ctx, model); err != nil {
			fmt.Fprintln(p.out, "FAIL")
			p.log.V(1).Info("probe failed", "model", model, "error", err.Error())
			last = err
			continue
		}
		fmt.Fprintln(p.out, "SUCCESS")
		fmt.Fprintf(p.out, "RECOMMENDATION: Use %q\n", model)
		return model, nil
	}
	if last == nil {
		last = errors.New("no candidates")
	}
	return "", fmt.Errorf("all %d candidate models failed: %w", len(candidates), last)
}
