package lister

import (
	"context"
	"fmt"
	"io"
	"iter"
	"slices"
	"strings"

	"github.com/go-logr/logr"
)

// Descriptor describes one model as reported by the remote service.
type Descriptor struct {
	Name             string
	SupportedMethods []string
}

// Supports reports whether the model lists method among its generation methods.
func (d Descriptor) Supports(method string) bool {
	return slices.Contains(d.SupportedMethods, method)
}

// Source yields model descriptors lazily. The sequence is finite and is
// consumed once; an error ends it.
type Source interface {
	Models(ctx context.Context) iter.Seq2[Descriptor, error]
}

// SourceFunc adapts a function to a Source.
type SourceFunc func(ctx context.Context) iter.Seq2[Descriptor, error]

// Models calls f.
func (f SourceFunc) Models(ctx context.Context) iter.Seq2[Descriptor, error] {
	return f(ctx)
}

// Lister prints the models of a Source.
type Lister struct {
	out     io.Writer
	methods []string
	log     logr.Logger
}

// Option configures a Lister.
type Option func(*Lister)

// WithMethods only prints models supporting all of methods.
func WithMethods(methods ...string) Option {
	return func(l *Lister) {
		l.methods = methods
	}
}

// WithLogger sets the logger used for run summaries.
func WithLogger(log logr.Logger) Option {
	return func(l *Lister) {
		l.log = log
	}
}

// New creates a Lister writing to out.
func New(out io.Writer, opts ...Option) *Lister {
	l := &Lister{
		out: out,
		log: logr.Discard(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Run walks src once and prints one block per model. The header is written
// just before the first block, so an empty or failing sequence prints nothing.
func (l *Lister) Run(ctx context.Context, src Source) error {
	printed, skipped := 0, 0
	for d, err := range src.Models(ctx) {
		if err != nil {
			return fmt.Errorf("listing models: %w", err)
		}
		if !l.matches(d) {
			skipped++
			continue
		}
		if printed == 0 {
			if _, err := io.WriteString(l.out, "Available models:\n"); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(l.out, "Name: %s\nSupported methods: %s\n\n", d.Name, FormatMethods(d.SupportedMethods)); err != nil {
			return err
		}
		printed++
	}
	l.log.V(1).Info("listed models", "printed", printed, "skipped", skipped)
	return nil
}

func (l *Lister) matches(d Descriptor) bool {
	for _, m := range l.methods {
		if !d.Supports(m) {
			return false
		}
	}
	return true
}

// FormatMethods renders methods as a bracketed, space separated list.
func FormatMethods(methods []string) string {
	return "[" + strings.Join(methods, " ") + "]"
}
