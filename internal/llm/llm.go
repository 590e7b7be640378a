// Package llm abstracts the chat-completion providers that turn prompts into
// JSON documents.
package llm

import (
	"context"
	"errors"
	"time"

	"thirdcoast.systems/trendscout/internal/apperror"
	"thirdcoast.systems/trendscout/internal/metrics"
)

// Prompt is a single system + user exchange.
type Prompt struct {
	System      string
	User        string
	Temperature float32
}

// Generator produces the raw text of one completion.
type Generator interface {
	Generate(ctx context.Context, p Prompt) (string, error)
}

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func(ctx context.Context, p Prompt) (string, error)

func (f GeneratorFunc) Generate(ctx context.Context, p Prompt) (string, error) {
	return f(ctx, p)
}

// ErrEmptyCompletion is returned when a provider answers with no content.
var ErrEmptyCompletion = errors.New("empty completion")

type instrumented struct {
	name    string
	next    Generator
	timeout time.Duration
}

// Instrument bounds every call to next by timeout, records provider metrics
// and classifies failures as upstream errors.
func Instrument(name string, next Generator, timeout time.Duration) Generator {
	return &instrumented{name: name, next: next, timeout: timeout}
}

func (g *instrumented) Generate(ctx context.Context, p Prompt) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	start := time.Now()
	out, err := g.next.Generate(ctx, p)
	metrics.ObserveUpstream(g.name, "generate", start, err)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return "", err
		}
		if _, ok := apperror.As(err); ok {
			return "", err
		}
		if errors.Is(err, ErrEmptyCompletion) {
			return "", apperror.Malformed("the model returned an empty response", err)
		}
		return "", apperror.Upstream("failed to generate completion", err)
	}
	return out, nil
}
