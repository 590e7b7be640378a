package llm

import (
	"context"
	"fmt"
	"time"
)

// Provider names accepted by New.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// Config selects and configures a provider.
type Config struct {
	Provider   string
	Model      string
	OpenAIKey  string
	OpenAIBase string
	GeminiKey  string
	Timeout    time.Duration
}

// New constructs the configured provider wrapped with Instrument.
func New(ctx context.Context, cfg Config) (Generator, error) {
	var (
		gen Generator
		err error
	)
	switch cfg.Provider {
	case ProviderOpenAI, "":
		gen, err = NewOpenAI(cfg.OpenAIKey, cfg.OpenAIBase, cfg.Model)
	case ProviderGemini:
		gen, err = NewGemini(ctx, cfg.GeminiKey, cfg.Model)
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
	if err != nil {
		return nil, err
	}
	name := cfg.Provider
	if name == "" {
		name = ProviderOpenAI
	}
	return Instrument(name, gen, cfg.Timeout), nil
}
