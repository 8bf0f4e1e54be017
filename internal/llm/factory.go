package llm

import (
	"context"
	"fmt"

	"github.com/abhisek/soulsupport/internal/store"
)

// NewProvider creates a Provider from configuration, wrapped with retry
// and logging middleware: caller -> retry -> logging -> base.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	return WithRetry(WithLogging(base, cfg.Provider, eventRepo), cfg.Retry), nil
}

// NewTranscriber creates a speech Transcriber for the named provider.
// Only providers with an audio API qualify; Anthropic does not.
func NewTranscriber(ctx context.Context, name string, cfg Config, eventRepo store.EventRepo) (Transcriber, error) {
	var base Transcriber
	var err error

	switch name {
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("no speech support for provider %q", name)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s transcriber: %w", name, err)
	}
	return WithTranscribeLogging(base, name, eventRepo), nil
}
