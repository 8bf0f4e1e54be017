package llm

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config holds all LLM provider configuration. The toml tags let the
// application config file carry an [llm] table.
type Config struct {
	// Provider is one of "anthropic", "openai", "gemini" or "mock".
	Provider string `toml:"provider"`

	Anthropic AnthropicConfig `toml:"anthropic"`
	OpenAI    OpenAIConfig    `toml:"openai"`
	Gemini    GeminiConfig    `toml:"gemini"`
	Retry     RetryConfig     `toml:"-"`

	// Timeout bounds a single request including retries.
	Timeout time.Duration `toml:"-"`
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey string `toml:"api_key"`
	Model  string `toml:"model"` // Default: "claude-haiku"
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey string `toml:"api_key"`
	Model  string `toml:"model"` // Default: "gpt-4o-mini"
	// BaseURL points the client at OpenRouter or another compatible API.
	BaseURL string `toml:"base_url"`
	// SpeechModel is used for transcription. Default: "whisper-1".
	SpeechModel string `toml:"speech_model"`
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey string `toml:"api_key"`
	Model  string `toml:"model"` // Default: "gemini-flash"
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider:  "anthropic",
		Anthropic: AnthropicConfig{Model: "claude-haiku"},
		OpenAI:    OpenAIConfig{Model: "gpt-4o-mini", SpeechModel: "whisper-1"},
		Gemini:    GeminiConfig{Model: "gemini-flash"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 20 * time.Second,
	}
}

// ApplyEnv overrides cfg with SOULSUPPORT_* environment variables.
func ApplyEnv(cfg *Config) {
	set := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	set(&cfg.Provider, "SOULSUPPORT_LLM_PROVIDER")
	set(&cfg.Anthropic.APIKey, "SOULSUPPORT_ANTHROPIC_API_KEY")
	set(&cfg.Anthropic.Model, "SOULSUPPORT_ANTHROPIC_MODEL")
	set(&cfg.OpenAI.APIKey, "SOULSUPPORT_OPENAI_API_KEY")
	set(&cfg.OpenAI.Model, "SOULSUPPORT_OPENAI_MODEL")
	set(&cfg.OpenAI.BaseURL, "SOULSUPPORT_OPENAI_BASE_URL")
	set(&cfg.OpenAI.SpeechModel, "SOULSUPPORT_OPENAI_SPEECH_MODEL")
	set(&cfg.Gemini.APIKey, "SOULSUPPORT_GEMINI_API_KEY")
	set(&cfg.Gemini.Model, "SOULSUPPORT_GEMINI_MODEL")
}

// ConfigFromEnv builds a Config from environment variables, falling back
// to defaults for unset values.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	ApplyEnv(&cfg)
	return cfg
}

// DiscoverConfig probes the vendor API key variables in priority order
// (Gemini, OpenAI, Anthropic) and fills in the first key found. It reports
// false when cfg already has a key for its provider or nothing was found.
func DiscoverConfig(cfg Config) (Config, bool) {
	if cfg.hasKey() {
		return cfg, false
	}
	if k := os.Getenv("GEMINI_API_KEY"); k != "" {
		cfg.Provider = "gemini"
		cfg.Gemini.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("OPENAI_API_KEY"); k != "" {
		cfg.Provider = "openai"
		cfg.OpenAI.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("ANTHROPIC_API_KEY"); k != "" {
		cfg.Provider = "anthropic"
		cfg.Anthropic.APIKey = k
		return cfg, true
	}
	return cfg, false
}

// vendorKeyEnv names the standard API key variable of each vendor.
var vendorKeyEnv = map[string]string{
	"anthropic": "ANTHROPIC_API_KEY",
	"openai":    "OPENAI_API_KEY",
	"gemini":    "GEMINI_API_KEY",
}

// DiscoverKey fills the API key of one vendor from its standard variable
// when none is configured. cfg.Provider is left alone, so a transcriber on
// one vendor can run next to a companion on another.
func DiscoverKey(cfg *Config, vendor string) bool {
	var dst *string
	switch vendor {
	case "anthropic":
		dst = &cfg.Anthropic.APIKey
	case "openai":
		dst = &cfg.OpenAI.APIKey
	case "gemini":
		dst = &cfg.Gemini.APIKey
	default:
		return false
	}
	if *dst != "" {
		return false
	}
	k := os.Getenv(vendorKeyEnv[vendor])
	if k == "" {
		return false
	}
	*dst = k
	return true
}

func (c Config) hasKey() bool {
	switch c.Provider {
	case "anthropic":
		return c.Anthropic.APIKey != ""
	case "openai":
		return c.OpenAI.APIKey != ""
	case "gemini":
		return c.Gemini.APIKey != ""
	case "mock":
		return true
	}
	return false
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	switch c.Provider {
	case "anthropic", "openai", "gemini":
		if !c.hasKey() {
			return fmt.Errorf("SOULSUPPORT_%s_API_KEY is required for the %s provider",
				strings.ToUpper(c.Provider), c.Provider)
		}
	case "mock":
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	return nil
}
