// Package config loads SoulSupport settings.
//
// Values come from, lowest to highest precedence: built-in defaults, the
// TOML file at Path(), SOULSUPPORT_* environment variables and finally
// command-line flags (applied by the caller).
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/abhisek/soulsupport/internal/llm"
)

// Config is the complete application configuration.
type Config struct {
	// TypingDelayMS is how long the typing indicator shows before a bot reply.
	TypingDelayMS int `toml:"typing_delay_ms"`

	// DBPath overrides the SQLite location. Empty uses the data dir.
	DBPath string `toml:"db_path"`

	LogLevel string `toml:"log_level"`

	// Splash shows the breathing splash before the chat opens.
	Splash bool `toml:"splash"`

	Speech    SpeechConfig    `toml:"speech"`
	Companion CompanionConfig `toml:"companion"`
	Exercise  ExerciseConfig  `toml:"exercise"`
	Report    ReportConfig    `toml:"report"`
	Music     MusicConfig     `toml:"music"`
	LLM       llm.Config      `toml:"llm"`
}

// SpeechConfig controls microphone capture and transcription.
type SpeechConfig struct {
	// Provider names the transcription backend: "openai", "gemini" or "mock".
	Provider string `toml:"provider"`

	// ListenSeconds caps a single capture.
	ListenSeconds int `toml:"listen_seconds"`

	// Recorder is the capture command. "{seconds}" and "{file}" are
	// substituted before it runs.
	Recorder []string `toml:"recorder"`

	// SilenceThreshold is the peak 16-bit amplitude below which a recording
	// counts as no speech.
	SilenceThreshold int `toml:"silence_threshold"`
}

// CompanionConfig enables LLM replies for text the keyword table misses.
type CompanionConfig struct {
	Enabled bool `toml:"enabled"`

	// History is how many recent transcript turns accompany each request.
	History int `toml:"history"`
}

// ExerciseConfig tunes the guided exercise sequencer.
type ExerciseConfig struct {
	// SingleFlight stops running exercises when a new one starts.
	SingleFlight bool `toml:"single_flight"`
}

// ReportConfig holds PDF export defaults.
type ReportConfig struct {
	// FileName is the suggested name in the save dialog.
	FileName string `toml:"file_name"`
}

// MusicConfig controls music therapy.
type MusicConfig struct {
	// OpenBrowser opens the first track when music is requested.
	OpenBrowser bool `toml:"open_browser"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		TypingDelayMS: 1500,
		LogLevel:      "info",
		Splash:        true,
		Speech: SpeechConfig{
			Provider:         "openai",
			ListenSeconds:    5,
			Recorder:         []string{"arecord", "-q", "-f", "S16_LE", "-r", "16000", "-c", "1", "-d", "{seconds}", "{file}"},
			SilenceThreshold: 500,
		},
		Companion: CompanionConfig{History: 6},
		Report:    ReportConfig{FileName: "mental_health_report.pdf"},
		Music:     MusicConfig{OpenBrowser: true},
		LLM:       llm.DefaultConfig(),
	}
}

// TypingDelay returns TypingDelayMS as a duration.
func (c Config) TypingDelay() time.Duration {
	return time.Duration(c.TypingDelayMS) * time.Millisecond
}

// ListenTimeout returns Speech.ListenSeconds as a duration.
func (c Config) ListenTimeout() time.Duration {
	return time.Duration(c.Speech.ListenSeconds) * time.Second
}

// Path resolves the config file location:
// SOULSUPPORT_CONFIG, else $XDG_CONFIG_HOME/soulsupport/config.toml,
// else ~/.config/soulsupport/config.toml.
func Path() (string, error) {
	if p := os.Getenv("SOULSUPPORT_CONFIG"); p != "" {
		return p, nil
	}
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "soulsupport", "config.toml"), nil
}

// Load builds the configuration from defaults, the TOML file at path and
// the environment. A missing file is not an error; an unreadable or
// malformed one is.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		meta, err := toml.DecodeFile(path, &cfg)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("decode %s: %w", path, err)
		default:
			if undecoded := meta.Undecoded(); len(undecoded) > 0 {
				return cfg, fmt.Errorf("unknown config keys in %s: %v", path, undecoded)
			}
		}
	}

	cfg.ApplyEnv()

	if cfg.Companion.Enabled {
		if discovered, ok := llm.DiscoverConfig(cfg.LLM); ok {
			cfg.LLM = discovered
		}
	}
	// Speech needs its vendor's key whether or not the companion is on.
	llm.DiscoverKey(&cfg.LLM, cfg.Speech.Provider)

	return cfg, cfg.Validate()
}

// ApplyEnv overrides c with SOULSUPPORT_* environment variables.
func (c *Config) ApplyEnv() {
	if v, ok := envInt("SOULSUPPORT_TYPING_DELAY_MS"); ok {
		c.TypingDelayMS = v
	}
	if v := os.Getenv("SOULSUPPORT_DB"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("SOULSUPPORT_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("SOULSUPPORT_SPEECH_PROVIDER"); v != "" {
		c.Speech.Provider = v
	}
	if v, ok := envInt("SOULSUPPORT_LISTEN_SECONDS"); ok {
		c.Speech.ListenSeconds = v
	}
	if v := os.Getenv("SOULSUPPORT_RECORDER"); v != "" {
		c.Speech.Recorder = strings.Fields(v)
	}
	if v, ok := envBool("SOULSUPPORT_SPLASH"); ok {
		c.Splash = v
	}
	if v, ok := envBool("SOULSUPPORT_COMPANION"); ok {
		c.Companion.Enabled = v
	}
	if v, ok := envBool("SOULSUPPORT_SINGLE_FLIGHT"); ok {
		c.Exercise.SingleFlight = v
	}
	if v, ok := envBool("SOULSUPPORT_OPEN_BROWSER"); ok {
		c.Music.OpenBrowser = v
	}
	llm.ApplyEnv(&c.LLM)
}

// Validate reports settings that cannot work.
func (c Config) Validate() error {
	var errs []error
	if c.TypingDelayMS < 0 {
		errs = append(errs, fmt.Errorf("typing_delay_ms must not be negative, got %d", c.TypingDelayMS))
	}
	if c.Speech.ListenSeconds < 1 {
		errs = append(errs, fmt.Errorf("speech.listen_seconds must be at least 1, got %d", c.Speech.ListenSeconds))
	}
	if len(c.Speech.Recorder) == 0 {
		errs = append(errs, errors.New("speech.recorder must name a command"))
	}
	if c.Companion.History < 0 {
		errs = append(errs, fmt.Errorf("companion.history must not be negative, got %d", c.Companion.History))
	}
	return errors.Join(errs...)
}

func envInt(key string) (int, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

func envBool(key string) (bool, bool) {
	v := os.Getenv(key)
	if v == "" {
		return false, false
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, false
	}
	return b, true
}
