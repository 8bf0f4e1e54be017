package llm

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/abhisek/soulsupport/internal/store"
)

func TestMockProvider_ReturnsCannedResponses(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"a":1}`), Usage: Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}},
		MockResponse{Text: "hello there"},
	)

	resp, err := mock.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "first"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Content) != `{"a":1}` {
		t.Fatalf("expected {\"a\":1}, got %s", resp.Content)
	}
	if resp.Usage.InputTokens != 10 {
		t.Fatalf("expected 10 input tokens, got %d", resp.Usage.InputTokens)
	}

	text, err := mock.Transcribe(context.Background(), []byte("wav"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "hello there" {
		t.Fatalf("expected transcript, got %q", text)
	}
	if len(mock.Audio) != 1 {
		t.Fatalf("expected 1 recorded audio, got %d", len(mock.Audio))
	}
}

func TestMockProvider_EmptyQueueReturnsError(t *testing.T) {
	mock := NewMockProvider()
	_, err := mock.Generate(context.Background(), Request{})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got: %T", err)
	}
}

func TestMockProvider_ReturnsConfiguredError(t *testing.T) {
	mock := NewMockProvider(MockResponse{Err: &ErrRateLimit{}})

	_, err := mock.Transcribe(context.Background(), nil)
	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("expected ErrRateLimit, got: %T", err)
	}
}

func TestPurposeContext(t *testing.T) {
	ctx := context.Background()
	if p := PurposeFrom(ctx); p != "unknown" {
		t.Fatalf("expected 'unknown', got %q", p)
	}

	ctx = WithPurpose(ctx, PurposeCompanion)
	if p := PurposeFrom(ctx); p != PurposeCompanion {
		t.Fatalf("expected %q, got %q", PurposeCompanion, p)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"anthropic without key", Config{Provider: "anthropic"}, true},
		{"anthropic with key", Config{Provider: "anthropic", Anthropic: AnthropicConfig{APIKey: "sk"}}, false},
		{"openai without key", Config{Provider: "openai"}, true},
		{"gemini with key", Config{Provider: "gemini", Gemini: GeminiConfig{APIKey: "g"}}, false},
		{"mock needs no key", Config{Provider: "mock"}, false},
		{"unknown provider", Config{Provider: "unknown"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("SOULSUPPORT_LLM_PROVIDER", "openai")
	t.Setenv("SOULSUPPORT_OPENAI_API_KEY", "sk-env")
	t.Setenv("SOULSUPPORT_OPENAI_SPEECH_MODEL", "gpt-4o-transcribe")

	cfg := ConfigFromEnv()
	if cfg.Provider != "openai" || cfg.OpenAI.APIKey != "sk-env" {
		t.Fatalf("env not applied: %+v", cfg)
	}
	if cfg.OpenAI.SpeechModel != "gpt-4o-transcribe" {
		t.Fatalf("speech model = %q", cfg.OpenAI.SpeechModel)
	}
	if cfg.OpenAI.Model != "gpt-4o-mini" {
		t.Fatalf("default model lost: %q", cfg.OpenAI.Model)
	}
}

func TestDiscoverConfig(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "sk-openai")
	t.Setenv("ANTHROPIC_API_KEY", "sk-anthropic")

	cfg, ok := DiscoverConfig(DefaultConfig())
	if !ok {
		t.Fatal("expected discovery to succeed")
	}
	if cfg.Provider != "openai" || cfg.OpenAI.APIKey != "sk-openai" {
		t.Fatalf("expected openai to win, got %+v", cfg)
	}

	configured := DefaultConfig()
	configured.Anthropic.APIKey = "explicit"
	cfg, ok = DiscoverConfig(configured)
	if ok || cfg.Anthropic.APIKey != "explicit" {
		t.Fatalf("explicit key should be kept, got %+v (ok=%v)", cfg, ok)
	}
}

func TestLoggingProvider_RecordsEvents(t *testing.T) {
	s, err := store.Open(filepath.Join(t.TempDir(), "llm.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	repo := s.EventRepo()

	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"reply":"ok","concern":"none"}`), Usage: Usage{InputTokens: 3, OutputTokens: 4}},
		MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}},
	)
	p := WithLogging(mock, "mock", repo)
	ctx := WithPurpose(context.Background(), PurposeCompanion)

	if _, err := p.Generate(ctx, Request{System: "sys", Messages: []Message{{Role: RoleUser, Content: "hi"}}}); err != nil {
		t.Fatalf("first call: %v", err)
	}
	if _, err := p.Generate(ctx, Request{}); err == nil {
		t.Fatal("expected second call to fail")
	}

	events, err := repo.QueryLLMEvents(context.Background(), store.QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	failed, ok := events[0], events[1]
	if failed.Success || failed.ErrorMessage == "" {
		t.Errorf("newest event should be the failure: %+v", failed)
	}
	if !ok.Success || ok.Purpose != PurposeCompanion || ok.InputTokens != 3 {
		t.Errorf("unexpected success event: %+v", ok)
	}
	if ok.RequestBody == "" || ok.ResponseBody == "" {
		t.Errorf("bodies not recorded: %+v", ok)
	}
}

func TestLoggingTranscriber_RecordsPurpose(t *testing.T) {
	s, err := store.Open(filepath.Join(t.TempDir(), "llm.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	repo := s.EventRepo()

	tr := WithTranscribeLogging(NewMockProvider(MockResponse{Text: "sad"}), "mock", repo)
	text, err := tr.Transcribe(context.Background(), make([]byte, 32))
	if err != nil || text != "sad" {
		t.Fatalf("Transcribe = %q, %v", text, err)
	}

	events, err := repo.QueryLLMEvents(context.Background(), store.QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 1 || events[0].Purpose != PurposeTranscribe {
		t.Fatalf("unexpected events: %+v", events)
	}
	if events[0].Model != "mock-speech" {
		t.Fatalf("expected the transcription model, got %q", events[0].Model)
	}
}

func TestLoggingTranscriber_RecordsSpeechModel(t *testing.T) {
	s, err := store.Open(filepath.Join(t.TempDir(), "llm.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	repo := s.EventRepo()

	p, err := NewOpenAIProvider(OpenAIConfig{APIKey: "k", Model: "gpt-4o-mini", BaseURL: "http://127.0.0.1:1"})
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}
	tr := WithTranscribeLogging(p, "openai", repo)
	if tr.TranscribeModelID() != "whisper-1" {
		t.Fatalf("expected whisper-1, got %q", tr.TranscribeModelID())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := tr.Transcribe(ctx, make([]byte, 32)); err == nil {
		t.Fatal("expected an error from an unreachable endpoint")
	}

	events, err := repo.QueryLLMEvents(context.Background(), store.QueryOpts{Purpose: PurposeTranscribe})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 1 || events[0].Model != "whisper-1" {
		t.Fatalf("transcription should be charged to whisper-1: %+v", events)
	}
}

func TestNewTranscriber_RejectsAnthropic(t *testing.T) {
	if _, err := NewTranscriber(context.Background(), "anthropic", DefaultConfig(), nil); err == nil {
		t.Fatal("expected anthropic to be rejected for speech")
	}
}
