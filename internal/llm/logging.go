package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/abhisek/soulsupport/internal/store"
)

// LoggingProvider is a decorator that records every LLM request as a
// store event and mirrors failures to the structured log.
type LoggingProvider struct {
	inner     Provider
	eventRepo store.EventRepo
	provider  string
}

// WithLogging wraps a Provider with event logging. name is the provider
// family recorded with each event ("anthropic", "openai", ...).
func WithLogging(p Provider, name string, repo store.EventRepo) Provider {
	return &LoggingProvider{inner: p, eventRepo: repo, provider: name}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()

	resp, err := l.inner.Generate(ctx, req)

	data := store.LLMRequestEventData{
		Provider:    l.provider,
		Model:       l.inner.ModelID(),
		Purpose:     PurposeFrom(ctx),
		LatencyMs:   time.Since(start).Milliseconds(),
		Success:     err == nil,
		RequestBody: serializeRequest(req),
	}
	if resp != nil {
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		data.Model = resp.Model
		data.ResponseBody = string(resp.Content)
	}
	if err != nil {
		data.ErrorMessage = err.Error()
		slog.Warn("llm request failed", "provider", l.provider, "purpose", data.Purpose, "err", err)
	}

	l.record(ctx, data)
	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

// record stores the event. A logging failure never fails the request.
func (l *LoggingProvider) record(ctx context.Context, data store.LLMRequestEventData) {
	if l.eventRepo == nil {
		return
	}
	if err := l.eventRepo.AppendLLMRequest(ctx, data); err != nil {
		slog.Warn("failed to log LLM request event", "err", err)
	}
}

// LoggingTranscriber records transcription calls the same way.
type LoggingTranscriber struct {
	inner     Transcriber
	eventRepo store.EventRepo
	provider  string
}

// WithTranscribeLogging wraps a Transcriber with event logging.
func WithTranscribeLogging(t Transcriber, name string, repo store.EventRepo) Transcriber {
	return &LoggingTranscriber{inner: t, eventRepo: repo, provider: name}
}

func (l *LoggingTranscriber) Transcribe(ctx context.Context, audio []byte) (string, error) {
	start := time.Now()
	text, err := l.inner.Transcribe(ctx, audio)

	data := store.LLMRequestEventData{
		Provider:     l.provider,
		Model:        l.inner.TranscribeModelID(),
		Purpose:      PurposeTranscribe,
		LatencyMs:    time.Since(start).Milliseconds(),
		Success:      err == nil,
		RequestBody:  fmt.Sprintf("[audio] %d bytes", len(audio)),
		ResponseBody: text,
	}
	if err != nil {
		data.ErrorMessage = err.Error()
		slog.Warn("transcription failed", "provider", l.provider, "err", err)
	}
	(&LoggingProvider{eventRepo: l.eventRepo}).record(ctx, data)
	return text, err
}

func (l *LoggingTranscriber) TranscribeModelID() string {
	return l.inner.TranscribeModelID()
}

// serializeRequest builds a readable representation of the LLM request.
func serializeRequest(req Request) string {
	var b strings.Builder

	if req.System != "" {
		fmt.Fprintf(&b, "[system]\n%s\n\n", req.System)
	}
	for _, m := range req.Messages {
		fmt.Fprintf(&b, "[%s]\n%s\n\n", m.Role, m.Content)
	}
	if req.Schema != nil {
		if def, err := json.Marshal(req.Schema.Definition); err == nil {
			fmt.Fprintf(&b, "[schema: %s]\n%s\n", req.Schema.Name, def)
		}
	}
	return b.String()
}
