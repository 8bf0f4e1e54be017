package store

import "context"

// SpeechEventData records one speech recognition attempt.
// Outcome is one of "ok", "no-speech", "unintelligible", "service-error", "error".
type SpeechEventData struct {
	Provider     string
	Outcome      string
	LatencyMs    int64
	ErrorMessage string
}

func (r *eventRepo) AppendSpeechEvent(ctx context.Context, data SpeechEventData) error {
	return r.insert(ctx, "speech_events",
		[]string{"provider", "outcome", "latency_ms", "error_message"},
		[]any{data.Provider, data.Outcome, data.LatencyMs, data.ErrorMessage},
	)
}
