// Package speech captures a short utterance from the microphone and turns
// it into chat text.
package speech

import (
	"context"
	"errors"
	"time"

	"github.com/abhisek/soulsupport/internal/llm"
)

// Recognizer records one utterance and transcribes it.
type Recognizer struct {
	recorder    Recorder
	transcriber llm.Transcriber
	provider    string
	window      time.Duration
	threshold   int
}

// NewRecognizer creates a Recognizer. window caps the capture; recordings
// whose peak amplitude stays below threshold count as no speech.
func NewRecognizer(rec Recorder, tr llm.Transcriber, provider string, window time.Duration, threshold int) *Recognizer {
	return &Recognizer{
		recorder:    rec,
		transcriber: tr,
		provider:    provider,
		window:      window,
		threshold:   threshold,
	}
}

// Provider names the transcription backend.
func (r *Recognizer) Provider() string {
	return r.provider
}

// Recognize captures and transcribes. Errors are ErrNoSpeech,
// ErrUnintelligible, *ServiceError or a capture failure.
func (r *Recognizer) Recognize(ctx context.Context) (string, error) {
	audio, err := r.recorder.Record(ctx, r.window)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", ErrNoSpeech
		}
		return "", err
	}

	peak, err := Peak(audio)
	if err != nil {
		return "", err
	}
	if peak < r.threshold {
		return "", ErrNoSpeech
	}

	if r.transcriber == nil {
		return "", &ServiceError{Provider: r.provider, Err: errors.New("no transcription service configured")}
	}
	text, err := r.transcriber.Transcribe(ctx, audio)
	if err != nil {
		return "", &ServiceError{Provider: r.provider, Err: err}
	}
	if text == "" {
		return "", ErrUnintelligible
	}
	return text, nil
}
