package speech

import (
	"errors"
	"fmt"
)

// ListeningText is posted when a capture starts.
const ListeningText = "🎤 Listening... Speak now"

var (
	// ErrNoSpeech means the capture window closed without any speech.
	ErrNoSpeech = errors.New("no speech detected")

	// ErrUnintelligible means audio was captured but could not be
	// transcribed into words.
	ErrUnintelligible = errors.New("could not understand audio")

	// ErrBusy is returned when a capture is already in progress.
	ErrBusy = errors.New("already listening")
)

// ServiceError wraps a failure of the transcription service.
type ServiceError struct {
	Provider string
	Err      error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Provider, e.Err)
}

func (e *ServiceError) Unwrap() error { return e.Err }

// Message maps a capture error to the chat text shown to the user.
func Message(err error) string {
	var svc *ServiceError
	switch {
	case errors.Is(err, ErrNoSpeech):
		return "⏳ No speech detected"
	case errors.Is(err, ErrUnintelligible):
		return "🔇 Could not understand audio"
	case errors.As(err, &svc):
		return fmt.Sprintf("🚫 Speech service error: %v", svc.Err)
	default:
		return fmt.Sprintf("⚠️ Error: %v", err)
	}
}

// Outcome names err for event logging.
func Outcome(err error) string {
	var svc *ServiceError
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrNoSpeech):
		return "no-speech"
	case errors.Is(err, ErrUnintelligible):
		return "unintelligible"
	case errors.As(err, &svc):
		return "service-error"
	default:
		return "error"
	}
}
