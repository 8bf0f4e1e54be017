package llm

import "context"

// Purposes recorded with each LLM event.
const (
	PurposeCompanion  = "companion"
	PurposeTranscribe = "transcribe"
	purposeUnknown    = "unknown"
)

type purposeKey struct{}

// WithPurpose labels calls made with ctx so the logging decorator can
// group them by what they were for.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom returns the label set by WithPurpose, or "unknown".
func PurposeFrom(ctx context.Context) string {
	if p, ok := ctx.Value(purposeKey{}).(string); ok && p != "" {
		return p
	}
	return purposeUnknown
}
