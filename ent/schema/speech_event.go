package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
)

// SpeechEvent records one spoken-input attempt.
type SpeechEvent struct {
	ent.Schema
}

func (SpeechEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (SpeechEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("provider"),
		field.String("outcome"),
		field.Int64("latency_ms"),
		field.String("error_message").
			Default(""),
	}
}
