package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
)

// ReportEvent records a saved PDF report.
type ReportEvent struct {
	ent.Schema
}

func (ReportEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (ReportEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").
			Default(""),
		field.String("path"),
		field.Int("answers").
			Comment("Number of answered questions in the report"),
	}
}
