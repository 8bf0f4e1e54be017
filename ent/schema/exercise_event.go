package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
)

// ExerciseEvent records a guided exercise starting, finishing or being stopped.
type ExerciseEvent struct {
	ent.Schema
}

func (ExerciseEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (ExerciseEvent) Fields() []ent.Field {
	return []ent.Field{
		field.Int64("ticket"),
		field.String("name"),
		field.String("action").
			Comment("started, finished or stopped"),
	}
}
