package store

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"entgo.io/ent"
	"entgo.io/ent/dialect"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"

	entschema "github.com/abhisek/soulsupport/ent/schema"
)

// tableSchemas maps each table to its ent schema. The ent schemas are the
// source of truth for columns and indexes.
var tableSchemas = []struct {
	name string
	def  ent.Interface
}{
	{"global_sequence", entschema.GlobalSequence{}},
	{"assessment_events", entschema.AssessmentEvent{}},
	{"exercise_events", entschema.ExerciseEvent{}},
	{"report_events", entschema.ReportEvent{}},
	{"speech_events", entschema.SpeechEvent{}},
	{"llm_request_events", entschema.LLMRequestEvent{}},
}

var tables = buildTables()

func buildTables() []*schema.Table {
	out := make([]*schema.Table, 0, len(tableSchemas))
	for _, ts := range tableSchemas {
		out = append(out, tableFor(ts.name, ts.def))
	}
	return out
}

// tableFor turns an ent schema and its mixins into a migration table with
// an auto-increment id primary key.
func tableFor(name string, def ent.Interface) *schema.Table {
	id := &schema.Column{Name: "id", Type: field.TypeInt, Increment: true}
	t := &schema.Table{
		Name:       name,
		Columns:    []*schema.Column{id},
		PrimaryKey: []*schema.Column{id},
	}

	var (
		fields  []ent.Field
		indexes []ent.Index
	)
	for _, m := range def.Mixin() {
		fields = append(fields, m.Fields()...)
		indexes = append(indexes, m.Indexes()...)
	}
	fields = append(fields, def.Fields()...)
	indexes = append(indexes, def.Indexes()...)

	byName := map[string]*schema.Column{}
	for _, f := range fields {
		d := f.Descriptor()
		col := &schema.Column{
			Name:     d.Name,
			Type:     d.Info.Type,
			Unique:   d.Unique,
			Nullable: d.Optional || d.Nillable,
		}
		if d.Default != nil && reflect.TypeOf(d.Default).Kind() != reflect.Func {
			col.Default = d.Default
		}
		t.Columns = append(t.Columns, col)
		byName[d.Name] = col
	}

	for _, ix := range indexes {
		d := ix.Descriptor()
		idx := &schema.Index{
			Name:   name + "_" + strings.Join(d.Fields, "_"),
			Unique: d.Unique,
		}
		for _, fname := range d.Fields {
			idx.Columns = append(idx.Columns, byName[fname])
		}
		t.Indexes = append(t.Indexes, idx)
	}
	return t
}

// migrate creates missing tables, columns and indexes with ent's migration
// engine. Columns are never dropped.
func migrate(ctx context.Context, drv dialect.Driver) error {
	m, err := schema.NewMigrate(drv)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	if err := m.Create(ctx, tables...); err != nil {
		return fmt.Errorf("create tables: %w", err)
	}
	return nil
}
