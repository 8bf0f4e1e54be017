package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// Exercise event actions.
const (
	ExerciseStarted   = "start"
	ExerciseCompleted = "complete"
	ExerciseStopped   = "stop"
)

// ExerciseEventData records a relaxation exercise lifecycle change.
type ExerciseEventData struct {
	Ticket int64
	Name   string
	Action string
}

// ExerciseEventRecord is a stored exercise event.
type ExerciseEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	ExerciseEventData
}

func (r *eventRepo) AppendExerciseEvent(ctx context.Context, data ExerciseEventData) error {
	return r.insert(ctx, "exercise_events",
		[]string{"ticket", "name", "action"},
		[]any{data.Ticket, data.Name, data.Action},
	)
}

func (r *eventRepo) QueryExerciseEvents(ctx context.Context, opts QueryOpts) ([]ExerciseEventRecord, error) {
	cols := []string{"id", "sequence", "timestamp", "ticket", "name", "action"}
	var out []ExerciseEventRecord
	err := r.query(ctx, selectFrom("exercise_events", cols, opts), func(rows *entsql.Rows) error {
		var (
			rec ExerciseEventRecord
			ts  int64
		)
		if err := rows.Scan(&rec.ID, &rec.Sequence, &ts, &rec.Ticket, &rec.Name, &rec.Action); err != nil {
			return err
		}
		rec.Timestamp = fromMillis(ts)
		out = append(out, rec)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query exercise events: %w", err)
	}
	return out, nil
}
