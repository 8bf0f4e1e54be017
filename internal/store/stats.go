package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

// Stats summarises everything recorded in the store.
type Stats struct {
	Assessments int
	Completed   int
	// AvgScore averages the totals of completed assessments.
	AvgScore float64
	// Bands counts completed assessments per severity band.
	Bands map[string]int

	// Exercises counts exercise events per exercise name, then per action.
	Exercises map[string]map[string]int

	ReportsSaved int

	// Speech counts capture attempts per outcome.
	Speech map[string]int
}

func (r *eventRepo) Stats(ctx context.Context) (*Stats, error) {
	st := &Stats{
		Bands:     map[string]int{},
		Exercises: map[string]map[string]int{},
		Speech:    map[string]int{},
	}

	totals := sqlite.Select(
		entsql.Count("*"),
		"COALESCE(SUM(complete), 0)",
		"COALESCE(AVG(CASE WHEN complete = 1 THEN total END), 0)",
	).From(sqlite.Table("assessment_events"))
	err := r.query(ctx, totals, func(rows *entsql.Rows) error {
		return rows.Scan(&st.Assessments, &st.Completed, &st.AvgScore)
	})
	if err != nil {
		return nil, fmt.Errorf("count assessments: %w", err)
	}

	bands := sqlite.Select("band", entsql.Count("*")).
		From(sqlite.Table("assessment_events")).
		Where(entsql.EQ("complete", true)).
		GroupBy("band")
	err = r.query(ctx, bands, func(rows *entsql.Rows) error {
		var (
			band string
			n    int
		)
		if err := rows.Scan(&band, &n); err != nil {
			return err
		}
		st.Bands[band] = n
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("count bands: %w", err)
	}

	exercises := sqlite.Select("name", "action", entsql.Count("*")).
		From(sqlite.Table("exercise_events")).
		GroupBy("name", "action")
	err = r.query(ctx, exercises, func(rows *entsql.Rows) error {
		var (
			name, action string
			n            int
		)
		if err := rows.Scan(&name, &action, &n); err != nil {
			return err
		}
		if st.Exercises[name] == nil {
			st.Exercises[name] = map[string]int{}
		}
		st.Exercises[name][action] = n
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("count exercises: %w", err)
	}

	reports := sqlite.Select(entsql.Count("*")).From(sqlite.Table("report_events"))
	err = r.query(ctx, reports, func(rows *entsql.Rows) error {
		return rows.Scan(&st.ReportsSaved)
	})
	if err != nil {
		return nil, fmt.Errorf("count reports: %w", err)
	}

	speech := sqlite.Select("outcome", entsql.Count("*")).
		From(sqlite.Table("speech_events")).
		GroupBy("outcome")
	err = r.query(ctx, speech, func(rows *entsql.Rows) error {
		var (
			outcome string
			n       int
		)
		if err := rows.Scan(&outcome, &n); err != nil {
			return err
		}
		st.Speech[outcome] = n
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("count speech: %w", err)
	}

	return st, nil
}
