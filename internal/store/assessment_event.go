package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// AssessmentEventData captures one assessment outcome.
type AssessmentEventData struct {
	SessionID string
	Answers   []int
	Total     int
	Band      string
	Complete  bool
}

// AssessmentRecord is a stored assessment.
type AssessmentRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	SessionID string
	Answers   []int
	Total     int
	Band      string
	Complete  bool
}

var assessmentColumns = []string{
	"id", "sequence", "timestamp", "session_id", "answers", "total", "band", "complete",
}

func (r *eventRepo) AppendAssessment(ctx context.Context, data AssessmentEventData) error {
	answers, err := json.Marshal(data.Answers)
	if err != nil {
		return fmt.Errorf("marshal answers: %w", err)
	}
	return r.insert(ctx, "assessment_events",
		[]string{"session_id", "answers", "total", "band", "complete"},
		[]any{data.SessionID, string(answers), data.Total, data.Band, data.Complete},
	)
}

func (r *eventRepo) QueryAssessments(ctx context.Context, opts QueryOpts) ([]AssessmentRecord, error) {
	var out []AssessmentRecord
	err := r.query(ctx, selectFrom("assessment_events", assessmentColumns, opts), func(rows *entsql.Rows) error {
		rec, err := scanAssessment(rows)
		if err != nil {
			return err
		}
		out = append(out, rec)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query assessments: %w", err)
	}
	return out, nil
}

func (r *eventRepo) GetAssessment(ctx context.Context, id int) (*AssessmentRecord, error) {
	sel := selectFrom("assessment_events", assessmentColumns, QueryOpts{Limit: 1})
	sel.Where(entsql.EQ("id", id))
	return r.firstAssessment(ctx, sel)
}

func (r *eventRepo) LatestAssessment(ctx context.Context) (*AssessmentRecord, error) {
	return r.firstAssessment(ctx, selectFrom("assessment_events", assessmentColumns, QueryOpts{Limit: 1}))
}

func (r *eventRepo) firstAssessment(ctx context.Context, sel *entsql.Selector) (*AssessmentRecord, error) {
	var found *AssessmentRecord
	err := r.query(ctx, sel, func(rows *entsql.Rows) error {
		rec, err := scanAssessment(rows)
		if err != nil {
			return err
		}
		found = &rec
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("get assessment: %w", err)
	}
	return found, nil
}

func scanAssessment(rows *entsql.Rows) (AssessmentRecord, error) {
	var (
		rec     AssessmentRecord
		ts      int64
		answers string
	)
	if err := rows.Scan(&rec.ID, &rec.Sequence, &ts, &rec.SessionID, &answers,
		&rec.Total, &rec.Band, &rec.Complete); err != nil {
		return rec, fmt.Errorf("scan assessment: %w", err)
	}
	if err := json.Unmarshal([]byte(answers), &rec.Answers); err != nil {
		return rec, fmt.Errorf("decode answers: %w", err)
	}
	rec.Timestamp = fromMillis(ts)
	return rec, nil
}
