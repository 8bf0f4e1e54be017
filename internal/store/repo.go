package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// QueryOpts configures event queries with filtering and pagination.
// Results are returned newest first.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To

	// Purpose filters LLM events; other queries ignore it.
	Purpose string
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// AppendAssessment records a completed or abandoned assessment.
	AppendAssessment(ctx context.Context, data AssessmentEventData) error
	QueryAssessments(ctx context.Context, opts QueryOpts) ([]AssessmentRecord, error)
	// GetAssessment returns nil, nil when id does not exist.
	GetAssessment(ctx context.Context, id int) (*AssessmentRecord, error)
	// LatestAssessment returns nil, nil when no assessment was recorded.
	LatestAssessment(ctx context.Context) (*AssessmentRecord, error)

	AppendExerciseEvent(ctx context.Context, data ExerciseEventData) error
	QueryExerciseEvents(ctx context.Context, opts QueryOpts) ([]ExerciseEventRecord, error)

	AppendReportEvent(ctx context.Context, data ReportEventData) error

	AppendSpeechEvent(ctx context.Context, data SpeechEventData) error

	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEventRecord, error)
	GetLLMEvent(ctx context.Context, id int) (*LLMEventRecord, error)
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsage, error)
	LLMUsageByModel(ctx context.Context) ([]LLMUsage, error)

	// Stats aggregates every table for the stats command.
	Stats(ctx context.Context) (*Stats, error)
}

// eventRepo implements EventRepo with ent's SQL builder over the shared
// driver and the global sequence counter.
type eventRepo struct {
	drv *entsql.Driver
	seq *sequenceCounter
}

var sqlite = entsql.Dialect(dialect.SQLite)

// insert appends a row to table, filling sequence and timestamp.
func (r *eventRepo) insert(ctx context.Context, table string, cols []string, vals []any) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := sqlite.Insert(table).
		Columns(append([]string{"sequence", "timestamp"}, cols...)...).
		Values(append([]any{seqNum, time.Now().UTC().UnixMilli()}, vals...)...).
		Query()

	var res sql.Result
	if err := r.drv.Exec(ctx, query, args, &res); err != nil {
		return fmt.Errorf("insert %s: %w", table, err)
	}
	return nil
}

// selectFrom builds a newest-first query over table honouring opts.
func selectFrom(table string, cols []string, opts QueryOpts) *entsql.Selector {
	sel := sqlite.Select(cols...).From(sqlite.Table(table))
	if opts.After > 0 {
		sel.Where(entsql.GT("sequence", opts.After))
	}
	if opts.Before > 0 {
		sel.Where(entsql.LT("sequence", opts.Before))
	}
	if !opts.From.IsZero() {
		sel.Where(entsql.GTE("timestamp", opts.From.UTC().UnixMilli()))
	}
	if !opts.To.IsZero() {
		sel.Where(entsql.LTE("timestamp", opts.To.UTC().UnixMilli()))
	}
	sel.OrderBy(entsql.Desc("sequence"))
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}
	return sel
}

// query runs sel and calls scan for every row.
func (r *eventRepo) query(ctx context.Context, sel *entsql.Selector, scan func(*entsql.Rows) error) error {
	query, args := sel.Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		if err := scan(&rows); err != nil {
			return err
		}
	}
	return rows.Err()
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}
