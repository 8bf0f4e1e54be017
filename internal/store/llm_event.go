package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEventRecord is a stored LLM request event.
type LLMEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

var llmColumns = []string{
	"id", "sequence", "timestamp", "provider", "model", "purpose",
	"input_tokens", "output_tokens", "latency_ms", "success",
	"error_message", "request_body", "response_body",
}

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	return r.insert(ctx, "llm_request_events",
		[]string{
			"provider", "model", "purpose", "input_tokens", "output_tokens",
			"latency_ms", "success", "error_message", "request_body", "response_body",
		},
		[]any{
			data.Provider, data.Model, data.Purpose, data.InputTokens, data.OutputTokens,
			data.LatencyMs, data.Success, data.ErrorMessage, data.RequestBody, data.ResponseBody,
		},
	)
}

func (r *eventRepo) QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEventRecord, error) {
	sel := selectFrom("llm_request_events", llmColumns, opts)
	if opts.Purpose != "" {
		sel.Where(entsql.EQ("purpose", opts.Purpose))
	}

	var out []LLMEventRecord
	err := r.query(ctx, sel, func(rows *entsql.Rows) error {
		rec, err := scanLLMEvent(rows)
		if err != nil {
			return err
		}
		out = append(out, rec)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query LLM events: %w", err)
	}
	return out, nil
}

func (r *eventRepo) GetLLMEvent(ctx context.Context, id int) (*LLMEventRecord, error) {
	sel := selectFrom("llm_request_events", llmColumns, QueryOpts{Limit: 1})
	sel.Where(entsql.EQ("id", id))

	var found *LLMEventRecord
	err := r.query(ctx, sel, func(rows *entsql.Rows) error {
		rec, err := scanLLMEvent(rows)
		if err != nil {
			return err
		}
		found = &rec
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("get LLM event: %w", err)
	}
	return found, nil
}

func scanLLMEvent(rows *entsql.Rows) (LLMEventRecord, error) {
	var (
		rec LLMEventRecord
		ts  int64
	)
	err := rows.Scan(&rec.ID, &rec.Sequence, &ts, &rec.Provider, &rec.Model, &rec.Purpose,
		&rec.InputTokens, &rec.OutputTokens, &rec.LatencyMs, &rec.Success,
		&rec.ErrorMessage, &rec.RequestBody, &rec.ResponseBody)
	if err != nil {
		return rec, fmt.Errorf("scan LLM event: %w", err)
	}
	rec.Timestamp = fromMillis(ts)
	return rec, nil
}
