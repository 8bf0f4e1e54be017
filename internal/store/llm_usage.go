package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

// LLMUsage aggregates LLM calls sharing a key (purpose or model).
type LLMUsage struct {
	Key          string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// LLMUsageByPurpose sums token usage per call purpose.
func (r *eventRepo) LLMUsageByPurpose(ctx context.Context) ([]LLMUsage, error) {
	return r.llmUsage(ctx, "purpose")
}

// LLMUsageByModel sums token usage per model.
func (r *eventRepo) LLMUsageByModel(ctx context.Context) ([]LLMUsage, error) {
	return r.llmUsage(ctx, "model")
}

func (r *eventRepo) llmUsage(ctx context.Context, key string) ([]LLMUsage, error) {
	sel := sqlite.Select(
		key,
		entsql.Count("*"),
		entsql.Sum("input_tokens"),
		entsql.Sum("output_tokens"),
		"CAST(AVG(latency_ms) AS INTEGER)",
	).
		From(sqlite.Table("llm_request_events")).
		GroupBy(key).
		OrderBy(key)

	var out []LLMUsage
	err := r.query(ctx, sel, func(rows *entsql.Rows) error {
		var u LLMUsage
		if err := rows.Scan(&u.Key, &u.Calls, &u.InputTokens, &u.OutputTokens, &u.AvgLatencyMs); err != nil {
			return fmt.Errorf("scan usage: %w", err)
		}
		out = append(out, u)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query LLM usage by %s: %w", key, err)
	}
	return out, nil
}
