package store

import "context"

// ReportEventData records a PDF report export.
type ReportEventData struct {
	SessionID string
	Path      string
	Answers   int
}

func (r *eventRepo) AppendReportEvent(ctx context.Context, data ReportEventData) error {
	return r.insert(ctx, "report_events",
		[]string{"session_id", "path", "answers"},
		[]any{data.SessionID, data.Path, data.Answers},
	)
}
