package speech

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/soulsupport/internal/store"
)

// ResultMsg carries a finished capture into the UI loop. Exactly one of
// Text and Err is set.
type ResultMsg struct {
	Text string
	Err  error
}

// Listener runs captures on a worker goroutine. The worker only sends its
// ResultMsg on a channel; the UI loop receives it through Wait.
type Listener struct {
	recognizer *Recognizer
	eventRepo  store.EventRepo
	results    chan ResultMsg
	busy       atomic.Bool
}

// NewListener creates a Listener. eventRepo may be nil.
func NewListener(r *Recognizer, eventRepo store.EventRepo) *Listener {
	return &Listener{
		recognizer: r,
		eventRepo:  eventRepo,
		results:    make(chan ResultMsg, 1),
	}
}

// Listening reports whether a capture is in progress.
func (l *Listener) Listening() bool {
	return l.busy.Load()
}

// Start launches a capture and returns a command that waits for its
// result. It returns ErrBusy if a capture is already running.
func (l *Listener) Start(ctx context.Context) (tea.Cmd, error) {
	if !l.busy.CompareAndSwap(false, true) {
		return nil, ErrBusy
	}
	go l.work(ctx)
	return l.Wait, nil
}

// Wait blocks until the running capture delivers its result.
func (l *Listener) Wait() tea.Msg {
	return <-l.results
}

func (l *Listener) work(ctx context.Context) {
	start := time.Now()
	text, err := l.recognizer.Recognize(ctx)

	l.record(ctx, err, time.Since(start))
	l.busy.Store(false)
	l.results <- ResultMsg{Text: text, Err: err}
}

func (l *Listener) record(ctx context.Context, err error, took time.Duration) {
	outcome := Outcome(err)
	if err != nil {
		slog.Info("speech capture failed", "outcome", outcome, "err", err)
	}
	if l.eventRepo == nil {
		return
	}
	data := store.SpeechEventData{
		Provider:  l.recognizer.Provider(),
		Outcome:   outcome,
		LatencyMs: took.Milliseconds(),
	}
	if err != nil {
		data.ErrorMessage = err.Error()
	}
	if logErr := l.eventRepo.AppendSpeechEvent(context.WithoutCancel(ctx), data); logErr != nil {
		slog.Warn("failed to log speech event", "err", logErr)
	}
}
