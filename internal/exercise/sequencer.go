// Package exercise plays scripted relaxation exercises as a chain of timed
// chat messages.
package exercise

import (
	"context"
	"sync"
	"time"

	tea "charm.land/bubbletea/v2"
)

// CompletionText is emitted after the last step of every exercise.
const CompletionText = "Exercise complete! 🎉"

// LeadIn is the pause between the "Starting ..." announcement and the first
// step of a named exercise.
const LeadIn = 1500 * time.Millisecond

// Ticket identifies one run of an exercise.
type Ticket int64

// StepMsg delivers one step of a running exercise to the UI loop.
type StepMsg struct {
	Ticket Ticket
	Index  int
	Text   string
}

// DoneMsg is delivered after the final step's delay.
type DoneMsg struct {
	Ticket Ticket
	Name   string
	Text   string
}

// Scheduler delivers fn's message after d without blocking the caller.
type Scheduler func(d time.Duration, fn func() tea.Msg) tea.Cmd

// TickScheduler schedules with tea.Tick so the message re-enters the UI loop.
func TickScheduler(d time.Duration, fn func() tea.Msg) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return fn() })
}

type run struct {
	name  string
	steps []Step
}

// Sequencer tracks running exercises. Runs are independent of each other;
// a stopped run emits nothing further.
type Sequencer struct {
	mu           sync.Mutex
	next         Ticket
	runs         map[Ticket]*run
	after        Scheduler
	singleFlight bool
}

// Option configures a Sequencer.
type Option func(*Sequencer)

// WithScheduler replaces the tea.Tick based scheduler.
func WithScheduler(s Scheduler) Option {
	return func(q *Sequencer) { q.after = s }
}

// WithSingleFlight stops any running exercise when a new one starts.
func WithSingleFlight(on bool) Option {
	return func(q *Sequencer) { q.singleFlight = on }
}

// NewSequencer creates a Sequencer.
func NewSequencer(opts ...Option) *Sequencer {
	s := &Sequencer{
		runs:  make(map[Ticket]*run),
		after: TickScheduler,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Start begins a run. The returned command yields the first step
// immediately; feed each StepMsg back through Advance to schedule the rest.
func (s *Sequencer) Start(name string, steps []Step) (Ticket, tea.Cmd) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.singleFlight {
		clear(s.runs)
	}
	s.next++
	id := s.next
	s.runs[id] = &run{name: name, steps: append([]Step(nil), steps...)}

	if len(steps) == 0 {
		return id, func() tea.Msg { return s.complete(id) }
	}
	first := steps[0].Text
	return id, func() tea.Msg {
		if !s.alive(id) {
			return nil
		}
		return StepMsg{Ticket: id, Index: 0, Text: first}
	}
}

// Advance schedules whatever follows msg: the next step, or the completion
// message after the last one. It returns nil for stopped or unknown runs.
func (s *Sequencer) Advance(msg StepMsg) tea.Cmd {
	s.mu.Lock()
	r, ok := s.runs[msg.Ticket]
	s.mu.Unlock()
	if !ok || msg.Index < 0 || msg.Index >= len(r.steps) {
		return nil
	}

	id := msg.Ticket
	delay := r.steps[msg.Index].Delay
	next := msg.Index + 1
	if next < len(r.steps) {
		text := r.steps[next].Text
		return s.after(delay, func() tea.Msg {
			if !s.alive(id) {
				return nil
			}
			return StepMsg{Ticket: id, Index: next, Text: text}
		})
	}
	return s.after(delay, func() tea.Msg { return s.complete(id) })
}

// Stop cancels a run. It reports whether the run was still active.
func (s *Sequencer) Stop(id Ticket) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.runs[id]
	delete(s.runs, id)
	return ok
}

// StopAll cancels every run and returns how many were active.
func (s *Sequencer) StopAll() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.runs)
	clear(s.runs)
	return n
}

// Running returns the number of active runs.
func (s *Sequencer) Running() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.runs)
}

// Name returns the exercise name of a run.
func (s *Sequencer) Name(id Ticket) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.runs[id]; ok {
		return r.name
	}
	return ""
}

func (s *Sequencer) alive(id Ticket) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.runs[id]
	return ok
}

func (s *Sequencer) complete(id Ticket) tea.Msg {
	s.mu.Lock()
	r, ok := s.runs[id]
	delete(s.runs, id)
	s.mu.Unlock()
	if !ok {
		return nil
	}
	return DoneMsg{Ticket: id, Name: r.name, Text: CompletionText}
}

// Play runs steps on the calling goroutine, calling emit for each step and
// then for the completion message. It returns ctx.Err() if cancelled
// between steps.
func Play(ctx context.Context, steps []Step, emit func(string)) error {
	for _, st := range steps {
		emit(st.Text)
		if err := sleep(ctx, st.Delay); err != nil {
			return err
		}
	}
	emit(CompletionText)
	return nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
