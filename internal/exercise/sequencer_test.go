package exercise

import (
	"context"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// immediate records requested delays and fires without waiting.
type immediate struct {
	delays []time.Duration
}

func (i *immediate) schedule(d time.Duration, fn func() tea.Msg) tea.Cmd {
	i.delays = append(i.delays, d)
	return func() tea.Msg { return fn() }
}

// drain feeds step messages back into the sequencer until the run ends and
// returns every emitted text in order.
func drain(t *testing.T, s *Sequencer, cmd tea.Cmd) []string {
	t.Helper()
	var texts []string
	for i := 0; cmd != nil; i++ {
		require.Less(t, i, 100, "sequence did not terminate")
		switch msg := cmd().(type) {
		case StepMsg:
			texts = append(texts, msg.Text)
			cmd = s.Advance(msg)
		case DoneMsg:
			texts = append(texts, msg.Text)
			cmd = nil
		default:
			cmd = nil
		}
	}
	return texts
}

func TestSequencerEmitsStepsThenCompletion(t *testing.T) {
	for _, ex := range append(All(), InstantCalm()) {
		t.Run(ex.Name, func(t *testing.T) {
			clock := &immediate{}
			s := NewSequencer(WithScheduler(clock.schedule))

			_, cmd := s.Start(ex.Name, ex.Steps)
			texts := drain(t, s, cmd)

			require.Len(t, texts, len(ex.Steps)+1)
			for i, st := range ex.Steps {
				assert.Equal(t, st.Text, texts[i])
			}
			assert.Equal(t, CompletionText, texts[len(texts)-1])
			assert.Equal(t, 0, s.Running())
		})
	}
}

func TestSequencerUsesEachStepDelay(t *testing.T) {
	clock := &immediate{}
	s := NewSequencer(WithScheduler(clock.schedule))
	ex, ok := Get(Grounding)
	require.True(t, ok)

	_, cmd := s.Start(ex.Name, ex.Steps)
	drain(t, s, cmd)

	want := make([]time.Duration, len(ex.Steps))
	for i, st := range ex.Steps {
		want[i] = st.Delay
	}
	assert.Equal(t, want, clock.delays)
}

func TestSequencerStop(t *testing.T) {
	clock := &immediate{}
	s := NewSequencer(WithScheduler(clock.schedule))
	ex := InstantCalm()

	id, cmd := s.Start(ex.Name, ex.Steps)
	first := cmd().(StepMsg)
	next := s.Advance(first)

	assert.True(t, s.Stop(id))
	assert.Nil(t, next(), "stopped run should emit nothing")
	assert.Nil(t, s.Advance(first))
	assert.False(t, s.Stop(id))
}

func TestSequencerConcurrentRunsIndependent(t *testing.T) {
	clock := &immediate{}
	s := NewSequencer(WithScheduler(clock.schedule))

	a, cmdA := s.Start(Breathing478, nil)
	b, cmdB := s.Start(InstantCalmID, InstantCalm().Steps)
	assert.NotEqual(t, a, b)
	assert.Equal(t, 2, s.Running())

	assert.Equal(t, []string{CompletionText}, drain(t, s, cmdA))
	assert.Len(t, drain(t, s, cmdB), len(InstantCalm().Steps)+1)
}

func TestSequencerSingleFlight(t *testing.T) {
	clock := &immediate{}
	s := NewSequencer(WithScheduler(clock.schedule), WithSingleFlight(true))

	_, cmdA := s.Start("a", InstantCalm().Steps)
	_, _ = s.Start("b", InstantCalm().Steps)

	assert.Equal(t, 1, s.Running())
	assert.Nil(t, cmdA(), "superseded run should not emit")
}

func TestSequencerWithTickScheduler(t *testing.T) {
	s := NewSequencer()
	steps := []Step{{"one", time.Millisecond}, {"two", time.Millisecond}}

	_, cmd := s.Start("quick", steps)
	assert.Equal(t, []string{"one", "two", CompletionText}, drain(t, s, cmd))
}

func TestPlay(t *testing.T) {
	steps := []Step{{"a", 0}, {"b", time.Millisecond}}
	var got []string
	err := Play(context.Background(), steps, func(s string) { got = append(got, s) })

	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", CompletionText}, got)
}

func TestPlayCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	steps := []Step{{"a", time.Hour}, {"b", 0}}
	var got []string

	err := Play(ctx, steps, func(s string) {
		got = append(got, s)
		cancel()
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []string{"a"}, got)
}
