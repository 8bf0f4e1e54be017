// Package diagnosis implements the five-question self-assessment: question
// sequencing, answer validation and severity classification.
package diagnosis

import (
	"errors"
	"strconv"
	"strings"

	"github.com/abhisek/soulsupport/internal/conversation"
)

var (
	// ErrNotANumber is returned when an answer is not an integer.
	ErrNotANumber = errors.New("answer is not a number")

	// ErrOutOfRange is returned when an answer is outside [MinAnswer, MaxAnswer].
	ErrOutOfRange = errors.New("answer out of range")

	// ErrNotActive is returned when Submit is called with no assessment running.
	ErrNotActive = errors.New("no assessment in progress")
)

// Step is what Submit returns for an accepted answer: either the next
// question or, after the last answer, the result.
type Step struct {
	Next   *Question
	Result *Result
}

// Done reports whether the assessment finished with this step.
func (s Step) Done() bool {
	return s.Result != nil
}

// Flow drives an assessment over a conversation state.
type Flow struct {
	state     *conversation.State
	questions []Question
}

// NewFlow creates a flow that records answers into state.
func NewFlow(state *conversation.State) *Flow {
	return &Flow{state: state, questions: Questions()}
}

// Start resets the state and returns the first question. Starting while an
// assessment is already running discards its answers.
func (f *Flow) Start() Question {
	f.state.Reset()
	return f.questions[0]
}

// Active reports whether the flow is waiting for an answer.
func (f *Flow) Active() bool {
	return f.state.Active
}

// Current returns the question awaiting an answer, or false when idle.
func (f *Flow) Current() (Question, bool) {
	if !f.state.Active || f.state.QuestionIndex >= len(f.questions) {
		return Question{}, false
	}
	return f.questions[f.state.QuestionIndex], true
}

// Submit validates and records an answer. Rejected answers leave the state
// untouched and return ErrNotANumber or ErrOutOfRange.
func (f *Flow) Submit(answer string) (Step, error) {
	if !f.state.Active {
		return Step{}, ErrNotActive
	}

	score, err := ParseAnswer(answer)
	if err != nil {
		return Step{}, err
	}

	f.state.Record(score)
	if f.state.QuestionIndex < len(f.questions) {
		q := f.questions[f.state.QuestionIndex]
		return Step{Next: &q}, nil
	}

	f.state.Finish()
	return Step{Result: newResult(f.state.Answers())}, nil
}

// ParseAnswer converts raw input into a score. Surrounding whitespace and a
// leading sign are accepted.
func ParseAnswer(answer string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(answer))
	if err != nil {
		return 0, ErrNotANumber
	}
	if n < MinAnswer || n > MaxAnswer {
		return 0, ErrOutOfRange
	}
	return n, nil
}

// Reprompt returns the chat message shown for a rejected answer.
func Reprompt(err error) string {
	switch {
	case errors.Is(err, ErrOutOfRange):
		return "Please enter a number between 1-5"
	default:
		return "Please enter a valid number"
	}
}
