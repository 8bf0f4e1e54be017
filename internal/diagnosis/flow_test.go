package diagnosis

import (
	"errors"
	"strings"
	"testing"

	"github.com/abhisek/soulsupport/internal/conversation"
)

func newTestFlow() (*Flow, *conversation.State) {
	st := conversation.NewState()
	return NewFlow(st), st
}

func TestStartReturnsFirstQuestion(t *testing.T) {
	f, st := newTestFlow()
	q := f.Start()

	if q.Prompt != Questions()[0].Prompt {
		t.Errorf("first question = %q", q.Prompt)
	}
	if !st.Active {
		t.Error("expected active state after start")
	}
}

func TestStartResetsPriorProgress(t *testing.T) {
	f, st := newTestFlow()
	f.Start()
	f.Submit("4")
	f.Submit("5")

	f.Start()

	if st.QuestionIndex != 0 || st.Score != 0 || st.HasAnswers() {
		t.Errorf("state not reset: index=%d score=%d answers=%v",
			st.QuestionIndex, st.Score, st.Answers())
	}
	q, ok := f.Current()
	if !ok || q.Category != CategorySadness {
		t.Errorf("current = %v/%v, want first question", q, ok)
	}
}

func TestSubmitRejectsInvalidAnswers(t *testing.T) {
	tests := []struct {
		input string
		want  error
	}{
		{"", ErrNotANumber},
		{"abc", ErrNotANumber},
		{"3.5", ErrNotANumber},
		{"three", ErrNotANumber},
		{"0", ErrOutOfRange},
		{"6", ErrOutOfRange},
		{"-1", ErrOutOfRange},
		{"100", ErrOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			f, st := newTestFlow()
			f.Start()
			f.Submit("2")
			before := st.Answers()

			_, err := f.Submit(tt.input)
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
			if st.QuestionIndex != 1 || st.Score != 2 || len(st.Answers()) != len(before) {
				t.Errorf("state changed on rejection: index=%d score=%d", st.QuestionIndex, st.Score)
			}

			// Rejecting again leaves the state where it was.
			f.Submit(tt.input)
			if st.QuestionIndex != 1 || st.Score != 2 {
				t.Error("second rejection changed state")
			}
		})
	}
}

func TestSubmitAcceptsWhitespaceAndSign(t *testing.T) {
	for _, in := range []string{" 3", "3 ", "+3", "\t3\n"} {
		n, err := ParseAnswer(in)
		if err != nil || n != 3 {
			t.Errorf("ParseAnswer(%q) = %d, %v", in, n, err)
		}
	}
}

func TestSubmitAdvancesThroughQuestions(t *testing.T) {
	f, st := newTestFlow()
	f.Start()
	qs := Questions()

	for i := 0; i < len(qs)-1; i++ {
		step, err := f.Submit("1")
		if err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
		if step.Done() {
			t.Fatalf("done after %d answers", i+1)
		}
		if step.Next.Prompt != qs[i+1].Prompt {
			t.Errorf("next = %q, want %q", step.Next.Prompt, qs[i+1].Prompt)
		}
	}

	step, err := f.Submit("1")
	if err != nil {
		t.Fatalf("final submit: %v", err)
	}
	if !step.Done() {
		t.Fatal("expected result after fifth answer")
	}
	if st.Active {
		t.Error("expected idle after completion")
	}
	if _, ok := f.Current(); ok {
		t.Error("expected no current question when idle")
	}
}

func TestSubmitWhileIdle(t *testing.T) {
	f, st := newTestFlow()
	if _, err := f.Submit("3"); !errors.Is(err, ErrNotActive) {
		t.Errorf("err = %v, want ErrNotActive", err)
	}
	if st.HasAnswers() {
		t.Error("idle submit recorded an answer")
	}
}

func TestAllFivesIsSevere(t *testing.T) {
	f, _ := newTestFlow()
	f.Start()

	var step Step
	for i := 0; i < QuestionCount(); i++ {
		var err error
		step, err = f.Submit("5")
		if err != nil {
			t.Fatal(err)
		}
	}

	r := step.Result
	if r.Total != 25 {
		t.Errorf("total = %d, want 25", r.Total)
	}
	if r.Band != BandSevere {
		t.Errorf("band = %q, want severe", r.Band)
	}
	if !r.ReferToHospital {
		t.Error("severe result should refer to hospital")
	}
	if !strings.Contains(r.Message(), "25/25") {
		t.Errorf("message %q missing score fraction", r.Message())
	}
}

func TestReprompt(t *testing.T) {
	if got := Reprompt(ErrOutOfRange); got != "Please enter a number between 1-5" {
		t.Errorf("out of range reprompt = %q", got)
	}
	if got := Reprompt(ErrNotANumber); got != "Please enter a valid number" {
		t.Errorf("not a number reprompt = %q", got)
	}
}
