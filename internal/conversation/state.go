package conversation

// State tracks the diagnosis progress for the current chat.
// It is owned by the chat screen and mutated only through the diagnosis flow.
type State struct {
	// Active is true while a diagnosis is waiting for answers.
	Active bool

	// QuestionIndex is the index of the question awaiting an answer.
	QuestionIndex int

	// Score is the running sum of accepted answers.
	Score int

	answers []int
}

// NewState returns an idle, zeroed state.
func NewState() *State {
	return &State{}
}

// Reset zeroes the state and marks a diagnosis as active.
func (s *State) Reset() {
	s.Active = true
	s.QuestionIndex = 0
	s.Score = 0
	s.answers = nil
}

// Record appends an accepted answer, adds it to the score and advances
// the question index.
func (s *State) Record(answer int) {
	s.answers = append(s.answers, answer)
	s.Score += answer
	s.QuestionIndex++
}

// Finish marks the diagnosis as no longer active. Answers are kept for
// reporting until the next Reset.
func (s *State) Finish() {
	s.Active = false
}

// Answers returns a copy of the recorded answers in order.
func (s *State) Answers() []int {
	out := make([]int, len(s.answers))
	copy(out, s.answers)
	return out
}

// HasAnswers reports whether at least one answer has been recorded.
func (s *State) HasAnswers() bool {
	return len(s.answers) > 0
}
