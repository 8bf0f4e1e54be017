// Package report renders assessment answers as a bar chart and a PDF report.
package report

import (
	"errors"
	"time"

	"github.com/abhisek/soulsupport/internal/diagnosis"
)

// ErrNoData is returned when there are no answers to report on.
var ErrNoData = errors.New("no assessment data available")

// Palette holds the bar colour of each question, in question order.
var Palette = []string{"#FF6B6B", "#4ECDC4", "#45B7D1", "#96CEB4", "#FFEEAD"}

// Entry is one answered question.
type Entry struct {
	Number   int
	Question string
	Category diagnosis.Category
	Answer   int
	Color    string
}

// Input is everything a report is rendered from.
type Input struct {
	Entries     []Entry
	Total       int
	Band        diagnosis.Band
	Complete    bool
	GeneratedAt time.Time
}

// FromAnswers pairs recorded answers with the fixed questions. Answers past
// the last question are ignored; a partial assessment yields a partial report.
func FromAnswers(answers []int, at time.Time) (Input, error) {
	if len(answers) == 0 {
		return Input{}, ErrNoData
	}

	qs := diagnosis.Questions()
	if len(answers) > len(qs) {
		answers = answers[len(answers)-len(qs):]
	}

	in := Input{GeneratedAt: at, Complete: len(answers) == len(qs)}
	for i, a := range answers {
		in.Entries = append(in.Entries, Entry{
			Number:   i + 1,
			Question: qs[i].Prompt,
			Category: qs[i].Category,
			Answer:   a,
			Color:    Palette[i%len(Palette)],
		})
		in.Total += a
	}
	in.Band = diagnosis.Classify(in.Total)
	return in, nil
}
