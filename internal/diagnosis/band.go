package diagnosis

import "fmt"

// Band is the severity classification of a total score.
type Band string

const (
	BandMild     Band = "mild"
	BandModerate Band = "moderate"
	BandSevere   Band = "severe"
)

// Thresholds are inclusive upper bounds for the mild and moderate bands.
const (
	MildMax     = 10
	ModerateMax = 15
)

// Classify maps a total score to its severity band.
func Classify(total int) Band {
	switch {
	case total <= MildMax:
		return BandMild
	case total <= ModerateMax:
		return BandModerate
	default:
		return BandSevere
	}
}

// Headline returns the user-facing summary for the band.
func (b Band) Headline() string {
	switch b {
	case BandMild:
		return "🌼 Mild Symptoms: Practice self-care!"
	case BandModerate:
		return "📞 Moderate Symptoms: Consider professional help"
	default:
		return "🚨 Severe Symptoms: Immediate consultation recommended"
	}
}

// Result is the outcome of a completed assessment.
type Result struct {
	Answers []int
	Total   int
	Band    Band

	// ReferToHospital is set for severe results; the caller shows the
	// hospital listing.
	ReferToHospital bool
}

// Message returns the chat message announcing the result.
func (r Result) Message() string {
	return fmt.Sprintf("%s\n\nYour score: %d/%d", r.Band.Headline(), r.Total, MaxScore())
}

// newResult classifies answers into a Result.
func newResult(answers []int) *Result {
	total := 0
	for _, a := range answers {
		total += a
	}
	band := Classify(total)
	return &Result{
		Answers:         answers,
		Total:           total,
		Band:            band,
		ReferToHospital: band == BandSevere,
	}
}
