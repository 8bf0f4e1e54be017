package diagnosis

// Category is the symptom area a question measures. Categories label the
// bars of the report chart.
type Category string

const (
	CategorySadness       Category = "Sadness"
	CategorySleep         Category = "Sleep"
	CategoryAppetite      Category = "Appetite"
	CategoryConcentration Category = "Concentration"
	CategoryFatigue       Category = "Fatigue"
)

// Question is one fixed assessment prompt.
type Question struct {
	Prompt   string
	Category Category
}

// MinAnswer and MaxAnswer bound an accepted answer.
const (
	MinAnswer = 1
	MaxAnswer = 5
)

var questions = []Question{
	{Prompt: "How often do you feel sad or hopeless? (1: Never - 5: Always)", Category: CategorySadness},
	{Prompt: "How would you rate your sleep quality? (1: Excellent - 5: Very Poor)", Category: CategorySleep},
	{Prompt: "How is your appetite recently? (1: Normal - 5: No Appetite)", Category: CategoryAppetite},
	{Prompt: "Do you have trouble concentrating? (1: Never - 5: Always)", Category: CategoryConcentration},
	{Prompt: "How often do you feel fatigued? (1: Never - 5: Always)", Category: CategoryFatigue},
}

// Questions returns the assessment questions in order.
func Questions() []Question {
	return append([]Question(nil), questions...)
}

// QuestionCount is the number of questions in a full assessment.
func QuestionCount() int {
	return len(questions)
}

// MaxScore is the highest possible total.
func MaxScore() int {
	return len(questions) * MaxAnswer
}
