package report

import (
	"fmt"
	"strings"

	"github.com/abhisek/soulsupport/internal/diagnosis"
	"github.com/abhisek/soulsupport/internal/resources"
)

// Markdown renders the report as a markdown document.
func Markdown(in Input) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", Title)
	if !in.GeneratedAt.IsZero() {
		fmt.Fprintf(&b, "_%s_\n\n", in.GeneratedAt.Local().Format("2006-01-02 15:04"))
	}

	b.WriteString("| # | Question | Score |\n|---|---|---|\n")
	for _, e := range in.Entries {
		fmt.Fprintf(&b, "| %d | %s | %d |\n", e.Number, e.Question, e.Answer)
	}

	if in.Complete {
		fmt.Fprintf(&b, "\n**%s** (%d/%d)\n", in.Band.Headline(), in.Total, diagnosis.MaxScore())
	} else {
		fmt.Fprintf(&b, "\n_Incomplete assessment: %d of %d questions answered._\n",
			len(in.Entries), diagnosis.QuestionCount())
	}

	b.WriteString("\n## Recommendations\n\n")
	for _, rec := range resources.Recommendations() {
		b.WriteString(rec)
		b.WriteString("\n")
	}
	return b.String()
}
