package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/abhisek/soulsupport/internal/diagnosis"
	"github.com/abhisek/soulsupport/internal/report"
	"github.com/abhisek/soulsupport/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect past self-assessments",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent assessments",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		all, _ := cmd.Flags().GetBool("all")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		recs, err := s.EventRepo().QueryAssessments(cmd.Context(), store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query assessments: %w", err)
		}
		if len(recs) == 0 {
			fmt.Println("No assessments found.")
			return nil
		}

		fmt.Printf("%-5s  %-19s  %-7s  %-9s  %s\n", "ID", "Timestamp", "Score", "Band", "Answers")
		fmt.Println(strings.Repeat("─", 64))
		for _, r := range recs {
			if !r.Complete && !all {
				continue
			}
			answers := make([]string, len(r.Answers))
			for i, a := range r.Answers {
				answers[i] = strconv.Itoa(a)
			}
			band := r.Band
			if !r.Complete {
				band += "*"
			}
			fmt.Printf("%-5d  %-19s  %2d/%-4d  %-9s  %s\n",
				r.ID,
				r.Timestamp.Local().Format("2006-01-02 15:04:05"),
				r.Total, diagnosis.MaxScore(),
				band,
				strings.Join(answers, " "),
			)
		}
		if all {
			fmt.Println("\n* partial assessment")
		}
		return nil
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show one assessment as a report (latest by default)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		plain, _ := cmd.Flags().GetBool("plain")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		rec, err := findAssessment(cmd, s.EventRepo(), args)
		if err != nil {
			return err
		}

		in, err := report.FromAnswers(rec.Answers, rec.Timestamp)
		if err != nil {
			return err
		}
		md := report.Markdown(in)
		if plain {
			fmt.Print(md)
			return nil
		}

		r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(80))
		if err != nil {
			fmt.Print(md)
			return nil
		}
		out, err := r.Render(md)
		if err != nil {
			return fmt.Errorf("render report: %w", err)
		}
		fmt.Print(out)
		return nil
	},
}

// findAssessment loads the assessment named by args[0], or the latest one.
func findAssessment(cmd *cobra.Command, repo store.EventRepo, args []string) (*store.AssessmentRecord, error) {
	if len(args) == 0 {
		rec, err := repo.LatestAssessment(cmd.Context())
		if err != nil {
			return nil, fmt.Errorf("latest assessment: %w", err)
		}
		if rec == nil {
			return nil, fmt.Errorf("no assessments recorded yet")
		}
		return rec, nil
	}

	id, err := strconv.Atoi(args[0])
	if err != nil {
		return nil, fmt.Errorf("invalid ID %q: %w", args[0], err)
	}
	rec, err := repo.GetAssessment(cmd.Context(), id)
	if err != nil {
		return nil, fmt.Errorf("get assessment: %w", err)
	}
	if rec == nil {
		return nil, fmt.Errorf("assessment %d not found", id)
	}
	return rec, nil
}

func init() {
	historyListCmd.Flags().Int("limit", 20, "Maximum number of assessments to show")
	historyListCmd.Flags().Bool("all", false, "Include partial assessments")
	historyShowCmd.Flags().Bool("plain", false, "Print raw markdown")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
}
