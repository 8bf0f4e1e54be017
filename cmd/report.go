package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/abhisek/soulsupport/internal/report"
	"github.com/abhisek/soulsupport/internal/store"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Export a stored assessment as a PDF report",
	RunE: func(cmd *cobra.Command, args []string) error {
		id, _ := cmd.Flags().GetInt("id")
		out, _ := cmd.Flags().GetString("out")
		if out == "" {
			out = cfg.Report.FileName
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		var findArgs []string
		if id > 0 {
			findArgs = []string{strconv.Itoa(id)}
		}
		rec, err := findAssessment(cmd, s.EventRepo(), findArgs)
		if err != nil {
			return err
		}

		in, err := report.FromAnswers(rec.Answers, rec.Timestamp)
		if err != nil {
			return err
		}
		if err := report.SaveFile(out, in); err != nil {
			return fmt.Errorf("save report: %w", err)
		}

		data := store.ReportEventData{SessionID: rec.SessionID, Path: out, Answers: len(in.Entries)}
		if err := s.EventRepo().AppendReportEvent(cmd.Context(), data); err != nil {
			return fmt.Errorf("record report: %w", err)
		}

		fmt.Printf("✅ Report saved: %s\n", out)
		return nil
	},
}

func init() {
	reportCmd.Flags().Int("id", 0, "Assessment ID (default: latest)")
	reportCmd.Flags().StringP("out", "o", "", "Output PDF path (default: report.file_name from config)")
}
