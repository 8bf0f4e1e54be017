package cmd

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/soulsupport/internal/diagnosis"
	"github.com/abhisek/soulsupport/internal/exercise"
	"github.com/abhisek/soulsupport/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show wellness statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		st, err := s.EventRepo().Stats(cmd.Context())
		if err != nil {
			return fmt.Errorf("query stats: %w", err)
		}
		printStats(os.Stdout, st)
		return nil
	},
}

func printStats(w io.Writer, st *store.Stats) {
	rule := strings.Repeat("─", 48)

	fmt.Fprintln(w, "Assessments")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "%-24s  %d\n", "Recorded", st.Assessments)
	fmt.Fprintf(w, "%-24s  %d\n", "Completed", st.Completed)
	if st.Completed > 0 {
		fmt.Fprintf(w, "%-24s  %.1f/%d\n", "Average score", st.AvgScore, diagnosis.MaxScore())
		for _, b := range []diagnosis.Band{diagnosis.BandMild, diagnosis.BandModerate, diagnosis.BandSevere} {
			fmt.Fprintf(w, "  %-22s  %d\n", string(b), st.Bands[string(b)])
		}
	}
	fmt.Fprintf(w, "%-24s  %d\n", "Reports saved", st.ReportsSaved)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Exercises")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "%-24s  %7s  %8s  %7s\n", "Name", "Started", "Finished", "Stopped")
	names := append(exercise.Names(), exercise.InstantCalm().Name)
	for _, name := range names {
		c := st.Exercises[name]
		fmt.Fprintf(w, "%-24s  %7d  %8d  %7d\n", name,
			c[store.ExerciseStarted], c[store.ExerciseCompleted], c[store.ExerciseStopped])
	}

	if len(st.Speech) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Speech input")
		fmt.Fprintln(w, rule)
		outcomes := make([]string, 0, len(st.Speech))
		for o := range st.Speech {
			outcomes = append(outcomes, o)
		}
		sort.Strings(outcomes)
		for _, o := range outcomes {
			fmt.Fprintf(w, "%-24s  %d\n", o, st.Speech[o])
		}
	}
}
