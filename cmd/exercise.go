package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/soulsupport/internal/exercise"
	"github.com/abhisek/soulsupport/internal/store"
)

var exerciseCmd = &cobra.Command{
	Use:   "exercise",
	Short: "Guided relaxation exercises",
}

var exerciseListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available exercises",
	Run: func(cmd *cobra.Command, args []string) {
		for i, e := range exercise.All() {
			fmt.Printf("%d. %-24s %2d steps  %s\n", i+1, e.Name, len(e.Steps), e.Duration().Round(time.Second))
		}
		calm := exercise.InstantCalm()
		fmt.Printf("   %-24s %2d steps  %s\n", calm.Name, len(calm.Steps), calm.Duration().Round(time.Second))
	},
}

var exerciseRunCmd = &cobra.Command{
	Use:   "run <name|number>",
	Short: "Play an exercise in the terminal",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ex, err := lookupExercise(strings.Join(args, " "))
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()
		repo := s.EventRepo()
		record(repo, ex.Name, store.ExerciseStarted)

		if ex.Name != exercise.InstantCalmID {
			fmt.Printf("Starting %s...\n\n", ex.Name)
			if err := pause(ctx, exercise.LeadIn); err != nil {
				record(repo, ex.Name, store.ExerciseStopped)
				return nil
			}
		}

		err = exercise.Play(ctx, ex.Steps, func(text string) {
			fmt.Println("Guide:", text)
		})
		if errors.Is(err, context.Canceled) {
			record(repo, ex.Name, store.ExerciseStopped)
			fmt.Println("\nStopped.")
			return nil
		}
		if err != nil {
			return err
		}
		record(repo, ex.Name, store.ExerciseCompleted)
		return nil
	},
}

// lookupExercise accepts a 1-based number or a case-insensitive name.
func lookupExercise(arg string) (exercise.Exercise, error) {
	all := exercise.All()
	if n, err := strconv.Atoi(arg); err == nil {
		if n < 1 || n > len(all) {
			return exercise.Exercise{}, fmt.Errorf("exercise number must be 1-%d", len(all))
		}
		return all[n-1], nil
	}
	for _, e := range append(all, exercise.InstantCalm()) {
		if strings.EqualFold(e.Name, arg) {
			return e, nil
		}
	}
	return exercise.Exercise{}, fmt.Errorf("unknown exercise %q (see: soulsupport exercise list)", arg)
}

func record(repo store.EventRepo, name, action string) {
	data := store.ExerciseEventData{Name: name, Action: action}
	if err := repo.AppendExerciseEvent(context.Background(), data); err != nil {
		fmt.Fprintln(os.Stderr, "warning: could not record exercise:", err)
	}
}

func pause(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func init() {
	exerciseCmd.AddCommand(exerciseListCmd)
	exerciseCmd.AddCommand(exerciseRunCmd)
}
