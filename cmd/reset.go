package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Erase all stored assessments and activity",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}

		if !yes && !confirm(cmd.InOrStdin(), cmd.OutOrStdout(),
			fmt.Sprintf("Delete every assessment and event in %s? [y/N] ", dbPath)) {
			fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
			return nil
		}

		removed, err := removeDatabase(dbPath)
		if err != nil {
			return err
		}
		if removed == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "Nothing to reset.")
			return nil
		}
		slog.Info("database reset", "path", dbPath)
		fmt.Fprintln(cmd.OutOrStdout(), "All history erased.")
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
}

func confirm(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprint(out, prompt)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

// removeDatabase deletes the SQLite file and its WAL companions, returning
// how many files existed.
func removeDatabase(path string) (int, error) {
	removed := 0
	for _, p := range []string{path, path + "-wal", path + "-shm"} {
		err := os.Remove(p)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return removed, fmt.Errorf("remove %s: %w", p, err)
		default:
			removed++
		}
	}
	return removed, nil
}
