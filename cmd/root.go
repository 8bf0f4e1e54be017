package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/abhisek/soulsupport/internal/config"
	"github.com/abhisek/soulsupport/internal/logging"
	"github.com/abhisek/soulsupport/internal/store"
)

// cfg is loaded once before any command runs.
var cfg config.Config

// closeLog flushes the log file after the command finishes.
var closeLog func() error

var rootCmd = &cobra.Command{
	Use:   "soulsupport",
	Short: "A digital friend for mental wellness",
	Long: "SoulSupport is a terminal chat companion with a self-assessment, guided relaxation " +
		"exercises, PDF reports, healing music and local hospital referrals.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return bootstrap(cmd)
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if closeLog != nil {
			return closeLog()
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides SOULSUPPORT_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file (overrides SOULSUPPORT_CONFIG env var)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")

	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(exerciseCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)
}

// bootstrap loads .env, the config file and the environment, applies flag
// overrides and routes logs to the data directory.
func bootstrap(cmd *cobra.Command) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		var err error
		if path, err = config.Path(); err != nil {
			return err
		}
	}

	loaded, err := config.Load(path)
	if err != nil {
		return err
	}
	cfg = loaded

	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		cfg.LogLevel = lvl
	}

	dir, err := logDir(cmd)
	if err != nil {
		return err
	}
	closeLog, err = logging.Setup(dir, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("set up logging: %w", err)
	}
	return nil
}

// logDir keeps the log next to the database.
func logDir(cmd *cobra.Command) (string, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return "", err
	}
	return filepath.Dir(dbPath), nil
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then the configured path (SOULSUPPORT_DB or db_path), then the default XDG
// path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}

// openStore opens the database for a subcommand.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}
