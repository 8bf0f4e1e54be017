package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"

	"github.com/abhisek/soulsupport/internal/app"
	"github.com/abhisek/soulsupport/internal/companion"
	"github.com/abhisek/soulsupport/internal/exercise"
	"github.com/abhisek/soulsupport/internal/llm"
	"github.com/abhisek/soulsupport/internal/screens/chat"
	"github.com/abhisek/soulsupport/internal/speech"
	"github.com/abhisek/soulsupport/internal/store"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	eventRepo := st.EventRepo()
	deps := chat.Deps{
		EventRepo:        eventRepo,
		Sequencer:        exercise.NewSequencer(exercise.WithSingleFlight(cfg.Exercise.SingleFlight)),
		TypingDelay:      cfg.TypingDelay(),
		ReportPath:       cfg.Report.FileName,
		CompanionTimeout: cfg.LLM.Timeout,
	}
	if cfg.Music.OpenBrowser {
		deps.OpenURL = openURL
	}

	if cfg.Companion.Enabled {
		provider, err := llm.NewProvider(ctx, cfg.LLM, eventRepo)
		if err != nil {
			fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
			fmt.Fprintln(os.Stderr, "Companion replies will be unavailable.")
		} else {
			ccfg := companion.DefaultConfig()
			ccfg.History = cfg.Companion.History
			deps.Companion = companion.New(provider, ccfg)
		}
	}

	deps.Listener = newListener(ctx, eventRepo)

	slog.Info("starting chat", "companion", deps.Companion != nil, "speech", deps.Listener != nil)
	return app.Run(app.Options{Chat: deps, Splash: cfg.Splash})
}

// newListener wires the recorder and transcriber. It returns nil when no
// transcription backend is configured.
func newListener(ctx context.Context, eventRepo store.EventRepo) *speech.Listener {
	tr, err := llm.NewTranscriber(ctx, cfg.Speech.Provider, cfg.LLM, eventRepo)
	if err != nil {
		slog.Warn("speech input disabled", "provider", cfg.Speech.Provider, "err", err)
		return nil
	}
	rec := speech.CommandRecorder{Args: cfg.Speech.Recorder}
	r := speech.NewRecognizer(rec, tr, cfg.Speech.Provider, cfg.ListenTimeout(), cfg.Speech.SilenceThreshold)
	return speech.NewListener(r, eventRepo)
}

// openURL opens url in the default browser without letting the browser's
// output reach the terminal.
func openURL(url string) error {
	browser.Stdout = io.Discard
	browser.Stderr = io.Discard
	return browser.OpenURL(url)
}
