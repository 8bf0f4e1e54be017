package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/soulsupport/internal/llm"
	"github.com/abhisek/soulsupport/internal/store"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect companion and transcription calls",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM calls",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		events, err := s.EventRepo().QueryLLMEvents(cmd.Context(), store.QueryOpts{Limit: limit, Purpose: purpose})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}
		printLLMEvents(cmd.OutOrStdout(), events)
		return nil
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show the request and response of one LLM call",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid ID %q", args[0])
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		e, err := s.EventRepo().GetLLMEvent(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}
		if e == nil {
			return fmt.Errorf("event %d not found", id)
		}
		printLLMEvent(cmd.OutOrStdout(), e)
		return nil
	},
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show token usage and estimated cost",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		repo := s.EventRepo()
		byPurpose, err := repo.LLMUsageByPurpose(cmd.Context())
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}
		byModel, err := repo.LLMUsageByModel(cmd.Context())
		if err != nil {
			return fmt.Errorf("query model usage: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(byPurpose) == 0 {
			fmt.Fprintln(out, "No LLM usage recorded yet.")
			return nil
		}
		printUsage(out, byPurpose)
		printCost(out, byModel)
		return nil
	},
}

const rule = "─"

func printLLMEvents(w io.Writer, events []store.LLMEventRecord) {
	if len(events) == 0 {
		fmt.Fprintln(w, "No LLM events found.")
		return
	}
	fmt.Fprintf(w, "%-5s  %-16s  %-11s  %-26s  %6s  %6s  %6s  %s\n",
		"ID", "Time", "Purpose", "Model", "In", "Out", "Ms", "OK")
	fmt.Fprintln(w, strings.Repeat(rule, 96))
	for _, e := range events {
		ok := "✓"
		if !e.Success {
			ok = "✗"
		}
		fmt.Fprintf(w, "%-5d  %-16s  %-11s  %-26s  %6d  %6d  %6d  %s\n",
			e.ID, e.Timestamp.Local().Format("2006-01-02 15:04"), e.Purpose,
			truncate(e.Model, 26), e.InputTokens, e.OutputTokens, e.LatencyMs, ok)
	}
}

func printLLMEvent(w io.Writer, e *store.LLMEventRecord) {
	fmt.Fprintf(w, "ID:        %d\n", e.ID)
	fmt.Fprintf(w, "Time:      %s\n", e.Timestamp.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "Provider:  %s (%s)\n", e.Provider, e.Model)
	fmt.Fprintf(w, "Purpose:   %s\n", e.Purpose)
	fmt.Fprintf(w, "Tokens:    %d in / %d out\n", e.InputTokens, e.OutputTokens)
	fmt.Fprintf(w, "Latency:   %dms\n", e.LatencyMs)
	if e.Success {
		fmt.Fprintln(w, "Result:    ok")
	} else {
		fmt.Fprintf(w, "Result:    failed: %s\n", e.ErrorMessage)
	}

	for _, part := range []struct{ title, body string }{
		{"REQUEST", e.RequestBody},
		{"RESPONSE", e.ResponseBody},
	} {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "%s %s %s\n", strings.Repeat(rule, 3), part.title, strings.Repeat(rule, 52-len(part.title)))
		fmt.Fprintln(w, prettyJSON(part.body))
	}
}

// prettyJSON indents body when it is JSON and returns it unchanged
// otherwise.
func prettyJSON(body string) string {
	if body == "" {
		return "(not captured)"
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(body), "", "  "); err != nil {
		return body
	}
	return buf.String()
}

func printUsage(w io.Writer, usage []store.LLMUsage) {
	fmt.Fprintln(w, "Usage by purpose")
	fmt.Fprintln(w, strings.Repeat(rule, 64))
	fmt.Fprintf(w, "%-12s  %6s  %10s  %10s  %10s  %7s\n", "Purpose", "Calls", "Input", "Output", "Total", "Avg ms")

	var total store.LLMUsage
	for _, u := range usage {
		fmt.Fprintf(w, "%-12s  %6d  %10d  %10d  %10d  %7d\n",
			u.Key, u.Calls, u.InputTokens, u.OutputTokens, u.InputTokens+u.OutputTokens, u.AvgLatencyMs)
		total.Calls += u.Calls
		total.InputTokens += u.InputTokens
		total.OutputTokens += u.OutputTokens
	}
	fmt.Fprintln(w, strings.Repeat(rule, 64))
	fmt.Fprintf(w, "%-12s  %6d  %10d  %10d  %10d\n",
		"total", total.Calls, total.InputTokens, total.OutputTokens, total.InputTokens+total.OutputTokens)
}

// printCost estimates spend per model. Models without a price, such as the
// per-minute transcription models, are listed but not summed.
func printCost(w io.Writer, usage []store.LLMUsage) {
	if len(usage) == 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Estimated cost (USD)")
	fmt.Fprintln(w, strings.Repeat(rule, 64))

	var (
		sum     float64
		unknown []string
	)
	for _, u := range usage {
		cost := "?"
		if price := llm.LookupCost(u.Key); price != nil {
			c := price.Cost(u.InputTokens, u.OutputTokens)
			sum += c
			cost = formatCost(c)
		} else {
			unknown = append(unknown, u.Key)
		}
		fmt.Fprintf(w, "%-30s  %6d calls  %12s\n", truncate(u.Key, 30), u.Calls, cost)
	}
	fmt.Fprintln(w, strings.Repeat(rule, 64))

	label := "total"
	if len(unknown) > 0 {
		label = "total (priced models)"
	}
	fmt.Fprintf(w, "%-30s  %12s  %12s\n", label, "", formatCost(sum))
	if len(unknown) > 0 {
		fmt.Fprintf(w, "\nNo pricing for: %s\n", strings.Join(unknown, ", "))
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of events to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Only show one purpose (companion, transcribe)")

	llmCmd.AddCommand(llmListCmd)
	llmCmd.AddCommand(llmViewCmd)
	llmCmd.AddCommand(llmStatsCmd)
}
