package cmd

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizsense/internal/analysis"
	"github.com/abhisek/quizsense/internal/store"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Inspect recorded evaluations and model requests",
}

var eventsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent evaluations or model requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		kind, _ := cmd.Flags().GetString("kind")
		purpose, _ := cmd.Flags().GetString("purpose")

		s, _, logger, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()
		defer logger.Sync() //nolint:errcheck

		ctx := cmd.Context()
		out := cmd.OutOrStdout()
		opts := store.QueryOpts{Limit: limit}

		switch kind {
		case "evaluations":
			events, err := s.EventRepo().QueryEvaluations(ctx, opts)
			if err != nil {
				return fmt.Errorf("query evaluations: %w", err)
			}
			printEvaluations(out, events)
		case "llm":
			events, err := s.EventRepo().QueryLLMRequests(ctx, opts)
			if err != nil {
				return fmt.Errorf("query model requests: %w", err)
			}
			if purpose != "" {
				events = slices.DeleteFunc(events, func(e store.LLMRequestEventRecord) bool {
					return e.Purpose != purpose
				})
			}
			printLLMRequests(out, events)
		default:
			return fmt.Errorf("unknown kind %q (want evaluations or llm)", kind)
		}
		return nil
	},
}

var eventsStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show performance level counts and model usage",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, _, logger, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()
		defer logger.Sync() //nolint:errcheck

		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		counts, err := s.EventRepo().LevelCounts(ctx)
		if err != nil {
			return fmt.Errorf("query level counts: %w", err)
		}
		usage, err := s.EventRepo().UsageByPurpose(ctx)
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}

		printLevelCounts(out, counts)
		fmt.Fprintln(out)
		printUsage(out, usage)
		return nil
	},
}

func printEvaluations(w io.Writer, events []store.EvaluationEventRecord) {
	if len(events) == 0 {
		fmt.Fprintln(w, "No evaluations found.")
		return
	}

	fmt.Fprintf(w, "%-5s  %-19s  %-20s  %-12s  %-7s  %-17s  %-10s  %s\n",
		"Seq", "Timestamp", "Attempt", "Learner", "Score", "Level", "Trend", "Feedback")
	fmt.Fprintln(w, strings.Repeat("─", 110))

	for _, e := range events {
		fmt.Fprintf(w, "%-5d  %-19s  %-20s  %-12s  %-7s  %-17s  %-10s  %s\n",
			e.Sequence,
			e.Timestamp.Local().Format("2006-01-02 15:04:05"),
			truncate(e.AttemptID, 20),
			truncate(e.LearnerID, 12),
			fmt.Sprintf("%d/%d", e.CorrectAnswers, e.TotalQuestions),
			e.Level,
			e.Trend,
			e.NarrativeSource,
		)
	}
}

func printLLMRequests(w io.Writer, events []store.LLMRequestEventRecord) {
	if len(events) == 0 {
		fmt.Fprintln(w, "No model requests found.")
		return
	}

	fmt.Fprintf(w, "%-5s  %-19s  %-18s  %-28s  %-6s  %-6s  %-7s  %s\n",
		"Seq", "Timestamp", "Purpose", "Model", "In", "Out", "Ms", "OK")
	fmt.Fprintln(w, strings.Repeat("─", 104))

	for _, e := range events {
		ok := "✓"
		if !e.Success {
			ok = "✗"
		}
		fmt.Fprintf(w, "%-5d  %-19s  %-18s  %-28s  %-6d  %-6d  %-7d  %s\n",
			e.Sequence,
			e.Timestamp.Local().Format("2006-01-02 15:04:05"),
			truncate(e.Purpose, 18),
			truncate(e.Model, 28),
			e.InputTokens,
			e.OutputTokens,
			e.LatencyMs,
			ok,
		)
	}
}

func printLevelCounts(w io.Writer, counts map[string]int) {
	fmt.Fprintln(w, "Evaluations by Level")
	fmt.Fprintln(w, strings.Repeat("─", 32))

	total := 0
	for _, lvl := range analysis.AllLevels() {
		n := counts[string(lvl)]
		total += n
		fmt.Fprintf(w, "%-20s  %10d\n", lvl, n)
	}
	fmt.Fprintln(w, strings.Repeat("─", 32))
	fmt.Fprintf(w, "%-20s  %10d\n", "TOTAL", total)
}

func printUsage(w io.Writer, usage []store.UsageSummary) {
	if len(usage) == 0 {
		fmt.Fprintln(w, "No model usage recorded yet.")
		return
	}

	fmt.Fprintln(w, "Model Usage by Purpose")
	fmt.Fprintln(w, strings.Repeat("─", 76))
	fmt.Fprintf(w, "%-20s  %6s  %6s  %10s  %10s  %10s\n",
		"Purpose", "Calls", "Failed", "Input", "Output", "Avg Ms")
	fmt.Fprintln(w, strings.Repeat("─", 76))

	var calls, failed, in, out int
	for _, u := range usage {
		fmt.Fprintf(w, "%-20s  %6d  %6d  %10d  %10d  %10.0f\n",
			truncate(u.Purpose, 20), u.Requests, u.Failures, u.InputTokens, u.OutputTokens, u.AvgLatencyMs)
		calls += u.Requests
		failed += u.Failures
		in += u.InputTokens
		out += u.OutputTokens
	}
	fmt.Fprintln(w, strings.Repeat("─", 76))
	fmt.Fprintf(w, "%-20s  %6d  %6d  %10d  %10d\n", "TOTAL", calls, failed, in, out)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func init() {
	eventsListCmd.Flags().IntP("limit", "n", 20, "Number of events to show")
	eventsListCmd.Flags().StringP("kind", "k", "evaluations", "Event kind: evaluations or llm")
	eventsListCmd.Flags().StringP("purpose", "p", "", "Filter model requests by purpose (e.g. narrative-feedback)")

	eventsCmd.AddCommand(eventsListCmd)
	eventsCmd.AddCommand(eventsStatsCmd)
}
