package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/quizsense/internal/config"
	"github.com/abhisek/quizsense/internal/engine"
	"github.com/abhisek/quizsense/internal/llm"
	"github.com/abhisek/quizsense/internal/metrics"
	"github.com/abhisek/quizsense/internal/misconception"
	"github.com/abhisek/quizsense/internal/narrative"
	"github.com/abhisek/quizsense/internal/report"
	"github.com/abhisek/quizsense/internal/store"
	"github.com/abhisek/quizsense/internal/submission"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <submission.json>",
	Short: "Evaluate a quiz attempt and print the report",
	Long:  "Evaluate a quiz attempt read from a JSON file (or - for stdin) and print the report.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		format, _ := cmd.Flags().GetString("format")
		if format != "text" && format != "json" {
			return fmt.Errorf("unknown format %q (want text or json)", format)
		}

		sub, err := submission.Load(args[0])
		if err != nil {
			return err
		}

		st, cfg, logger, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()
		defer logger.Sync() //nolint:errcheck

		if err := applyAnalyzeFlags(cmd, cfg); err != nil {
			return err
		}

		m := metrics.New()
		opts := []engine.Option{
			engine.WithLogger(logger),
			engine.WithMetrics(m),
		}
		if record, _ := cmd.Flags().GetBool("record"); record {
			opts = append(opts, engine.WithRecorder(st.EventRepo()))
		}

		if cfg.RulesFile != "" {
			rules, err := misconception.LoadRules(cfg.RulesFile)
			if err != nil {
				return err
			}
			opts = append(opts, engine.WithRules(rules))
		}

		if gw := narrativeGateway(ctx, cfg, st.EventRepo(), logger); gw != nil {
			opts = append(opts, engine.WithNarrator(gw))
		}

		if err := fillHistory(ctx, sub, st.EventRepo(), logger); err != nil {
			return err
		}

		r, err := engine.New(opts...).Evaluate(ctx, sub)
		if err != nil {
			return fmt.Errorf("evaluate attempt: %w", err)
		}

		out := cmd.OutOrStdout()
		if format == "json" {
			err = report.WriteJSON(out, r)
		} else {
			width, _ := cmd.Flags().GetInt("width")
			questions, _ := cmd.Flags().GetBool("questions")
			plain, _ := cmd.Flags().GetBool("plain")
			err = report.Write(out, r, report.Options{Width: width, Questions: questions, Plain: plain})
		}
		if err != nil {
			return fmt.Errorf("write report: %w", err)
		}

		if cfg.MetricsFile != "" {
			if err := m.WriteTextfile(cfg.MetricsFile); err != nil {
				logger.Warn("failed to write metrics", zap.Error(err))
			}
		}
		return nil
	},
}

func applyAnalyzeFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if v, _ := flags.GetString("rules"); v != "" {
		cfg.RulesFile = v
	}
	if v, _ := flags.GetString("metrics-file"); v != "" {
		cfg.MetricsFile = v
	}
	if flags.Changed("timeout") {
		d, _ := flags.GetDuration("timeout")
		if d <= 0 {
			return fmt.Errorf("--timeout must be positive, got %s", d)
		}
		cfg.NarrativeTimeout = d
	}
	if off, _ := flags.GetBool("no-narrative"); off {
		cfg.NarrativeEnabled = false
	}
	return nil
}

// narrativeGateway returns nil when narrative feedback is disabled or no
// provider can be built. The report then uses local feedback.
func narrativeGateway(ctx context.Context, cfg *config.Config, recorder llm.EventRecorder, logger *zap.Logger) *narrative.Gateway {
	if !cfg.NarrativeEnabled {
		return nil
	}
	if !cfg.LLMConfigured {
		logger.Info("no model provider configured, using local feedback")
		return nil
	}
	provider, err := llm.NewProvider(ctx, cfg.LLM, recorder, logger)
	if err != nil {
		logger.Warn("model provider unavailable, using local feedback", zap.Error(err))
		return nil
	}

	ncfg := narrative.DefaultConfig()
	ncfg.Timeout = cfg.NarrativeTimeout
	return narrative.NewGateway(provider, ncfg, logger.Named("narrative"))
}

// fillHistory loads the learner's past results when the submission carries
// none.
func fillHistory(ctx context.Context, sub *submission.Submission, repo store.EventRepo, logger *zap.Logger) error {
	if sub.History != nil || sub.LearnerID == "" {
		return nil
	}
	summary, err := repo.LearnerSummary(ctx, sub.LearnerID)
	if err != nil {
		return fmt.Errorf("load learner history: %w", err)
	}
	if summary == nil {
		return nil
	}
	sub.History = &narrative.History{
		TotalQuizzesTaken: summary.QuizzesTaken,
		AverageAccuracy:   summary.AverageAccuracy,
		WeakAreas:         summary.WeakAreas,
	}
	logger.Debug("loaded learner history",
		zap.String("learner_id", sub.LearnerID),
		zap.Int("quizzes", summary.QuizzesTaken),
	)
	return nil
}

func init() {
	f := analyzeCmd.Flags()
	f.StringP("format", "f", "text", "Output format: text or json")
	f.BoolP("questions", "q", false, "Include per-question analysis in text output")
	f.Bool("plain", false, "Disable colors in text output")
	f.Int("width", report.DefaultWidth, "Text output width")
	f.String("rules", "", "YAML rule file overlaid on the built-in tables (overrides QUIZSENSE_RULES_FILE)")
	f.Duration("timeout", 0, "Narrative feedback timeout (overrides QUIZSENSE_NARRATIVE_TIMEOUT)")
	f.Bool("no-narrative", false, "Skip the model provider and use local feedback")
	f.Bool("record", true, "Record the evaluation in the event store")
	f.String("metrics-file", "", "Write Prometheus metrics to this file after the run")
}
