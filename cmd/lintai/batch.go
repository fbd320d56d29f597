package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/lintai-dev/lintai/app"
	"github.com/lintai-dev/lintai/internal/config"
	"github.com/lintai-dev/lintai/internal/constants"
	"github.com/lintai-dev/lintai/internal/history"
	"github.com/lintai-dev/lintai/service"
	"github.com/spf13/cobra"
)

var (
	batchAssertions  string
	batchConfigPath  string
	batchThreshold   float64
	batchConcurrency int
	batchTimeout     int
	batchJSON        bool
	batchVerbose     bool
	batchNoHistory   bool
)

func batchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch [path...]",
		Short: "Validate many outputs against one assertions document",
		Long: `Validate a set of LLM outputs concurrently. Inputs may be JSONL files
(one {"prompt": ..., "output": ...} object per line), plain output files,
or directories scanned for output files. Directory scans honor .gitignore.

Exit codes:
  0 - Every output passed
  1 - At least one output failed
  2 - Run error (bad config, unreadable input, etc.)

Examples:
  # Validate a JSONL dataset
  lintai batch outputs.jsonl

  # Validate every .txt/.md file under a directory
  lintai batch ./responses/

  # Raise concurrency and emit machine-readable results
  lintai batch --concurrency 16 --json outputs.jsonl`,
		RunE:          runBatch,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().StringVarP(&batchAssertions, "assertions", "a", "",
		"Path to the assertions config file")
	cmd.Flags().StringVarP(&batchConfigPath, "config", "c", "",
		"Path to the lintai tool config file")
	cmd.Flags().Float64VarP(&batchThreshold, "threshold", "t", 0,
		"Minimum score (0-100) required to pass")
	cmd.Flags().IntVar(&batchConcurrency, "concurrency", 0,
		"Maximum parallel validations (0 uses the configured default)")
	cmd.Flags().IntVar(&batchTimeout, "timeout", 0,
		"Whole-run timeout in seconds (0 uses the configured default)")
	cmd.Flags().BoolVar(&batchJSON, "json", false,
		"Output results as JSON")
	cmd.Flags().BoolVarP(&batchVerbose, "verbose", "v", false,
		"List every item instead of failures only")
	cmd.Flags().BoolVar(&batchNoHistory, "no-history", false,
		"Skip recording this run in the history database")

	return cmd
}

func runBatch(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return &CheckExitError{Code: constants.ExitRunError, Message: "no paths specified"}
	}

	cfg, err := config.LoadConfig(batchConfigPath)
	if err != nil {
		return &CheckExitError{Code: constants.ExitRunError, Message: fmt.Sprintf("failed to load configuration: %v", err)}
	}

	assertionsPath := resolveAssertionsPath(batchAssertions)
	if assertionsPath == "" {
		return &CheckExitError{Code: constants.ExitRunError, Message: "no assertions config found (use --assertions or create " + constants.AssertionsFileName + ")"}
	}

	var threshold *float64
	if cmd.Flags().Changed("threshold") {
		threshold = &batchThreshold
	}

	concurrency := batchConcurrency
	if concurrency <= 0 {
		concurrency = cfg.Batch.MaxConcurrency
	}
	timeoutSeconds := batchTimeout
	if timeoutSeconds <= 0 {
		timeoutSeconds = cfg.Batch.TimeoutSeconds
	}

	// Progress goes to stderr, so it stays out of JSON output but is still
	// suppressed in CI where nobody watches it.
	pm := service.NewProgressManager(!batchJSON)
	defer pm.Close()

	uc := app.NewBatchUseCase(
		service.NewValidationService(),
		service.NewConfigurationLoader(),
		pm,
		app.NewFileHelper(cfg.Batch.IncludeExtensions),
	)

	report, err := uc.Execute(context.Background(), app.BatchInput{
		Paths:             args,
		ConfigPath:        assertionsPath,
		Threshold:         threshold,
		FallbackThreshold: &cfg.Validation.Threshold,
		MaxConcurrency:    concurrency,
		Timeout:           time.Duration(timeoutSeconds) * time.Second,
		Recursive:         cfg.Batch.Recursive,
		ExcludePatterns:   cfg.Batch.ExcludePatterns,
	})
	if err != nil {
		return &CheckExitError{Code: constants.ExitRunError, Message: err.Error()}
	}

	if batchJSON {
		if err := service.WriteJSON(os.Stdout, report); err != nil {
			return &CheckExitError{Code: constants.ExitRunError, Message: fmt.Sprintf("failed to encode JSON: %v", err)}
		}
	} else {
		printBatchText(report)
	}

	if cfg.History.Enabled && !batchNoHistory {
		recordBatchRuns(cfg, report)
	}

	if report.Summary.Failed > 0 || report.Summary.Errored > 0 {
		return &CheckExitError{Code: constants.ExitFail, Message: ""}
	}
	return nil
}

// recordBatchRuns appends one history row per validated item. As with
// single runs, history failures warn and never fail the command.
func recordBatchRuns(cfg *config.Config, report *app.BatchReport) {
	path, err := cfg.HistoryPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: history disabled: %v\n", err)
		return
	}

	store, err := history.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to open history: %v\n", err)
		return
	}
	defer store.Close()

	for _, item := range report.Items {
		if item.Report == nil {
			continue
		}
		_, err := store.InsertRun(context.Background(), history.Run{
			Source:         item.Source,
			Score:          item.Report.Score,
			Passed:         item.Report.Passed,
			FailedCount:    item.Report.FailedCount,
			AssertionCount: len(item.Report.Results),
			Threshold:      item.Report.Threshold,
			OutputChars:    item.OutputChars,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to record history: %v\n", err)
			return
		}
	}
}

func printBatchText(report *app.BatchReport) {
	for _, item := range report.Items {
		switch {
		case item.Error != "":
			fmt.Printf("ERROR %s: %s\n", item.Source, item.Error)
		case !item.Report.Passed:
			fmt.Printf("FAIL  %s (score %d, threshold %.0f)\n", item.Source, item.Report.Score, item.Report.Threshold)
			for _, name := range item.Report.FailedAssertions() {
				fmt.Printf("      failed: %s\n", name)
			}
		case batchVerbose:
			fmt.Printf("PASS  %s (score %d)\n", item.Source, item.Report.Score)
		}
	}

	fmt.Printf("\n%d outputs: %d passed, %d failed", report.Summary.Total, report.Summary.Passed, report.Summary.Failed)
	if report.Summary.Errored > 0 {
		fmt.Printf(", %d errored", report.Summary.Errored)
	}
	fmt.Printf(" (average score %.1f)\n", report.Summary.AverageScore)
}
