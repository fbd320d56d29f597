package main

import (
	"context"
	"fmt"
	"os"

	"github.com/lintai-dev/lintai/internal/config"
	"github.com/lintai-dev/lintai/internal/history"
	"github.com/lintai-dev/lintai/service"
	"github.com/spf13/cobra"
)

var (
	historyLimit      int
	historyConfigPath string
	historyJSON       bool
)

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent validation runs",
		Long: `List recent validation runs recorded by 'lintai validate'.

Examples:
  # Show the last 20 runs
  lintai history

  # Show the last 5 runs as JSON
  lintai history --limit 5 --json`,
		RunE:         runHistory,
		SilenceUsage: true,
	}

	cmd.Flags().IntVarP(&historyLimit, "limit", "n", 20,
		"Maximum number of runs to show")
	cmd.Flags().StringVarP(&historyConfigPath, "config", "c", "",
		"Path to the lintai tool config file")
	cmd.Flags().BoolVar(&historyJSON, "json", false,
		"Output runs as JSON")

	return cmd
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(historyConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	path, err := cfg.HistoryPath()
	if err != nil {
		return fmt.Errorf("failed to resolve history path: %w", err)
	}

	store, err := history.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}
	defer store.Close()

	runs, err := store.ListRuns(context.Background(), historyLimit)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if historyJSON {
		return service.WriteJSON(os.Stdout, runs)
	}

	if len(runs) == 0 {
		fmt.Println("No recorded runs.")
		return nil
	}

	fmt.Printf("%-4s %-20s %-30s %-6s %-7s %s\n", "ID", "WHEN", "SOURCE", "SCORE", "RESULT", "FAILED")
	for _, run := range runs {
		result := "fail"
		if run.Passed {
			result = "pass"
		}
		source := run.Source
		if len(source) > 30 {
			source = "..." + source[len(source)-27:]
		}
		fmt.Printf("%-4d %-20s %-30s %-6d %-7s %d/%d\n",
			run.ID,
			run.CreatedAt.Format("2006-01-02 15:04:05"),
			source,
			run.Score,
			result,
			run.FailedCount,
			run.AssertionCount,
		)
	}

	return nil
}
