package main

import (
	"context"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/lintai-dev/lintai/app"
	"github.com/lintai-dev/lintai/domain"
	"github.com/lintai-dev/lintai/internal/config"
	"github.com/lintai-dev/lintai/internal/constants"
	"github.com/lintai-dev/lintai/internal/history"
	"github.com/lintai-dev/lintai/service"
	"github.com/spf13/cobra"
)

var (
	validateOutput     string
	validateOutputFile string
	validatePrompt     string
	validateAssertions string
	validateConfigPath string
	validateThreshold  float64
	validateFormat     string
	validateReportFile string
	validateNoHistory  bool
)

func validateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate an LLM output and render a report",
		Long: `Score an LLM output against weighted assertion rules and render a full
report in text, json, yaml, or markdown.

Unlike 'check', this command always exits 0 unless the run itself errors;
use it for inspection and report generation rather than CI gating.

Examples:
  # Validate text against the default assertions file
  lintai validate --output "Hello world"

  # Markdown report written to a file
  lintai validate --output-file response.txt --format markdown --report report.md

  # Use a specific assertions document and threshold
  lintai validate --output "Hi" --assertions strict.json --threshold 90`,
		RunE:         runValidate,
		SilenceUsage: true,
	}

	cmd.Flags().StringVar(&validateOutput, "output", "",
		"LLM output text to validate")
	cmd.Flags().StringVar(&validateOutputFile, "output-file", "",
		"Path to a file containing the output text")
	cmd.Flags().StringVar(&validatePrompt, "prompt", "",
		"Originating prompt (recorded in the report only)")
	cmd.Flags().StringVarP(&validateAssertions, "assertions", "a", "",
		"Path to the assertions config file")
	cmd.Flags().StringVarP(&validateConfigPath, "config", "c", "",
		"Path to the lintai tool config file")
	cmd.Flags().Float64VarP(&validateThreshold, "threshold", "t", domain.DefaultThreshold,
		"Minimum score (0-100) required to pass")
	cmd.Flags().StringVarP(&validateFormat, "format", "f", "",
		"Report format: text, json, yaml, markdown")
	cmd.Flags().StringVar(&validateReportFile, "report", "",
		"Write the report to a file instead of stdout")
	cmd.Flags().BoolVar(&validateNoHistory, "no-history", false,
		"Skip recording this run in the history database")

	return cmd
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(validateConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	assertionsPath := resolveAssertionsPath(validateAssertions)
	if assertionsPath == "" {
		return fmt.Errorf("no assertions config found (use --assertions or create %s)", constants.AssertionsFileName)
	}

	var threshold *float64
	if cmd.Flags().Changed("threshold") {
		threshold = &validateThreshold
	}

	format := domain.OutputFormat(validateFormat)
	if validateFormat == "" {
		format = domain.OutputFormat(cfg.Output.Format)
	}
	switch format {
	case domain.OutputFormatText, domain.OutputFormatJSON, domain.OutputFormatYAML, domain.OutputFormatMarkdown:
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}

	writer := os.Stdout
	if validateReportFile != "" {
		f, err := os.Create(validateReportFile)
		if err != nil {
			return fmt.Errorf("failed to create report file: %w", err)
		}
		defer f.Close()
		writer = f
	}

	uc := app.NewValidateUseCase(
		service.NewValidationService(),
		service.NewConfigurationLoader(),
		service.NewOutputFormatter(),
	)

	input := app.ValidateInput{
		Output:            validateOutput,
		OutputFile:        validateOutputFile,
		Prompt:            validatePrompt,
		ConfigPath:        assertionsPath,
		Threshold:         threshold,
		FallbackThreshold: &cfg.Validation.Threshold,
		FailOnWarning:     cfg.Validation.FailOnWarning,
		Format:            format,
		Writer:            writer,
	}

	report, err := uc.Execute(context.Background(), input)
	if err != nil {
		return err
	}

	if cfg.History.Enabled && !validateNoHistory {
		recordRun(cfg, sourceLabel(input), outputRuneCount(input), report)
	}

	return nil
}

// outputRuneCount measures the validated text in runes, matching how
// length assertions count it.
func outputRuneCount(input app.ValidateInput) int {
	if input.OutputFile != "" {
		data, err := os.ReadFile(input.OutputFile)
		if err != nil {
			return 0
		}
		return utf8.RuneCount(data)
	}
	return utf8.RuneCountInString(input.Output)
}

// sourceLabel names where the validated output came from
func sourceLabel(input app.ValidateInput) string {
	if input.OutputFile != "" {
		return input.OutputFile
	}
	return "inline"
}

// recordRun appends the report to the history database. History is an
// observability aid; failures are reported but never fail the run.
func recordRun(cfg *config.Config, source string, outputChars int, report *domain.ValidationReport) {
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

	_, err = store.InsertRun(context.Background(), history.Run{
		Source:         source,
		Score:          report.Score,
		Passed:         report.Passed,
		FailedCount:    report.FailedCount,
		AssertionCount: len(report.Results),
		Threshold:      report.Threshold,
		OutputChars:    outputChars,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to record history: %v\n", err)
	}
}
