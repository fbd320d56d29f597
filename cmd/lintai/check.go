package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/lintai-dev/lintai/app"
	"github.com/lintai-dev/lintai/domain"
	"github.com/lintai-dev/lintai/internal/config"
	"github.com/lintai-dev/lintai/internal/constants"
	"github.com/lintai-dev/lintai/internal/gha"
	"github.com/lintai-dev/lintai/service"
	"github.com/spf13/cobra"
)

// CheckExitError is a custom error type for check command exit codes
type CheckExitError struct {
	Code    int
	Message string
}

func (e *CheckExitError) Error() string {
	return e.Message
}

var (
	checkOutput        string
	checkOutputFile    string
	checkPrompt        string
	checkConfigPath    string
	checkThreshold     float64
	checkFailOnWarning bool
	checkJSON          bool
	checkVerbose       bool
	checkNoHistory     bool
)

func checkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "CI gate for LLM output validation",
		Long: `Validate one LLM output against an assertions document and exit with a
CI-friendly status code. Inside GitHub Actions, unset flags fall back to
the action's INPUT_* environment variables and results are published via
GITHUB_OUTPUT and workflow annotations.

Exit codes:
  0 - Validation passed
  1 - Validation failed (score below threshold or failed assertions)
  2 - Run error (missing input, malformed config, etc.)

Examples:
  # Validate an output string against the default assertions file
  lintai check --output "Hello world" --config lintai.assertions.json

  # Validate a file, overriding the threshold
  lintai check --output-file response.txt --threshold 90

  # Read the output from stdin
  cat response.txt | lintai check --config assertions.json

  # JSON output for machine parsing
  lintai check --output "Hello" --json`,
		RunE:          runCheck,
		SilenceUsage:  true, // Don't print usage on errors (we handle our own output)
		SilenceErrors: true, // Don't print error messages (we handle our own output)
	}

	cmd.Flags().StringVar(&checkOutput, "output", "",
		"LLM output text to validate")
	cmd.Flags().StringVar(&checkOutputFile, "output-file", "",
		"Path to a file containing the output text")
	cmd.Flags().StringVar(&checkPrompt, "prompt", "",
		"Originating prompt (recorded in the report only)")
	cmd.Flags().StringVarP(&checkConfigPath, "config", "c", "",
		"Path to the assertions config file")
	cmd.Flags().Float64VarP(&checkThreshold, "threshold", "t", domain.DefaultThreshold,
		"Minimum score (0-100) required to pass")
	cmd.Flags().BoolVar(&checkFailOnWarning, "fail-on-warning", false,
		"Treat warnings as failures")
	cmd.Flags().BoolVar(&checkJSON, "json", false,
		"Output results as JSON")
	cmd.Flags().BoolVarP(&checkVerbose, "verbose", "v", false,
		"Show detailed output")
	cmd.Flags().BoolVar(&checkNoHistory, "no-history", false,
		"Skip recording this run in the history database")

	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	applyActionInputs(cmd)

	output, outputFile, err := resolveCheckOutput(cmd)
	if err != nil {
		return &CheckExitError{Code: constants.ExitRunError, Message: err.Error()}
	}

	configPath := resolveAssertionsPath(checkConfigPath)
	if configPath == "" {
		return &CheckExitError{Code: constants.ExitRunError, Message: "no assertions config found (use --config or create " + constants.AssertionsFileName + ")"}
	}

	var threshold *float64
	if cmd.Flags().Changed("threshold") || (gha.InActions() && actionThresholdInput() != "") {
		threshold = &checkThreshold
	}

	uc := app.NewValidateUseCase(
		service.NewValidationService(),
		service.NewConfigurationLoader(),
		service.NewOutputFormatter(),
	)

	format := domain.OutputFormatText
	if checkJSON {
		format = domain.OutputFormatJSON
	}

	if checkVerbose && !checkJSON {
		fmt.Printf("Assertions: %s\n", configPath)
		if threshold != nil {
			fmt.Printf("Threshold: %g (override)\n", *threshold)
		}
	}

	report, err := uc.Execute(context.Background(), app.ValidateInput{
		Output:        output,
		OutputFile:    outputFile,
		Prompt:        checkPrompt,
		ConfigPath:    configPath,
		Threshold:     threshold,
		FailOnWarning: checkFailOnWarning,
		Format:        format,
		Writer:        os.Stdout,
	})
	if err != nil {
		return &CheckExitError{Code: constants.ExitRunError, Message: err.Error()}
	}

	publishActionResults(report)

	// Tool config is only consulted for history here; a broken config file
	// must not turn a finished validation into a run error.
	if toolCfg, cfgErr := config.LoadConfig(""); cfgErr == nil && toolCfg.History.Enabled && !checkNoHistory {
		input := app.ValidateInput{Output: output, OutputFile: outputFile}
		recordRun(toolCfg, sourceLabel(input), outputRuneCount(input), report)
	}

	if !report.Passed {
		return &CheckExitError{Code: constants.ExitFail, Message: ""}
	}
	return nil
}

// applyActionInputs fills unset flags from GitHub Actions INPUT_* variables
func applyActionInputs(cmd *cobra.Command) {
	if !gha.InActions() {
		return
	}

	if !cmd.Flags().Changed("output") && checkOutput == "" {
		checkOutput = gha.Input("output")
	}
	if !cmd.Flags().Changed("output-file") && checkOutputFile == "" {
		checkOutputFile = gha.Input("output-file")
	}
	if !cmd.Flags().Changed("prompt") {
		checkPrompt = gha.Input("prompt")
	}
	if !cmd.Flags().Changed("config") && checkConfigPath == "" {
		// The action declares this input as assertions-config; the short
		// name stays as an alias.
		if path := gha.Input("assertions-config"); path != "" {
			checkConfigPath = path
		} else {
			checkConfigPath = gha.Input("config")
		}
	}
	if !cmd.Flags().Changed("threshold") {
		if raw := actionThresholdInput(); raw != "" {
			if v, err := strconv.ParseFloat(raw, 64); err == nil {
				checkThreshold = v
			}
		}
	}
	if !cmd.Flags().Changed("fail-on-warning") {
		if raw := gha.Input("fail-on-warning"); raw != "" {
			checkFailOnWarning = raw == "true" || raw == "1"
		}
	}
}

// actionThresholdInput reads the threshold action input. The action names
// it pass-threshold; threshold is accepted as an alias.
func actionThresholdInput() string {
	if raw := gha.Input("pass-threshold"); raw != "" {
		return raw
	}
	return gha.Input("threshold")
}

// resolveCheckOutput picks the output source: flag, file, or piped stdin
func resolveCheckOutput(cmd *cobra.Command) (string, string, error) {
	if checkOutput != "" && checkOutputFile != "" {
		return "", "", fmt.Errorf("provide either --output or --output-file, not both")
	}
	if checkOutput != "" || checkOutputFile != "" {
		return checkOutput, checkOutputFile, nil
	}

	// Fall back to stdin when it is piped. The output flag may still be an
	// intentionally empty string inside Actions.
	if gha.InActions() {
		return "", "", nil
	}

	info, err := os.Stdin.Stat()
	if err == nil && (info.Mode()&os.ModeCharDevice) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), "", nil
	}

	return "", "", fmt.Errorf("no output provided (use --output, --output-file, or pipe to stdin)")
}

// resolveAssertionsPath returns the explicit path or discovers a default
func resolveAssertionsPath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	return service.NewConfigurationLoader().FindDefaultConfigFile()
}

// publishActionResults writes GITHUB_OUTPUT values and annotations when
// running inside GitHub Actions.
func publishActionResults(report *domain.ValidationReport) {
	if !gha.InActions() {
		return
	}

	failed := report.FailedAssertions()
	_ = gha.SetOutputs(
		[]string{"passed", "score", "failed-count", "failed-assertions"},
		map[string]string{
			"passed":            strconv.FormatBool(report.Passed),
			"score":             strconv.Itoa(report.Score),
			"failed-count":      strconv.Itoa(report.FailedCount),
			"failed-assertions": strings.Join(failed, ","),
		},
	)

	for _, res := range report.Results {
		if !res.Passed {
			gha.Error(os.Stdout, "assertion %q failed: %s", res.Name, res.Message)
		}
	}
	for _, warning := range report.Warnings {
		gha.Warning(os.Stdout, "%s", warning)
	}
}
