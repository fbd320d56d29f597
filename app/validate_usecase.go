package app

import (
	"context"
	"fmt"
	"io"

	"github.com/lintai-dev/lintai/domain"
)

// ValidateInput carries everything one validate run needs from the caller
type ValidateInput struct {
	// Output is the candidate text. Exactly one of Output and OutputFile
	// must be set.
	Output string

	// OutputFile names a file to read the candidate text from
	OutputFile string

	// Prompt is the originating prompt, for reporting only
	Prompt string

	// ConfigPath names the assertions document. Callers resolve discovery
	// before building the input.
	ConfigPath string

	// Threshold overrides both the assertions document and the default
	// when set (the CLI flag)
	Threshold *float64

	// FallbackThreshold applies only when the assertions document carries
	// no threshold of its own (the tool config). Precedence is
	// Threshold > document > FallbackThreshold > default.
	FallbackThreshold *float64

	// FailOnWarning is reserved for future warning-level assertions
	FailOnWarning bool

	// Format selects the report rendering
	Format domain.OutputFormat

	// Writer receives the rendered report
	Writer io.Writer
}

// ValidateUseCase orchestrates the validation workflow: load the assertions
// document, score the output, render the report.
type ValidateUseCase struct {
	service    domain.ValidationService
	loader     domain.ConfigurationLoader
	formatter  domain.OutputFormatter
	fileHelper *FileHelper
}

// NewValidateUseCase creates a new validate use case
func NewValidateUseCase(service domain.ValidationService, loader domain.ConfigurationLoader, formatter domain.OutputFormatter) *ValidateUseCase {
	return &ValidateUseCase{
		service:    service,
		loader:     loader,
		formatter:  formatter,
		fileHelper: NewFileHelper(nil),
	}
}

// Execute performs the complete validation workflow and returns the report
// so callers can derive exit codes and CI outputs from it.
func (uc *ValidateUseCase) Execute(ctx context.Context, input ValidateInput) (*domain.ValidationReport, error) {
	if input.ConfigPath == "" {
		return nil, domain.NewInvalidInputError("no assertions config specified", nil)
	}

	output, err := uc.resolveOutput(input)
	if err != nil {
		return nil, err
	}

	cfg, err := uc.loader.LoadConfig(input.ConfigPath)
	if err != nil {
		return nil, err
	}

	threshold := resolveThreshold(input.Threshold, cfg, input.FallbackThreshold)
	if threshold < 0 || threshold > 100 {
		return nil, domain.NewConfigError(fmt.Sprintf("threshold must be between 0 and 100, got %g", threshold), nil)
	}

	report, err := uc.service.Validate(ctx, domain.ValidationRequest{
		Prompt:        input.Prompt,
		Output:        output,
		Assertions:    cfg.Assertions,
		Threshold:     threshold,
		FailOnWarning: input.FailOnWarning,
	})
	if err != nil {
		return nil, err
	}

	if input.Writer != nil {
		if err := uc.formatter.Write(report, input.Format, input.Writer); err != nil {
			return nil, domain.NewOutputError("failed to write report", err)
		}
	}

	return report, nil
}

// resolveThreshold applies the threshold precedence: explicit override,
// then the assertions document, then the fallback, then the default.
func resolveThreshold(override *float64, cfg *domain.ValidationConfig, fallback *float64) float64 {
	switch {
	case override != nil:
		return *override
	case cfg != nil && cfg.Threshold != nil:
		return *cfg.Threshold
	case fallback != nil:
		return *fallback
	default:
		return domain.DefaultThreshold
	}
}

// resolveOutput returns the candidate text from the input
func (uc *ValidateUseCase) resolveOutput(input ValidateInput) (string, error) {
	if input.OutputFile != "" {
		if input.Output != "" {
			return "", domain.NewInvalidInputError("provide either an output string or an output file, not both", nil)
		}
		data, err := uc.fileHelper.ReadFile(input.OutputFile)
		if err != nil {
			return "", domain.NewInvalidInputError(fmt.Sprintf("failed to read output file: %s", input.OutputFile), err)
		}
		return string(data), nil
	}

	// An empty output string is a valid input; assertions decide what
	// emptiness means.
	return input.Output, nil
}
