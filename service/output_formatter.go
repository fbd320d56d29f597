package service

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/lintai-dev/lintai/domain"
	"github.com/lintai-dev/lintai/internal/version"
	"gopkg.in/yaml.v3"
)

// OutputFormatterImpl implements the OutputFormatter interface
type OutputFormatterImpl struct{}

// NewOutputFormatter creates a new output formatter
func NewOutputFormatter() *OutputFormatterImpl {
	return &OutputFormatterImpl{}
}

// WriteJSON writes data as indented JSON to the writer
func WriteJSON(writer io.Writer, data interface{}) error {
	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// ValidationResponseJSON wraps ValidationReport with response metadata. The
// report itself stays timestamp-free; generation time lives only here, in
// the presentation envelope.
type ValidationResponseJSON struct {
	Version     string                   `json:"version"`
	GeneratedAt string                   `json:"generated_at"`
	Score       int                      `json:"score"`
	Passed      bool                     `json:"passed"`
	Threshold   float64                  `json:"threshold"`
	FailedCount int                      `json:"failed_count"`
	Results     []domain.AssertionResult `json:"results"`
	Warnings    []string                 `json:"warnings,omitempty"`
}

// Write renders the report in the specified format
func (f *OutputFormatterImpl) Write(report *domain.ValidationReport, format domain.OutputFormat, writer io.Writer) error {
	switch format {
	case domain.OutputFormatJSON:
		return f.writeJSON(report, writer)
	case domain.OutputFormatYAML:
		return f.writeYAML(report, writer)
	case domain.OutputFormatMarkdown:
		return f.writeMarkdown(report, writer)
	case domain.OutputFormatText:
		return f.writeText(report, writer)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

func (f *OutputFormatterImpl) wrap(report *domain.ValidationReport) ValidationResponseJSON {
	return ValidationResponseJSON{
		Version:     version.Version,
		GeneratedAt: time.Now().Format(time.RFC3339),
		Score:       report.Score,
		Passed:      report.Passed,
		Threshold:   report.Threshold,
		FailedCount: report.FailedCount,
		Results:     report.Results,
		Warnings:    report.Warnings,
	}
}

// writeJSON writes the report as JSON
func (f *OutputFormatterImpl) writeJSON(report *domain.ValidationReport, writer io.Writer) error {
	return WriteJSON(writer, f.wrap(report))
}

// writeYAML writes the report as YAML
func (f *OutputFormatterImpl) writeYAML(report *domain.ValidationReport, writer io.Writer) error {
	encoder := yaml.NewEncoder(writer)
	defer encoder.Close()
	return encoder.Encode(report)
}

// writeText writes the report as plain text
func (f *OutputFormatterImpl) writeText(report *domain.ValidationReport, writer io.Writer) error {
	fmt.Fprintf(writer, "\n=== Validation Report ===\n\n")

	verdict := "FAILED"
	if report.Passed {
		verdict = "PASSED"
	}
	fmt.Fprintf(writer, "Result: %s\n", verdict)
	fmt.Fprintf(writer, "Score: %d/100 (threshold: %.0f)\n", report.Score, report.Threshold)
	fmt.Fprintf(writer, "Assertions: %d total, %d failed\n\n", len(report.Results), report.FailedCount)

	if len(report.Results) > 0 {
		fmt.Fprintf(writer, "Assertions:\n")
		for _, res := range report.Results {
			indicator := "FAIL"
			if res.Passed {
				indicator = "PASS"
			}
			fmt.Fprintf(writer, "  [%s] %s (weight: %g)\n", indicator, res.Name, res.Weight)
			if !res.Passed && res.Message != "" {
				fmt.Fprintf(writer, "        %s\n", res.Message)
			}
		}
	}

	if len(report.Warnings) > 0 {
		fmt.Fprintf(writer, "\nWarnings:\n")
		for _, w := range report.Warnings {
			fmt.Fprintf(writer, "  - %s\n", w)
		}
	}

	return nil
}

// writeMarkdown writes the report as a markdown document suitable for PR
// comments and job summaries.
func (f *OutputFormatterImpl) writeMarkdown(report *domain.ValidationReport, writer io.Writer) error {
	verdict := ":x: Failed"
	if report.Passed {
		verdict = ":white_check_mark: Passed"
	}

	fmt.Fprintf(writer, "## Validation Report\n\n")
	fmt.Fprintf(writer, "**Result:** %s\n\n", verdict)
	fmt.Fprintf(writer, "**Score:** %d/100 (threshold: %.0f)\n\n", report.Score, report.Threshold)

	if len(report.Results) > 0 {
		fmt.Fprintf(writer, "| Assertion | Type | Weight | Status | Detail |\n")
		fmt.Fprintf(writer, "|-----------|------|--------|--------|--------|\n")
		for _, res := range report.Results {
			status := ":x:"
			if res.Passed {
				status = ":white_check_mark:"
			}
			detail := strings.ReplaceAll(res.Message, "|", "\\|")
			fmt.Fprintf(writer, "| %s | %s | %g | %s | %s |\n",
				res.Name, res.Type, res.Weight, status, detail)
		}
		fmt.Fprintf(writer, "\n")
	}

	if len(report.Warnings) > 0 {
		fmt.Fprintf(writer, "### Warnings\n\n")
		for _, w := range report.Warnings {
			fmt.Fprintf(writer, "- %s\n", w)
		}
	}

	return nil
}
