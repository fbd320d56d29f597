package domain

import (
	"context"
	"io"
)

// OutputFormat represents the supported output formats
type OutputFormat string

const (
	OutputFormatText     OutputFormat = "text"
	OutputFormatJSON     OutputFormat = "json"
	OutputFormatYAML     OutputFormat = "yaml"
	OutputFormatMarkdown OutputFormat = "markdown"
)

// DefaultThreshold is the minimum score required to pass when the caller
// does not supply one.
const DefaultThreshold = 70.0

// ValidationConfig is the parsed assertions document.
type ValidationConfig struct {
	// Assertions is the ordered rule list. Order affects report ordering
	// only, never the score. Empty is valid and scores 0.
	Assertions []AssertionSpec `json:"assertions" yaml:"assertions"`

	// Threshold optionally overrides the default pass threshold. Nil or
	// non-numeric values fall back to DefaultThreshold at request build
	// time; an explicit CLI flag wins over this field.
	Threshold *float64 `json:"threshold,omitempty" yaml:"threshold,omitempty"`
}

// ResolveThreshold returns the configured threshold or the default.
func (c *ValidationConfig) ResolveThreshold() float64 {
	if c == nil || c.Threshold == nil {
		return DefaultThreshold
	}
	return *c.Threshold
}

// ValidationRequest carries everything one validation run needs. The engine
// reads no ambient state; every input arrives here.
type ValidationRequest struct {
	// Prompt is the prompt the output was generated from. Reporting only.
	Prompt string

	// Output is the candidate text the assertions run against
	Output string

	// Assertions is the ordered rule list
	Assertions []AssertionSpec

	// Threshold is the minimum score (0-100) required to pass
	Threshold float64

	// FailOnWarning is reserved for future warning-level assertions.
	// The engine currently ignores it.
	FailOnWarning bool
}

// ValidationReport is the outcome of one validation run. It is a pure
// function of the request: identical requests produce byte-identical
// reports, so it carries no timestamps or environment data.
type ValidationReport struct {
	// Score is the integer percentage (0-100) of total weight satisfied
	Score int `json:"score" yaml:"score"`

	// Passed is true iff Score >= threshold AND FailedCount == 0
	Passed bool `json:"passed" yaml:"passed"`

	// FailedCount is the number of results with Passed == false
	FailedCount int `json:"failed_count" yaml:"failed_count"`

	// Results holds per-assertion outcomes in input order
	Results []AssertionResult `json:"results" yaml:"results"`

	// Warnings notes rule-level anomalies (unrecognized types). They never
	// affect the score or the pass decision.
	Warnings []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`

	// Threshold echoes the threshold the decision was made against
	Threshold float64 `json:"threshold" yaml:"threshold"`
}

// FailedAssertions returns the names of all failed assertions in report order.
func (r *ValidationReport) FailedAssertions() []string {
	names := make([]string, 0, r.FailedCount)
	for _, res := range r.Results {
		if !res.Passed {
			names = append(names, res.Name)
		}
	}
	return names
}

// ValidationService defines the core business logic for output validation
type ValidationService interface {
	// Validate scores the request's output against its assertions
	Validate(ctx context.Context, req ValidationRequest) (*ValidationReport, error)
}

// ConfigurationLoader defines the interface for loading assertion configs
type ConfigurationLoader interface {
	// LoadConfig loads an assertions document from the specified path
	LoadConfig(path string) (*ValidationConfig, error)
}

// OutputFormatter defines the interface for rendering validation reports
type OutputFormatter interface {
	// Write renders the report in the specified format
	Write(report *ValidationReport, format OutputFormat, writer io.Writer) error
}

// ProgressManager coordinates progress display across tasks
type ProgressManager interface {
	// StartTask begins tracking a task with a known total
	StartTask(description string, total int) TaskProgress

	// IsInteractive reports whether progress is actually rendered
	IsInteractive() bool

	// Close releases all progress resources
	Close()
}

// TaskProgress tracks progress of a single task
type TaskProgress interface {
	// Increment adds n completed units
	Increment(n int)

	// Describe updates the current item description
	Describe(description string)

	// Complete marks the task as finished
	Complete()
}

// BoolPtr returns a pointer to the given bool
func BoolPtr(b bool) *bool {
	return &b
}

// Float64Ptr returns a pointer to the given float64
func Float64Ptr(f float64) *float64 {
	return &f
}
