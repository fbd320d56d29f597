// Package gha implements the GitHub Actions I/O conventions: INPUT_*
// environment variables, the GITHUB_OUTPUT file, and workflow command
// annotations.
package gha

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// InActions reports whether the process appears to run inside a GitHub
// Actions job.
func InActions() bool {
	return os.Getenv("GITHUB_ACTIONS") == "true" || os.Getenv("GITHUB_OUTPUT") != ""
}

// Input reads an action input. Actions expose inputs as INPUT_<NAME> with
// the name upper-cased and spaces replaced by underscores; dashes are kept.
func Input(name string) string {
	key := "INPUT_" + strings.ReplaceAll(strings.ToUpper(name), " ", "_")
	return os.Getenv(key)
}

// SetOutputs appends key=value lines to the GITHUB_OUTPUT file. Keys are
// written in the given order. When GITHUB_OUTPUT is unset the values are
// printed as legacy ::set-output commands so local runs still show them.
func SetOutputs(keys []string, values map[string]string) error {
	path := os.Getenv("GITHUB_OUTPUT")
	if path == "" {
		for _, k := range keys {
			fmt.Printf("::set-output name=%s::%s\n", k, values[k])
		}
		return nil
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open GITHUB_OUTPUT: %w", err)
	}
	defer f.Close()

	for _, k := range keys {
		if _, err := fmt.Fprintf(f, "%s=%s\n", k, values[k]); err != nil {
			return fmt.Errorf("failed to write output %s: %w", k, err)
		}
	}
	return nil
}

// Error emits an error annotation on the given writer.
func Error(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "::error::%s\n", fmt.Sprintf(format, args...))
}

// Warning emits a warning annotation on the given writer.
func Warning(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "::warning::%s\n", fmt.Sprintf(format, args...))
}
