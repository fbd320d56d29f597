package gha

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInput(t *testing.T) {
	t.Setenv("INPUT_PROMPT", "hello")
	t.Setenv("INPUT_ASSERTIONS-CONFIG", "config.json")
	t.Setenv("INPUT_PASS-THRESHOLD", "80")

	tests := []struct {
		name     string
		expected string
	}{
		{"prompt", "hello"},
		{"assertions-config", "config.json"},
		{"pass-threshold", "80"},
		{"missing", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Input(tt.name); got != tt.expected {
				t.Errorf("Input(%q) = %q, want %q", tt.name, got, tt.expected)
			}
		})
	}
}

func TestInActions(t *testing.T) {
	t.Setenv("GITHUB_ACTIONS", "")
	t.Setenv("GITHUB_OUTPUT", "")
	if InActions() {
		t.Error("Should not detect Actions without env markers")
	}

	t.Setenv("GITHUB_ACTIONS", "true")
	if !InActions() {
		t.Error("Should detect Actions via GITHUB_ACTIONS")
	}
}

func TestSetOutputs_File(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "output")
	t.Setenv("GITHUB_OUTPUT", outputPath)

	values := map[string]string{
		"passed": "true",
		"score":  "85",
	}
	if err := SetOutputs([]string{"passed", "score"}, values); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	data, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatalf("Failed to read output file: %v", err)
	}

	expected := "passed=true\nscore=85\n"
	if string(data) != expected {
		t.Errorf("Output file content = %q, want %q", string(data), expected)
	}
}

func TestSetOutputs_Appends(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "output")
	if err := os.WriteFile(outputPath, []byte("existing=1\n"), 0644); err != nil {
		t.Fatalf("Failed to seed output file: %v", err)
	}
	t.Setenv("GITHUB_OUTPUT", outputPath)

	if err := SetOutputs([]string{"passed"}, map[string]string{"passed": "false"}); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	data, _ := os.ReadFile(outputPath)
	if !strings.HasPrefix(string(data), "existing=1\n") {
		t.Error("SetOutputs must append, not truncate")
	}
	if !strings.Contains(string(data), "passed=false\n") {
		t.Error("New output line missing")
	}
}

func TestAnnotations(t *testing.T) {
	var buf bytes.Buffer
	Error(&buf, "bad input: %s", "output")
	Warning(&buf, "heads up")

	out := buf.String()
	if !strings.Contains(out, "::error::bad input: output\n") {
		t.Errorf("Missing error annotation in %q", out)
	}
	if !strings.Contains(out, "::warning::heads up\n") {
		t.Errorf("Missing warning annotation in %q", out)
	}
}
