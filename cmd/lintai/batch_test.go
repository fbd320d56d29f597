package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/lintai-dev/lintai/internal/history"
)

func TestBatchCmd_RecordsHistoryPerItem(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "history.db")

	assertionsPath := filepath.Join(dir, "assertions.json")
	if err := os.WriteFile(assertionsPath, []byte(`{
		"assertions": [{"name": "greeting", "type": "CONTAINS_TEXT", "params": {"text": "hello"}}]
	}`), 0o644); err != nil {
		t.Fatalf("Failed to write assertions: %v", err)
	}
	toolConfigPath := filepath.Join(dir, "lintai.yaml")
	if err := os.WriteFile(toolConfigPath, []byte(
		"history:\n  enabled: true\n  path: "+dbPath+"\n"), 0o644); err != nil {
		t.Fatalf("Failed to write tool config: %v", err)
	}
	jsonlPath := filepath.Join(dir, "outputs.jsonl")
	if err := os.WriteFile(jsonlPath, []byte(
		`{"prompt": "greet", "output": "hello there"}`+"\n"+
			`{"prompt": "farewell", "output": "goodbye"}`+"\n"), 0o644); err != nil {
		t.Fatalf("Failed to write JSONL: %v", err)
	}

	cmd := batchCmd()
	cmd.SetArgs([]string{jsonlPath, "--assertions", assertionsPath, "--config", toolConfigPath})
	err := cmd.Execute()
	// One item fails, so the command reports a failing exit
	if err == nil {
		t.Fatal("expected a failing exit for the failed item")
	}

	store, err := history.Open(dbPath)
	if err != nil {
		t.Fatalf("Failed to open history: %v", err)
	}
	defer store.Close()

	runs, err := store.ListRuns(context.Background(), 10)
	if err != nil {
		t.Fatalf("Failed to list runs: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("Expected one recorded run per item, got %d", len(runs))
	}

	passed, failed := 0, 0
	for _, run := range runs {
		if run.Passed {
			passed++
		} else {
			failed++
		}
		if run.OutputChars == 0 {
			t.Errorf("Expected output length recorded for %s", run.Source)
		}
	}
	if passed != 1 || failed != 1 {
		t.Errorf("Expected 1 passed and 1 failed run, got %d/%d", passed, failed)
	}
}

func TestBatchCmd_NoHistoryFlag(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "history.db")

	assertionsPath := filepath.Join(dir, "assertions.json")
	if err := os.WriteFile(assertionsPath, []byte(`{"assertions": []}`), 0o644); err != nil {
		t.Fatalf("Failed to write assertions: %v", err)
	}
	toolConfigPath := filepath.Join(dir, "lintai.yaml")
	if err := os.WriteFile(toolConfigPath, []byte(
		"history:\n  enabled: true\n  path: "+dbPath+"\n"), 0o644); err != nil {
		t.Fatalf("Failed to write tool config: %v", err)
	}
	jsonlPath := filepath.Join(dir, "outputs.jsonl")
	if err := os.WriteFile(jsonlPath, []byte(`{"output": "anything"}`+"\n"), 0o644); err != nil {
		t.Fatalf("Failed to write JSONL: %v", err)
	}

	cmd := batchCmd()
	cmd.SetArgs([]string{jsonlPath, "--assertions", assertionsPath, "--config", toolConfigPath, "--threshold", "0", "--no-history"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("batch command failed: %v", err)
	}

	if _, err := os.Stat(dbPath); !os.IsNotExist(err) {
		t.Error("history database should not exist with --no-history")
	}
}
