package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("Failed to close store: %v", err)
		}
	})
	return store
}

func TestStore_InsertAndList(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	runs := []Run{
		{CreatedAt: base, Source: "validate", Score: 100, Passed: true, AssertionCount: 2, Threshold: 70, OutputChars: 5},
		{CreatedAt: base.Add(time.Minute), Source: "check", Score: 50, Passed: false, FailedCount: 1, AssertionCount: 2, Threshold: 50, OutputChars: 13},
	}

	for _, run := range runs {
		if _, err := store.InsertRun(ctx, run); err != nil {
			t.Fatalf("InsertRun failed: %v", err)
		}
	}

	listed, err := store.ListRuns(ctx, 10)
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("Expected 2 runs, got %d", len(listed))
	}

	// Newest first
	if listed[0].Source != "check" {
		t.Errorf("Expected newest run first, got source %s", listed[0].Source)
	}
	if listed[0].Passed {
		t.Error("Check run should be recorded as failed")
	}
	if listed[0].FailedCount != 1 {
		t.Errorf("FailedCount = %d, want 1", listed[0].FailedCount)
	}
	if !listed[1].CreatedAt.Equal(base) {
		t.Errorf("CreatedAt round-trip mismatch: %v", listed[1].CreatedAt)
	}
	if listed[1].Threshold != 70 {
		t.Errorf("Threshold = %v, want 70", listed[1].Threshold)
	}
}

func TestStore_ListRuns_Limit(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	base := time.Now().UTC()
	for i := 0; i < 5; i++ {
		run := Run{CreatedAt: base.Add(time.Duration(i) * time.Second), Source: "batch", Score: i * 20}
		if _, err := store.InsertRun(ctx, run); err != nil {
			t.Fatalf("InsertRun failed: %v", err)
		}
	}

	listed, err := store.ListRuns(ctx, 3)
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(listed) != 3 {
		t.Errorf("Expected 3 runs with limit, got %d", len(listed))
	}
}

func TestStore_ListRuns_Empty(t *testing.T) {
	store := openTestStore(t)

	listed, err := store.ListRuns(context.Background(), 0)
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(listed) != 0 {
		t.Errorf("Expected no runs, got %d", len(listed))
	}
}

func TestOpen_CreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "history.db")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open should create parent directories: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
}
