package service

import (
	"context"
	"testing"

	"github.com/lintai-dev/lintai/domain"
)

func TestValidationServiceValidate(t *testing.T) {
	svc := NewValidationService()

	t.Run("EmptyAssertions", func(t *testing.T) {
		report, err := svc.Validate(context.Background(), domain.ValidationRequest{
			Output:    "anything",
			Threshold: domain.DefaultThreshold,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if report.Score != 0 {
			t.Errorf("expected score 0, got %d", report.Score)
		}
		if report.Passed {
			t.Error("empty assertion list should not pass the default threshold")
		}
	})

	t.Run("AllPassing", func(t *testing.T) {
		report, err := svc.Validate(context.Background(), domain.ValidationRequest{
			Output: "hello world",
			Assertions: []domain.AssertionSpec{
				{Name: "has-hello", Type: domain.AssertionContainsText, Params: map[string]any{"text": "hello"}, Weight: 1, Enabled: true},
				{Name: "short", Type: domain.AssertionMaxLength, Params: map[string]any{"max_chars": 100}, Weight: 1, Enabled: true},
			},
			Threshold: domain.DefaultThreshold,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if report.Score != 100 {
			t.Errorf("expected score 100, got %d", report.Score)
		}
		if !report.Passed {
			t.Error("expected report to pass")
		}
	})

	t.Run("CancelledContext", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := svc.Validate(ctx, domain.ValidationRequest{Output: "x"})
		if err == nil {
			t.Error("expected error for cancelled context")
		}
	})

	t.Run("Deterministic", func(t *testing.T) {
		req := domain.ValidationRequest{
			Output: "deterministic output",
			Assertions: []domain.AssertionSpec{
				{Name: "a", Type: domain.AssertionContainsText, Params: map[string]any{"text": "output"}, Weight: 2, Enabled: true},
				{Name: "b", Type: domain.AssertionNoPattern, Params: map[string]any{"pattern": "forbidden"}, Weight: 1, Enabled: true},
			},
			Threshold: 50,
		}
		first, err := svc.Validate(context.Background(), req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		second, err := svc.Validate(context.Background(), req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if first.Score != second.Score || first.Passed != second.Passed {
			t.Errorf("repeated validation diverged: %+v vs %+v", first, second)
		}
	})
}
