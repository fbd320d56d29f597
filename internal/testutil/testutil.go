// Package testutil provides helper functions for testing lintai components
package testutil

import (
	"encoding/json"
	"testing"

	"github.com/lintai-dev/lintai/domain"
)

// ParseAssertions parses an assertions JSON document, failing the test on error
func ParseAssertions(t *testing.T, source string) *domain.ValidationConfig {
	t.Helper()
	cfg := &domain.ValidationConfig{}
	if err := json.Unmarshal([]byte(source), cfg); err != nil {
		t.Fatalf("Failed to parse test assertions: %v", err)
	}
	return cfg
}

// Assertion builds an enabled AssertionSpec for tests
func Assertion(name string, assertionType domain.AssertionType, params map[string]any) domain.AssertionSpec {
	return domain.AssertionSpec{
		Name:    name,
		Type:    assertionType,
		Params:  params,
		Weight:  domain.DefaultWeight,
		Enabled: true,
	}
}

// AssertNoError fails the test if err is not nil
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("Expected error but got nil")
	}
}

// AssertEqual fails the test if expected != actual
func AssertEqual(t *testing.T, expected, actual any) {
	t.Helper()
	if expected != actual {
		t.Errorf("Expected %v, got %v", expected, actual)
	}
}

// AssertTrue fails the test if condition is false
func AssertTrue(t *testing.T, condition bool, msg string) {
	t.Helper()
	if !condition {
		t.Error(msg)
	}
}

// AssertFalse fails the test if condition is true
func AssertFalse(t *testing.T, condition bool, msg string) {
	t.Helper()
	if condition {
		t.Error(msg)
	}
}

// AssertNotNil fails the test if value is nil
func AssertNotNil(t *testing.T, value any) {
	t.Helper()
	if value == nil {
		t.Error("Expected non-nil value")
	}
}

// AssertNil fails the test if value is not nil
func AssertNil(t *testing.T, value any) {
	t.Helper()
	if value != nil {
		t.Errorf("Expected nil, got %v", value)
	}
}
