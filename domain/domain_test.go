package domain

import (
	"encoding/json"
	"errors"
	"testing"
)

// Error tests

func TestDomainError_Error(t *testing.T) {
	// Without cause
	err := DomainError{
		Code:    "TEST_ERROR",
		Message: "Test message",
	}
	expected := "[TEST_ERROR] Test message"
	if err.Error() != expected {
		t.Errorf("Expected '%s', got '%s'", expected, err.Error())
	}

	// With cause
	cause := errors.New("underlying error")
	errWithCause := DomainError{
		Code:    "TEST_ERROR",
		Message: "Test message",
		Cause:   cause,
	}
	expectedWithCause := "[TEST_ERROR] Test message: underlying error"
	if errWithCause.Error() != expectedWithCause {
		t.Errorf("Expected '%s', got '%s'", expectedWithCause, errWithCause.Error())
	}
}

func TestDomainError_Unwrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := DomainError{
		Code:    "TEST_ERROR",
		Message: "Test message",
		Cause:   cause,
	}

	if err.Unwrap() != cause {
		t.Error("Unwrap should return the cause")
	}

	errNoCause := DomainError{
		Code:    "TEST_ERROR",
		Message: "Test message",
	}
	if errNoCause.Unwrap() != nil {
		t.Error("Unwrap should return nil when no cause")
	}
}

func TestNewDomainError(t *testing.T) {
	cause := errors.New("cause")
	err := NewDomainError("CODE", "message", cause)

	domainErr, ok := err.(DomainError)
	if !ok {
		t.Fatal("Should return DomainError type")
	}
	if domainErr.Code != "CODE" {
		t.Errorf("Expected code 'CODE', got '%s'", domainErr.Code)
	}
	if domainErr.Message != "message" {
		t.Errorf("Expected message 'message', got '%s'", domainErr.Message)
	}
	if domainErr.Cause != cause {
		t.Error("Cause should be set")
	}
}

func TestNewConfigNotFoundError(t *testing.T) {
	err := NewConfigNotFoundError("/path/to/config.json", nil)

	domainErr := err.(DomainError)
	if domainErr.Code != ErrCodeConfigNotFound {
		t.Errorf("Expected code '%s', got '%s'", ErrCodeConfigNotFound, domainErr.Code)
	}
	if domainErr.Message != "config file not found: /path/to/config.json" {
		t.Errorf("Unexpected message: %s", domainErr.Message)
	}
}

func TestNewConfigParseError(t *testing.T) {
	cause := errors.New("unexpected end of JSON input")
	err := NewConfigParseError("bad.json", cause)

	domainErr := err.(DomainError)
	if domainErr.Code != ErrCodeConfigParse {
		t.Errorf("Expected code '%s', got '%s'", ErrCodeConfigParse, domainErr.Code)
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is should match the cause")
	}
}

func TestNewInvalidInputError(t *testing.T) {
	err := NewInvalidInputError("output is required", nil)

	domainErr := err.(DomainError)
	if domainErr.Code != ErrCodeInvalidInput {
		t.Errorf("Expected code '%s', got '%s'", ErrCodeInvalidInput, domainErr.Code)
	}
}

// Assertion spec tests

func TestAssertionSpec_UnmarshalJSON_Defaults(t *testing.T) {
	data := []byte(`{"name": "len", "type": "MAX_LENGTH"}`)

	var spec AssertionSpec
	if err := json.Unmarshal(data, &spec); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if spec.Weight != DefaultWeight {
		t.Errorf("Omitted weight should default to %v, got %v", DefaultWeight, spec.Weight)
	}
	if !spec.Enabled {
		t.Error("Omitted enabled should default to true")
	}
	if spec.Params != nil {
		t.Errorf("Omitted params should stay nil, got %v", spec.Params)
	}
}

func TestAssertionSpec_UnmarshalJSON_Weight(t *testing.T) {
	tests := []struct {
		name     string
		json     string
		expected float64
	}{
		{"numeric weight", `{"name": "a", "type": "MAX_LENGTH", "weight": 2.5}`, 2.5},
		{"zero weight", `{"name": "a", "type": "MAX_LENGTH", "weight": 0}`, 0},
		{"non-numeric weight defaults", `{"name": "a", "type": "MAX_LENGTH", "weight": "heavy"}`, DefaultWeight},
		{"null weight defaults", `{"name": "a", "type": "MAX_LENGTH", "weight": null}`, DefaultWeight},
		{"negative weight clamps to zero", `{"name": "a", "type": "MAX_LENGTH", "weight": -3}`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var spec AssertionSpec
			if err := json.Unmarshal([]byte(tt.json), &spec); err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if spec.Weight != tt.expected {
				t.Errorf("Expected weight %v, got %v", tt.expected, spec.Weight)
			}
		})
	}
}

func TestAssertionSpec_UnmarshalJSON_TypeNormalization(t *testing.T) {
	data := []byte(`{"name": "len", "type": "max_length"}`)

	var spec AssertionSpec
	if err := json.Unmarshal(data, &spec); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if spec.Type != AssertionMaxLength {
		t.Errorf("Lower-case type tag should normalize, got '%s'", spec.Type)
	}
}

func TestAssertionSpec_UnmarshalJSON_Disabled(t *testing.T) {
	data := []byte(`{"name": "off", "type": "MAX_LENGTH", "enabled": false}`)

	var spec AssertionSpec
	if err := json.Unmarshal(data, &spec); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if spec.Enabled {
		t.Error("Explicit enabled=false should be honored")
	}
}

func TestAssertionType_IsKnown(t *testing.T) {
	for _, known := range KnownAssertionTypes {
		if !known.IsKnown() {
			t.Errorf("%s should be known", known)
		}
	}
	if AssertionType("SENTIMENT_ANALYSIS").IsKnown() {
		t.Error("Unrecognized type should not be known")
	}
}

func TestValidationConfig_ResolveThreshold(t *testing.T) {
	var nilConfig *ValidationConfig
	if nilConfig.ResolveThreshold() != DefaultThreshold {
		t.Error("Nil config should resolve to default threshold")
	}

	cfg := &ValidationConfig{}
	if cfg.ResolveThreshold() != DefaultThreshold {
		t.Error("Missing threshold should resolve to default")
	}

	cfg.Threshold = Float64Ptr(85)
	if cfg.ResolveThreshold() != 85 {
		t.Errorf("Expected configured threshold 85, got %v", cfg.ResolveThreshold())
	}
}

func TestValidationReport_FailedAssertions(t *testing.T) {
	report := ValidationReport{
		FailedCount: 2,
		Results: []AssertionResult{
			{Name: "a", Passed: true},
			{Name: "b", Passed: false},
			{Name: "c", Passed: false},
		},
	}

	failed := report.FailedAssertions()
	if len(failed) != 2 {
		t.Fatalf("Expected 2 failed names, got %d", len(failed))
	}
	if failed[0] != "b" || failed[1] != "c" {
		t.Errorf("Failed names should preserve report order, got %v", failed)
	}
}
