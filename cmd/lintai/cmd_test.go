package main

import (
	"testing"
)

func TestCheckCmd_FlagsExist(t *testing.T) {
	cmd := checkCmd()

	expectedFlags := []string{"output", "output-file", "prompt", "config", "threshold", "fail-on-warning", "json", "verbose", "no-history"}
	for _, flagName := range expectedFlags {
		flag := cmd.Flags().Lookup(flagName)
		if flag == nil {
			t.Errorf("Missing expected flag: --%s", flagName)
		}
	}
}

func TestCheckCmd_ShortFlags(t *testing.T) {
	cmd := checkCmd()

	shortFlags := map[string]string{
		"c": "config",
		"t": "threshold",
		"v": "verbose",
	}

	for short, long := range shortFlags {
		flag := cmd.Flags().ShorthandLookup(short)
		if flag == nil {
			t.Errorf("Missing short flag -%s for --%s", short, long)
		}
	}
}

func TestCheckCmd_DefaultValues(t *testing.T) {
	cmd := checkCmd()

	thresholdFlag := cmd.Flags().Lookup("threshold")
	if thresholdFlag == nil {
		t.Fatal("threshold flag not found")
	}
	if thresholdFlag.DefValue != "70" {
		t.Errorf("Expected default threshold to be '70', got '%s'", thresholdFlag.DefValue)
	}

	jsonFlag := cmd.Flags().Lookup("json")
	if jsonFlag == nil {
		t.Fatal("json flag not found")
	}
	if jsonFlag.DefValue != "false" {
		t.Errorf("Expected default json to be 'false', got '%s'", jsonFlag.DefValue)
	}
}

func TestValidateCmd_FlagsExist(t *testing.T) {
	cmd := validateCmd()

	expectedFlags := []string{"output", "output-file", "prompt", "assertions", "config", "threshold", "format", "report", "no-history"}
	for _, flagName := range expectedFlags {
		flag := cmd.Flags().Lookup(flagName)
		if flag == nil {
			t.Errorf("Missing expected flag: --%s", flagName)
		}
	}
}

func TestBatchCmd_FlagsExist(t *testing.T) {
	cmd := batchCmd()

	expectedFlags := []string{"assertions", "config", "threshold", "concurrency", "timeout", "json", "verbose", "no-history"}
	for _, flagName := range expectedFlags {
		flag := cmd.Flags().Lookup(flagName)
		if flag == nil {
			t.Errorf("Missing expected flag: --%s", flagName)
		}
	}
}

func TestBatchCmd_NoPathsError(t *testing.T) {
	cmd := batchCmd()
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	if err == nil {
		t.Error("Expected error when no paths specified")
	}
}

func TestHistoryCmd_FlagsExist(t *testing.T) {
	cmd := historyCmd()

	expectedFlags := []string{"limit", "config", "json"}
	for _, flagName := range expectedFlags {
		flag := cmd.Flags().Lookup(flagName)
		if flag == nil {
			t.Errorf("Missing expected flag: --%s", flagName)
		}
	}
}

func TestCheckExitError(t *testing.T) {
	err := &CheckExitError{Code: 1, Message: "validation failed"}
	if err.Error() != "validation failed" {
		t.Errorf("Expected error message 'validation failed', got '%s'", err.Error())
	}
}
