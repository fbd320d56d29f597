package domain

import (
	"encoding/json"
	"strings"
)

// AssertionType identifies the kind of rule an assertion applies.
type AssertionType string

const (
	// AssertionMaxLength checks that the output does not exceed a character limit
	AssertionMaxLength AssertionType = "MAX_LENGTH"

	// AssertionMinLength checks that the output meets a minimum word count
	AssertionMinLength AssertionType = "MIN_LENGTH"

	// AssertionContainsText checks for a required literal substring (case-sensitive)
	AssertionContainsText AssertionType = "CONTAINS_TEXT"

	// AssertionNoPattern checks that a case-insensitive regular expression does NOT match
	AssertionNoPattern AssertionType = "NO_PATTERN"

	// AssertionRegexMatch checks that a regular expression matches somewhere in the output
	AssertionRegexMatch AssertionType = "REGEX_MATCH"

	// AssertionJSONValid checks that the output parses as JSON
	AssertionJSONValid AssertionType = "JSON_VALID"

	// AssertionKeywordCount checks for the presence of a set of keywords
	AssertionKeywordCount AssertionType = "KEYWORD_COUNT"
)

// KnownAssertionTypes lists every rule kind the evaluator recognizes.
// Types outside this set are legal in configs and evaluate as passing.
var KnownAssertionTypes = []AssertionType{
	AssertionMaxLength,
	AssertionMinLength,
	AssertionContainsText,
	AssertionNoPattern,
	AssertionRegexMatch,
	AssertionJSONValid,
	AssertionKeywordCount,
}

// NormalizeAssertionType canonicalizes a raw type tag. Tags are matched
// upper-cased so configs written with lower_snake tags keep working.
func NormalizeAssertionType(raw string) AssertionType {
	return AssertionType(strings.ToUpper(strings.TrimSpace(raw)))
}

// IsKnown reports whether the type belongs to the recognized enumeration.
func (t AssertionType) IsKnown() bool {
	for _, known := range KnownAssertionTypes {
		if t == known {
			return true
		}
	}
	return false
}

// DefaultWeight is used when an assertion omits its weight or supplies a
// non-numeric value.
const DefaultWeight = 1.0

// AssertionSpec is one configured rule from a validation config.
type AssertionSpec struct {
	// Name identifies the assertion in reports. Uniqueness is not enforced.
	Name string `json:"name" yaml:"name"`

	// Type selects the rule kind. Unrecognized types evaluate as passing.
	Type AssertionType `json:"type" yaml:"type"`

	// Params holds rule-specific parameters. Absent or malformed keys fall
	// back to per-rule defaults.
	Params map[string]any `json:"params,omitempty" yaml:"params,omitempty"`

	// Weight is the linear contribution of this assertion to the score.
	Weight float64 `json:"weight" yaml:"weight"`

	// Enabled gates evaluation. Disabled assertions contribute nothing:
	// no result row and no weight.
	Enabled bool `json:"enabled" yaml:"enabled"`
}

// assertionSpecJSON mirrors AssertionSpec for decoding. Weight is kept raw
// so a non-numeric value defaults instead of failing the whole parse.
type assertionSpecJSON struct {
	Name    string          `json:"name"`
	Type    string          `json:"type"`
	Params  map[string]any  `json:"params"`
	Weight  json.RawMessage `json:"weight"`
	Enabled *bool           `json:"enabled"`
}

// UnmarshalJSON applies the field defaults: weight 1.0 when omitted or not
// a number (negatives clamp to 0), enabled true when omitted.
func (s *AssertionSpec) UnmarshalJSON(data []byte) error {
	var raw assertionSpecJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	s.Name = raw.Name
	s.Type = NormalizeAssertionType(raw.Type)
	s.Params = raw.Params
	s.Weight = decodeWeight(raw.Weight)
	s.Enabled = raw.Enabled == nil || *raw.Enabled

	return nil
}

func decodeWeight(raw json.RawMessage) float64 {
	// A JSON null unmarshals into a float64 as a no-op, so it has to be
	// treated as absent explicitly.
	if len(raw) == 0 || string(raw) == "null" {
		return DefaultWeight
	}
	var w float64
	if err := json.Unmarshal(raw, &w); err != nil {
		return DefaultWeight
	}
	if w < 0 {
		return 0
	}
	return w
}

// AssertionResult is the outcome of evaluating one AssertionSpec against
// one output string.
type AssertionResult struct {
	// Name is copied from the spec
	Name string `json:"name" yaml:"name"`

	// Type is the normalized rule kind that was evaluated
	Type AssertionType `json:"type" yaml:"type"`

	// Passed reports whether the rule was satisfied
	Passed bool `json:"passed" yaml:"passed"`

	// Message explains the outcome; "Passed" on success
	Message string `json:"message" yaml:"message"`

	// Weight is copied from the spec
	Weight float64 `json:"weight" yaml:"weight"`
}

// PassedMessage is the message attached to every passing assertion result.
const PassedMessage = "Passed"
