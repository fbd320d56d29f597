// Package engine implements the assertion evaluator and scoring aggregator.
// Everything here is a pure function of its inputs: no I/O, no clock, no
// process-wide state. Callers may run validations concurrently.
package engine

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/lintai-dev/lintai/domain"
)

// Per-rule parameter defaults
const (
	DefaultMaxChars = 1000
	DefaultMinWords = 10
	DefaultMinCount = 1
)

// maxLengthParams holds the MAX_LENGTH rule parameters
type maxLengthParams struct {
	MaxChars int
}

// minLengthParams holds the MIN_LENGTH rule parameters
type minLengthParams struct {
	MinWords int
}

// textParams holds the CONTAINS_TEXT rule parameters
type textParams struct {
	Text string
}

// patternParams holds the NO_PATTERN / REGEX_MATCH rule parameters
type patternParams struct {
	Pattern string
}

// keywordParams holds the KEYWORD_COUNT rule parameters
type keywordParams struct {
	Keywords    []string
	MinCount    int
	AllRequired bool
}

// Evaluate runs one assertion against the output text. It never fails:
// unrecognized types and malformed params evaluate as passing, so a config
// the engine does not fully understand can never block a CI run.
func Evaluate(spec domain.AssertionSpec, output string) domain.AssertionResult {
	result := domain.AssertionResult{
		Name:    spec.Name,
		Type:    spec.Type,
		Passed:  true,
		Message: domain.PassedMessage,
		Weight:  spec.Weight,
	}

	switch spec.Type {
	case domain.AssertionMaxLength:
		p := decodeMaxLength(spec.Params)
		if n := utf8.RuneCountInString(output); n > p.MaxChars {
			result.Passed = false
			result.Message = fmt.Sprintf("Output too long: %d chars", n)
		}

	case domain.AssertionMinLength:
		p := decodeMinLength(spec.Params)
		if n := len(strings.Fields(output)); n < p.MinWords {
			result.Passed = false
			result.Message = fmt.Sprintf("Output too short: %d words", n)
		}

	case domain.AssertionContainsText:
		p := decodeText(spec.Params)
		if p.Text != "" && !strings.Contains(output, p.Text) {
			result.Passed = false
			result.Message = fmt.Sprintf("Missing required text: %q", p.Text)
		}

	case domain.AssertionNoPattern:
		p := decodePattern(spec.Params)
		if re := compilePattern(p.Pattern, true); re != nil && re.MatchString(output) {
			result.Passed = false
			result.Message = "Output contains forbidden pattern"
		}

	case domain.AssertionRegexMatch:
		p := decodePattern(spec.Params)
		if re := compilePattern(p.Pattern, false); re != nil && !re.MatchString(output) {
			result.Passed = false
			result.Message = "Required pattern not matched"
		}

	case domain.AssertionJSONValid:
		if !json.Valid([]byte(output)) {
			result.Passed = false
			result.Message = "Output is not valid JSON"
		}

	case domain.AssertionKeywordCount:
		p := decodeKeywords(spec.Params)
		if found, required := countKeywords(output, p); found < required {
			result.Passed = false
			result.Message = fmt.Sprintf("Missing keywords: found %d of %d", found, len(p.Keywords))
		}
	}

	return result
}

// compilePattern compiles a rule pattern, optionally case-insensitive.
// Empty and syntactically invalid patterns yield nil, which callers treat
// as "no pattern": the rule passes. This mirrors the unrecognized-type
// policy: a config the engine cannot interpret never fails the run.
func compilePattern(pattern string, caseInsensitive bool) *regexp.Regexp {
	if pattern == "" {
		return nil
	}
	if caseInsensitive {
		pattern = "(?i)" + pattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil
	}
	return re
}

// countKeywords returns the number of keywords found in the output and the
// number required to pass. Matching is a case-insensitive substring check.
func countKeywords(output string, p keywordParams) (found, required int) {
	if len(p.Keywords) == 0 {
		return 0, 0
	}

	lower := strings.ToLower(output)
	for _, kw := range p.Keywords {
		if kw != "" && strings.Contains(lower, strings.ToLower(kw)) {
			found++
		}
	}

	required = p.MinCount
	if p.AllRequired {
		required = len(p.Keywords)
	}
	return found, required
}

// Param decoding below tolerates anything: wrong types and missing keys
// fall back to the documented defaults. JSON numbers arrive as float64;
// a raw decode from YAML may carry int, so both are accepted.

func decodeMaxLength(params map[string]any) maxLengthParams {
	return maxLengthParams{MaxChars: paramInt(params, "max_chars", DefaultMaxChars)}
}

func decodeMinLength(params map[string]any) minLengthParams {
	return minLengthParams{MinWords: paramInt(params, "min_words", DefaultMinWords)}
}

func decodeText(params map[string]any) textParams {
	return textParams{Text: paramString(params, "text")}
}

func decodePattern(params map[string]any) patternParams {
	return patternParams{Pattern: paramString(params, "pattern")}
}

func decodeKeywords(params map[string]any) keywordParams {
	return keywordParams{
		Keywords:    paramStringSlice(params, "keywords"),
		MinCount:    paramInt(params, "min_count", DefaultMinCount),
		AllRequired: paramBool(params, "all_required"),
	}
}

func paramInt(params map[string]any, key string, def int) int {
	switch v := params[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return def
	}
}

func paramString(params map[string]any, key string) string {
	if s, ok := params[key].(string); ok {
		return s
	}
	return ""
}

func paramBool(params map[string]any, key string) bool {
	b, _ := params[key].(bool)
	return b
}

func paramStringSlice(params map[string]any, key string) []string {
	raw, ok := params[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
