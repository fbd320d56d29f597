package config

// Strictness represents how demanding the generated assertion set is
type Strictness string

const (
	StrictnessRelaxed  Strictness = "relaxed"
	StrictnessStandard Strictness = "standard"
	StrictnessStrict   Strictness = "strict"
)

// GetMinimalAssertionsTemplate returns a small starter assertions config
func GetMinimalAssertionsTemplate() string {
	return `{
  "assertions": [
    {
      "name": "length",
      "type": "MAX_LENGTH",
      "params": {"max_chars": 1000},
      "weight": 1
    },
    {
      "name": "no-secrets",
      "type": "NO_PATTERN",
      "params": {"pattern": "api[_-]?key|password|secret"},
      "weight": 2
    }
  ]
}
`
}

// GetFullAssertionsTemplate returns a documented assertions config tuned
// to the requested strictness level.
func GetFullAssertionsTemplate(strictness Strictness) string {
	maxChars := "2000"
	minWords := "5"
	threshold := "70"

	switch strictness {
	case StrictnessRelaxed:
		maxChars = "5000"
		minWords = "1"
		threshold = "50"
	case StrictnessStrict:
		maxChars = "1000"
		minWords = "10"
		threshold = "90"
	}

	return `{
  "threshold": ` + threshold + `,
  "assertions": [
    {
      "name": "length",
      "type": "MAX_LENGTH",
      "params": {"max_chars": ` + maxChars + `},
      "weight": 1
    },
    {
      "name": "substance",
      "type": "MIN_LENGTH",
      "params": {"min_words": ` + minWords + `},
      "weight": 1
    },
    {
      "name": "no-secrets",
      "type": "NO_PATTERN",
      "params": {"pattern": "api[_-]?key|password|secret"},
      "weight": 2
    },
    {
      "name": "no-placeholders",
      "type": "NO_PATTERN",
      "params": {"pattern": "lorem ipsum|\\[insert[^\\]]*\\]|TODO"},
      "weight": 1
    },
    {
      "name": "polite-refusals",
      "type": "KEYWORD_COUNT",
      "params": {"keywords": [], "min_count": 0},
      "weight": 0,
      "enabled": false
    }
  ]
}
`
}
