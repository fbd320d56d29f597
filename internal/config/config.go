package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Default validation settings
const (
	// DefaultThreshold is the minimum score required for an overall pass
	DefaultThreshold = 70.0

	// DefaultBatchConcurrency caps parallel validations in batch mode
	DefaultBatchConcurrency = 4

	// DefaultBatchTimeoutSeconds bounds a whole batch run
	DefaultBatchTimeoutSeconds = 300
)

// Config represents the main tool configuration structure
type Config struct {
	// Validation holds scoring configuration
	Validation ValidationSettings `json:"validation" mapstructure:"validation" yaml:"validation"`

	// Output holds output formatting configuration
	Output OutputConfig `json:"output" mapstructure:"output" yaml:"output"`

	// Batch holds bulk-validation configuration
	Batch BatchConfig `json:"batch" mapstructure:"batch" yaml:"batch"`

	// History holds run-history persistence configuration
	History HistoryConfig `json:"history" mapstructure:"history" yaml:"history"`
}

// ValidationSettings holds scoring configuration
type ValidationSettings struct {
	// Threshold is the minimum score (0-100) for an overall pass
	Threshold float64 `json:"threshold" mapstructure:"threshold" yaml:"threshold"`

	// FailOnWarning is reserved for future warning-level assertions
	FailOnWarning bool `json:"failOnWarning" mapstructure:"fail_on_warning" yaml:"fail_on_warning"`
}

// OutputConfig holds output formatting configuration
type OutputConfig struct {
	// Format selects the report rendering: text, json, yaml, markdown
	Format string `json:"format" mapstructure:"format" yaml:"format"`

	// ShowDetails includes per-assertion rows in text output
	ShowDetails bool `json:"showDetails" mapstructure:"show_details" yaml:"show_details"`
}

// BatchConfig holds bulk-validation configuration
type BatchConfig struct {
	// MaxConcurrency caps parallel validations (0 uses the default)
	MaxConcurrency int `json:"maxConcurrency" mapstructure:"max_concurrency" yaml:"max_concurrency"`

	// TimeoutSeconds bounds a whole batch run (0 uses the default)
	TimeoutSeconds int `json:"timeoutSeconds" mapstructure:"timeout_seconds" yaml:"timeout_seconds"`

	// IncludeExtensions lists candidate output file extensions for
	// directory inputs
	IncludeExtensions []string `json:"includeExtensions" mapstructure:"include_extensions" yaml:"include_extensions"`

	// ExcludePatterns lists glob patterns skipped during collection,
	// in addition to .gitignore rules
	ExcludePatterns []string `json:"excludePatterns" mapstructure:"exclude_patterns" yaml:"exclude_patterns"`

	// Recursive controls directory traversal
	Recursive bool `json:"recursive" mapstructure:"recursive" yaml:"recursive"`
}

// HistoryConfig holds run-history persistence configuration
type HistoryConfig struct {
	// Enabled controls whether runs are recorded
	Enabled bool `json:"enabled" mapstructure:"enabled" yaml:"enabled"`

	// Path overrides the history database location
	Path string `json:"path" mapstructure:"path" yaml:"path"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Validation: ValidationSettings{
			Threshold:     DefaultThreshold,
			FailOnWarning: false,
		},
		Output: OutputConfig{
			Format:      "text",
			ShowDetails: false,
		},
		Batch: BatchConfig{
			MaxConcurrency:    DefaultBatchConcurrency,
			TimeoutSeconds:    DefaultBatchTimeoutSeconds,
			IncludeExtensions: []string{".txt", ".md", ".json"},
			ExcludePatterns: []string{
				"node_modules",
				"vendor",
				".git",
				"dist",
				"build",
			},
			Recursive: true,
		},
		History: HistoryConfig{
			Enabled: true,
			Path:    "", // resolved to the user config dir at open time
		},
	}
}

// LoadConfig loads configuration from file or returns default config
func LoadConfig(configPath string) (*Config, error) {
	return LoadConfigWithTarget(configPath, "")
}

// LoadConfigWithTarget loads configuration with target path context:
// when no explicit path is given, discovery starts at the target and
// walks upward.
func LoadConfigWithTarget(configPath string, targetPath string) (*Config, error) {
	if configPath == "" {
		configPath = findDefaultConfig(targetPath)
	}
	return loadConfigFromFile(configPath)
}

// loadConfigFromFile reads and parses a tool configuration file
func loadConfigFromFile(configPath string) (*Config, error) {
	if configPath == "" {
		return DefaultConfig(), nil
	}

	// Create a new viper instance to avoid race conditions
	v := viper.New()
	config := DefaultConfig()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// Validate validates the configuration values
func (c *Config) Validate() error {
	if c.Validation.Threshold < 0 || c.Validation.Threshold > 100 {
		return fmt.Errorf("validation.threshold must be in [0, 100], got %v", c.Validation.Threshold)
	}

	validFormats := map[string]bool{
		"text":     true,
		"json":     true,
		"yaml":     true,
		"markdown": true,
	}
	if !validFormats[c.Output.Format] {
		return fmt.Errorf("invalid output.format '%s', must be one of: text, json, yaml, markdown", c.Output.Format)
	}

	if c.Batch.MaxConcurrency < 0 {
		return fmt.Errorf("batch.max_concurrency must be >= 0, got %d", c.Batch.MaxConcurrency)
	}

	if c.Batch.TimeoutSeconds < 0 {
		return fmt.Errorf("batch.timeout_seconds must be >= 0, got %d", c.Batch.TimeoutSeconds)
	}

	return nil
}

// searchConfigInDirectory searches for configuration files in a specific directory
func searchConfigInDirectory(dir string, candidates []string) string {
	for _, candidate := range candidates {
		path := filepath.Join(dir, candidate)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// findDefaultConfig looks for default configuration files in common locations.
// targetPath is the path being validated (a file or directory); discovery
// walks from there up to the filesystem root, then falls back to the CWD,
// the XDG config directory, and the LINTAI_CONFIG environment variable.
func findDefaultConfig(targetPath string) string {
	candidates := []string{
		"lintai.yaml",
		"lintai.yml",
		".lintai.toml",
		".lintai.yml",
		"lintai.json",
		".lintai.json",
	}

	if targetPath != "" {
		absPath, err := filepath.Abs(targetPath)
		if err == nil {
			info, err := os.Stat(absPath)
			if err == nil && !info.IsDir() {
				absPath = filepath.Dir(absPath)
			}

			for dir := absPath; ; dir = filepath.Dir(dir) {
				if config := searchConfigInDirectory(dir, candidates); config != "" {
					return config
				}
				if parent := filepath.Dir(dir); parent == dir {
					break
				}
			}
		}
	}

	if config := searchConfigInDirectory(".", candidates); config != "" {
		return config
	}

	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		if config := searchConfigInDirectory(filepath.Join(xdgConfig, "lintai"), candidates); config != "" {
			return config
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		if config := searchConfigInDirectory(filepath.Join(home, ".config", "lintai"), candidates); config != "" {
			return config
		}
	}

	if envConfig := os.Getenv("LINTAI_CONFIG"); envConfig != "" {
		if _, err := os.Stat(envConfig); err == nil {
			return envConfig
		}
	}

	return ""
}

// HistoryPath resolves the history database location, defaulting to the
// user config directory.
func (c *Config) HistoryPath() (string, error) {
	if c.History.Path != "" {
		return c.History.Path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot resolve history path: %w", err)
	}
	return filepath.Join(home, ".config", "lintai", "history.db"), nil
}
