package service

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/lintai-dev/lintai/domain"
	"github.com/lintai-dev/lintai/internal/constants"
	"gopkg.in/yaml.v3"
)

// ConfigurationLoaderImpl implements the ConfigurationLoader interface.
// Assertion documents are parsed strictly with encoding/json (or yaml.v3
// for .yaml files): a malformed document is a fatal error, never a silent
// fallback to defaults.
type ConfigurationLoaderImpl struct{}

// NewConfigurationLoader creates a new configuration loader service
func NewConfigurationLoader() *ConfigurationLoaderImpl {
	return &ConfigurationLoaderImpl{}
}

// LoadConfig loads an assertions document from the specified path
func (c *ConfigurationLoaderImpl) LoadConfig(path string) (*domain.ValidationConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.NewConfigNotFoundError(path, err)
		}
		return nil, domain.NewConfigError("failed to read config file", err)
	}

	cfg := &domain.ValidationConfig{}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := c.unmarshalYAML(data, cfg); err != nil {
			return nil, domain.NewConfigParseError(path, err)
		}
	default:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, domain.NewConfigParseError(path, err)
		}
	}

	if cfg.Assertions == nil {
		// An absent list is a valid empty config; it scores 0.
		cfg.Assertions = []domain.AssertionSpec{}
	}

	return cfg, nil
}

// unmarshalYAML decodes a YAML assertions document by converting it to JSON
// first, so the AssertionSpec defaulting rules (weight, enabled, type
// normalization) apply identically in both formats.
func (c *ConfigurationLoaderImpl) unmarshalYAML(data []byte, cfg *domain.ValidationConfig) error {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return err
	}
	jsonData, err := json.Marshal(raw)
	if err != nil {
		return err
	}
	return json.Unmarshal(jsonData, cfg)
}

// FindDefaultConfigFile searches for a default assertions config file in
// the current directory and its ancestors.
func (c *ConfigurationLoaderImpl) FindDefaultConfigFile() string {
	configFiles := []string{
		constants.AssertionsFileName,
		"lintai.assertions.yaml",
		"lintai.assertions.yml",
		".lintai.assertions.json",
		"assertions.json",
	}

	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		for _, file := range configFiles {
			configPath := filepath.Join(currentDir, file)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	return ""
}
