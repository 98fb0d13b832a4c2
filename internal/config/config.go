// Package config handles persistent user configuration for opsagent.
//
// Configuration is stored at ~/.config/opsagent/config.json (or the
// platform-equivalent path returned by os.UserConfigDir). A config.yaml in
// the same directory is also accepted for users who prefer YAML; when both
// exist, the JSON file wins.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	appDir       = "opsagent"
	jsonFileName = "config.json"
	yamlFileName = "config.yaml"
)

// pathOverride, when non-empty, replaces the default config file path.
// Intended for testing. Use SetPath / ResetPath to manage.
var pathOverride string

// SetPath overrides the config file path. Intended for testing.
func SetPath(p string) { pathOverride = p }

// ResetPath clears the path override, reverting to the default. Intended for testing.
func ResetPath() { pathOverride = "" }

// Config holds user preferences that persist across invocations.
type Config struct {
	DefaultRegion string `json:"default_region,omitempty" yaml:"default_region,omitempty"`
	DefaultOwner  string `json:"default_owner,omitempty" yaml:"default_owner,omitempty"`
	Environment   string `json:"environment,omitempty" yaml:"environment,omitempty"`
	Model         string `json:"model,omitempty" yaml:"model,omitempty"`
}

// Path returns the absolute path to the config file that Load would read:
// the override if set, the YAML file if only it exists, the JSON file
// otherwise.
func Path() (string, error) {
	if pathOverride != "" {
		return pathOverride, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("config: unable to determine config directory: %w", err)
	}

	jsonPath := filepath.Join(base, appDir, jsonFileName)
	if _, err := os.Stat(jsonPath); err == nil {
		return jsonPath, nil
	}
	yamlPath := filepath.Join(base, appDir, yamlFileName)
	if _, err := os.Stat(yamlPath); err == nil {
		return yamlPath, nil
	}
	return jsonPath, nil
}

// Load reads the config file from disk and returns the parsed Config.
// If the file does not exist, a zero-value Config is returned (not an error).
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads the config from the given path, decoding JSON or YAML by
// file extension.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("config: failed to read %s: %w", path, err)
	}

	var cfg Config
	if isYAML(path) {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("config: failed to parse %s: %w", path, err)
		}
		return &cfg, nil
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}
	return &cfg, nil
}

// Save writes the config to disk, creating the parent directory if needed.
// The format follows the file extension of Path().
func (c *Config) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo writes the config to the given path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("config: failed to create directory %s: %w", dir, err)
	}

	var data []byte
	var err error
	if isYAML(path) {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return fmt.Errorf("config: failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: failed to write %s: %w", path, err)
	}

	return nil
}

// Get returns the value of a config key by its snake_case name.
func (c *Config) Get(key string) (string, error) {
	switch strings.ToLower(key) {
	case "default_region":
		return c.DefaultRegion, nil
	case "default_owner":
		return c.DefaultOwner, nil
	case "environment":
		return c.Environment, nil
	case "model":
		return c.Model, nil
	default:
		return "", fmt.Errorf("config: unknown key %q", key)
	}
}

// Set updates the value of a config key by its snake_case name.
func (c *Config) Set(key, value string) error {
	switch strings.ToLower(key) {
	case "default_region":
		c.DefaultRegion = value
	case "default_owner":
		c.DefaultOwner = value
	case "environment":
		c.Environment = value
	case "model":
		c.Model = value
	default:
		return fmt.Errorf("config: unknown key %q", key)
	}
	return nil
}

// Keys lists the settable config keys.
func Keys() []string {
	return []string{"default_region", "default_owner", "environment", "model"}
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
