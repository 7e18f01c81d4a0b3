package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the reporules configuration.
type Config struct {
	GitHub GitHubConfig `yaml:"github"`
	Output OutputConfig `yaml:"output"`
}

// GitHubConfig holds everything needed to reach the API and scope the
// working set.
type GitHubConfig struct {
	Organization string   `yaml:"organization"`
	APIURL       string   `yaml:"api_url,omitempty"`
	Teams        []string `yaml:"teams,omitempty"`
	Credentials  string   `yaml:"credentials,omitempty"`
	Enforcement  string   `yaml:"enforcement,omitempty"`
}

// OutputConfig controls report emission.
type OutputConfig struct {
	Indent int `yaml:"indent,omitempty"`
}

// LoadConfig loads configuration from the default location.
func LoadConfig() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadConfigFromPath(configPath)
}

// LoadConfigFromPath loads configuration from a specific path.
func LoadConfigFromPath(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &Config{}, nil // Return empty config if file doesn't exist
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &config, nil
}

// SaveConfig saves configuration to the default location.
func (c *Config) SaveConfig() error {
	configPath, err := GetConfigPath()
	if err != nil {
		return err
	}
	return c.SaveConfigToPath(configPath)
}

// SaveConfigToPath saves configuration to a specific path.
func (c *Config) SaveConfigToPath(path string) error {
	configDir := filepath.Dir(path)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GetConfigPath returns the default configuration file path.
func GetConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".reporules", "config.yaml"), nil
}

// CredentialsPath returns the configured credentials file path, or the
// default next to the config file.
func (c *Config) CredentialsPath() (string, error) {
	if c.GitHub.Credentials != "" {
		return c.GitHub.Credentials, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".reporules", "credentials"), nil
}

// Indent returns the configured report indent width, defaulting to 2.
func (c *Config) Indent() int {
	if c.Output.Indent == 0 {
		return 2
	}
	return c.Output.Indent
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.GitHub.Organization == "" {
		return fmt.Errorf("github.organization is required")
	}
	if c.Output.Indent != 0 && (c.Output.Indent < 1 || c.Output.Indent > 8) {
		return fmt.Errorf("output.indent must be between 1 and 8")
	}
	return nil
}
