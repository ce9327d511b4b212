// Package config handles reading and writing the client's config.yaml.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the top-level structure for config.yaml.
type Config struct {
	Version int           `yaml:"version"`
	Server  ServerConfig  `yaml:"server"`
	Analyze AnalyzeConfig `yaml:"analyze"`
	History HistoryConfig `yaml:"history"`
}

// ServerConfig holds the remote analysis service settings.
type ServerConfig struct {
	URL     string `yaml:"url"`
	Timeout int    `yaml:"timeout"` // seconds, transport-level request timeout
}

// AnalyzeConfig controls analysis workflow defaults.
type AnalyzeConfig struct {
	Method string `yaml:"method"` // simplification method: "mt5" | "openai"
}

// HistoryConfig holds history-related settings.
type HistoryConfig struct {
	ExportFile string `yaml:"export_file"` // default filename for CSV export
}

const configFile = "config.yaml"

// Home returns the client's home directory. DYSLEXIA_HOME overrides the
// default of ~/.dyslexia.
func Home() (string, error) {
	if dir := os.Getenv("DYSLEXIA_HOME"); dir != "" {
		return dir, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".dyslexia"), nil
}

// ReadConfig reads config.yaml from the given app directory.
// Returns an error if the file is not found or YAML is malformed.
func ReadConfig(dir string) (*Config, error) {
	path := filepath.Join(dir, configFile)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return &cfg, nil
}

// WriteConfig writes cfg to config.yaml in the given app directory.
// Creates the directory if it does not exist.
func WriteConfig(dir string, cfg *Config) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}

	path := filepath.Join(dir, configFile)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// DefaultConfig returns a Config populated with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Server: ServerConfig{
			URL:     "http://localhost:8000",
			Timeout: 10,
		},
		Analyze: AnalyzeConfig{
			Method: "mt5",
		},
		History: HistoryConfig{
			ExportFile: "history.csv",
		},
	}
}
