package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FileName is the workspace config file name.
const FileName = "sors.yaml"

// Config represents the top-level sors.yaml configuration.
type Config struct {
	Workspace WorkspaceConfig `yaml:"workspace"`
	Import    ImportConfig    `yaml:"import"`
	Log       LogConfig       `yaml:"log"`
}

// WorkspaceConfig identifies the workspace.
type WorkspaceConfig struct {
	Name string `yaml:"name"`
}

// ImportConfig controls where statement files are picked up.
type ImportConfig struct {
	Dir string `yaml:"dir"`
}

// LogConfig controls log output.
type LogConfig struct {
	Level string `yaml:"level"` // zerolog level name, e.g. "info"
}

// Load reads a sors.yaml file from disk.
func Load(path string) (*Config, error) {
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

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new workspace.
func Default(workspaceName string) *Config {
	return &Config{
		Workspace: WorkspaceConfig{
			Name: workspaceName,
		},
		Import: ImportConfig{
			Dir: "import",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
