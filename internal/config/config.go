package config

import (
	"fmt"
	"os"

	"github.com/c2h5oh/datasize"
	"gopkg.in/yaml.v3"

	"packetfields/internal/logging"
)

// Config is the tool configuration. The input file itself is fixed to
// packets.json in the working directory and is not configurable.
type Config struct {
	// Logging configuration.
	Logging logging.Config `yaml:"logging"`
	// Input configuration.
	Input InputConfig `yaml:"input"`
}

// InputConfig constrains how the export is read.
type InputConfig struct {
	// MaxSize is the largest export that is loaded. Zero disables the
	// check.
	MaxSize datasize.ByteSize `yaml:"max_size"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Logging: logging.Config{
			Level: logging.DefaultLevel,
		},
		Input: InputConfig{
			MaxSize: 1 * datasize.GB,
		},
	}
}

// LoadConfig loads configuration from a YAML file at the specified path,
// on top of the defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML configuration: %w", err)
	}

	return cfg, nil
}
