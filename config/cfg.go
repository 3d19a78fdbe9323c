// Package config holds program configuration and the standard logger setup.
package config

import (
	"bytes"
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v3"
)

type (
	// StoreConfig selects where the persistent face registry lives.
	StoreConfig struct {
		Path string `yaml:"path,omitempty"`
	}

	Config struct {
		Version int           `yaml:"version"`
		Store   StoreConfig   `yaml:"store,omitempty"`
		Logging LoggingConfig `yaml:"logging"`
	}
)

// Default returns the built-in configuration used when no file is provided.
func Default() *Config {
	return &Config{
		Version: 1,
		Logging: LoggingConfig{
			ConsoleLogger: LoggerConfig{Level: "normal"},
			FileLogger:    LoggerConfig{Level: "none", Mode: "append"},
		},
	}
}

// LoadConfiguration reads YAML configuration from path, overlaying it on the
// defaults. Empty path returns the defaults. Unknown keys are an error so a
// typo never silently disables anything.
func LoadConfiguration(path string) (*Config, error) {
	cfg := Default()
	if len(path) == 0 {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read configuration '%s': %w", path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("unable to parse configuration '%s': %w", path, err)
	}
	if cfg.Version != 1 {
		return nil, fmt.Errorf("unsupported configuration version %d in '%s'", cfg.Version, path)
	}
	return cfg, nil
}

// Dump serializes the active configuration back to YAML.
func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("unable to serialize configuration: %w", err)
	}
	return data, nil
}
