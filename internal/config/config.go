// Package config loads CLI and engine configuration from a yaml file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the root of the stolas.yaml configuration file.
type Config struct {
	Engine EngineConfig `yaml:"engine"`
	Log    LogConfig    `yaml:"log"`
}

// EngineConfig tunes the resolution engine.
type EngineConfig struct {
	// DepthLimit caps recursion depth defensively.
	DepthLimit int `yaml:"depth_limit"`

	// Paterson switches the registration gate from the nesting rule to
	// the size-decrease check, which accepts strictly more impls.
	Paterson bool `yaml:"paterson"`
}

// LogConfig tunes the logger.
type LogConfig struct {
	// Level is a zap level name: debug, info, warn, error.
	Level string `yaml:"level"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Engine: EngineConfig{DepthLimit: 512},
		Log:    LogConfig{Level: "info"},
	}
}

// Load reads a yaml configuration file. A missing path yields the defaults;
// fields absent from the file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Engine.DepthLimit <= 0 {
		cfg.Engine.DepthLimit = Default().Engine.DepthLimit
	}
	return cfg, nil
}
