/*
Package config loads the capbit CLI's settings from flags, CAPBIT_-prefixed
environment variables, and an optional YAML file, in that priority order
(flags win, then env, then file, then the built-in default).
*/
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the settings the CLI needs to open an engine and log.
type Config struct {
	DBPath   string `yaml:"dbPath"`
	LogLevel string `yaml:"logLevel"`
	LogJSON  bool   `yaml:"logJSON"`
}

// Default returns the built-in defaults, used when nothing else sets a field.
func Default() Config {
	return Config{
		DBPath:   filepath.Join(os.Getenv("HOME"), ".capbit", "capbit.db"),
		LogLevel: "info",
		LogJSON:  false,
	}
}

// DefaultConfigPath is where Load looks for a YAML file absent --config.
func DefaultConfigPath() string {
	return filepath.Join(os.Getenv("HOME"), ".capbit", "config.yaml")
}

// Load resolves a Config starting from Default, overlaying the YAML file at
// path (if it exists; a missing file is not an error), then CAPBIT_-prefixed
// environment variables. Flags are applied by the caller afterward, since
// cobra owns flag parsing; Load only handles the file and env layers.
func Load(path string) (Config, error) {
	cfg := Default()

	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, err
		}
	} else if !os.IsNotExist(err) {
		return cfg, err
	}

	if v := os.Getenv("CAPBIT_DB_PATH"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("CAPBIT_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("CAPBIT_LOG_JSON"); v != "" {
		cfg.LogJSON = v == "1" || v == "true"
	}

	return cfg, nil
}
