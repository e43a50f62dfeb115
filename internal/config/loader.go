package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load reads and parses a readqc configuration from the given YAML file
// path. After parsing, defaults are applied to unset fields.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided config path
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

// LoadDefault searches for a config in standard locations and loads the
// first one found. Search order: ./readqc.yaml, ~/.readqc/config.yaml.
// When none exists, a default config is returned.
func LoadDefault() (*Config, error) {
	candidates := []string{"readqc.yaml"}

	home, err := os.UserHomeDir()
	if err == nil {
		candidates = append(candidates, filepath.Join(home, ".readqc", "config.yaml"))
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}

	var cfg Config
	applyDefaults(&cfg)
	return &cfg, nil
}

// applyDefaults fills in unset fields.
func applyDefaults(cfg *Config) {
	r := &cfg.ReadQC

	if r.FastQC.Binary == "" {
		r.FastQC.Binary = "fastqc"
	}
	if r.FastQC.Threads == 0 {
		r.FastQC.Threads = 1
	}
	if len(r.Gate.FailOn) == 0 {
		r.Gate.FailOn = []string{"fail"}
	}
	if r.DBPath == "" {
		if home, err := os.UserHomeDir(); err == nil {
			r.DBPath = filepath.Join(home, ".readqc", "readqc.db")
		}
	}
}
