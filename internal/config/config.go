// Package config loads editlint's file-based configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds per-project lint settings.
type Config struct {
	// TimeoutSeconds bounds each external lint command. Zero keeps the
	// built-in default.
	TimeoutSeconds int `toml:"timeout_seconds"`
	// Commands maps a language identifier to an external lint command
	// template. The file's relative path is appended on invocation, e.g.
	//
	//   [commands]
	//   python = "flake8 --select=E9,F821,F823,F831,F406,F407,F701,F702,F704,F706 --show-source"
	Commands map[string]string `toml:"commands"`
}

// DefaultNames are the config file names searched in the lint root.
var DefaultNames = []string{"editlint.toml", ".editlint.toml"}

// Load reads configuration from path. An empty path searches DefaultNames in
// root; a missing config file is not an error and yields an empty Config.
func Load(path, root string) (*Config, error) {
	if path == "" {
		for _, name := range DefaultNames {
			candidate := filepath.Join(root, name)
			if _, err := os.Stat(candidate); err == nil {
				path = candidate
				break
			}
		}
		if path == "" {
			return &Config{}, nil
		}
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", path, err)
	}
	return &cfg, nil
}
