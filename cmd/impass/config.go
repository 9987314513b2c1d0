package main

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const configName = ".impass.toml"

// Config holds tool-level settings. The transformation itself carries no
// configuration beyond the reason directive; these knobs only shape how the
// CLI walks files and reports diagnostics.
type Config struct {
	Generate GenerateConfig `toml:"generate"`
	Output   OutputConfig   `toml:"output"`
}

type GenerateConfig struct {
	// Jobs caps how many files are transformed in parallel. Zero means
	// one worker per CPU.
	Jobs int `toml:"jobs"`

	// Exclude lists glob patterns matched against each candidate file's
	// slash-separated path and base name.
	Exclude []string `toml:"exclude"`
}

type OutputConfig struct {
	// Color is the default for the --color flag: auto, on or off.
	Color string `toml:"color"`
}

// loadConfig reads the explicit path when given, otherwise searches upward
// from the working directory for .impass.toml. A missing file yields the
// defaults.
func loadConfig(explicit string) (Config, error) {
	cfg := Config{Output: OutputConfig{Color: "auto"}}

	path := explicit
	if path == "" {
		path = findConfig()
	}
	if path == "" {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, err
	}
	if cfg.Output.Color == "" {
		cfg.Output.Color = "auto"
	}
	return cfg, nil
}

func findConfig() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for {
		p := filepath.Join(dir, configName)
		if _, err := os.Stat(p); err == nil {
			return p
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
