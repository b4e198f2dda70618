// Package config loads the optional max.yaml file that toggles the
// interpreter's debug facilities.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultFile is looked up in the working directory when no explicit path
// is given.
const DefaultFile = "max.yaml"

// Config is the top-level max.yaml document.
type Config struct {
	Debug Debug `yaml:"debug"`
}

// Debug toggles the interpreter's tracing facilities.
type Debug struct {
	// TraceExecution disassembles every instruction before the VM executes it.
	TraceExecution bool `yaml:"trace_execution"`
	// PrintCode disassembles every chunk once compilation finishes.
	PrintCode bool `yaml:"print_code"`
}

func Default() *Config {
	return &Config{}
}

// Load reads and parses the configuration at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &cfg, nil
}

// LoadOrDefault loads path when given, otherwise DefaultFile when present,
// otherwise the zero configuration. Only an explicitly named file that
// fails to load is an error.
func LoadOrDefault(path string) (*Config, error) {
	if path != "" {
		return Load(path)
	}
	if _, err := os.Stat(DefaultFile); err != nil {
		return Default(), nil
	}
	return Load(DefaultFile)
}
