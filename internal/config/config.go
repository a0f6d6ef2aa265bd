// Package config loads project-level compiler options from an optional
// hql.config.yaml, the kind of settings file cmd/hqlc's build subcommand
// would otherwise only get from flags.
package config

import (
	"os"

	"github.com/goccy/go-yaml"
)

// Config holds everything cmd/hqlc threads into driver.Options/macro.Limits
// besides what a single invocation passes on the command line.
type Config struct {
	RecursionLimit int               `yaml:"recursionLimit"`
	IterationLimit int               `yaml:"iterationLimit"`
	EmitHelpers    bool              `yaml:"emitHelpers"`
	Imports        map[string]string `yaml:"imports"`
}

// Default returns the configuration used when no hql.config.yaml is
// present: helpers on, no recursion/iteration overrides, no import
// remapping.
func Default() Config {
	return Config{EmitHelpers: true}
}

// Load reads and parses path. A missing file is not an error; callers get
// Default() back so an absent hql.config.yaml is simply "use defaults".
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := Default()
			return &cfg, nil
		}
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
