// Package config reads run defaults from the environment. Command-line
// flags override every value.
package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"

	"shrink/internal/resizer"
)

// Prefix is prepended to every variable, e.g. SHRINK_SCALE.
const Prefix = "SHRINK"

type Config struct {
	Scale      string `envconfig:"SCALE" default:"50%"`
	OnConflict string `envconfig:"ON_CONFLICT" default:"overwrite"`
	LogLevel   string `envconfig:"LOG_LEVEL" default:"warn"`
	Plain      bool   `envconfig:"PLAIN" default:"false"`
}

// Load reads the SHRINK_* variables.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// ParseConflictPolicy maps "overwrite" or "rename" to a policy.
func ParseConflictPolicy(s string) (resizer.ConflictPolicy, error) {
	switch s {
	case "", "overwrite":
		return resizer.ConflictOverwrite, nil
	case "rename":
		return resizer.ConflictRename, nil
	default:
		return 0, fmt.Errorf("unknown conflict policy %q (use overwrite or rename)", s)
	}
}
