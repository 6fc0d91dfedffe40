package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const configFilename = "gtable.yaml"

// Config holds settings shared by every command.
// Loaded from gtable.yaml if present, then overridden by GTABLE_* environment
// variables and flags.
type Config struct {
	// StateDir is where the local badger state store lives.
	StateDir string `mapstructure:"stateDir"`

	// StateTable, when set, stores state in this DynamoDB table instead of
	// StateDir.
	StateTable string `mapstructure:"stateTable"`

	// StateRegion is the region of StateTable. Defaults to the SDK region.
	StateRegion string `mapstructure:"stateRegion"`

	// ScopeByAccount prefixes state keys with the caller's AWS account ID.
	ScopeByAccount bool `mapstructure:"scopeByAccount"`

	// Concurrency caps regional calls in flight. Zero means unlimited.
	Concurrency int `mapstructure:"concurrency"`

	// WaitTimeout bounds how long a regional create or delete waits for the
	// table to settle.
	WaitTimeout time.Duration `mapstructure:"waitTimeout"`

	Debug bool `mapstructure:"debug"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("stateDir", ".gtable")
	v.SetDefault("scopeByAccount", true)
	v.SetDefault("waitTimeout", "5m")
}

// loadConfig reads the config file, if any, into v and decodes the result.
// An explicit path must exist. Without one, gtable.yaml is searched for
// from dir up to the filesystem root.
func loadConfig(v *viper.Viper, explicit, dir string) (Config, error) {
	setDefaults(v)
	v.SetEnvPrefix("GTABLE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	path := explicit
	if path == "" {
		path = findConfigFile(dir)
	}
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	return cfg, nil
}

// findConfigFile searches for gtable.yaml walking up from dir.
func findConfigFile(dir string) string {
	if dir == "" {
		return ""
	}
	for {
		path := filepath.Join(dir, configFilename)
		if _, err := os.Stat(path); err == nil {
			return path
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			return ""
		}
		dir = parent
	}
}
