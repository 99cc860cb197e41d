// Package config resolves the run configuration for the pulsim CLI.
//
// Values layer in koanf style: built-in defaults, then an optional
// pulsim.toml / pulsim.yaml (an explicit path beats cwd discovery),
// then PULSIM_* environment overrides. Command-line flags are applied
// last by the cli package.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/katalvlaran/pulsim/cadence"
)

// envPrefix marks the environment variables the loader listens to,
// e.g. PULSIM_PRESSES=500 or PULSIM_LOG_FILE=off.
const envPrefix = "PULSIM_"

// discoveryNames are probed in the working directory when no --config
// path is given; the first hit wins.
var discoveryNames = []string{"pulsim.toml", "pulsim.yaml"}

// ErrConfigFormat is returned for config files whose extension maps to
// no known parser.
var ErrConfigFormat = errors.New("config: unsupported config file format")

// Config carries every knob the CLI commands consume.
type Config struct {
	// Input is the circuit description file; empty means stdin.
	Input string `koanf:"input"`
	// Presses is the button-press count used by totals and trace.
	Presses int `koanf:"presses"`
	// Target is the module watched by firstlow.
	Target string `koanf:"target"`
	// MaxPresses bounds cycle observation and --brute searches.
	MaxPresses int `koanf:"max_presses"`
	// NoColor disables styled output regardless of terminal detection.
	NoColor bool `koanf:"no_color"`
	Log     Log  `koanf:"log"`
}

// Log groups the logging knobs.
type Log struct {
	// Verbosity mirrors the -v count: 0 warn, 1 info, 2 debug, 3+ trace.
	Verbosity int `koanf:"verbosity"`
	// File overrides the XDG state log path; "off" disables the sink.
	File string `koanf:"file"`
}

// Load resolves the configuration. A non-empty path names a config file
// that must exist and parse; otherwise discoveryNames are probed and a
// missing file is fine.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("config: load defaults: %w", err)
	}

	if err := loadFile(k, path); err != nil {
		return nil, err
	}

	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("config: load environment: %w", err)
	}

	var cfg Config
	conf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, conf); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	return &cfg, nil
}

// defaults is the base layer every other source overrides.
func defaults() map[string]interface{} {
	return map[string]interface{}{
		"input":       "",
		"presses":     1000,
		"target":      "rx",
		"max_presses": cadence.DefaultMaxPresses,
		"no_color":    false,
		"log": map[string]interface{}{
			"verbosity": 0,
			"file":      "",
		},
	}
}

// loadFile merges one config file into k. Explicit paths are required
// to load; discovered ones are best-effort.
func loadFile(k *koanf.Koanf, path string) error {
	if path != "" {
		parser, err := parserFor(path)
		if err != nil {
			return err
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return fmt.Errorf("config: load %s: %w", path, err)
		}
		return nil
	}

	for _, name := range discoveryNames {
		if _, err := os.Stat(name); err != nil {
			continue
		}
		parser, err := parserFor(name)
		if err != nil {
			return err
		}
		if err := k.Load(file.Provider(name), parser); err != nil {
			return fmt.Errorf("config: load %s: %w", name, err)
		}
		return nil
	}
	return nil
}

// parserFor picks a koanf parser from the file extension.
func parserFor(path string) (koanf.Parser, error) {
	switch filepath.Ext(path) {
	case ".toml":
		return toml.Parser(), nil
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrConfigFormat, path)
	}
}

// envKey maps PULSIM_LOG_FILE to log.file and PULSIM_MAX_PRESSES to
// max_presses: only the log section nests, so a single prefix cut is
// enough and underscores survive inside key names.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, envPrefix))
	if rest, ok := strings.CutPrefix(s, "log_"); ok {
		return "log." + rest
	}
	return s
}
