// Package config loads the command-line tool's settings: built-in defaults,
// then an optional YAML file, then flags.
package config

import (
	"fmt"
	"time"

	"github.com/gobwas/glob"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/justyntemme/vst3info/pkg/debug"
	"github.com/justyntemme/vst3info/pkg/vst3"
)

// Config is the complete tool configuration.
type Config struct {
	Log               LogConfig    `koanf:"log"`
	Output            OutputConfig `koanf:"output"`
	QuietPluginOutput bool         `koanf:"quiet_plugin_output"`
	Scan              ScanConfig   `koanf:"scan"`
}

// LogConfig selects the diagnostic log level and handler.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// OutputConfig selects how reports are written.
type OutputConfig struct {
	Format string `koanf:"format"`
	Pretty bool   `koanf:"pretty"`
}

// ScanConfig controls directory scans.
type ScanConfig struct {
	Workers int           `koanf:"workers"`
	Timeout time.Duration `koanf:"timeout"`
	Include string        `koanf:"include"`
}

// MaxWorkers bounds scan.workers.
const MaxWorkers = 256

var defaults = map[string]any{
	"log.level":           "warn",
	"log.format":          "text",
	"output.format":       "json",
	"output.pretty":       false,
	"quiet_plugin_output": true,
	"scan.workers":        4,
	"scan.timeout":        "30s",
	"scan.include":        "*",
}

// flagKeys maps flag names onto configuration keys.
var flagKeys = map[string]string{
	"log-level":           "log.level",
	"log-format":          "log.format",
	"format":              "output.format",
	"pretty":              "output.pretty",
	"quiet-plugin-output": "quiet_plugin_output",
	"workers":             "scan.workers",
	"timeout":             "scan.timeout",
	"include":             "scan.include",
}

// BindFlags registers the flags Load understands. Defaults shown in help
// are the built-in ones; a config file still wins over an unset flag.
func BindFlags(fs *pflag.FlagSet) {
	fs.String("log-level", "warn", "log level (debug, info, warn, error, off)")
	fs.String("log-format", "text", "log format (text, json)")
	fs.String("format", "json", "report format (json, yaml)")
	fs.Bool("pretty", false, "indent JSON output")
	fs.Bool("quiet-plugin-output", true, "discard what plugins print to stdout and stderr")
}

// BindScanFlags registers the flags only the scan command uses.
func BindScanFlags(fs *pflag.FlagSet) {
	fs.Int("workers", 4, "number of plugins inspected in parallel")
	fs.Duration("timeout", 30*time.Second, "time limit per plugin")
	fs.String("include", "*", "glob matched against bundle file names")
}

// Load builds the configuration. path may be empty; fs may be nil.
func Load(path string, fs *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")
	for key, val := range defaults {
		if err := k.Set(key, val); err != nil {
			return nil, vst3.NewConfigInvalidError(key, err)
		}
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, vst3.NewConfigInvalidError("config", err)
		}
	}

	if fs != nil {
		provider := posflag.ProviderWithFlag(fs, ".", k, func(f *pflag.Flag) (string, any) {
			key, ok := flagKeys[f.Name]
			if !ok {
				return "", nil
			}
			return key, posflag.FlagVal(fs, f)
		})
		if err := k.Load(provider, nil); err != nil {
			return nil, vst3.NewConfigInvalidError("flags", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, vst3.NewConfigInvalidError("config", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks enums and ranges.
func (c *Config) Validate() error {
	if _, err := debug.ParseLevel(c.Log.Level); err != nil {
		return vst3.NewConfigInvalidError("log.level", err)
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return vst3.NewConfigInvalidError("log.format", fmt.Errorf("unknown log format %q", c.Log.Format))
	}
	if c.Output.Format != "json" && c.Output.Format != "yaml" {
		return vst3.NewConfigInvalidError("output.format", fmt.Errorf("unknown output format %q", c.Output.Format))
	}
	if c.Scan.Workers < 1 || c.Scan.Workers > MaxWorkers {
		return vst3.NewConfigInvalidError("scan.workers", fmt.Errorf("must be between 1 and %d, got %d", MaxWorkers, c.Scan.Workers))
	}
	if c.Scan.Timeout <= 0 {
		return vst3.NewConfigInvalidError("scan.timeout", fmt.Errorf("must be positive, got %s", c.Scan.Timeout))
	}
	if _, err := glob.Compile(c.Scan.Include); err != nil {
		return vst3.NewConfigInvalidError("scan.include", err)
	}
	return nil
}

// LogLevel returns the parsed log level.
func (c *Config) LogLevel() debug.LogLevel {
	level, _ := debug.ParseLevel(c.Log.Level)
	return level
}

// IncludeMatcher compiles scan.include.
func (c *Config) IncludeMatcher() (glob.Glob, error) {
	return glob.Compile(c.Scan.Include)
}
