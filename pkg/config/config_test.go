package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justyntemme/vst3info/pkg/debug"
	"github.com/justyntemme/vst3info/pkg/vst3"
)

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	BindFlags(fs)
	BindScanFlags(fs)
	require.NoError(t, fs.Parse(args))
	return fs
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vst3info.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.False(t, cfg.Output.Pretty)
	assert.True(t, cfg.QuietPluginOutput)
	assert.Equal(t, 4, cfg.Scan.Workers)
	assert.Equal(t, 30*time.Second, cfg.Scan.Timeout)
	assert.Equal(t, "*", cfg.Scan.Include)
	assert.Equal(t, debug.LogLevelWarn, cfg.LogLevel())
}

func TestLoadFileThenFlags(t *testing.T) {
	path := writeConfig(t, `
log:
  level: debug
  format: json
output:
  format: yaml
scan:
  workers: 8
  timeout: 5s
  include: "Fab*"
`)

	t.Run("file only", func(t *testing.T) {
		cfg, err := Load(path, newFlags(t))
		require.NoError(t, err)
		assert.Equal(t, "debug", cfg.Log.Level)
		assert.Equal(t, "json", cfg.Log.Format)
		assert.Equal(t, "yaml", cfg.Output.Format)
		assert.Equal(t, 8, cfg.Scan.Workers)
		assert.Equal(t, 5*time.Second, cfg.Scan.Timeout)
		assert.Equal(t, "Fab*", cfg.Scan.Include)
		assert.True(t, cfg.QuietPluginOutput)
	})

	t.Run("flags override file", func(t *testing.T) {
		cfg, err := Load(path, newFlags(t, "--log-level=error", "--workers=2", "--pretty", "--quiet-plugin-output=false"))
		require.NoError(t, err)
		assert.Equal(t, "error", cfg.Log.Level)
		assert.Equal(t, 2, cfg.Scan.Workers)
		assert.True(t, cfg.Output.Pretty)
		assert.False(t, cfg.QuietPluginOutput)
		assert.Equal(t, "yaml", cfg.Output.Format)
	})
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), nil)
	require.Error(t, err)
	assert.Equal(t, vst3.ErrCodeConfigInvalid, vst3.CodeOf(err))
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		cfg, err := Load("", nil)
		require.NoError(t, err)
		return *cfg
	}

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"log level", func(c *Config) { c.Log.Level = "loud" }},
		{"log format", func(c *Config) { c.Log.Format = "xml" }},
		{"output format", func(c *Config) { c.Output.Format = "toml" }},
		{"zero workers", func(c *Config) { c.Scan.Workers = 0 }},
		{"too many workers", func(c *Config) { c.Scan.Workers = MaxWorkers + 1 }},
		{"timeout", func(c *Config) { c.Scan.Timeout = 0 }},
		{"include", func(c *Config) { c.Scan.Include = "[" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, vst3.HasCode(err, vst3.ErrCodeConfigInvalid))
		})
	}
}

func TestIncludeMatcher(t *testing.T) {
	cfg, err := Load("", newFlags(t, "--include=*Reverb*.vst3"))
	require.NoError(t, err)

	g, err := cfg.IncludeMatcher()
	require.NoError(t, err)
	assert.True(t, g.Match("Big Reverb.vst3"))
	assert.False(t, g.Match("Compressor.vst3"))
}
