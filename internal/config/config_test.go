package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, DefaultMemoryLimit, cfg.MemoryLimitBytes)
}

func TestLoadKeepsDefaultsForMissingFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "edge.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"log_level":"debug","output_format":"webp"}`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "webp", cfg.OutputFormat)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, DefaultMemoryLimit, cfg.MemoryLimitBytes)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorContains(t, err, "config: read")

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{`), 0o644))
	_, err = Load(path)
	assert.ErrorContains(t, err, "config: parse")
}

func TestResolveFlagsOverride(t *testing.T) {
	cfg := Default()
	cfg.Resolve(Flags{LogFormat: "console", MemoryLimit: 1024, OutputFormat: "TIFF"})

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)
	assert.EqualValues(t, 1024, cfg.MemoryLimitBytes)
	assert.Equal(t, "tiff", cfg.OutputFormat)
	assert.NoError(t, cfg.Validate())
}

func TestValidateRejects(t *testing.T) {
	tests := map[string]func(*Config){
		"level":  func(c *Config) { c.LogLevel = "loud" },
		"format": func(c *Config) { c.LogFormat = "xml" },
		"memory": func(c *Config) { c.MemoryLimitBytes = 0 },
		"output": func(c *Config) { c.OutputFormat = "gif" },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
