package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"realtime-edge/internal/logger"
)

// DefaultMemoryLimit bounds the bytes a single call may hold in Mats and output.
const DefaultMemoryLimit int64 = 2 * 1024 * 1024 * 1024

// Config holds the ambient settings. Algorithm parameters are not configurable.
type Config struct {
	LogLevel         string `json:"log_level"`
	LogFormat        string `json:"log_format"`
	MemoryLimitBytes int64  `json:"memory_limit_bytes"`
	OutputFormat     string `json:"output_format"`
}

// Flags carries command line overrides. Zero values leave the config untouched.
type Flags struct {
	LogLevel     string
	LogFormat    string
	MemoryLimit  int64
	OutputFormat string
}

func Default() Config {
	return Config{
		LogLevel:         "info",
		LogFormat:        "json",
		MemoryLimitBytes: DefaultMemoryLimit,
		OutputFormat:     "png",
	}
}

// Load reads a JSON config file on top of Default.
// Fields not set in the file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Resolve applies CLI flags, which take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	if flags.LogLevel != "" {
		c.LogLevel = flags.LogLevel
	}
	if flags.LogFormat != "" {
		c.LogFormat = flags.LogFormat
	}
	if flags.MemoryLimit > 0 {
		c.MemoryLimitBytes = flags.MemoryLimit
	}
	if flags.OutputFormat != "" {
		c.OutputFormat = strings.ToLower(flags.OutputFormat)
	}
}

func (c Config) Validate() error {
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	switch c.LogFormat {
	case "json", "console":
	default:
		return fmt.Errorf("config: unknown log format %q", c.LogFormat)
	}

	if c.MemoryLimitBytes <= 0 {
		return fmt.Errorf("config: memory limit must be positive, got %d", c.MemoryLimitBytes)
	}

	switch c.OutputFormat {
	case "png", "webp", "bmp", "tiff":
	default:
		return fmt.Errorf("config: unknown output format %q", c.OutputFormat)
	}

	return nil
}
