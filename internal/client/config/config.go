package config

import (
	"os"
	"path/filepath"
	"time"
)

// Config holds runtime settings for the storepulse CLI.
//
// Fields:
//   - APIBaseURL: base address of the backend REST API, path prefix included.
//   - DataDir: where the local sqlite database lives.
//   - RequestTimeout: per-request HTTP timeout.
//   - Verbose: enables debug logging.
type Config struct {
	APIBaseURL     string
	DataDir        string
	RequestTimeout time.Duration
	Verbose        bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:8000/api/v1"
	c.DataDir = defaultDataDir()
	c.RequestTimeout = 15 * time.Second
}

func defaultDataDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".storepulse")
	}
	return "."
}

// DatabasePath is the sqlite file inside DataDir.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "storepulse.db")
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
