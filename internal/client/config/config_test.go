package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withArgs(t *testing.T, args ...string) {
	t.Helper()
	orig := os.Args
	os.Args = append([]string{"storepulse"}, args...)
	t.Cleanup(func() { os.Args = orig })
}

func TestLoadDefaults(t *testing.T) {
	var cfg Config
	cfg.LoadDefaults()

	assert.Equal(t, "http://localhost:8000/api/v1", cfg.APIBaseURL)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
	assert.NotEmpty(t, cfg.DataDir)
	assert.False(t, cfg.Verbose)
}

func TestLoadConfig_FlagsOverrideDefaults(t *testing.T) {
	withArgs(t, "-a", "https://api.example.com/api/v1", "-t", "30", "-v")

	cfg := LoadConfig()

	assert.Equal(t, "https://api.example.com/api/v1", cfg.APIBaseURL)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_JsonFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "conf.json")
	require.NoError(t, os.WriteFile(file, []byte(`{
		"api_base_url": "https://json.example.com/api/v1",
		"data_dir": "/tmp/sp",
		"request_timeout": "20s"
	}`), 0o600))

	withArgs(t, "-c", file)

	cfg := LoadConfig()

	assert.Equal(t, "https://json.example.com/api/v1", cfg.APIBaseURL)
	assert.Equal(t, "/tmp/sp", cfg.DataDir)
	assert.Equal(t, 20*time.Second, cfg.RequestTimeout)
}

func TestLoadConfig_FlagsBeatJson(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "conf.json")
	require.NoError(t, os.WriteFile(file, []byte(`{"api_base_url": "https://json.example.com"}`), 0o600))

	withArgs(t, "-c", file, "-a", "https://flag.example.com")

	cfg := LoadConfig()
	assert.Equal(t, "https://flag.example.com", cfg.APIBaseURL)
}

func TestLoadConfig_PartialJsonKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "conf.json")
	require.NoError(t, os.WriteFile(file, []byte(`{"data_dir": "/tmp/sp"}`), 0o600))

	withArgs(t, "-c", file)

	cfg := LoadConfig()
	assert.Equal(t, "http://localhost:8000/api/v1", cfg.APIBaseURL)
	assert.Equal(t, "/tmp/sp", cfg.DataDir)
}

func TestDatabasePath(t *testing.T) {
	cfg := Config{DataDir: "/tmp/sp"}
	assert.Equal(t, filepath.Join("/tmp/sp", "storepulse.db"), cfg.DatabasePath())
}
