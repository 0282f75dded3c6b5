package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "http://127.0.0.1:8000", cfg.ServiceURL)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 10, cfg.PageSize)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := writeTempFile(t, dir, "custom.yaml", `
service_url: http://forecast:9000
page_size: 25
seed: 7
request_timeout: 30s
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://forecast:9000", cfg.ServiceURL)
	assert.Equal(t, 25, cfg.PageSize)
	assert.Equal(t, int64(7), cfg.Seed)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	// untouched fields keep their defaults
	assert.Equal(t, ":8080", cfg.Addr)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	invalid := writeTempFile(t, dir, "invalid.yaml", "page_size: [")
	_, err = Load(invalid)
	assert.Error(t, err)
}

func TestLoad_DefaultFiles(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	writeTempFile(t, dir, "forecast.yml", "addr: :9090\n")
	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Addr)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("FORECAST_SERVICE_URL", "https://predict.example.com")
	t.Setenv("FORECAST_PAGE_SIZE", "50")
	t.Setenv("FORECAST_SEED", "99")
	t.Setenv("FORECAST_LOG_FORMAT", "json")

	cfg := DefaultConfig()
	require.NoError(t, ApplyEnv(cfg))
	assert.Equal(t, "https://predict.example.com", cfg.ServiceURL)
	assert.Equal(t, 50, cfg.PageSize)
	assert.Equal(t, int64(99), cfg.Seed)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestApplyEnv_Invalid(t *testing.T) {
	t.Setenv("FORECAST_PAGE_SIZE", "ten")
	assert.Error(t, ApplyEnv(DefaultConfig()))
}

func TestLoadEnv_DotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	writeTempFile(t, dir, ".env", "FORECAST_ADDR=:7070\n")
	// registers cleanup for the variable godotenv sets
	t.Setenv("FORECAST_ADDR", "")
	require.NoError(t, os.Unsetenv("FORECAST_ADDR"))

	cfg := DefaultConfig()
	require.NoError(t, LoadEnv(cfg))
	assert.Equal(t, ":7070", cfg.Addr)
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PageSize = 7
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.LogFormat = "xml"
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.ServiceURL = " "
	assert.Error(t, cfg.Validate())
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(old) })
}
