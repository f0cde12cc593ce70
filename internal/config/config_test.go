package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kosis-cpi/pkg/kosisapi"
)

// clearEnv blanks every variable LoadFromEnv reads so the host environment can't leak in
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvAPIKey, EnvEndpoint, EnvTimeout, EnvOutput, EnvConfig, EnvLogLevel, EnvLogFormat} {
		t.Setenv(k, "")
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, kosisapi.DefaultEndpoint, cfg.Endpoint)
	assert.Equal(t, kosisapi.DefaultParams(), cfg.Params)
	assert.Equal(t, "table", cfg.Output)
	assert.Zero(t, cfg.Timeout)
	assert.Equal(t, slog.LevelWarn, cfg.SlogLevel())
	assert.False(t, cfg.JSONLogs())
	require.Len(t, cfg.Warnings, 1)
	assert.Contains(t, cfg.Warnings[0], EnvAPIKey)
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvAPIKey, "env-key")
	t.Setenv(EnvEndpoint, "http://localhost:1234/data")
	t.Setenv(EnvTimeout, "45")
	t.Setenv(EnvOutput, "json")
	t.Setenv(EnvLogLevel, "DEBUG")
	t.Setenv(EnvLogFormat, "json")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "env-key", cfg.Params.APIKey)
	assert.Equal(t, "http://localhost:1234/data", cfg.Endpoint)
	assert.Equal(t, 45*time.Second, cfg.Timeout)
	assert.Equal(t, "json", cfg.Output)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
	assert.True(t, cfg.JSONLogs())
	assert.Empty(t, cfg.Warnings)
}

func TestLoad_InvalidEnvTimeout(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvTimeout, "soon")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvTimeout)
}

func TestLoad_FileOverlaysOnlyGivenKeys(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "kosis.yaml", `
endpoint: http://mirror.local/data
api-key: file-key
timeout: 2m
output: csv
query:
  newEstPrdCnt: "12"
  objL1: "ALL"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://mirror.local/data", cfg.Endpoint)
	assert.Equal(t, "file-key", cfg.Params.APIKey)
	assert.Equal(t, 2*time.Minute, cfg.Timeout)
	assert.Equal(t, "csv", cfg.Output)
	assert.Equal(t, "12", cfg.Params.NewEstPrdCnt)
	assert.Equal(t, "ALL", cfg.Params.ObjL1)

	// untouched query params keep their defaults
	def := kosisapi.DefaultParams()
	assert.Equal(t, def.TblID, cfg.Params.TblID)
	assert.Equal(t, def.ItmID, cfg.Params.ItmID)
	assert.Equal(t, def.Method, cfg.Params.Method)
}

func TestLoad_EnvBeatsFile(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvAPIKey, "env-key")
	path := writeFile(t, "kosis.yaml", "api-key: file-key\noutput: csv\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "env-key", cfg.Params.APIKey)
	assert.Equal(t, "csv", cfg.Output)
}

func TestLoad_FileErrors(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")

	_, err = Load(writeFile(t, "bad.yaml", "query: [unclosed"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")

	_, err = Load(writeFile(t, "timeout.yaml", "timeout: whenever\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timeout")
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, ".env", "KOSIS_API_KEY=dotenv-key\nKOSIS_OUTPUT=json\n")
	t.Setenv(EnvOutput, "csv")
	// godotenv skips keys that exist even when empty; t.Setenv restores the key afterwards
	t.Setenv(EnvAPIKey, "")
	require.NoError(t, os.Unsetenv(EnvAPIKey))

	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "dotenv-key", os.Getenv(EnvAPIKey))
	assert.Equal(t, "csv", os.Getenv(EnvOutput), "existing variables win")
}

func TestLoadDotEnv_MissingFileIgnored(t *testing.T) {
	assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), ".env")))
}

func TestSlogLevel(t *testing.T) {
	for in, want := range map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"error":   slog.LevelError,
		"bananas": slog.LevelWarn,
	} {
		cfg := &Config{LogLevel: in}
		assert.Equal(t, want, cfg.SlogLevel(), in)
	}
}
