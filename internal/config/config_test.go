package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"WINUGLY_CONFIG", "GEMINI_API_KEY", "GEMINI_BASE_URL", "GEMINI_MODEL", "GEMINI_TIMEOUT", "REPORT_STYLE",
		"PORT", "MONGO_URI", "MONGO_DB", "REDIS_URI", "JWT_SECRET", "MAX_INPUT_CHARS",
		"LOG_LEVEL", "LOG_DEV", "CORS_ALLOWED_ORIGINS", "CORS_ALLOWED_METHODS", "CORS_ALLOWED_HEADERS",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "gemini-2.5-flash", cfg.AI.Model)
	assert.Equal(t, 60*time.Second, cfg.AI.Timeout)
	assert.Equal(t, "ko", cfg.AI.Locale)
	assert.Equal(t, 2000, cfg.UI.MaxInputChars)
	assert.True(t, cfg.UI.Export)
	assert.Equal(t, "winugly_session", cfg.Session.CookieName)
	assert.False(t, cfg.AI.IsEnabled())
}

func TestValidateMissingAPIKey(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.ErrorIs(t, cfg.Validate(), ErrMissingAPIKey)

	t.Setenv("GEMINI_API_KEY", "test-key")
	cfg, err = Load("")
	require.NoError(t, err)
	assert.NoError(t, cfg.Validate())
}

func TestEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEMINI_API_KEY", "k")
	t.Setenv("GEMINI_MODEL", "gemini-2.0-flash")
	t.Setenv("GEMINI_TIMEOUT", "15s")
	t.Setenv("PORT", "9090")
	t.Setenv("REDIS_URI", "redis://cache:6379")
	t.Setenv("MAX_INPUT_CHARS", "500")
	t.Setenv("LOG_DEV", "true")
	t.Setenv("REPORT_STYLE", "en")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "gemini-2.0-flash", cfg.AI.Model)
	assert.Equal(t, 15*time.Second, cfg.AI.Timeout)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "cache:6379", cfg.Storage.RedisAddr)
	assert.Equal(t, 500, cfg.UI.MaxInputChars)
	assert.True(t, cfg.Log.Development)
	assert.Equal(t, "en", cfg.AI.Locale)
}

func TestEnvIgnoresMalformedNumbers(t *testing.T) {
	clearEnv(t)
	t.Setenv("MAX_INPUT_CHARS", "lots")
	t.Setenv("GEMINI_TIMEOUT", "soon")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 2000, cfg.UI.MaxInputChars)
	assert.Equal(t, 60*time.Second, cfg.AI.Timeout)
}

func TestLoadYAMLFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "winugly.yaml")
	content := `
server:
  port: "7000"
ai:
  model: gemini-2.5-pro
  timeout: 45s
ui:
  max_input_chars: 1200
  export: false
log:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("PORT", "7001")

	cfg, err := Load(path)
	require.NoError(t, err)

	// Environment wins over the file
	assert.Equal(t, "7001", cfg.Server.Port)
	assert.Equal(t, "gemini-2.5-pro", cfg.AI.Model)
	assert.Equal(t, 45*time.Second, cfg.AI.Timeout)
	assert.Equal(t, 1200, cfg.UI.MaxInputChars)
	assert.False(t, cfg.UI.Export)
	assert.Equal(t, "debug", cfg.Log.Level)
	// Untouched sections keep their defaults
	assert.Equal(t, "winugly", cfg.Storage.MongoDatabase)
}

func TestLoadMissingFile(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadGeneratesSessionSecret(t *testing.T) {
	clearEnv(t)

	a, err := Load("")
	require.NoError(t, err)
	b, err := Load("")
	require.NoError(t, err)

	assert.True(t, a.Session.EphemeralSecret)
	assert.Len(t, a.Session.JWTSecret, 64)
	assert.NotEqual(t, a.Session.JWTSecret, b.Session.JWTSecret)

	t.Setenv("JWT_SECRET", "a-long-enough-operator-secret")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.False(t, cfg.Session.EphemeralSecret)
	assert.Equal(t, "a-long-enough-operator-secret", cfg.Session.JWTSecret)
}

func TestValidateRejectsWeakSecret(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEMINI_API_KEY", "k")
	t.Setenv("JWT_SECRET", "short")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.ErrorIs(t, cfg.Validate(), ErrWeakJWTSecret)
}

func TestValidateRejectsBadLimits(t *testing.T) {
	cfg := Default()
	cfg.AI.APIKey = "k"
	cfg.UI.MaxInputChars = 0
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.AI.APIKey = "k"
	cfg.AI.Timeout = 0
	assert.Error(t, cfg.Validate())
}
