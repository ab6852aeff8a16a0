package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.True(t, cfg.StrictStatusTransitions)
	assert.Equal(t, "/uploads", cfg.UploadBaseURL)
	assert.Equal(t, 20, cfg.LoginRatePerMinute)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("JWT_TTL", "2h")
	t.Setenv("ENFORCE_BOOKING_OVERLAP", "true")
	t.Setenv("STRICT_STATUS_TRANSITIONS", "false")
	t.Setenv("S3_BUCKET", "salon-media")
	t.Setenv("SALON_TIMEZONE", "America/Sao_Paulo")
	t.Setenv("CORS_ORIGINS", "https://a.test, https://b.test,")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr())
	assert.Equal(t, 2*time.Hour, cfg.JWTTTL)
	assert.True(t, cfg.EnforceBookingOverlap)
	assert.False(t, cfg.StrictStatusTransitions)
	assert.True(t, cfg.S3.Enabled())
	assert.Equal(t, "salon-media", cfg.S3.Bucket)
	assert.Equal(t, "America/Sao_Paulo", cfg.Timezone)
	assert.Equal(t, []string{"https://a.test", "https://b.test"}, cfg.AllowedOrigins())
}

func TestLoadYAMLThenEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "salon.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server_port: \"7000\"\nlog_level: debug\n"), 0o600))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "7000", cfg.ServerPort)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoadMissingYAMLFails(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "nope.yaml"))
	_, err := Load()
	assert.Error(t, err)
}
