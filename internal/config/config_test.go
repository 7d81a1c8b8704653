package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "admins.txt", cfg.Storage.AdminFile)
	assert.Equal(t, "staff.txt", cfg.Storage.StaffFile)
	assert.Equal(t, "users.txt", cfg.Storage.CustomerFile)
	assert.Equal(t, "admin", cfg.Bootstrap.AdminUsername)
	assert.Equal(t, "admin123", cfg.Bootstrap.AdminPassword)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
log:
  level: debug
  format: json
storage:
  data_dir: /var/lib/hoteldesk
auth:
  password_scheme: bcrypt
  bcrypt_cost: 10
metrics:
  enabled: true
  port: "9100"
`)

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "/var/lib/hoteldesk", cfg.Storage.DataDir)
	assert.Equal(t, "users.txt", cfg.Storage.CustomerFile, "unset keys keep defaults")
	assert.Equal(t, "bcrypt", cfg.Auth.PasswordScheme)
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "9100", cfg.Metrics.Port)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "storage:\n  data_dir: from-file\n")
	t.Setenv("HOTELDESK_STORAGE__DATA_DIR", "from-env")
	t.Setenv("HOTELDESK_AUTH__PASSWORD_SCHEME", "bcrypt")

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Storage.DataDir)
	assert.Equal(t, "bcrypt", cfg.Auth.PasswordScheme)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown log level", "log:\n  level: verbose\n"},
		{"unknown scheme", "auth:\n  password_scheme: md5\n"},
		{"comma in admin username", "bootstrap:\n  admin_username: \"ad,min\"\n"},
		{"metrics without port", "metrics:\n  enabled: true\n  port: \"\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))

	assert.Error(t, err)
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "storage.data_dir", envKey("HOTELDESK_STORAGE__DATA_DIR"))
	assert.Equal(t, "log.level", envKey("HOTELDESK_LOG__LEVEL"))
}
