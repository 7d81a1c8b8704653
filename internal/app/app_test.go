package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bissquit/hotel-desk/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Storage.DataDir = filepath.Join(t.TempDir(), "data")
	cfg.Auth.LoginRate = 0
	return cfg
}

func TestRun_BootstrapsAdminOnce(t *testing.T) {
	cfg := testConfig(t)

	for range 2 {
		var out, logs bytes.Buffer
		a, err := New(cfg, strings.NewReader("3\n"), &out, &logs)
		require.NoError(t, err)

		require.NoError(t, a.Run(context.Background()))
		require.NoError(t, a.Shutdown(context.Background()))
		assert.Contains(t, out.String(), "Goodbye!")
	}

	b, err := os.ReadFile(filepath.Join(cfg.Storage.DataDir, "admins.txt"))
	require.NoError(t, err)
	assert.Equal(t, "admin,admin123\n", string(b))
}

func TestRun_AdminLogin(t *testing.T) {
	cfg := testConfig(t)
	cfg.Log.Format = "json"

	var out, logs bytes.Buffer
	a, err := New(cfg, strings.NewReader("1\nadmin\nadmin123\n6\n3\n"), &out, &logs)
	require.NoError(t, err)
	require.NoError(t, a.Run(context.Background()))

	assert.Contains(t, out.String(), "=== Admin Menu ===")
	assert.Contains(t, logs.String(), `"msg":"login succeeded"`)
	assert.NotContains(t, logs.String(), "admin123")
}

func TestNew_InvalidScheme(t *testing.T) {
	cfg := testConfig(t)
	cfg.Auth.PasswordScheme = "md5"

	_, err := New(cfg, strings.NewReader(""), &bytes.Buffer{}, &bytes.Buffer{})

	assert.Error(t, err)
}
