package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:5000", cfg.Server.Addr)
	assert.Equal(t, "http://localhost:5000", cfg.Server.BaseURL)
	assert.Equal(t, "data/msgboard.db", cfg.Database.Path)
	assert.Equal(t, 24, cfg.Session.TTLHours)
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
	assert.Equal(t, "admin", cfg.Admin.Name)
	assert.Equal(t, "465", cfg.SMTP.Port)
}

func TestLoad_EnvOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("MSGBOARD_SERVER_ADDR", "127.0.0.1:8080")
	t.Setenv("MSGBOARD_SESSION_SECRET", "s3cret")
	t.Setenv("MSGBOARD_SESSION_TTLHOURS", "72")
	t.Setenv("MSGBOARD_ADMIN_NAME", "root")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8080", cfg.Server.Addr)
	assert.Equal(t, "s3cret", cfg.Session.Secret)
	assert.Equal(t, 72, cfg.Session.TTLHours)
	assert.Equal(t, "root", cfg.Admin.Name)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	content := "# comment\nMSGBOARD_TEST_PLAIN=value\nMSGBOARD_TEST_QUOTED=\"quoted value\"\n\nnot a pair\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0o600))

	t.Setenv("MSGBOARD_TEST_PLAIN", "")
	os.Unsetenv("MSGBOARD_TEST_PLAIN")
	t.Setenv("MSGBOARD_TEST_QUOTED", "")
	os.Unsetenv("MSGBOARD_TEST_QUOTED")

	loadDotEnv()

	assert.Equal(t, "value", os.Getenv("MSGBOARD_TEST_PLAIN"))
	assert.Equal(t, "quoted value", os.Getenv("MSGBOARD_TEST_QUOTED"))
}

func TestLoadDotEnv_DoesNotClobberExisting(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("MSGBOARD_TEST_KEPT=from-file\n"), 0o600))
	t.Setenv("MSGBOARD_TEST_KEPT", "from-env")

	loadDotEnv()

	assert.Equal(t, "from-env", os.Getenv("MSGBOARD_TEST_KEPT"))
}
