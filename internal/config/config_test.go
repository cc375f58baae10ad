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
	t.Setenv("JWT_SECRET", "secret")
	for _, k := range []string{"DB_PORT", "DB_MAX_CONNS", "DB_AUTO_MIGRATE", "JWT_EXPIRATION_HOURS", "APP_ENV", "SERVER_PORT"} {
		unsetEnv(t, k)
	}

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.ServerPort)
	assert.Equal(t, 5432, cfg.DBPort)
	assert.Equal(t, 10, cfg.DBMaxConns)
	assert.True(t, cfg.DBAutoMigrate)
	assert.Equal(t, 8*time.Hour, cfg.JWTExpirationHours)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoadFromFile(t *testing.T) {
	unsetEnv(t, "JWT_SECRET")
	unsetEnv(t, "APP_ENV")
	unsetEnv(t, "DB_NAME")

	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("JWT_SECRET=from-file\nAPP_ENV=production\nDB_NAME=parqueo_test\n"), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("JWT_SECRET")
		os.Unsetenv("APP_ENV")
		os.Unsetenv("DB_NAME")
	})

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.JWTSecret)
	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, "parqueo_test", cfg.DBName)
}

func TestLoadRequiresSecret(t *testing.T) {
	unsetEnv(t, "JWT_SECRET")
	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}

func TestLoadRejectsBadPort(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("DB_PORT", "not-a-number")
	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}

func TestDatabaseURL(t *testing.T) {
	cfg := &Config{DBHost: "db", DBPort: 5433, DBUser: "app", DBPassword: "p@ss", DBName: "parqueo", DBSslMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss@db:5433/parqueo?sslmode=disable", cfg.DatabaseURL())
}

// unsetEnv clears key for the duration of the test.
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	os.Unsetenv(key)
}
