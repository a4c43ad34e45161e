package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.toml"))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "varboard", cfg.App.Name)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, StoreCookie, cfg.Dashboard.CredentialStore)
	assert.Equal(t, 43200, cfg.Auth.JWTExpireMinute)
	assert.False(t, cfg.RabbitMQ.Enabled)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTPAddr())
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[server]
port = 9090

[database]
driver = "mysql"
host = "db.internal"
db = "vars"

[dashboard]
credential_store = "redis"
profile = "work"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("SERVER_PORT", "9191")
	t.Setenv("VARBOARD_PROFILE", "ops")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9191, cfg.Server.Port)
	assert.Equal(t, DriverMySQL, cfg.Database.Driver)
	assert.Equal(t, StoreRedis, cfg.Dashboard.CredentialStore)
	assert.Equal(t, "ops", cfg.Dashboard.Profile)
	assert.Equal(t, "root:@tcp(db.internal:3306)/vars?parseTime=true&loc=Local&charset=utf8mb4", cfg.MySQLDSN())
}

func TestLoad_RejectsUnknownStore(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.toml"))
	t.Setenv("VARBOARD_CREDENTIAL_STORE", "keychain")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "keychain")
}

func TestValidate_RabbitMQNeedsURL(t *testing.T) {
	cfg := defaultConfig()
	cfg.RabbitMQ.Enabled = true
	cfg.RabbitMQ.URL = ""

	assert.Error(t, cfg.Validate())
}

func TestGetEnvAsBool(t *testing.T) {
	t.Setenv("FLAG_ON", "true")
	t.Setenv("FLAG_BAD", "maybe")

	assert.True(t, getEnvAsBool("FLAG_ON", false))
	assert.True(t, getEnvAsBool("FLAG_BAD", true))
	assert.False(t, getEnvAsBool("FLAG_UNSET", false))
}
