package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, int64(20000), cfg.Numbering.NotaFloor)
	assert.Equal(t, "./uploads", cfg.Storage.UploadsDir)
	assert.False(t, cfg.Redis.Enabled())
	assert.False(t, cfg.DB.UsesMemory())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("NUMBERING_NOTA_FLOOR", "30500")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("PUBLIC_BASE_URL", "https://api.rasiva.cl/")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.DB.UsesMemory())
	assert.Equal(t, int64(30500), cfg.Numbering.NotaFloor)
	assert.Equal(t, "0.0.0.0:9090", cfg.HTTP.Addr())
	assert.Equal(t, "https://api.rasiva.cl", cfg.HTTP.PublicBaseURL)
	assert.True(t, cfg.Redis.Enabled())
}

func TestLoad_UnknownDriver(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "mongo")

	_, err := Load()
	assert.Error(t, err)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:word", DBName: "rasiva", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aword@db:5432/rasiva?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://u:p@h/x"
	assert.Equal(t, "postgres://u:p@h/x", c.ConnectionString())
}
