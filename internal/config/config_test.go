package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "xgboost_model.json", cfg.Model.Path)
	assert.Equal(t, "Comparing_csv.csv", cfg.Reference.Path)
	assert.Equal(t, "positional", cfg.Reference.MergeStrategy)
	assert.Equal(t, int64(32<<20), cfg.Upload.MaxBytes)
	assert.Equal(t, SessionStoreMemory, cfg.Session.Store)
	assert.Equal(t, 24*time.Hour, cfg.Session.TTL)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("MERGE_STRATEGY", "depth")
	t.Setenv("SESSION_TTL", "15m")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "depth", cfg.Reference.MergeStrategy)
	assert.Equal(t, 15*time.Minute, cfg.Session.TTL)
}

func TestLoad_EnvFile(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(p, []byte("MODEL_PATH=/models/perm.json\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("MODEL_PATH") })

	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "/models/perm.json", cfg.Model.Path)
}

func TestLoad_MissingEnvFileIgnored(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.env"))
	assert.NoError(t, err)
}

func TestLoad_UnknownSessionStore(t *testing.T) {
	t.Setenv("SESSION_STORE", "redis")

	_, err := Load("")
	assert.Error(t, err)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{User: "u", Password: "p", Host: "db", Port: 5433, Name: "perm", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p@db:5433/perm?sslmode=disable", d.DSN())
}
