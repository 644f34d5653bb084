package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withMemFs(t *testing.T) afero.Fs {
	t.Helper()
	old := Fs
	Fs = afero.NewMemMapFs()
	t.Cleanup(func() { Fs = old })
	return Fs
}

func TestLoadDefaults(t *testing.T) {
	withMemFs(t)
	cfg, path, err := Load("")
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.Equal(t, "sqlite3", cfg.Database.Driver)
	assert.Equal(t, "sequential", cfg.Keys)
	assert.Empty(t, cfg.Options())
	_, enabled := cfg.SoftDeleteColumn()
	assert.False(t, enabled)
}

func TestLoadDiscoversFile(t *testing.T) {
	fs := withMemFs(t)
	cwd, err := os.Getwd()
	require.NoError(t, err)
	// found in a parent directory
	path := filepath.Join(filepath.Dir(cwd), "qb.yaml")
	require.NoError(t, afero.WriteFile(fs, path, []byte(`
database:
  driver: postgres
  host: db.local
  name: app
  user: app
keys: random
soft_delete:
  enabled: true
audit: true
`), 0o644))

	cfg, got, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, path, got)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.True(t, cfg.Audit)
	assert.Len(t, cfg.Options(), 1)
	col, enabled := cfg.SoftDeleteColumn()
	assert.True(t, enabled)
	assert.Equal(t, "deleted_at", col)

	dsn, err := cfg.DSN()
	require.NoError(t, err)
	assert.Equal(t, "postgres://app@db.local:5432/app", dsn)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	fs := withMemFs(t)
	require.NoError(t, afero.WriteFile(fs, "/etc/qb.yaml", []byte("debug: false\nkeys: random\n"), 0o644))
	t.Setenv("QB_DEBUG", "true")
	t.Setenv("QB_DATABASE_DRIVER", "mysql")

	cfg, _, err := Load("/etc/qb.yaml")
	require.NoError(t, err)
	assert.True(t, cfg.Debug)
	assert.Equal(t, "random", cfg.Keys)
	assert.Equal(t, "mysql", cfg.Database.Driver)
}

func TestLoadDotEnv(t *testing.T) {
	fs := withMemFs(t)
	require.NoError(t, afero.WriteFile(fs, ".env", []byte("QB_SOFT_DELETE_COLUMN=removed_at\nQB_SOFT_DELETE_ENABLED=true\n"), 0o644))
	// variables already set win over .env
	t.Setenv("QB_SOFT_DELETE_COLUMN", "gone_at")
	t.Setenv("QB_SOFT_DELETE_ENABLED", "")
	os.Unsetenv("QB_SOFT_DELETE_ENABLED")

	cfg, _, err := Load("")
	require.NoError(t, err)
	col, enabled := cfg.SoftDeleteColumn()
	assert.True(t, enabled)
	assert.Equal(t, "gone_at", col)
}

func TestLoadErrors(t *testing.T) {
	fs := withMemFs(t)
	_, _, err := Load("/missing.yaml")
	assert.Error(t, err)

	require.NoError(t, afero.WriteFile(fs, "/bad.yaml", []byte("keys: uuid\n"), 0o644))
	_, _, err = Load("/bad.yaml")
	assert.ErrorContains(t, err, "keys")

	require.NoError(t, afero.WriteFile(fs, "/driver.yaml", []byte("database:\n  driver: oracle\n"), 0o644))
	_, _, err = Load("/driver.yaml")
	assert.ErrorContains(t, err, "database.driver")
}

func TestDSN(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{
		Driver:   "mysql",
		Host:     "127.0.0.1",
		Name:     "app",
		User:     "root",
		Password: "secret",
		Charset:  "utf8mb4",
	}}
	dsn, err := cfg.DSN()
	require.NoError(t, err)
	m, err := mysql.ParseDSN(dsn)
	require.NoError(t, err)
	assert.Equal(t, "root", m.User)
	assert.Equal(t, "secret", m.Passwd)
	assert.Equal(t, "127.0.0.1:3306", m.Addr)
	assert.Equal(t, "app", m.DBName)
	assert.True(t, m.ParseTime)

	cfg = &Config{Database: DatabaseConfig{Driver: "postgres", Host: "localhost", Port: 6432, Name: "app", User: "u", Password: "p", SSLMode: "disable"}}
	dsn, err = cfg.DSN()
	require.NoError(t, err)
	assert.Equal(t, "postgres://u:p@localhost:6432/app?sslmode=disable", dsn)

	cfg = &Config{Database: DatabaseConfig{Driver: "sqlite3", Name: "app.db"}}
	dsn, err = cfg.DSN()
	require.NoError(t, err)
	assert.Equal(t, "app.db", dsn)

	cfg = &Config{Database: DatabaseConfig{Driver: "sqlite3", DSN: "file::memory:?cache=shared"}}
	dsn, err = cfg.DSN()
	require.NoError(t, err)
	assert.Equal(t, "file::memory:?cache=shared", dsn)

	cfg = &Config{Database: DatabaseConfig{Driver: "mysql", Name: "app"}}
	_, err = cfg.DSN()
	assert.Error(t, err)
}
