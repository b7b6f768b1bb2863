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

	assert.Equal(t, DriverBadger, cfg.Storage.Driver)
	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, 12*time.Hour, cfg.Auth.TokenTTL)
	assert.True(t, cfg.Storage.SeedOnEmpty)
	assert.False(t, cfg.Auth.Enabled)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("LUMBERTRACE_STORAGE_DRIVER", "postgres")
	t.Setenv("LUMBERTRACE_STORAGE_POSTGRES_DSN", "postgres://mill@localhost/trace")
	t.Setenv("LUMBERTRACE_APP_PORT", "9090")
	t.Setenv("LUMBERTRACE_STORAGE_BADGER_GC_INTERVAL", "1m")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, DriverPostgres, cfg.Storage.Driver)
	assert.Equal(t, "postgres://mill@localhost/trace", cfg.Storage.Postgres.DSN)
	assert.Equal(t, 9090, cfg.App.Port)
	assert.Equal(t, time.Minute, cfg.Storage.Badger.GCInterval)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lumbertrace.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
app:
  env: production
storage:
  badger:
    in_memory: true
http:
  cors:
    allowed_origins: ["https://mill.example"]
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.False(t, cfg.App.IsDevelopment())
	assert.True(t, cfg.Storage.Badger.InMemory)
	assert.Equal(t, []string{"https://mill.example"}, cfg.HTTP.CORS.AllowedOrigins)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			App:     AppConfig{Port: 8080},
			Storage: StorageConfig{Driver: DriverBadger, Badger: BadgerConfig{Path: "data"}},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{
			name:    "unknown driver",
			mutate:  func(c *Config) { c.Storage.Driver = "sqlite" },
			wantErr: `unknown storage.driver "sqlite"`,
		},
		{
			name:    "postgres without dsn",
			mutate:  func(c *Config) { c.Storage.Driver = DriverPostgres },
			wantErr: "storage.postgres.dsn",
		},
		{
			name:    "auth without secret",
			mutate:  func(c *Config) { c.Auth = AuthConfig{Enabled: true, PasswordHash: "x"} },
			wantErr: "auth.jwt_secret",
		},
		{
			name:    "bad port",
			mutate:  func(c *Config) { c.App.Port = 0 },
			wantErr: "app.port",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
