package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoadFrom_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := LoadFrom("")

	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, DriverMemory, cfg.Store.Driver)
	assert.True(t, cfg.Store.SeedDemo)
	assert.Equal(t, 15*time.Minute, cfg.Auth.TokenTTL)
	assert.Equal(t, 20, cfg.IMDb.Count)
	assert.Zero(t, cfg.IMDb.MaxRetries)
	assert.Equal(t, 8*time.Second, cfg.IMDb.FetchDeadline)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.Server.CORSAllowedOrigins)
}

func TestLoadFrom_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  addr: ":9000"
  cors_allowed_origins:
    - https://a.example.com
auth:
  jwt_secret: from-file
  token_ttl: 30m
imdb:
  count: 5
log:
  format: console
`), 0o600))

	unsetEnv(t, "JWT_SECRET", "TOKEN_TTL", "CORS_ALLOWED_ORIGINS", "LOG_FORMAT")
	t.Setenv("APP_ADDR", ":7000")
	t.Setenv("IMDB_COUNT", "12")
	t.Setenv("SEED_DEMO", "false")

	cfg, err := LoadFrom(path)

	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.Server.Addr)
	assert.Equal(t, "from-file", cfg.Auth.JWTSecret)
	assert.Equal(t, 30*time.Minute, cfg.Auth.TokenTTL)
	assert.Equal(t, 12, cfg.IMDb.Count)
	assert.False(t, cfg.Store.SeedDemo)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, []string{"https://a.example.com"}, cfg.Server.CORSAllowedOrigins)
}

func TestLoadFrom_EnvList(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com,")
	t.Setenv("TOKEN_TTL", "1h")

	cfg, err := LoadFrom("")

	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.Server.CORSAllowedOrigins)
	assert.Equal(t, time.Hour, cfg.Auth.TokenTTL)
}

func TestLoadFrom_ViteAPIKeyFallback(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	unsetEnv(t, "IMDB_API_KEY")
	t.Setenv("VITE_IMDB_API_KEY", "k_vite")

	cfg, err := LoadFrom("")
	require.NoError(t, err)
	assert.Equal(t, "k_vite", cfg.IMDb.APIKey)

	t.Setenv("IMDB_API_KEY", "k_main")
	cfg, err = LoadFrom("")
	require.NoError(t, err)
	assert.Equal(t, "k_main", cfg.IMDb.APIKey)
}

func TestLoadFrom_MissingFile(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")

	_, err := LoadFrom(filepath.Join(t.TempDir(), "absent.yaml"))

	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		cfg := defaultConfig()
		cfg.Auth.JWTSecret = "secret"
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "missing secret", mutate: func(c *Config) { c.Auth.JWTSecret = " " }, wantErr: "JWT_SECRET"},
		{name: "unknown driver", mutate: func(c *Config) { c.Store.Driver = "sqlite" }, wantErr: "STORE_DRIVER"},
		{name: "postgres without dsn", mutate: func(c *Config) { c.Store.Driver = DriverPostgres }, wantErr: "DB_DSN"},
		{name: "postgres with dsn", mutate: func(c *Config) {
			c.Store.Driver = DriverPostgres
			c.Store.DSN = "postgres://localhost/cinema"
		}},
		{name: "bad log format", mutate: func(c *Config) { c.Log.Format = "xml" }, wantErr: "LOG_FORMAT"},
		{name: "zero fetch deadline", mutate: func(c *Config) { c.IMDb.FetchDeadline = 0 }, wantErr: "IMDB_FETCH_DEADLINE"},
		{name: "zero ttl", mutate: func(c *Config) { c.Auth.TokenTTL = 0 }, wantErr: "TOKEN_TTL"},
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
