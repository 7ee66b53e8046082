// Package config loads service configuration from struct defaults, an
// optional YAML file and the environment, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"

	PathEnvVar  = "CONFIG_PATH"
	defaultPath = "config.yaml"
)

type Config struct {
	Server ServerConfig `koanf:"server"`
	Auth   AuthConfig   `koanf:"auth"`
	Store  StoreConfig  `koanf:"store"`
	IMDb   IMDbConfig   `koanf:"imdb"`
	Log    LogConfig    `koanf:"log"`
}

type ServerConfig struct {
	Addr               string   `koanf:"addr"`
	MaxBodyBytes       int64    `koanf:"max_body_bytes"`
	EnableHSTS         bool     `koanf:"enable_hsts"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins"`
	RateLimitRPS       float64  `koanf:"rate_limit_rps"`
	RateLimitBurst     int      `koanf:"rate_limit_burst"`
}

type AuthConfig struct {
	JWTSecret string        `koanf:"jwt_secret"`
	TokenTTL  time.Duration `koanf:"token_ttl"`
}

type StoreConfig struct {
	Driver   string        `koanf:"driver"`
	DSN      string        `koanf:"dsn"`
	Timeout  time.Duration `koanf:"timeout"`
	SeedDemo bool          `koanf:"seed_demo"`
}

type IMDbConfig struct {
	APIKey     string        `koanf:"api_key"`
	BaseURL    string        `koanf:"base_url"`
	Timeout    time.Duration `koanf:"timeout"`
	RPS        float64       `koanf:"rps"`
	MaxRetries int           `koanf:"max_retries"`
	Count      int           `koanf:"count"`

	// FetchDeadline bounds a whole documentary fetch, retries included. It
	// must stay below the server write timeout.
	FetchDeadline time.Duration `koanf:"fetch_deadline"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

func defaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Addr:               ":8080",
			MaxBodyBytes:       1 << 20,
			EnableHSTS:         false,
			CORSAllowedOrigins: []string{"http://localhost:5173"},
			RateLimitRPS:       10,
			RateLimitBurst:     20,
		},
		Auth: AuthConfig{
			TokenTTL: 15 * time.Minute,
		},
		Store: StoreConfig{
			Driver:   DriverMemory,
			Timeout:  3 * time.Second,
			SeedDemo: true,
		},
		IMDb: IMDbConfig{
			BaseURL:       "https://imdb-api.com",
			Timeout:       10 * time.Second,
			RPS:           1,
			MaxRetries:    0,
			Count:         20,
			FetchDeadline: 8 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

var envKeys = map[string]string{
	"APP_ADDR":             "server.addr",
	"MAX_BODY_BYTES":       "server.max_body_bytes",
	"ENABLE_HSTS":          "server.enable_hsts",
	"CORS_ALLOWED_ORIGINS": "server.cors_allowed_origins",
	"RATE_LIMIT_RPS":       "server.rate_limit_rps",
	"RATE_LIMIT_BURST":     "server.rate_limit_burst",
	"JWT_SECRET":           "auth.jwt_secret",
	"TOKEN_TTL":            "auth.token_ttl",
	"STORE_DRIVER":         "store.driver",
	"DB_DSN":               "store.dsn",
	"DB_TIMEOUT":           "store.timeout",
	"SEED_DEMO":            "store.seed_demo",
	"IMDB_API_KEY":         "imdb.api_key",
	"IMDB_BASE_URL":        "imdb.base_url",
	"IMDB_TIMEOUT":         "imdb.timeout",
	"IMDB_RPS":             "imdb.rps",
	"IMDB_MAX_RETRIES":     "imdb.max_retries",
	"IMDB_COUNT":           "imdb.count",
	"IMDB_FETCH_DEADLINE":  "imdb.fetch_deadline",
	"LOG_LEVEL":            "log.level",
	"LOG_FORMAT":           "log.format",
}

// envTransform maps known variables to config paths; everything else is
// dropped.
func envTransform(key string) string {
	return envKeys[key]
}

// Load reads the file named by CONFIG_PATH, or config.yaml when present.
func Load() (Config, error) {
	path := os.Getenv(PathEnvVar)
	if path == "" {
		if _, err := os.Stat(defaultPath); err == nil {
			path = defaultPath
		}
	}
	return LoadFrom(path)
}

// LoadFrom layers defaults, the YAML file at path (skipped when empty) and
// the environment, then validates the result.
func LoadFrom(path string) (Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return Config{}, fmt.Errorf("load defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransform), nil); err != nil {
		return Config{}, fmt.Errorf("load environment: %w", err)
	}

	// VITE_IMDB_API_KEY is honoured for deployments that share a .env with the web client.
	if k.String("imdb.api_key") == "" {
		if v := os.Getenv("VITE_IMDB_API_KEY"); v != "" {
			_ = k.Set("imdb.api_key", v)
		}
	}

	if err := splitList(k, "server.cors_allowed_origins"); err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// splitList turns a comma separated string value at path into a trimmed slice.
func splitList(k *koanf.Koanf, path string) error {
	s, ok := k.Get(path).(string)
	if !ok {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if err := k.Set(path, out); err != nil {
		return fmt.Errorf("set %s: %w", path, err)
	}
	return nil
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Auth.JWTSecret) == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if c.Auth.TokenTTL <= 0 {
		errs = append(errs, errors.New("TOKEN_TTL must be positive"))
	}

	switch c.Store.Driver {
	case DriverMemory:
	case DriverPostgres:
		if c.Store.DSN == "" {
			errs = append(errs, errors.New("DB_DSN is required for the postgres driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown STORE_DRIVER %q (want memory or postgres)", c.Store.Driver))
	}
	if c.Store.Timeout <= 0 {
		errs = append(errs, errors.New("DB_TIMEOUT must be positive"))
	}

	if c.Server.MaxBodyBytes <= 0 {
		errs = append(errs, errors.New("MAX_BODY_BYTES must be positive"))
	}
	if c.Server.RateLimitRPS <= 0 || c.Server.RateLimitBurst <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive"))
	}

	if c.IMDb.Count <= 0 {
		errs = append(errs, errors.New("IMDB_COUNT must be positive"))
	}
	if c.IMDb.MaxRetries < 0 {
		errs = append(errs, errors.New("IMDB_MAX_RETRIES must not be negative"))
	}
	if c.IMDb.FetchDeadline <= 0 {
		errs = append(errs, errors.New("IMDB_FETCH_DEADLINE must be positive"))
	}

	switch c.Log.Format {
	case "json", "console":
	default:
		errs = append(errs, fmt.Errorf("unknown LOG_FORMAT %q (want json or console)", c.Log.Format))
	}

	return errors.Join(errs...)
}
