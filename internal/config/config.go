package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/sethvargo/go-envconfig"

	"github.com/2beens/gymxp/internal/gamification"
	"github.com/2beens/gymxp/internal/repcount"
)

type Config struct {
	Environment           string `toml:"environment"`
	Host                  string `toml:"host"`
	Port                  int    `toml:"port"`
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`
	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	SentryEnabled bool   `toml:"sentry_enabled"`
	// postgres
	PostgresHost   string `toml:"postgres_host"`
	PostgresPort   string `toml:"postgres_port"`
	PostgresUser   string `toml:"postgres_user"`
	PostgresDBName string `toml:"postgres_db_name"`
	RunMigrations  bool   `toml:"run_migrations"`
	// redis
	RedisHost string `toml:"redis_host"`
	RedisPort string `toml:"redis_port"`
	// http
	AllowedOrigins        []string `toml:"allowed_origins"`
	FramesRateLimitPerMin int      `toml:"frames_rate_limit_per_min"`
	// workout sessions
	MaxFramesPerBatch  int           `toml:"max_frames_per_batch"`
	SessionIdleTimeout time.Duration `toml:"session_idle_timeout"`
	JanitorInterval    time.Duration `toml:"janitor_interval"`
	SnapshotTTL        time.Duration `toml:"snapshot_ttl"`
	// profile cache
	ProfileCacheSizeMB int           `toml:"profile_cache_size_mb"`
	ProfileCacheTTL    time.Duration `toml:"profile_cache_ttl"`

	Counter repcount.Config    `toml:"counter"`
	XP      gamification.Rules `toml:"xp"`
}

// Default returns a config with every tunable set, the TOML file only needs
// to override what differs.
func Default() *Config {
	return &Config{
		Environment:           "development",
		Host:                  "localhost",
		Port:                  9000,
		PrometheusMetricsHost: "localhost",
		PrometheusMetricsPort: "2112",
		LogLevel:              "debug",
		LogToStdout:           true,
		PostgresHost:          "localhost",
		PostgresPort:          "5432",
		PostgresUser:          "postgres",
		PostgresDBName:        "gymxp",
		RunMigrations:         true,
		RedisHost:             "localhost",
		RedisPort:             "6379",
		FramesRateLimitPerMin: 600,
		MaxFramesPerBatch:     300,
		SessionIdleTimeout:    10 * time.Minute,
		JanitorInterval:       time.Minute,
		SnapshotTTL:           30 * time.Minute,
		ProfileCacheSizeMB:    10,
		ProfileCacheTTL:       5 * time.Minute,
		Counter:               repcount.DefaultConfig(),
		XP:                    gamification.DefaultRules(),
	}
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	switch strings.ToLower(env) {
	case "dev", "development":
		return t.Development, nil
	case "prod", "production":
		return t.Production, nil
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
}

func Load(env, path string) (*Config, error) {
	t := &Toml{
		Development: Default(),
		Production:  Default(),
	}
	t.Production.Environment = "production"

	if _, err := toml.DecodeFile(path, t); err != nil {
		return nil, fmt.Errorf("decode config file [%s]: %w", path, err)
	}
	return validated(t, env)
}

// Parse is Load for an in-memory TOML document.
func Parse(env, data string) (*Config, error) {
	t := &Toml{
		Development: Default(),
		Production:  Default(),
	}
	t.Production.Environment = "production"

	if _, err := toml.Decode(data, t); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return validated(t, env)
}

func validated(t *Toml, env string) (*Config, error) {
	cfg, err := t.Get(env)
	if err != nil {
		return nil, err
	}
	if err := cfg.Counter.Validate(); err != nil {
		return nil, fmt.Errorf("counter config: %w", err)
	}
	if err := cfg.XP.Validate(); err != nil {
		return nil, fmt.Errorf("xp config: %w", err)
	}
	if cfg.MaxFramesPerBatch <= 0 {
		return nil, fmt.Errorf("max frames per batch must be > 0, got %d", cfg.MaxFramesPerBatch)
	}
	return cfg, nil
}

// Secrets are never read from the TOML file.
type Secrets struct {
	AppSecret        string `env:"GYMXP_APP_SECRET"`
	AdminSecretHash  string `env:"GYMXP_ADMIN_SECRET_HASH"`
	PostgresPassword string `env:"GYMXP_POSTGRES_PASS"`
	RedisPassword    string `env:"GYMXP_REDIS_PASS"`
	SentryDSN        string `env:"SENTRY_DSN"`
	HoneycombEnabled bool   `env:"HONEYCOMB_ENABLED, default=false"`
	HoneycombAPIKey  string `env:"HONEYCOMB_API_KEY"`
	OtelServiceName  string `env:"OTEL_SERVICE_NAME, default=gymxp-backend"`
}

func LoadSecrets(ctx context.Context) (*Secrets, error) {
	return LoadSecretsWith(ctx, envconfig.OsLookuper())
}

func LoadSecretsWith(ctx context.Context, lookuper envconfig.Lookuper) (*Secrets, error) {
	var s Secrets
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &s,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("process env secrets: %w", err)
	}
	return &s, nil
}
