// Package config loads the service configuration.
//
// Sources are applied in order, later ones winning:
// built-in defaults, an optional YAML file named by CONFIG_FILE, a .env file and the
// process environment. Variables from .env never override variables already set in the
// environment.
package config

import (
	"errors"
	"fmt"
	"net/netip"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Mode is the runtime mode. It selects which connection string is used.
type Mode string

// Runtime modes.
const (
	ModeProduction Mode = "production"
	ModeTest       Mode = "test"
	ModeLocal      Mode = "local"
)

// Storage drivers.
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
)

// DefaultLocalMongoURI is used in local mode when no URI is configured.
const DefaultLocalMongoURI = "mongodb://localhost:27017"

// Config is the complete service configuration.
type Config struct {
	Mode      Mode            `yaml:"app_env"`
	Version   string          `yaml:"version"`
	HTTP      HTTPConfig      `yaml:"http"`
	GRPC      GRPCConfig      `yaml:"grpc"`
	Log       LogConfig       `yaml:"log"`
	Storage   StorageConfig   `yaml:"storage"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Stats     StatsConfig     `yaml:"stats"`

	// BulkDeleteConcurrency caps concurrent deletes per bulk request. 0 means unbounded.
	BulkDeleteConcurrency int `yaml:"bulk_delete_concurrency"`
}

// HTTPConfig configures the REST server.
type HTTPConfig struct {
	Port              int           `yaml:"port"`
	MaxBodyBytes      int64         `yaml:"max_body_bytes"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`
	ShutdownTimeout   time.Duration `yaml:"shutdown_timeout"`
}

// Addr returns the listen address for Port.
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// GRPCConfig configures the optional gRPC server. An empty Addr disables it.
type GRPCConfig struct {
	Addr string `yaml:"addr"`
}

// LogConfig configures the process logger.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// StorageConfig selects and configures the storage engine.
type StorageConfig struct {
	Driver   string         `yaml:"driver"`
	Mongo    MongoConfig    `yaml:"mongo"`
	Postgres PostgresConfig `yaml:"postgres"`
	// Timeout bounds every storage call. 0 means no timeout.
	Timeout time.Duration `yaml:"timeout"`
}

// MongoConfig holds one connection string per mode.
type MongoConfig struct {
	URI      string `yaml:"uri"`
	TestURI  string `yaml:"test_uri"`
	LocalURI string `yaml:"local_uri"`
	Database string `yaml:"database"`
}

// PostgresConfig holds one DSN per mode.
type PostgresConfig struct {
	URL      string `yaml:"url"`
	TestURL  string `yaml:"test_url"`
	LocalURL string `yaml:"local_url"`
}

// RateLimitConfig configures the per-IP limiter. RPS 0 disables it.
type RateLimitConfig struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
	// TrustedProxies lists the peers (IPs or CIDRs) whose X-Forwarded-For and
	// X-Real-IP headers are honoured. Empty means the headers are ignored.
	TrustedProxies []string `yaml:"trusted_proxies"`
}

// Enabled reports whether rate limiting is active.
func (c RateLimitConfig) Enabled() bool { return c.RPS > 0 }

// TrustedProxyPrefixes parses TrustedProxies.
func (c RateLimitConfig) TrustedProxyPrefixes() ([]netip.Prefix, error) {
	return ParseTrustedProxies(c.TrustedProxies)
}

// StatsConfig configures the scheduled stats job. An empty Schedule disables it.
type StatsConfig struct {
	Schedule string        `yaml:"schedule"`
	Timeout  time.Duration `yaml:"timeout"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Mode:    ModeLocal,
		Version: "dev",
		HTTP: HTTPConfig{
			Port:              3000,
			MaxBodyBytes:      5 << 20,
			ReadHeaderTimeout: 10 * time.Second,
			ShutdownTimeout:   10 * time.Second,
		},
		Log: LogConfig{Level: "info", Format: "json"},
		Storage: StorageConfig{
			Driver: DriverMongo,
			Mongo:  MongoConfig{Database: "news"},
		},
		RateLimit: RateLimitConfig{Burst: 20},
		Stats:     StatsConfig{Schedule: "@every 1m", Timeout: 30 * time.Second},
	}
}

// Options controls where Load looks for configuration files.
type Options struct {
	// EnvFile is loaded with godotenv. A missing file is ignored.
	EnvFile string
	// ConfigFile is an optional YAML file. Empty falls back to CONFIG_FILE.
	ConfigFile string
}

// Load reads the configuration from .env, CONFIG_FILE and the environment.
func Load() (*Config, error) {
	return LoadWithOptions(Options{EnvFile: ".env"})
}

// LoadWithOptions reads the configuration and validates it.
func LoadWithOptions(opts Options) (*Config, error) {
	if opts.EnvFile != "" {
		if err := godotenv.Load(opts.EnvFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load env file: %w", err)
		}
	}

	cfg := Default()

	path := opts.ConfigFile
	if path == "" {
		path, _ = lookup("CONFIG_FILE")
	}
	if path != "" {
		if err := cfg.loadYAML(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadYAML(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	mode := string(c.Mode)
	envString("NODE_ENV", &mode)
	envString("APP_ENV", &mode)
	c.Mode = Mode(strings.ToLower(mode))

	envString("VERSION", &c.Version)
	envString("GRPC_ADDR", &c.GRPC.Addr)
	envString("LOG_LEVEL", &c.Log.Level)
	envString("LOG_FORMAT", &c.Log.Format)

	envString("STORAGE_DRIVER", &c.Storage.Driver)
	c.Storage.Driver = strings.ToLower(c.Storage.Driver)
	envString("MONGO_DB_URI", &c.Storage.Mongo.URI)
	envString("MONGO_DB_TEST_URI", &c.Storage.Mongo.TestURI)
	envString("MONGO_DB_LOCAL_URI", &c.Storage.Mongo.LocalURI)
	envString("MONGO_DB_NAME", &c.Storage.Mongo.Database)
	envString("DATABASE_URL", &c.Storage.Postgres.URL)
	envString("DATABASE_TEST_URL", &c.Storage.Postgres.TestURL)
	envString("DATABASE_LOCAL_URL", &c.Storage.Postgres.LocalURL)

	// 空文字は無効化
	if v, ok := os.LookupEnv("STATS_SCHEDULE"); ok {
		c.Stats.Schedule = strings.TrimSpace(v)
	}

	envStringList("RATE_LIMIT_TRUSTED_PROXIES", &c.RateLimit.TrustedProxies)

	return errors.Join(
		envInt("PORT", &c.HTTP.Port),
		envInt64("MAX_BODY_BYTES", &c.HTTP.MaxBodyBytes),
		envInt("BULK_DELETE_CONCURRENCY", &c.BulkDeleteConcurrency),
		envFloat("RATE_LIMIT_RPS", &c.RateLimit.RPS),
		envInt("RATE_LIMIT_BURST", &c.RateLimit.Burst),
		envDuration("STORAGE_TIMEOUT", &c.Storage.Timeout),
		envDuration("STATS_TIMEOUT", &c.Stats.Timeout),
	)
}

// Validate checks the configuration. All problems are reported together.
func (c *Config) Validate() error {
	var errs []error

	switch c.Mode {
	case ModeProduction, ModeTest, ModeLocal:
	default:
		errs = append(errs, fmt.Errorf("app env: unknown mode %q", c.Mode))
	}

	switch c.Storage.Driver {
	case DriverMongo:
		if c.MongoURI() == "" {
			errs = append(errs, fmt.Errorf("storage: no mongo URI configured for mode %q", c.Mode))
		}
		if c.Storage.Mongo.Database == "" {
			errs = append(errs, errors.New("storage: mongo database name is empty"))
		}
	case DriverPostgres:
		if c.PostgresDSN() == "" {
			errs = append(errs, fmt.Errorf("storage: no database URL configured for mode %q", c.Mode))
		}
	default:
		errs = append(errs, fmt.Errorf("storage: unknown driver %q", c.Storage.Driver))
	}

	if err := ValidateIntRange(c.HTTP.Port, 1, 65535); err != nil {
		errs = append(errs, fmt.Errorf("port: %w", err))
	}
	if c.HTTP.MaxBodyBytes < 0 {
		errs = append(errs, fmt.Errorf("max body bytes: must not be negative, got %d", c.HTTP.MaxBodyBytes))
	}
	if c.BulkDeleteConcurrency < 0 {
		errs = append(errs, fmt.Errorf("bulk delete concurrency: must not be negative, got %d", c.BulkDeleteConcurrency))
	}
	if c.RateLimit.RPS < 0 {
		errs = append(errs, fmt.Errorf("rate limit rps: must not be negative, got %v", c.RateLimit.RPS))
	}
	if _, err := c.RateLimit.TrustedProxyPrefixes(); err != nil {
		errs = append(errs, fmt.Errorf("rate limit trusted proxies: %w", err))
	}
	if err := ValidateNonNegativeDuration(c.Storage.Timeout); err != nil {
		errs = append(errs, fmt.Errorf("storage timeout: %w", err))
	}
	if c.Stats.Schedule != "" {
		if err := ValidateCronSchedule(c.Stats.Schedule); err != nil {
			errs = append(errs, fmt.Errorf("stats schedule: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}

// MongoURI returns the mongo connection string for the current mode.
func (c *Config) MongoURI() string {
	m := c.Storage.Mongo
	switch c.Mode {
	case ModeProduction:
		return m.URI
	case ModeTest:
		return m.TestURI
	case ModeLocal:
		if m.LocalURI != "" {
			return m.LocalURI
		}
		return DefaultLocalMongoURI
	}
	return ""
}

// PostgresDSN returns the postgres DSN for the current mode.
func (c *Config) PostgresDSN() string {
	p := c.Storage.Postgres
	switch c.Mode {
	case ModeProduction:
		return p.URL
	case ModeTest:
		return p.TestURL
	case ModeLocal:
		return p.LocalURL
	}
	return ""
}
