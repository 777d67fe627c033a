package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/viper"
)

const (
	DriverMemory   = "memory"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
	Store    StoreConfig    `mapstructure:"store"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Database DatabaseConfig `mapstructure:"database"`
	Capture  CaptureConfig  `mapstructure:"capture"`
	Routes   RoutesConfig   `mapstructure:"routes"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

type ServerConfig struct {
	Port                   string `mapstructure:"port"`
	ShutdownTimeoutSeconds int    `mapstructure:"shutdown_timeout_seconds"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// StoreConfig names the single store instance and its bound.
type StoreConfig struct {
	Instance string `mapstructure:"instance"`
	Capacity int    `mapstructure:"capacity"`
	Key      string `mapstructure:"key"`
}

type StorageConfig struct {
	Driver     string `mapstructure:"driver"`
	SQLitePath string `mapstructure:"sqlite_path"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type DatabaseConfig struct {
	DSN string `mapstructure:"dsn"`
}

type CaptureConfig struct {
	MaxBodySize    string  `mapstructure:"max_body_size"` // e.g. "1MiB", "512KB"
	RateLimitQPS   float64 `mapstructure:"rate_limit_qps"`
	RateLimitBurst int     `mapstructure:"rate_limit_burst"`

	// MaxBodyBytes is MaxBodySize parsed by Load.
	MaxBodyBytes int64 `mapstructure:"-"`
}

type RoutesConfig struct {
	APIPrefix     string `mapstructure:"api_prefix"`
	CapturePrefix string `mapstructure:"capture_prefix"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// StorageKey is the single key the store instance persists its collection under.
func (c *Config) StorageKey() string {
	return c.Store.Instance + ":" + c.Store.Key
}

// Load reads config.yaml from . or ./configs plus LOGBIN_* env vars.
func Load() (*Config, error) {
	v := newViper()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("No config file found, using defaults and env vars")
		} else {
			return nil, err
		}
	}
	return decode(v)
}

// LoadFile reads the given config file plus LOGBIN_* env vars.
func LoadFile(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return decode(v)
}

func newViper() *viper.Viper {
	v := viper.New()

	// e.g. LOGBIN_STORAGE_DRIVER=redis
	v.SetEnvPrefix("logbin")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.port", "8080")
	v.SetDefault("server.shutdown_timeout_seconds", 5)
	v.SetDefault("log.level", "info")
	v.SetDefault("store.instance", "default")
	v.SetDefault("store.capacity", 50)
	v.SetDefault("store.key", "logs")
	v.SetDefault("storage.driver", DriverMemory)
	v.SetDefault("storage.sqlite_path", "logbin.db")
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("database.dsn", "")
	v.SetDefault("capture.max_body_size", "1MiB")
	v.SetDefault("capture.rate_limit_qps", 0)
	v.SetDefault("capture.rate_limit_burst", 20)
	v.SetDefault("routes.api_prefix", "/api")
	v.SetDefault("routes.capture_prefix", "/api/logs")
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")
	return v
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate normalizes derived fields and rejects unusable settings.
func (c *Config) Validate() error {
	if c.Store.Capacity <= 0 {
		return fmt.Errorf("store.capacity must be positive, got %d", c.Store.Capacity)
	}
	if strings.TrimSpace(c.Store.Instance) == "" {
		return fmt.Errorf("store.instance must not be empty")
	}
	if strings.TrimSpace(c.Store.Key) == "" {
		return fmt.Errorf("store.key must not be empty")
	}

	c.Storage.Driver = strings.ToLower(strings.TrimSpace(c.Storage.Driver))
	switch c.Storage.Driver {
	case DriverMemory, DriverRedis, DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unknown storage.driver %q", c.Storage.Driver)
	}

	size, err := humanize.ParseBytes(c.Capture.MaxBodySize)
	if err != nil {
		return fmt.Errorf("invalid capture.max_body_size %q: %w", c.Capture.MaxBodySize, err)
	}
	c.Capture.MaxBodyBytes = int64(size)
	if c.Capture.RateLimitQPS < 0 {
		return fmt.Errorf("capture.rate_limit_qps must not be negative")
	}

	if !strings.HasPrefix(c.Routes.APIPrefix, "/") {
		return fmt.Errorf("routes.api_prefix must start with /")
	}
	if !strings.HasPrefix(c.Routes.CapturePrefix, c.Routes.APIPrefix) {
		return fmt.Errorf("routes.capture_prefix %q must live under routes.api_prefix %q",
			c.Routes.CapturePrefix, c.Routes.APIPrefix)
	}
	return nil
}
