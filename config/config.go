package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/AntonStoeckl/roadmap-aggregate-go/roadmap/planning"
	"github.com/AntonStoeckl/roadmap-aggregate-go/shell"
)

// Storage drivers.
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

// Postgres adapters.
const (
	AdapterPGX  = "pgx"
	AdapterSQL  = "sql"
	AdapterSQLX = "sqlx"
)

// Log formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Environment overrides, applied after the file.
const (
	EnvStorageDriver = "ROADMAP_STORAGE_DRIVER"
	EnvPostgresDSN   = "ROADMAP_POSTGRES_DSN"
	EnvRedisAddr     = "ROADMAP_REDIS_ADDR"
	EnvLogLevel      = "ROADMAP_LOG_LEVEL"
)

var (
	// ErrReadingConfigFailed is returned when the config file cannot be read.
	ErrReadingConfigFailed = errors.New("reading config file failed")

	// ErrParsingConfigFailed is returned when the config file is not valid YAML for Config.
	ErrParsingConfigFailed = errors.New("parsing config file failed")

	// ErrInvalidConfig is returned by Validate.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Config is the complete roadmapctl configuration.
type Config struct {
	Storage StorageConfig `yaml:"storage"`
	Redis   RedisConfig   `yaml:"redis"`
	Log     LogConfig     `yaml:"log"`
	Retry   RetryConfig   `yaml:"retry"`
	Limits  LimitsConfig  `yaml:"limits"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// StorageConfig selects where roadmaps and notes live.
type StorageConfig struct {
	// Driver is memory or postgres.
	Driver string `yaml:"driver"`
	// Adapter selects the Postgres client: pgx, sql or sqlx.
	Adapter string `yaml:"adapter"`
	DSN     string `yaml:"dsn"`

	RoadmapTable string `yaml:"roadmap_table"`
	NoteTable    string `yaml:"note_table"`

	// NoteDriver is memory, postgres or redis. Empty means the same as Driver.
	NoteDriver string `yaml:"note_driver"`

	// SnapshotFile persists the memory driver between runs. Empty keeps state for one run only.
	SnapshotFile string `yaml:"snapshot_file"`
}

// RedisConfig configures the Redis note store.
type RedisConfig struct {
	Addr      string `yaml:"addr"`
	Password  string `yaml:"password"`
	DB        int    `yaml:"db"`
	KeyPrefix string `yaml:"key_prefix"`
}

// LogConfig configures the slog handler.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// RetryConfig configures the retry of commands that hit a concurrency conflict.
type RetryConfig struct {
	MaxAttempts  int           `yaml:"max_attempts"`
	BaseDelay    time.Duration `yaml:"base_delay"`
	JitterFactor float64       `yaml:"jitter_factor"`
}

// LimitsConfig configures the planning services.
type LimitsConfig struct {
	MaxHighPriority int `yaml:"max_high_priority"`
	MaxTimeframes   int `yaml:"max_timeframes"`
}

// MetricsConfig configures the Prometheus collector.
type MetricsConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Namespace string `yaml:"namespace"`

	// Textfile receives the gathered metrics in the text exposition format after each run.
	Textfile string `yaml:"textfile"`
}

// Default returns a Config with in-memory storage.
func Default() Config {
	return Config{
		Storage: StorageConfig{
			Driver:       DriverMemory,
			Adapter:      AdapterPGX,
			RoadmapTable: "roadmaps",
			NoteTable:    "roadmap_notes",
		},
		Redis: RedisConfig{
			Addr:      "localhost:6379",
			KeyPrefix: "roadmap:notes",
		},
		Log: LogConfig{
			Level:  "info",
			Format: FormatText,
		},
		Retry: RetryConfig{
			MaxAttempts:  5,
			BaseDelay:    10 * time.Millisecond,
			JitterFactor: 0.1,
		},
		Limits: LimitsConfig{
			MaxHighPriority: planning.DefaultMaxHighPriority,
			MaxTimeframes:   planning.DefaultMaxTimeframes,
		},
	}
}

// Load reads the file at path on top of Default and applies the environment overrides.
// An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, errors.Join(ErrReadingConfigFailed, err)
		}

		if err = yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, errors.Join(ErrParsingConfigFailed, err)
		}
	}

	cfg.applyEnv(os.LookupEnv)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	if value, ok := lookup(EnvStorageDriver); ok && value != "" {
		c.Storage.Driver = value
	}

	if value, ok := lookup(EnvPostgresDSN); ok && value != "" {
		c.Storage.DSN = value
	}

	if value, ok := lookup(EnvRedisAddr); ok && value != "" {
		c.Redis.Addr = value
	}

	if value, ok := lookup(EnvLogLevel); ok && value != "" {
		c.Log.Level = value
	}
}

// Validate checks drivers, adapters and limits.
func (c Config) Validate() error {
	var problems []error

	switch c.Storage.Driver {
	case DriverMemory, DriverPostgres:
	default:
		problems = append(problems, fmt.Errorf("storage.driver %q is not one of memory, postgres", c.Storage.Driver))
	}

	switch c.Storage.Adapter {
	case AdapterPGX, AdapterSQL, AdapterSQLX:
	default:
		problems = append(problems, fmt.Errorf("storage.adapter %q is not one of pgx, sql, sqlx", c.Storage.Adapter))
	}

	switch c.Storage.NoteDriver {
	case "", DriverMemory, DriverPostgres, DriverRedis:
	default:
		problems = append(problems, fmt.Errorf("storage.note_driver %q is not one of memory, postgres, redis", c.Storage.NoteDriver))
	}

	if c.usesPostgres() && c.Storage.DSN == "" {
		problems = append(problems, errors.New("storage.dsn is required for the postgres driver"))
	}

	if c.NoteDriver() == DriverRedis && c.Redis.Addr == "" {
		problems = append(problems, errors.New("redis.addr is required for the redis note driver"))
	}

	if _, err := c.Log.SlogLevel(); err != nil {
		problems = append(problems, err)
	}

	switch c.Log.Format {
	case FormatText, FormatJSON:
	default:
		problems = append(problems, fmt.Errorf("log.format %q is not one of text, json", c.Log.Format))
	}

	if c.Retry.MaxAttempts <= 0 {
		problems = append(problems, errors.New("retry.max_attempts must be positive"))
	}

	if c.Retry.BaseDelay < 0 {
		problems = append(problems, errors.New("retry.base_delay must not be negative"))
	}

	if c.Retry.JitterFactor < 0 || c.Retry.JitterFactor > 1 {
		problems = append(problems, errors.New("retry.jitter_factor must be between 0 and 1"))
	}

	if c.Limits.MaxHighPriority <= 0 {
		problems = append(problems, errors.New("limits.max_high_priority must be positive"))
	}

	if c.Limits.MaxTimeframes <= 0 {
		problems = append(problems, errors.New("limits.max_timeframes must be positive"))
	}

	if len(problems) == 0 {
		return nil
	}

	return errors.Join(append([]error{ErrInvalidConfig}, problems...)...)
}

// NoteDriver returns the effective note driver.
func (c Config) NoteDriver() string {
	if c.Storage.NoteDriver == "" {
		return c.Storage.Driver
	}

	return c.Storage.NoteDriver
}

func (c Config) usesPostgres() bool {
	return c.Storage.Driver == DriverPostgres || c.NoteDriver() == DriverPostgres
}

// SlogLevel parses Level the way slog.Level.UnmarshalText does ("debug", "WARN", "info+2").
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level

	if err := level.UnmarshalText([]byte(strings.TrimSpace(l.Level))); err != nil {
		return 0, fmt.Errorf("log.level: %w", err)
	}

	return level, nil
}

// Options converts the section to shell retry options.
func (r RetryConfig) Options() []shell.RetryOption {
	return []shell.RetryOption{
		shell.WithMaxAttempts(r.MaxAttempts),
		shell.WithBaseDelay(r.BaseDelay),
		shell.WithJitterFactor(r.JitterFactor),
	}
}

// PriorityBalancer builds the balancer with the configured limit.
func (l LimitsConfig) PriorityBalancer() planning.PriorityBalancer {
	return planning.NewPriorityBalancer(planning.WithMaxHighPriority(l.MaxHighPriority))
}

// TimeframeNormalizer builds the normalizer with the configured limit.
func (l LimitsConfig) TimeframeNormalizer() planning.TimeframeNormalizer {
	return planning.NewTimeframeNormalizer(planning.WithMaxTimeframes(l.MaxTimeframes))
}
