package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrStorageDriverUnknown = errors.New("onboarding config: storage driver is invalid")
var ErrStorageDSNRequired = errors.New("onboarding config: storage dsn is required for database drivers")
var ErrLoggingLevelInvalid = errors.New("onboarding config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("onboarding config: logging format is invalid")
var ErrHTTPAddressRequired = errors.New("onboarding config: http address is required")
var ErrCacheTTLInvalid = errors.New("onboarding config: cache ttl must be zero or positive")
var ErrImportLimitInvalid = errors.New("onboarding config: import payload limit must be positive")
var ErrImportRetriesInvalid = errors.New("onboarding config: import retries must be zero or positive")

const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config aggregates storage, logging and transport settings for the
// onboarding services.
type Config struct {
	Storage StorageConfig `mapstructure:"storage"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Logging LoggingConfig `mapstructure:"logging"`
	HTTP    HTTPConfig    `mapstructure:"http"`
	Import  ImportConfig  `mapstructure:"import"`
}

// StorageConfig selects the database backing the repositories. The memory
// driver keeps everything in process and ignores DSN.
type StorageConfig struct {
	Driver      string `mapstructure:"driver"`
	DSN         string `mapstructure:"dsn"`
	AutoMigrate bool   `mapstructure:"auto_migrate"`
}

// CacheConfig captures repository cache behaviour.
type CacheConfig struct {
	Enabled    bool          `mapstructure:"enabled"`
	DefaultTTL time.Duration `mapstructure:"default_ttl"`
}

// LoggingConfig captures go-logger options.
type LoggingConfig struct {
	Level     string   `mapstructure:"level"`
	Format    string   `mapstructure:"format"`
	AddSource bool     `mapstructure:"add_source"`
	Focus     []string `mapstructure:"focus"`
}

type HTTPConfig struct {
	Address      string        `mapstructure:"address"`
	Mode         string        `mapstructure:"mode"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// ImportConfig bounds a single import run.
type ImportConfig struct {
	Timeout         time.Duration `mapstructure:"timeout"`
	MaxPayloadBytes int64         `mapstructure:"max_payload_bytes"`
	// Retries is how often the dispatcher re-runs a failed import command.
	Retries int `mapstructure:"retries"`
}

// DefaultConfig returns defaults suited to a local single node setup.
func DefaultConfig() Config {
	return Config{
		Storage: StorageConfig{
			Driver:      DriverSQLite,
			DSN:         "file:onboarding.db?cache=shared&_fk=1",
			AutoMigrate: true,
		},
		Cache: CacheConfig{
			Enabled:    true,
			DefaultTTL: time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		HTTP: HTTPConfig{
			Address:      ":8080",
			Mode:         "release",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		Import: ImportConfig{
			Timeout:         time.Minute,
			MaxPayloadBytes: 10 << 20,
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	driver := normalize(cfg.Storage.Driver)
	if !isSupportedDriver(driver) {
		return fmt.Errorf("%w: %s", ErrStorageDriverUnknown, cfg.Storage.Driver)
	}
	if driver != DriverMemory && strings.TrimSpace(cfg.Storage.DSN) == "" {
		return fmt.Errorf("%w: %s", ErrStorageDSNRequired, driver)
	}
	if cfg.Cache.DefaultTTL < 0 {
		return ErrCacheTTLInvalid
	}
	if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
	}
	if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
		return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
	}
	if strings.TrimSpace(cfg.HTTP.Address) == "" {
		return ErrHTTPAddressRequired
	}
	if cfg.Import.MaxPayloadBytes <= 0 {
		return ErrImportLimitInvalid
	}
	if cfg.Import.Retries < 0 {
		return ErrImportRetriesInvalid
	}
	return nil
}

// StorageDriver returns the normalized storage driver name.
func (cfg Config) StorageDriver() string {
	return normalize(cfg.Storage.Driver)
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func isSupportedDriver(driver string) bool {
	switch driver {
	case DriverMemory, DriverSQLite, DriverPostgres:
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch normalize(level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch normalize(format) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
