package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const (
	configName = "onboarding"
	envPrefix  = "ONBOARDING"
)

// SetDefaults registers every config key on v so file, env and flag values
// can override them.
func SetDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("storage.driver", d.Storage.Driver)
	v.SetDefault("storage.dsn", d.Storage.DSN)
	v.SetDefault("storage.auto_migrate", d.Storage.AutoMigrate)
	v.SetDefault("cache.enabled", d.Cache.Enabled)
	v.SetDefault("cache.default_ttl", d.Cache.DefaultTTL)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("logging.add_source", d.Logging.AddSource)
	v.SetDefault("logging.focus", d.Logging.Focus)
	v.SetDefault("http.address", d.HTTP.Address)
	v.SetDefault("http.mode", d.HTTP.Mode)
	v.SetDefault("http.read_timeout", d.HTTP.ReadTimeout)
	v.SetDefault("http.write_timeout", d.HTTP.WriteTimeout)
	v.SetDefault("import.timeout", d.Import.Timeout)
	v.SetDefault("import.max_payload_bytes", d.Import.MaxPayloadBytes)
	v.SetDefault("import.retries", d.Import.Retries)
}

// Load resolves the configuration from defaults, an optional
// onboarding.yaml, ONBOARDING_* environment variables and any flags already
// bound to v. A config file set with SetConfigFile must exist.
func Load(v *viper.Viper) (Config, error) {
	if v == nil {
		v = viper.New()
	}
	SetDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	explicit := v.ConfigFileUsed() != ""
	if !explicit {
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("onboarding config: read: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("onboarding config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
