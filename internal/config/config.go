package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Locale   string        `mapstructure:"locale"`
	Scenario string        `mapstructure:"scenario"`
	Debug    DebugConfig   `mapstructure:"debug"`
	Journal  JournalConfig `mapstructure:"journal"`
	Tracing  TracingConfig `mapstructure:"tracing"`
}

type DebugConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// JournalConfig controls the sqlite log of played cases read by `review`.
type JournalConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

type TracingConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	Endpoint    string `mapstructure:"endpoint"`
	Environment string `mapstructure:"environment"`
	Insecure    bool   `mapstructure:"insecure"`
}

// Load reads defaults, then the config file, then DETECTIVE_* environment
// variables. With an empty path config.yaml is looked up in . and ./config
// and may be absent.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("locale", "en")
	v.SetDefault("scenario", "")

	v.SetDefault("debug.enabled", false)
	v.SetDefault("debug.path", "debug.log")

	v.SetDefault("journal.enabled", false)
	v.SetDefault("journal.path", "./cases.db")

	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.endpoint", "http://localhost:4318/v1/traces")
	v.SetDefault("tracing.environment", "development")
	v.SetDefault("tracing.insecure", true)

	v.SetEnvPrefix("DETECTIVE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}
