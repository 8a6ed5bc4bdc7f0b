package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/naratip/goldwatch/internal/core"
	"github.com/spf13/viper"
)

type Config struct {
	Server     Server              `mapstructure:"server"`
	Storage    Storage             `mapstructure:"storage"`
	Collectors Collectors          `mapstructure:"collectors"`
	Alerts     Alerts              `mapstructure:"alerts"`
	Notifiers  map[string]Notifier `mapstructure:"notifiers"`
	Metrics    Metrics             `mapstructure:"metrics"`
}

type Server struct {
	Host   string `mapstructure:"host"`
	Port   int    `mapstructure:"port"`
	APIKey string `mapstructure:"api_key"`
}

type Storage struct {
	Type string `mapstructure:"type"` // "localfs", "s3" or "memory"
	Path string `mapstructure:"path"` // For localfs
	S3   S3     `mapstructure:"s3"`   // For S3
}

type S3 struct {
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	Region    string `mapstructure:"region"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Prefix    string `mapstructure:"prefix"`
}

type Collectors struct {
	Gold    GoldCollector   `mapstructure:"gold"`
	Candles CandleCollector `mapstructure:"candles"`
}

// GoldCollector configures the Thai gold price poller.
type GoldCollector struct {
	Enabled  bool          `mapstructure:"enabled"`
	Interval time.Duration `mapstructure:"interval"`
	BaseURL  string        `mapstructure:"base_url"`
}

// CandleCollector configures the candlestick feed used for technical
// analysis. When disabled the app falls back to synthetic candles seeded
// from the latest gold quote.
type CandleCollector struct {
	Enabled  bool          `mapstructure:"enabled"`
	Symbol   string        `mapstructure:"symbol"`
	Interval string        `mapstructure:"interval"`
	Limit    int           `mapstructure:"limit"`
	Refresh  time.Duration `mapstructure:"refresh"`
}

type Alerts struct {
	Enabled  bool          `mapstructure:"enabled"`
	Cooldown time.Duration `mapstructure:"cooldown"`
}

type Notifier struct {
	Enabled bool              `mapstructure:"enabled"`
	URL     string            `mapstructure:"url"`
	Headers map[string]string `mapstructure:"headers"`
}

type Metrics struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// Load reads configuration from file
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Support environment variable overrides
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	// Expand environment variables in string values
	for _, key := range v.AllKeys() {
		val := v.GetString(key)
		if strings.HasPrefix(val, "${") && strings.HasSuffix(val, "}") {
			envKey := strings.TrimSuffix(strings.TrimPrefix(val, "${"), "}")
			v.Set(key, os.Getenv(envKey))
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// Defaults returns a config with sensible defaults
func Defaults() *Config {
	return &Config{
		Server: Server{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Storage: Storage{
			Type: "localfs",
			Path: "data",
		},
		Collectors: Collectors{
			Gold: GoldCollector{
				Enabled:  true,
				Interval: 60 * time.Second,
			},
			Candles: CandleCollector{
				Enabled:  false,
				Symbol:   "PAXGUSDT",
				Interval: "1h",
				Limit:    100,
				Refresh:  5 * time.Minute,
			},
		},
		Alerts: Alerts{
			Enabled:  true,
			Cooldown: 5 * time.Minute,
		},
		Metrics: Metrics{
			Enabled: true,
			Path:    "/metrics",
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("port must be between 1 and 65535, got %d", c.Server.Port))
	}

	switch c.Storage.Type {
	case "localfs":
		if c.Storage.Path == "" {
			return core.WrapError(core.ErrConfigMissing,
				fmt.Errorf("storage path required when type is localfs"))
		}
	case "s3":
		if c.Storage.S3.Bucket == "" {
			return core.WrapError(core.ErrConfigMissing,
				fmt.Errorf("s3 bucket required when type is s3"))
		}
	case "memory":
	default:
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("unknown storage type %q", c.Storage.Type))
	}

	if c.Collectors.Gold.Enabled && c.Collectors.Gold.Interval <= 0 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("gold collector interval must be positive, got %s", c.Collectors.Gold.Interval))
	}
	if c.Collectors.Candles.Enabled {
		if c.Collectors.Candles.Symbol == "" {
			return core.WrapError(core.ErrConfigMissing,
				fmt.Errorf("candle symbol required when candle collector is enabled"))
		}
		if c.Collectors.Candles.Limit < 1 {
			return core.WrapError(core.ErrConfigInvalid,
				fmt.Errorf("candle limit must be positive, got %d", c.Collectors.Candles.Limit))
		}
	}

	if c.Alerts.Cooldown < 0 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("alert cooldown cannot be negative, got %s", c.Alerts.Cooldown))
	}

	for name, n := range c.Notifiers {
		if n.Enabled && n.URL == "" {
			return core.WrapError(core.ErrConfigMissing,
				fmt.Errorf("notifier %q requires a url", name))
		}
	}

	return nil
}
