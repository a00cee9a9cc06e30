package config

import (
	"strings"

	"github.com/spf13/viper"
)

type AppConfig struct {
	Name string `mapstructure:"name"`
	Env  string `mapstructure:"env"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// GeminiConfig controls the completion client. APIKey is a process-wide
// fallback used only when a request supplies no credential of its own.
type GeminiConfig struct {
	APIKey       string `mapstructure:"api_key"`
	DefaultModel string `mapstructure:"default_model"`
	TimeoutSec   int    `mapstructure:"timeout_sec"`
}

// SessionConfig selects the session store backend. Backend is "memory"
// (default, state lost on restart) or "redis". TTLSec applies to the redis
// backend only; 0 keeps sessions forever, matching the memory backend.
type SessionConfig struct {
	Backend string `mapstructure:"backend"`
	TTLSec  int    `mapstructure:"ttl_sec"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

type TelemetryConfig struct {
	Enabled      bool    `mapstructure:"enabled"`
	OtlpEndpoint string  `mapstructure:"otlp_endpoint"`
	SampleRatio  float64 `mapstructure:"sample_ratio"`
}

type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Server    ServerConfig    `mapstructure:"server"`
	Log       LogConfig       `mapstructure:"log"`
	Gemini    GeminiConfig    `mapstructure:"gemini"`
	Session   SessionConfig   `mapstructure:"session"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// Load reads config.yaml from the working directory (optional) and merges
// SCHEMA_STUDIO_* environment variables over it.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("app.name", "schema-studio")
	v.SetDefault("app.env", "development")
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8000)
	v.SetDefault("log.level", "info")
	v.SetDefault("gemini.default_model", "gemini-2.0-flash")
	v.SetDefault("gemini.timeout_sec", 120)
	v.SetDefault("session.backend", "memory")
	v.SetDefault("session.ttl_sec", 0)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.sample_ratio", 1.0)

	// AutomaticEnv only surfaces keys viper already knows about, so every
	// key without a real default still needs an empty one or its env var
	// is dropped on Unmarshal
	v.SetDefault("gemini.api_key", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("telemetry.otlp_endpoint", "")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("SCHEMA_STUDIO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// config file is optional, env vars and defaults are enough
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
