package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable the loader reads,
// e.g. TASKHUB_SERVER_PORT.
const EnvPrefix = "TASKHUB"

// Load configuration from environment variables and optionally config files.
// Environment variables take precedence over values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	return LoadFrom(".")
}

// LoadFrom behaves like Load but looks for config.yaml in dir.
func LoadFrom(dir string) (*Config, error) {
	v, err := newViper(dir)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadEventsFrom reads only the events group, for processes that consume the
// task event stream and need none of the HTTP server settings.
func LoadEventsFrom(dir string) (*EventsConfig, error) {
	v, err := newViper(dir)
	if err != nil {
		return nil, err
	}

	// Unmarshal, unlike UnmarshalKey, merges env overrides and defaults into
	// the nested group.
	var wrapper struct {
		Events EventsConfig `mapstructure:"events"`
	}
	if err := v.Unmarshal(&wrapper); err != nil {
		return nil, fmt.Errorf("failed to unmarshal events config: %w", err)
	}
	cfg := wrapper.Events

	if !cfg.Enabled() {
		return nil, errors.New("config validation failed: events.kafka_brokers is required")
	}
	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

func newViper(dir string) (*viper.Viper, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv only consults keys viper already knows about, so keys
	// without defaults are bound explicitly.
	for _, key := range []string{
		"database.url",
		"auth.supabase_url",
		"auth.supabase_api_key",
		"auth.jwt_secret",
		"llm.gemini_api_key",
		"pokeapi.cache_url",
		"events.kafka_brokers",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind environment variable for %s: %w", key, err)
		}
	}
	return v, nil
}

// Validate checks cfg against its struct tags.
func Validate(cfg *Config) error {
	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.request_timeout_seconds", 30)

	v.SetDefault("registry.list_latency_ms", 500)
	v.SetDefault("registry.get_latency_ms", 300)
	v.SetDefault("registry.create_latency_ms", 400)
	v.SetDefault("registry.toggle_latency_ms", 300)
	v.SetDefault("registry.delete_latency_ms", 300)

	v.SetDefault("auth.audience", "authenticated")

	v.SetDefault("llm.model_name", "gemini-2.0-flash-001")
	v.SetDefault("llm.max_tool_calls", 5)

	v.SetDefault("pokeapi.base_url", "https://pokeapi.co/api/v2")
	v.SetDefault("pokeapi.timeout_seconds", 10)
	v.SetDefault("pokeapi.cache_ttl_seconds", 300)

	v.SetDefault("events.topic", "task-events")
	v.SetDefault("events.group_id", "task-event-logger")
}
