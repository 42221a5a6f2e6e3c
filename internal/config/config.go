package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Registry RegistryConfig `mapstructure:"registry" validate:"required"`
	Database DatabaseConfig `mapstructure:"database"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
	LLM      LLMConfig      `mapstructure:"llm"      validate:"required"`
	PokeAPI  PokeAPIConfig  `mapstructure:"pokeapi"  validate:"required"`
	Events   EventsConfig   `mapstructure:"events"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port                  int    `mapstructure:"port"                    validate:"required,gt=0,lt=65536"`
	LogLevel              string `mapstructure:"log_level"               validate:"required,oneof=debug info warn error"`
	RequestTimeoutSeconds int    `mapstructure:"request_timeout_seconds" validate:"gt=0"`
}

// RequestTimeout returns the per-request deadline as a duration.
func (s ServerConfig) RequestTimeout() time.Duration {
	return time.Duration(s.RequestTimeoutSeconds) * time.Second
}

// RegistryConfig holds the simulated latency, in milliseconds, of each task
// registry operation. Zero disables the delay.
type RegistryConfig struct {
	ListLatencyMS   int `mapstructure:"list_latency_ms"   validate:"gte=0"`
	GetLatencyMS    int `mapstructure:"get_latency_ms"    validate:"gte=0"`
	CreateLatencyMS int `mapstructure:"create_latency_ms" validate:"gte=0"`
	ToggleLatencyMS int `mapstructure:"toggle_latency_ms" validate:"gte=0"`
	DeleteLatencyMS int `mapstructure:"delete_latency_ms" validate:"gte=0"`
}

// DatabaseConfig contains all database-related configuration settings.
// An empty URL disables the blog endpoints.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"omitempty,url"`
}

// Enabled reports whether a database connection was configured.
func (d DatabaseConfig) Enabled() bool {
	return d.URL != ""
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	SupabaseURL    string `mapstructure:"supabase_url"     validate:"required,url"`
	SupabaseAPIKey string `mapstructure:"supabase_api_key" validate:"required"`
	JWTSecret      string `mapstructure:"jwt_secret"       validate:"required,min=32"`
	Audience       string `mapstructure:"audience"         validate:"required"`
}

// LLMConfig contains all LLM integration related settings.
// An empty API key disables the agent endpoint.
type LLMConfig struct {
	GeminiAPIKey string `mapstructure:"gemini_api_key"`
	ModelName    string `mapstructure:"model_name"     validate:"required"`
	MaxToolCalls int    `mapstructure:"max_tool_calls" validate:"gt=0,lte=20"`
}

// Enabled reports whether the agent can be reached.
func (l LLMConfig) Enabled() bool {
	return l.GeminiAPIKey != ""
}

// PokeAPIConfig configures the outbound creature-data client.
// An empty CacheURL disables the Redis response cache.
type PokeAPIConfig struct {
	BaseURL         string `mapstructure:"base_url"          validate:"required,url"`
	TimeoutSeconds  int    `mapstructure:"timeout_seconds"   validate:"gt=0"`
	CacheURL        string `mapstructure:"cache_url"         validate:"omitempty,url"`
	CacheTTLSeconds int    `mapstructure:"cache_ttl_seconds" validate:"gte=0"`
}

// Timeout returns the outbound request timeout as a duration.
func (p PokeAPIConfig) Timeout() time.Duration {
	return time.Duration(p.TimeoutSeconds) * time.Second
}

// CacheTTL returns how long cached PokeAPI responses stay valid.
func (p PokeAPIConfig) CacheTTL() time.Duration {
	return time.Duration(p.CacheTTLSeconds) * time.Second
}

// CacheEnabled reports whether a Redis cache was configured.
func (p PokeAPIConfig) CacheEnabled() bool {
	return p.CacheURL != ""
}

// EventsConfig configures the Kafka stream of task lifecycle events.
// No brokers means events are not published.
type EventsConfig struct {
	KafkaBrokers []string `mapstructure:"kafka_brokers" validate:"dive,hostname_port"`
	Topic        string   `mapstructure:"topic"         validate:"required_with=KafkaBrokers"`
	GroupID      string   `mapstructure:"group_id"`
}

// Enabled reports whether task events should be published.
func (e EventsConfig) Enabled() bool {
	return len(e.KafkaBrokers) > 0
}
