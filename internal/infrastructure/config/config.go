package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the application configuration.
type Config struct {
	App         AppConfig       `mapstructure:"app"`
	Server      ServerConfig    `mapstructure:"server"`
	Gemini      GeminiConfig    `mapstructure:"gemini"`
	Cache       CacheConfig     `mapstructure:"cache"`
	Session     SessionConfig   `mapstructure:"session"`
	Favorites   FavoritesConfig `mapstructure:"favorites"`
	RateLimit   RateLimitConfig `mapstructure:"rate_limit"`
	DedupWindow time.Duration   `mapstructure:"dedup_window"`
	LogLevel    string          `mapstructure:"log_level"`
}

// AppConfig holds application-level settings.
type AppConfig struct {
	Env      string `mapstructure:"env"`
	Debug    bool   `mapstructure:"debug"`
	LogLevel string `mapstructure:"log_level"`
	Version  string `mapstructure:"version"`
	Name     string `mapstructure:"name"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
	MaxBodyBytes int64         `mapstructure:"max_body_bytes"`
}

// GeminiConfig holds the generative-language API settings.
type GeminiConfig struct {
	APIKey      string        `mapstructure:"api_key"`
	BaseURL     string        `mapstructure:"base_url"`
	TextModel   string        `mapstructure:"text_model"`
	ImageModel  string        `mapstructure:"image_model"`
	SpeechModel string        `mapstructure:"speech_model"`
	Voice       string        `mapstructure:"voice"`
	Timeout     time.Duration `mapstructure:"timeout"`
	ImageOutput bool          `mapstructure:"image_output"`
}

// CacheConfig holds the AI response cache settings.
type CacheConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	MaxSize         int           `mapstructure:"max_size"`
	TTL             time.Duration `mapstructure:"ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

// SessionConfig holds session lifecycle settings.
type SessionConfig struct {
	TTL             time.Duration `mapstructure:"ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
	MaxSessions     int           `mapstructure:"max_sessions"`
}

// FavoritesConfig holds the durable favorites store settings.
type FavoritesConfig struct {
	RedisEnabled bool   `mapstructure:"redis_enabled"`
	RedisAddr    string `mapstructure:"redis_addr"`
	RedisPass    string `mapstructure:"redis_pass"`
	RedisDB      int    `mapstructure:"redis_db"`
	Namespace    string `mapstructure:"namespace"`
}

// RateLimitConfig holds rate limiting settings.
type RateLimitConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

// LoadConfig loads the configuration from .env and environment variables.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		return nil, err
	}

	setDefaults()

	viper.SetEnvPrefix("APP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.BindEnv("gemini.api_key", "GEMINI_API_KEY")
	viper.BindEnv("gemini.text_model", "GEMINI_TEXT_MODEL")
	viper.BindEnv("gemini.image_model", "GEMINI_IMAGE_MODEL")
	viper.BindEnv("gemini.speech_model", "GEMINI_SPEECH_MODEL")
	viper.BindEnv("gemini.voice", "GEMINI_VOICE")
	viper.BindEnv("gemini.image_output", "GEMINI_IMAGE_OUTPUT")
	viper.BindEnv("cache.enabled", "CACHE_ENABLED")
	viper.BindEnv("favorites.redis_enabled", "FAVORITES_REDIS_ENABLED")
	viper.BindEnv("favorites.redis_addr", "FAVORITES_REDIS_ADDR")
	viper.BindEnv("favorites.redis_pass", "FAVORITES_REDIS_PASS")
	viper.BindEnv("favorites.redis_db", "FAVORITES_REDIS_DB")
	viper.BindEnv("rate_limit.enabled", "RATE_LIMIT_ENABLED")
	viper.BindEnv("rate_limit.requests", "RATE_LIMIT_REQUESTS")
	viper.BindEnv("rate_limit.window", "RATE_LIMIT_WINDOW")
	viper.BindEnv("dedup_window", "DEDUP_WINDOW")
	viper.BindEnv("log_level", "LOG_LEVEL")

	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Logger is not initialized yet, plain print is fine here.
	fmt.Println("Loading configuration", "gemini_api_key:", maskAPIKey(viper.GetString("gemini.api_key")), "gemini_text_model:", viper.GetString("gemini.text_model"))

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// maskAPIKey keeps only the first and last 4 characters of a key.
func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

func setDefaults() {
	viper.SetDefault("app.env", "development")
	viper.SetDefault("app.debug", true)
	viper.SetDefault("app.log_level", "info")
	viper.SetDefault("app.version", "1.0.0")
	viper.SetDefault("app.name", "chef-finokio")

	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", "30s")
	viper.SetDefault("server.write_timeout", "30s")
	viper.SetDefault("server.idle_timeout", "120s")
	viper.SetDefault("server.max_body_bytes", 1*1024*1024) // 1MB

	viper.SetDefault("gemini.base_url", "https://generativelanguage.googleapis.com/v1beta")
	viper.SetDefault("gemini.text_model", "gemini-2.5-flash")
	viper.SetDefault("gemini.image_model", "gemini-2.5-flash-image-preview")
	viper.SetDefault("gemini.speech_model", "gemini-2.5-flash-preview-tts")
	viper.SetDefault("gemini.voice", "Puck")
	viper.SetDefault("gemini.timeout", "60s")
	viper.SetDefault("gemini.image_output", false)

	viper.SetDefault("cache.enabled", true)
	viper.SetDefault("cache.max_size", 1000)
	viper.SetDefault("cache.ttl", "24h")
	viper.SetDefault("cache.cleanup_interval", "10m")

	viper.SetDefault("session.ttl", "2h")
	viper.SetDefault("session.cleanup_interval", "10m")
	viper.SetDefault("session.max_sessions", 10000)

	viper.SetDefault("favorites.redis_enabled", false)
	viper.SetDefault("favorites.redis_addr", "localhost:6379")
	viper.SetDefault("favorites.redis_db", 0)
	viper.SetDefault("favorites.namespace", "chef-finokio")

	viper.SetDefault("rate_limit.enabled", true)
	viper.SetDefault("rate_limit.requests", 100)
	viper.SetDefault("rate_limit.window", "1m")

	viper.SetDefault("dedup_window", "1s")
}

func validateConfig(config *Config) error {
	if config.Server.Port == 0 {
		return fmt.Errorf("server port is required")
	}

	if config.Cache.Enabled {
		if config.Cache.MaxSize <= 0 {
			return fmt.Errorf("invalid cache max size")
		}
		if config.Cache.TTL <= 0 {
			return fmt.Errorf("invalid cache ttl")
		}
		if config.Cache.CleanupInterval <= 0 {
			return fmt.Errorf("invalid cache cleanup interval")
		}
	}

	if config.Session.TTL <= 0 {
		return fmt.Errorf("invalid session ttl")
	}
	if config.Session.CleanupInterval <= 0 {
		return fmt.Errorf("invalid session cleanup interval")
	}
	if config.Session.MaxSessions <= 0 {
		return fmt.Errorf("invalid session max sessions")
	}

	return nil
}
