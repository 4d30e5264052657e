package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Env       Environment     `mapstructure:"-"`
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	LLM       LLMConfig       `mapstructure:"llm"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Matching  MatchingConfig  `mapstructure:"matching"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Log       LogConfig       `mapstructure:"log"`
}

// ServerConfig configures the HTTP listener
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	CORSOrigins  []string      `mapstructure:"cors_origins"`
}

// Addr returns the listen address
func (s ServerConfig) Addr() string {
	return s.Host + ":" + s.Port
}

// DatabaseConfig selects and configures the recipe store
type DatabaseConfig struct {
	Driver   string `mapstructure:"driver"`
	URL      string `mapstructure:"url"`
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"ssl_mode"`
	Path     string `mapstructure:"path"`
	Seed     bool   `mapstructure:"seed"`
}

// DSN returns the connection string for the configured driver
func (d DatabaseConfig) DSN() string {
	if d.Driver == "sqlite" {
		return d.Path
	}
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
	)
}

// RedisConfig configures the optional Redis connection
type RedisConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	URL     string `mapstructure:"url"`
}

// LLMConfig configures the OpenAI-compatible chat completion provider
type LLMConfig struct {
	APIKey      string        `mapstructure:"api_key"`
	BaseURL     string        `mapstructure:"base_url"`
	Model       string        `mapstructure:"model"`
	VisionModel string        `mapstructure:"vision_model"`
	MaxTokens   int           `mapstructure:"max_tokens"`
	Temperature float64       `mapstructure:"temperature"`
	Timeout     time.Duration `mapstructure:"timeout"`
	// Consecutive failures before the breaker opens
	BreakerFailures uint32        `mapstructure:"breaker_failures"`
	BreakerTimeout  time.Duration `mapstructure:"breaker_timeout"`
}

// StorageConfig configures S3 storage for recipe images
type StorageConfig struct {
	Enabled       bool   `mapstructure:"enabled"`
	Bucket        string `mapstructure:"bucket"`
	Region        string `mapstructure:"region"`
	PublicBaseURL string `mapstructure:"public_base_url"`
	MaxUploadSize int64  `mapstructure:"max_upload_size"`
}

// MatchingConfig holds the default find policy
type MatchingConfig struct {
	MinMatchScore float64 `mapstructure:"min_match_score"`
	Limit         int     `mapstructure:"limit"`
}

// RateLimitConfig limits AI-backed endpoints per caller
type RateLimitConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

// CacheConfig controls caching of AI results
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// LogConfig configures the zap logger
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

var envBindings = map[string]string{
	"server.host":              "SERVER_HOST",
	"server.port":              "SERVER_PORT",
	"server.read_timeout":      "SERVER_READ_TIMEOUT",
	"server.write_timeout":     "SERVER_WRITE_TIMEOUT",
	"server.cors_origins":      "CORS_ORIGINS",
	"database.driver":          "DB_DRIVER",
	"database.url":             "DATABASE_URL",
	"database.host":            "DB_HOST",
	"database.port":            "DB_PORT",
	"database.user":            "DB_USER",
	"database.password":        "DB_PASSWORD",
	"database.name":            "DB_NAME",
	"database.ssl_mode":        "DB_SSL_MODE",
	"database.path":            "DB_PATH",
	"database.seed":            "DB_SEED",
	"redis.enabled":            "REDIS_ENABLED",
	"redis.url":                "REDIS_URL",
	"llm.api_key":              "LLM_API_KEY",
	"llm.base_url":             "LLM_BASE_URL",
	"llm.model":                "LLM_MODEL",
	"llm.vision_model":         "LLM_VISION_MODEL",
	"llm.max_tokens":           "LLM_MAX_TOKENS",
	"llm.temperature":          "LLM_TEMPERATURE",
	"llm.timeout":              "LLM_TIMEOUT",
	"llm.breaker_failures":     "LLM_BREAKER_FAILURES",
	"llm.breaker_timeout":      "LLM_BREAKER_TIMEOUT",
	"storage.enabled":          "STORAGE_ENABLED",
	"storage.bucket":           "S3_BUCKET_NAME",
	"storage.region":           "AWS_REGION",
	"storage.public_base_url":  "S3_PUBLIC_BASE_URL",
	"storage.max_upload_size":  "STORAGE_MAX_UPLOAD_SIZE",
	"matching.min_match_score": "MATCH_MIN_SCORE",
	"matching.limit":           "MATCH_LIMIT",
	"rate_limit.enabled":       "RATE_LIMIT_ENABLED",
	"rate_limit.requests":      "RATE_LIMIT_REQUESTS",
	"rate_limit.window":        "RATE_LIMIT_WINDOW",
	"cache.ttl":                "CACHE_TTL",
	"log.level":                "LOG_LEVEL",
	"log.format":               "LOG_FORMAT",
}

// LoadConfig reads .env (if present) and the process environment into a Config
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Env = GetEnvironment()
	cfg.Server.CORSOrigins = splitList(cfg.Server.CORSOrigins)

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", "8001")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "90s")
	v.SetDefault("server.cors_origins", []string{"*"})

	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.name", "pantry_chef")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.path", "pantry_chef.db")
	v.SetDefault("database.seed", true)

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.url", "redis://localhost:6379/0")

	v.SetDefault("llm.base_url", "https://api.openai.com/v1")
	v.SetDefault("llm.model", "gpt-4o")
	v.SetDefault("llm.vision_model", "gpt-4o")
	v.SetDefault("llm.max_tokens", 1500)
	v.SetDefault("llm.temperature", 0.7)
	v.SetDefault("llm.timeout", "60s")
	v.SetDefault("llm.breaker_failures", 5)
	v.SetDefault("llm.breaker_timeout", "30s")

	v.SetDefault("storage.enabled", false)
	v.SetDefault("storage.bucket", "pantry-chef-recipe-images")
	v.SetDefault("storage.region", "us-east-1")
	v.SetDefault("storage.max_upload_size", 5<<20)

	v.SetDefault("matching.min_match_score", 30.0)
	v.SetDefault("matching.limit", 10)

	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.requests", 20)
	v.SetDefault("rate_limit.window", "1h")

	v.SetDefault("cache.ttl", "24h")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

// splitList flattens comma-separated entries and trims blanks
func splitList(values []string) []string {
	var out []string
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// MaskSecret hides all but the first and last four characters of a key
func MaskSecret(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
