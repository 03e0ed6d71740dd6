package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	DB     DBConfig     `mapstructure:"db"`
	Redis  RedisConfig  `mapstructure:"redis"`
	JWT    JWTConfig    `mapstructure:"jwt"`
	Gemini GeminiConfig `mapstructure:"gemini"`
	Dedup  DedupConfig  `mapstructure:"dedup"`

	LogLevel string `mapstructure:"log_level"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// DBConfig holds PostgreSQL connection settings
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"ssl_mode"`
}

// RedisConfig holds Redis connection settings. URL, when set, takes
// precedence over the host/port pair.
type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	URL      string `mapstructure:"url"`
}

// JWTConfig holds token signing settings
type JWTConfig struct {
	Secret string        `mapstructure:"secret"`
	TTL    time.Duration `mapstructure:"ttl"`
}

// GeminiConfig holds settings for the external text-generation model.
// An empty APIKey is not an error: generation falls back to templates.
type GeminiConfig struct {
	APIKey          string        `mapstructure:"api_key"`
	APIURL          string        `mapstructure:"api_url"`
	Timeout         time.Duration `mapstructure:"timeout"`
	Temperature     float64       `mapstructure:"temperature"`
	MaxOutputTokens int           `mapstructure:"max_output_tokens"`
	TopP            float64       `mapstructure:"top_p"`
	TopK            int           `mapstructure:"top_k"`
}

// DedupConfig holds the near-duplicate detection tuning knobs. The
// threshold and scan limit are heuristics, kept configurable rather than
// hard-coded.
type DedupConfig struct {
	SimilarityThreshold float64 `mapstructure:"similarity_threshold"`
	RecentLimit         int     `mapstructure:"recent_limit"`
}

// LoadConfig reads configuration from an optional .env file plus
// environment variables, applies defaults and validates the result.
func LoadConfig() (*Config, error) {
	// A missing .env file is fine; env vars alone are enough.
	_ = godotenv.Load()

	setDefaults()

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.BindEnv("server.port", "SERVER_PORT")
	viper.BindEnv("server.host", "SERVER_HOST")
	viper.BindEnv("db.host", "DB_HOST")
	viper.BindEnv("db.port", "DB_PORT")
	viper.BindEnv("db.user", "DB_USER")
	viper.BindEnv("db.password", "DB_PASSWORD")
	viper.BindEnv("db.name", "DB_NAME")
	viper.BindEnv("db.ssl_mode", "DB_SSL_MODE")
	viper.BindEnv("redis.host", "REDIS_HOST")
	viper.BindEnv("redis.port", "REDIS_PORT")
	viper.BindEnv("redis.password", "REDIS_PASSWORD")
	viper.BindEnv("redis.db", "REDIS_DB")
	viper.BindEnv("redis.url", "REDIS_URL")
	viper.BindEnv("jwt.secret", "JWT_SECRET")
	viper.BindEnv("gemini.api_key", "GEMINI_API_KEY")
	viper.BindEnv("gemini.api_url", "GEMINI_API_URL")
	viper.BindEnv("dedup.similarity_threshold", "DEDUP_SIMILARITY_THRESHOLD")
	viper.BindEnv("dedup.recent_limit", "DEDUP_RECENT_LIMIT")
	viper.BindEnv("log_level", "LOG_LEVEL")

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.read_timeout", "30s")
	viper.SetDefault("server.write_timeout", "30s")

	viper.SetDefault("db.host", "localhost")
	viper.SetDefault("db.port", "5432")
	viper.SetDefault("db.user", "postgres")
	viper.SetDefault("db.name", "platewise")
	viper.SetDefault("db.ssl_mode", "disable")

	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", "6379")
	viper.SetDefault("redis.db", 0)

	viper.SetDefault("jwt.ttl", "24h")

	viper.SetDefault("gemini.api_url",
		"https://generativelanguage.googleapis.com/v1beta/models/gemini-2.0-flash:generateContent")
	viper.SetDefault("gemini.timeout", "60s")
	viper.SetDefault("gemini.temperature", 0.8)
	viper.SetDefault("gemini.max_output_tokens", 1000)
	viper.SetDefault("gemini.top_p", 0.8)
	viper.SetDefault("gemini.top_k", 40)

	viper.SetDefault("dedup.similarity_threshold", 0.8)
	viper.SetDefault("dedup.recent_limit", 10)

	viper.SetDefault("log_level", "info")
}

func validateConfig(cfg *Config) error {
	if cfg.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}
	if cfg.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.Dedup.SimilarityThreshold <= 0 || cfg.Dedup.SimilarityThreshold > 1 {
		return fmt.Errorf("dedup similarity threshold must be in (0, 1]")
	}
	if cfg.Dedup.RecentLimit <= 0 {
		return fmt.Errorf("dedup recent limit must be positive")
	}
	return nil
}
