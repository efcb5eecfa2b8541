package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server     ServerConfig
	PostgreSQL PostgreSQLConfig
	Redis      RedisConfig
	Storage    StorageConfig
	Logging    LoggingConfig
	OpenAI     OpenAIConfig
	Advisor    AdvisorConfig
	Analyzer   AnalyzerConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port           int
	Host           string
	GinMode        string
	AllowedOrigins string
}

// PostgreSQLConfig holds PostgreSQL database configuration
type PostgreSQLConfig struct {
	DSN                string
	MaxConnections     int
	MaxIdleConnections int
}

// RedisConfig holds the optional session-cache backend configuration.
// An empty URL selects the in-memory fallback.
type RedisConfig struct {
	URL string
}

// StorageConfig holds the file-backed listing store configuration, used when
// no PostgreSQL DSN is configured.
type StorageConfig struct {
	DataPath      string
	AnalysisCache string
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// OpenAIConfig holds language-model oracle configuration
type OpenAIConfig struct {
	APIKey            string
	APIBase           string
	FilterModel       string
	AnalyzerModel     string
	AdvisorModel      string
	FilterMaxTokens   int
	AnalyzerMaxTokens int
	AdvisorMaxTokens  int
	Timeout           time.Duration
	Enabled           bool
}

// AdvisorConfig holds advisory-generation retry behavior
type AdvisorConfig struct {
	MaxRetries int
	RetryDelay time.Duration
}

// AnalyzerConfig holds batch-analysis throttling
type AnalyzerConfig struct {
	Throttle time.Duration
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (optional)
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:           getEnvAsInt("SERVER_PORT", 8080),
			Host:           getEnv("SERVER_HOST", "0.0.0.0"),
			GinMode:        getEnv("GIN_MODE", "release"),
			AllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
		},
		PostgreSQL: PostgreSQLConfig{
			DSN:                getEnv("DATABASE_URL", getEnv("PG_DSN", "")),
			MaxConnections:     getEnvAsInt("PG_MAX_CONNECTIONS", 25),
			MaxIdleConnections: getEnvAsInt("PG_MAX_IDLE_CONNECTIONS", 5),
		},
		Redis: RedisConfig{
			URL: getEnv("REDIS_URL", ""),
		},
		Storage: StorageConfig{
			DataPath:      getEnv("DATA_PATH", "data.json"),
			AnalysisCache: getEnv("ANALYSIS_CACHE", "analysis_cache.json"),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		OpenAI: OpenAIConfig{
			APIKey:            getEnv("OPENAI_API_KEY", ""),
			APIBase:           getEnv("OPENAI_API_BASE", ""),
			FilterModel:       getEnv("AI_FILTER_MODEL", "gpt-4o-mini"),
			AnalyzerModel:     getEnv("ANALYZER_MODEL", "gpt-4o-mini"),
			AdvisorModel:      getEnv("ADVISOR_MODEL", "gpt-4o-mini"),
			FilterMaxTokens:   getEnvAsInt("AI_FILTER_MAX_TOKENS", 400),
			AnalyzerMaxTokens: getEnvAsInt("ANALYZER_MAX_TOKENS", 500),
			AdvisorMaxTokens:  getEnvAsInt("ADVISOR_MAX_TOKENS", 300),
			Timeout:           getEnvAsDuration("OPENAI_TIMEOUT", 30*time.Second),
			Enabled:           getEnv("OPENAI_API_KEY", "") != "",
		},
		Advisor: AdvisorConfig{
			MaxRetries: getEnvAsInt("ADVISOR_MAX_RETRIES", 1),
			RetryDelay: getEnvAsDuration("ADVISOR_RETRY_DELAY", 500*time.Millisecond),
		},
		Analyzer: AnalyzerConfig{
			Throttle: getEnvAsDuration("ANALYZER_THROTTLE", 200*time.Millisecond),
		},
	}

	return cfg, nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer value for %s, using default %d", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid duration value for %s, using default %s", key, defaultValue)
		return defaultValue
	}
	return value
}
