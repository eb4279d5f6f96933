package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration
type Config struct {
	Server  ServerConfig
	Redis   RedisConfig
	Storage StorageConfig
	Gemini  GeminiConfig
	History HistoryConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string
	Host            string
	Environment     string
	AllowedOrigins  []string
	ShutdownTimeout int
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// StorageConfig holds object storage configuration
type StorageConfig struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	UseSSL          bool
	PublicURL       string
}

// GeminiConfig holds the generative-AI provider configuration.
// Loaded from GEMINI_* environment variables.
type GeminiConfig struct {
	APIKey           string        `envconfig:"API_KEY"`
	BaseURL          string        `envconfig:"API_URL" default:"https://generativelanguage.googleapis.com"`
	FastModel        string        `envconfig:"FAST_MODEL" default:"gemini-2.5-flash"`
	DeepModel        string        `envconfig:"DEEP_MODEL" default:"gemini-2.5-pro"`
	ThinkingBudget   int           `envconfig:"THINKING_BUDGET" default:"32768"`
	RequestTimeout   time.Duration `envconfig:"REQUEST_TIMEOUT" default:"5m"`
	PollInterval     time.Duration `envconfig:"POLL_INTERVAL" default:"2s"`
	MaxPollAttempts  int           `envconfig:"MAX_POLL_ATTEMPTS" default:"120"`
	InlineLimitBytes int64         `envconfig:"INLINE_LIMIT_BYTES" default:"15728640"`
}

// HistoryConfig holds analysis history configuration
type HistoryConfig struct {
	Key string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	config := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			Host:            getEnv("HOST", "0.0.0.0"),
			Environment:     getEnv("ENVIRONMENT", "development"),
			AllowedOrigins:  []string{getEnv("ALLOWED_ORIGINS", "http://localhost:3000")},
			ShutdownTimeout: getEnvAsInt("SHUTDOWN_TIMEOUT", 10),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Storage: StorageConfig{
			Endpoint:        getEnv("STORAGE_ENDPOINT", ""),
			AccessKeyID:     getEnv("STORAGE_ACCESS_KEY", "minioadmin"),
			SecretAccessKey: getEnv("STORAGE_SECRET_KEY", "minioadmin"),
			BucketName:      getEnv("STORAGE_BUCKET", "notas-magicas"),
			UseSSL:          getEnvAsBool("STORAGE_USE_SSL", false),
			PublicURL:       getEnv("STORAGE_PUBLIC_URL", ""),
		},
		History: HistoryConfig{
			Key: getEnv("HISTORY_KEY", "analysisHistory"),
		},
	}

	if err := envconfig.Process("GEMINI", &config.Gemini); err != nil {
		return nil, fmt.Errorf("failed to load Gemini configuration: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Gemini.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required")
	}
	if c.Gemini.MaxPollAttempts <= 0 {
		return fmt.Errorf("GEMINI_MAX_POLL_ATTEMPTS must be positive")
	}
	return nil
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}
