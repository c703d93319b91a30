package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	PostgreSQL PostgreSQLConfig
	Server     ServerConfig
	Listings   ListingsConfig
	OpenAI     OpenAIConfig
	Redis      RedisConfig
	Auth       AuthConfig
	Assistant  AssistantConfig
}

// PostgreSQLConfig holds PostgreSQL database configuration
type PostgreSQLConfig struct {
	DSN                string // full connection string, wins over the individual fields
	Host               string
	Port               int
	User               string
	Password           string
	Database           string
	SSLMode            string
	MaxConnections     int
	MaxIdleConnections int
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port           int
	Host           string
	GinMode        string
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

// ListingsConfig holds listing page configuration
type ListingsConfig struct {
	PageSize     int
	SimilarLimit int
}

// OpenAIConfig holds the completion API configuration.
// APIKey is server-side only and is never sent to the browser.
type OpenAIConfig struct {
	APIKey         string
	APIBase        string
	ChatModel      string
	EmbeddingModel string
	Timeout        int // seconds, 0 leaves the network stack default
	Enabled        bool
}

// RedisConfig holds the listing page cache configuration
type RedisConfig struct {
	Enabled  bool
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// AuthConfig holds the settings used to verify tokens from the auth service
type AuthConfig struct {
	JWTSecret string
	AdminRole string
}

// AssistantConfig holds chat session housekeeping settings
type AssistantConfig struct {
	SessionIdleTimeout time.Duration
	PruneInterval      time.Duration
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (optional)
	_ = godotenv.Load()

	cfg := &Config{
		PostgreSQL: PostgreSQLConfig{
			DSN:                getEnv("DATABASE_URL", getEnv("PG_DSN", "")),
			Host:               getEnv("PG_HOST", "localhost"),
			Port:               getEnvAsInt("PG_PORT", 5432),
			User:               getEnv("PG_USER", "postgres"),
			Password:           getEnv("PG_PASSWORD", ""),
			Database:           getEnv("PG_DATABASE", "estate_portal"),
			SSLMode:            getEnv("PG_SSLMODE", "disable"),
			MaxConnections:     getEnvAsInt("PG_MAX_CONNECTIONS", 25),
			MaxIdleConnections: getEnvAsInt("PG_MAX_IDLE_CONNECTIONS", 5),
		},
		Server: ServerConfig{
			Port:           getEnvAsInt("SERVER_PORT", 8080),
			Host:           getEnv("SERVER_HOST", "0.0.0.0"),
			GinMode:        getEnv("GIN_MODE", "release"),
			AllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", "*"),
			AllowedMethods: getEnvAsList("CORS_ALLOWED_METHODS", "GET,POST,PUT,PATCH,DELETE,OPTIONS"),
			AllowedHeaders: getEnvAsList("CORS_ALLOWED_HEADERS", "authorization,x-client-info,apikey,content-type"),
		},
		Listings: ListingsConfig{
			PageSize:     getEnvAsInt("LISTINGS_PAGE_SIZE", 9),
			SimilarLimit: getEnvAsInt("LISTINGS_SIMILAR_LIMIT", 4),
		},
		OpenAI: OpenAIConfig{
			APIKey:         getEnv("OPENAI_API_KEY", ""),
			APIBase:        strings.TrimRight(getEnv("OPENAI_API_BASE", "https://api.openai.com/v1"), "/"),
			ChatModel:      getEnv("OPENAI_CHAT_MODEL", "gpt-4o-mini"),
			EmbeddingModel: getEnv("OPENAI_EMBEDDING_MODEL", "text-embedding-3-small"),
			Timeout:        getEnvAsInt("OPENAI_TIMEOUT", 0),
			Enabled:        getEnv("OPENAI_API_KEY", "") != "",
		},
		Redis: RedisConfig{
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			TTL:      time.Duration(getEnvAsInt("REDIS_TTL_SECONDS", 60)) * time.Second,
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("AUTH_JWT_SECRET", ""),
			AdminRole: getEnv("AUTH_ADMIN_ROLE", "admin"),
		},
		Assistant: AssistantConfig{
			SessionIdleTimeout: time.Duration(getEnvAsInt("ASSISTANT_SESSION_IDLE_MINUTES", 30)) * time.Minute,
			PruneInterval:      time.Duration(getEnvAsInt("ASSISTANT_PRUNE_INTERVAL_MINUTES", 5)) * time.Minute,
		},
	}

	if cfg.Listings.PageSize <= 0 {
		return nil, fmt.Errorf("LISTINGS_PAGE_SIZE must be positive, got %d", cfg.Listings.PageSize)
	}

	if cfg.Assistant.PruneInterval <= 0 {
		return nil, fmt.Errorf("ASSISTANT_PRUNE_INTERVAL_MINUTES must be positive")
	}

	return cfg, nil
}

// GetPostgreSQLDSN returns PostgreSQL connection string
func (c *Config) GetPostgreSQLDSN() string {
	if c.PostgreSQL.DSN != "" {
		return c.PostgreSQL.DSN
	}

	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.PostgreSQL.Host,
		c.PostgreSQL.Port,
		c.PostgreSQL.User,
		c.PostgreSQL.Password,
		c.PostgreSQL.Database,
		c.PostgreSQL.SSLMode,
	)
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

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid boolean value for %s, using default %t", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsList(key, defaultValue string) []string {
	raw := getEnv(key, defaultValue)
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
