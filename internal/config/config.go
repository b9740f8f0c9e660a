package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int
	Environment string
	LogLevel    string
	LogFormat   string
	LogDir      string

	TrustedProxies []string

	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string

	APIKey      string // API key for the interactive HTTP API
	TokenSecret string // HMAC secret for realtime connection tokens

	TickInterval time.Duration // daemon poll cadence
	TickPort     int           // daemon websocket listen port
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "text"),
		LogDir:      getEnv("LOG_DIR", "logs"),
		DBUser:      getEnv("DB_USER", "postgres"),
		DBPassword:  getEnv("DB_PASSWORD", "postgres"),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBPort:      getEnv("DB_PORT", "5432"),
		DBName:      getEnv("DB_NAME", "vocation"),
		APIKey:      getEnv("API_KEY", ""),
		TokenSecret: getEnv("TOKEN_SECRET", ""),
	}

	port, err := strconv.Atoi(getEnv("PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	tickPort, err := strconv.Atoi(getEnv("TICK_PORT", "8090"))
	if err != nil {
		return nil, fmt.Errorf("invalid TICK_PORT value: %w", err)
	}
	cfg.TickPort = tickPort

	interval, err := time.ParseDuration(getEnv("TICK_INTERVAL", "1s"))
	if err != nil {
		return nil, fmt.Errorf("invalid TICK_INTERVAL value: %w", err)
	}
	if interval <= 0 {
		return nil, fmt.Errorf("TICK_INTERVAL must be positive")
	}
	cfg.TickInterval = interval

	if proxies := getEnv("TRUSTED_PROXIES", ""); proxies != "" {
		for _, p := range strings.Split(proxies, ",") {
			if p = strings.TrimSpace(p); p != "" {
				cfg.TrustedProxies = append(cfg.TrustedProxies, p)
			}
		}
	}

	return cfg, nil
}

// RequireAPIKey validates that the API key is configured.
// The interactive server refuses to start without it.
func (c *Config) RequireAPIKey() error {
	if c.APIKey == "" {
		return fmt.Errorf("API_KEY environment variable must be set for security")
	}
	return nil
}

// RequireTokenSecret validates that the realtime signing secret is configured.
// The tick daemon must fail fast before touching the store when it is absent.
func (c *Config) RequireTokenSecret() error {
	if c.TokenSecret == "" {
		return fmt.Errorf("TOKEN_SECRET environment variable must be set")
	}
	return nil
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
