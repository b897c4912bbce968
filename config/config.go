package config

import (
	"fmt"
	"os"
	"strconv"
	"sync"

	"mentorhub/database"
)

// Config holds all application configuration
type Config struct {
	// Database configuration
	DatabaseURL  string
	DatabaseName string

	// HTTP server configuration
	HTTPAddr string

	// Redis configuration; caching is disabled when the address is empty
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Booking configuration
	WorkdayStartHour int // Hour in UTC when bookable slots begin (0-23)
	WorkdayEndHour   int // Hour in UTC when bookable slots end (0-23)

	// Environment
	Environment string // "development", "production" or "test"
}

var (
	instance *Config
	once     sync.Once
	mu       sync.Mutex // Protects instance for test setup
)

// Get returns the global configuration instance
func Get() *Config {
	mu.Lock()
	defer mu.Unlock()

	// If instance is already set (e.g., by tests), return it
	if instance != nil {
		return instance
	}

	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			if os.Getenv("GO_TEST") == "1" || os.Getenv("ENVIRONMENT") == "test" {
				instance = NewTestConfig()
			} else {
				panic(fmt.Sprintf("failed to load config: %v", err))
			}
		}
	})
	return instance
}

// GetDatabaseURL constructs the full database URL by combining base URL and database name
func (c *Config) GetDatabaseURL() string {
	return database.ConstructDatabaseURL(c.DatabaseURL, c.DatabaseName)
}

// load loads configuration from environment variables
func load() (*Config, error) {
	config := &Config{
		// Database
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		DatabaseName: os.Getenv("DATABASE_NAME"),

		// HTTP
		HTTPAddr: getEnvWithDefault("HTTP_ADDR", ":8080"),

		// Redis
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		// Booking defaults
		WorkdayStartHour: 9,
		WorkdayEndHour:   18,

		// Environment
		Environment: os.Getenv("ENVIRONMENT"),
	}

	// Override defaults if environment variables are set
	if db := os.Getenv("REDIS_DB"); db != "" {
		if parsed, err := strconv.Atoi(db); err == nil {
			config.RedisDB = parsed
		}
	}
	if hour := os.Getenv("WORKDAY_START_HOUR"); hour != "" {
		if parsed, err := strconv.Atoi(hour); err == nil {
			config.WorkdayStartHour = parsed
		}
	}
	if hour := os.Getenv("WORKDAY_END_HOUR"); hour != "" {
		if parsed, err := strconv.Atoi(hour); err == nil {
			config.WorkdayEndHour = parsed
		}
	}

	// Set default environment if not specified
	if config.Environment == "" {
		config.Environment = "development"
	}

	if config.Environment != "test" {
		// Validate required configuration
		if config.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required")
		}
	}
	if config.WorkdayStartHour < 0 || config.WorkdayEndHour > 24 || config.WorkdayStartHour >= config.WorkdayEndHour {
		return nil, fmt.Errorf("invalid workday window %d-%d", config.WorkdayStartHour, config.WorkdayEndHour)
	}

	return config, nil
}

// getEnvWithDefault returns the environment variable value or a default if not set
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Test helpers - only use in tests

// SetTestConfig overrides the global config instance for testing
// This should only be called from test files
func SetTestConfig(testConfig *Config) {
	mu.Lock()
	defer mu.Unlock()
	instance = testConfig
}

// ResetConfig resets the global config instance and sync.Once for testing
// This should only be called from test files
func ResetConfig() {
	mu.Lock()
	defer mu.Unlock()
	instance = nil
	once = sync.Once{}
}

// NewTestConfig creates a minimal config suitable for unit tests
func NewTestConfig() *Config {
	return &Config{
		Environment:      "test",
		HTTPAddr:         ":0",
		WorkdayStartHour: 9,
		WorkdayEndHour:   18,
	}
}
