package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Storage drivers understood by the database manager.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config holds application configuration
type Config struct {
	// Server
	Env      string
	BindAddr string
	Port     string

	// Storage
	StorageDriver string
	SQLitePath    string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBSSLMode     string

	// Session tokens
	JWTSecret        string
	JWTExpirationDur time.Duration

	// FormatLocale is the BCP 47 tag used for thousands grouping in
	// formatted amounts.
	FormatLocale string
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		Env:      getEnv("ENV", "development"),
		BindAddr: getEnv("BIND_ADDR", "127.0.0.1"),
		Port:     getEnv("PORT", "8080"),

		StorageDriver: strings.ToLower(getEnv("STORAGE_DRIVER", DriverSQLite)),
		SQLitePath:    getEnv("SQLITE_PATH", "expense-tracker.db"),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBUser:        getEnv("DB_USER", "expenses"),
		DBPassword:    getEnv("DB_PASSWORD", "expenses"),
		DBName:        getEnv("DB_NAME", "expenses"),
		DBSSLMode:     getEnv("DB_SSLMODE", "disable"),

		JWTSecret: getEnv("JWT_SECRET", "fallback-secret-key-for-dev-only"),

		FormatLocale: getEnv("FORMAT_LOCALE", "en-IN"),
	}

	switch config.StorageDriver {
	case DriverSQLite, DriverPostgres, DriverMemory:
	default:
		log.Printf("Warning: unknown STORAGE_DRIVER '%s', falling back to sqlite\n", config.StorageDriver)
		config.StorageDriver = DriverSQLite
	}

	// Parse JWT expiration duration
	expStr := getEnv("JWT_EXPIRES_IN", "24h")
	expDur, err := time.ParseDuration(expStr)
	if err != nil {
		log.Printf("Warning: invalid JWT_EXPIRES_IN value '%s', falling back to 24h\n", expStr)
		expDur = 24 * time.Hour
	}
	config.JWTExpirationDur = expDur

	appConfig = config
	return config, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// Addr returns the listen address for the companion API.
func (c *Config) Addr() string {
	return c.BindAddr + ":" + c.Port
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
