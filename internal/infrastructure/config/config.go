// internal/infrastructure/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Database backends
const (
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
)

// Schedule stores
const (
	StorePostgres = "postgres"
	StoreMongo    = "mongo"
)

// Config holds all configuration for the application
type Config struct {
	// App
	AppVersion string
	AppEnv     string
	LogLevel   string

	// Server
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// Relational catalog
	DBBackend string
	DBDSN     string

	// MongoDB
	MongoURI      string
	MongoDB       string
	MongoUser     string
	MongoPassword string

	// Where generated schedules are stored
	ScheduleStore string

	// Redis route cache, disabled when RedisAddr is empty
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RouteCacheTTL time.Duration

	// Generator
	Turnaround        time.Duration
	MaxLayoverMinutes int
	ClosingWindow     time.Duration
	DefaultPolicy     string

	MetricsNamespace string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	// Set defaults and override with env vars
	config := &Config{
		AppVersion: getEnv("APP_VERSION", "1.0.0"),
		AppEnv:     getEnv("APP_ENV", "development"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),

		Port:         getEnv("PORT", "8080"),
		ReadTimeout:  time.Duration(getEnvAsInt("READ_TIMEOUT", 30)) * time.Second,
		WriteTimeout: time.Duration(getEnvAsInt("WRITE_TIMEOUT", 30)) * time.Second,

		DBBackend: strings.ToLower(getEnv("DB_BACKEND", BackendPostgres)),
		DBDSN:     getEnv("DB_DSN", "host=localhost user=postgres dbname=career sslmode=disable"),

		MongoURI:      getEnv("MONGODB_DSN", "mongodb://localhost:27017"),
		MongoDB:       getEnv("MONGO_DB", "career"),
		MongoUser:     getEnv("MONGO_USER", ""),
		MongoPassword: getEnv("MONGO_PASSWORD", ""),

		ScheduleStore: strings.ToLower(getEnv("SCHEDULE_STORE", StorePostgres)),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),
		RouteCacheTTL: time.Duration(getEnvAsInt("ROUTE_CACHE_TTL", 600)) * time.Second,

		Turnaround:        time.Duration(getEnvAsInt("TURNAROUND_MINUTES", 60)) * time.Minute,
		MaxLayoverMinutes: getEnvAsInt("MAX_LAYOVER_MINUTES", 240),
		ClosingWindow:     time.Duration(getEnvAsInt("CLOSING_WINDOW_HOURS", 24)) * time.Hour,
		DefaultPolicy:     strings.ToLower(getEnv("DEFAULT_POLICY", "ranked")),

		MetricsNamespace: getEnv("METRICS_NAMESPACE", "pilot_career"),
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate rejects unknown backends, stores and policies
func (c *Config) Validate() error {
	switch c.DBBackend {
	case BackendPostgres, BackendSQLite:
	default:
		return fmt.Errorf("unsupported DB_BACKEND %q", c.DBBackend)
	}
	switch c.ScheduleStore {
	case StorePostgres, StoreMongo:
	default:
		return fmt.Errorf("unsupported SCHEDULE_STORE %q", c.ScheduleStore)
	}
	switch c.DefaultPolicy {
	case "ranked", "weighted":
	default:
		return fmt.Errorf("unsupported DEFAULT_POLICY %q", c.DefaultPolicy)
	}
	if c.Turnaround < 0 {
		return fmt.Errorf("TURNAROUND_MINUTES must not be negative")
	}
	if c.MaxLayoverMinutes < 0 {
		return fmt.Errorf("MAX_LAYOVER_MINUTES must not be negative")
	}
	if c.ClosingWindow <= 0 {
		return fmt.Errorf("CLOSING_WINDOW_HOURS must be positive")
	}
	return nil
}

// Helper functions to get environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}
