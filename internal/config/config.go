package config

import (
	"fmt"     // For DSN formatting
	"os"      // For environment variables
	"strconv" // For string to int conversion
	"strings" // For list parsing
	"time"    // For durations

	"github.com/joho/godotenv" // For loading .env files
)

// Config holds the application configuration
type Config struct {
	AppPort           string        // Application port
	DBDriver          string        // Database driver: mysql, postgres or sqlite
	DBUser            string        // Database user
	DBPassword        string        // Database password
	DBHost            string        // Database host
	DBPort            string        // Database port
	DBName            string        // Database name (file path for sqlite)
	DatabaseURL       string        // Full DSN, overrides the composed one when set
	DBMaxOpenConns    int           // Pool size
	DBMaxIdleConns    int           // Idle connections kept in the pool
	DBConnMaxLifetime time.Duration // Connection recycle interval
	EventBroker       string        // Event broker: kafka, redis or none
	KafkaBrokers      []string      // Kafka bootstrap addresses
	RedisAddr         string        // Redis server address
	RedisPass         string        // Redis password
	RedisDB           int           // Redis database number
	PublishWorkers    int           // Concurrent event senders
	PublishQueueSize  int           // Pending events buffered before dropping
	PublishTimeout    time.Duration // Max wait for broker acknowledgment
	JWTSecret         string        // JWT secret key, login issues no token when empty
	LogLevel          string        // logrus level name
	IsProd            bool          // Is production environment
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	return &Config{
		AppPort:           getEnv("APP_PORT", "8080"),
		DBDriver:          strings.ToLower(getEnv("DB_DRIVER", "mysql")),
		DBUser:            os.Getenv("DB_USER"),
		DBPassword:        os.Getenv("DB_PASSWORD"),
		DBHost:            getEnv("DB_HOST", "127.0.0.1"),
		DBPort:            getEnv("DB_PORT", "3306"),
		DBName:            os.Getenv("DB_NAME"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		DBMaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
		DBConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
		EventBroker:       strings.ToLower(getEnv("EVENT_BROKER", "kafka")),
		KafkaBrokers:      splitList(os.Getenv("KAFKA_BOOTSTRAP_SERVERS")),
		RedisAddr:         os.Getenv("REDIS_ADDR"),
		RedisPass:         os.Getenv("REDIS_PASS"),
		RedisDB:           getEnvAsInt("REDIS_DB", 0),
		PublishWorkers:    getEnvAsInt("PUBLISH_WORKERS", 4),
		PublishQueueSize:  getEnvAsInt("PUBLISH_QUEUE_SIZE", 256),
		PublishTimeout:    getEnvAsDuration("PUBLISH_TIMEOUT", 60*time.Second),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		IsProd:            os.Getenv("IS_PROD") == "true",
	}
}

// DSN returns the data source name for the configured driver.
// SQLite DSNs always carry the foreign key pragma, the cascade depends on it.
func (c *Config) DSN() string {
	if c.DBDriver == "sqlite" {
		path := c.DBName
		if c.DatabaseURL != "" {
			path = c.DatabaseURL
		}
		return withForeignKeys(path)
	}
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	switch c.DBDriver {
	case "postgres":
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort)
	default:
		return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName + "?parseTime=true"
	}
}

func withForeignKeys(dsn string) string {
	if strings.Contains(dsn, "_foreign_keys=") || strings.Contains(dsn, "_fk=") {
		return dsn
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&_foreign_keys=on"
	}
	return dsn + "?_foreign_keys=on"
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil && v > 0 {
		return v
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if v, err := time.ParseDuration(os.Getenv(key)); err == nil && v > 0 {
		return v
	}
	return defaultValue
}

// splitList parses a comma-separated list, dropping blanks
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
