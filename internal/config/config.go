package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Storage drivers.
const (
	StorageMongo    = "mongo"
	StoragePostgres = "postgres"
)

// Config holds all configuration for the application.
type Config struct {
	Env      string
	Server   ServerConfig
	Storage  StorageConfig
	Mongo    MongoConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Stripe   StripeConfig
	Kafka    KafkaConfig
	NewRelic NewRelicConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// StorageConfig selects the storage backend.
type StorageConfig struct {
	Driver string
}

// MongoConfig holds MongoDB configuration.
type MongoConfig struct {
	URI               string
	Database          string
	TripCollection    string
	CartCollection    string
	PaymentCollection string
	Transactions      bool
	ConnectTimeout    time.Duration
}

// DatabaseConfig holds PostgreSQL configuration.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// RedisConfig holds Redis configuration. An empty Addr disables Redis.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	CacheTTL time.Duration
}

// StripeConfig holds payment gateway configuration.
type StripeConfig struct {
	SecretKey string
	Currency  string
	APIURL    string
}

// KafkaConfig holds event publishing configuration. No brokers disables it.
type KafkaConfig struct {
	Brokers       []string
	PaymentsTopic string
}

// NewRelicConfig holds New Relic configuration.
type NewRelicConfig struct {
	AppName    string
	LicenseKey string
	Enabled    bool
}

// Load loads configuration from environment variables, after reading a
// .env file from the working directory if one exists.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Env: getEnv("APP_ENV", "development"),
		Server: ServerConfig{
			Port:            getEnv("PORT", "5000"),
			ReadTimeout:     getDurationEnv("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getDurationEnv("SERVER_WRITE_TIMEOUT", 10*time.Second),
			ShutdownTimeout: getDurationEnv("SERVER_SHUTDOWN_TIMEOUT", 5*time.Second),
		},
		Storage: StorageConfig{
			Driver: strings.ToLower(getEnv("STORAGE_DRIVER", StorageMongo)),
		},
		Mongo: MongoConfig{
			URI:               mongoURI(),
			Database:          getEnv("MONGODB_DATABASE", "trip-haven"),
			TripCollection:    getEnv("MONGODB_TRIP_COLLECTION", "trip"),
			CartCollection:    getEnv("MONGODB_CART_COLLECTION", "carts"),
			PaymentCollection: getEnv("MONGODB_PAYMENT_COLLECTION", "payments"),
			Transactions:      getBoolEnv("MONGODB_TRANSACTIONS", false),
			ConnectTimeout:    getDurationEnv("MONGODB_CONNECT_TIMEOUT", 10*time.Second),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("PG_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "trip_haven"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),
			CacheTTL: getDurationEnv("CATALOG_CACHE_TTL", 60*time.Second),
		},
		Stripe: StripeConfig{
			SecretKey: getEnv("STRIPE_SECRET_KEY", ""),
			Currency:  getEnv("STRIPE_CURRENCY", "usd"),
			APIURL:    getEnv("STRIPE_API_URL", ""),
		},
		Kafka: KafkaConfig{
			Brokers:       getListEnv("KAFKA_BROKERS"),
			PaymentsTopic: getEnv("KAFKA_PAYMENTS_TOPIC", "payments.recorded"),
		},
		NewRelic: NewRelicConfig{
			AppName:    getEnv("NEW_RELIC_APP_NAME", "trip-haven"),
			LicenseKey: getEnv("NEW_RELIC_LICENSE_KEY", ""),
			Enabled:    getBoolEnv("NEW_RELIC_ENABLED", false),
		},
	}
}

// mongoURI returns MONGODB_URI, or builds an Atlas SRV URI from
// DB_USERNAME, DB_PASSWORD and MONGODB_HOST.
func mongoURI() string {
	if uri := os.Getenv("MONGODB_URI"); uri != "" {
		return uri
	}

	user := os.Getenv("DB_USERNAME")
	host := getEnv("MONGODB_HOST", "")
	if user == "" || host == "" {
		return "mongodb://localhost:27017"
	}

	creds := url.UserPassword(user, os.Getenv("DB_PASSWORD"))
	return fmt.Sprintf("mongodb+srv://%s@%s/?retryWrites=true&w=majority", creds.String(), host)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getListEnv(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}

	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
