package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Storage drivers supported for cart persistence.
const (
	StorageMemory   = "memory"
	StorageSQLite   = "sqlite"
	StorageRedis    = "redis"
	StoragePostgres = "postgres"
)

// Catalog sources.
const (
	CatalogSourceFile = "file"
	CatalogSourceS3   = "s3"
	CatalogSourceHTTP = "http"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Storage  StorageConfig
	Logger   LoggerConfig
	Auth     AuthConfig
	Catalog  CatalogConfig
	S3       S3Config
	Session  SessionConfig
	Checkout CheckoutConfig
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Host string
	Port int
}

// DatabaseConfig holds database-related configuration.
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Database        string
	MaxConnections  int
	MinConnections  int
	MaxConnLifetime int // seconds
}

// RedisConfig holds Redis connection details.
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	Database int
}

// StorageConfig selects where carts are persisted.
type StorageConfig struct {
	Driver     string
	SQLitePath string
	// CartTTL expires persisted carts. Zero keeps them forever.
	CartTTL time.Duration
}

// LoggerConfig holds logger-related configuration.
type LoggerConfig struct {
	Level  string
	Format string // "json" or "console"
}

// AuthConfig holds authentication configuration for admin endpoints.
type AuthConfig struct {
	APIKey string
}

// CatalogConfig describes where the product catalog document lives.
type CatalogConfig struct {
	Source string
	Path   string // local path, or S3 key relative to S3.Prefix
	URL    string
}

// S3Config holds AWS S3 configuration for the catalog document.
type S3Config struct {
	Bucket string
	Region string
	Prefix string // Path prefix within bucket (e.g., "catalog/")
}

// SessionConfig controls cart session handling.
type SessionConfig struct {
	CookieName   string
	CookieSecure bool
	IdleTimeout  time.Duration
}

// CheckoutConfig holds the messaging target and order message settings.
type CheckoutConfig struct {
	// MessagingLink is either a phone number ("905488417908") or a
	// pre-shortened link ("wa.link/i9n1mn").
	MessagingLink  string
	Currency       string
	CurrencySymbol string
}

// Load loads configuration from environment variables. A .env file in the
// working directory, when present, is applied first without overriding
// variables that are already set.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvAsInt("SERVER_PORT", 8080),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnvAsInt("DB_PORT", 5432),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", ""),
			Database:        getEnv("DB_NAME", "storefront"),
			MaxConnections:  getEnvAsInt("DB_MAX_CONNECTIONS", 25),
			MinConnections:  getEnvAsInt("DB_MIN_CONNECTIONS", 5),
			MaxConnLifetime: getEnvAsInt("DB_MAX_CONN_LIFETIME", 300),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvAsInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			Database: getEnvAsInt("REDIS_DB", 0),
		},
		Storage: StorageConfig{
			Driver:     strings.ToLower(getEnv("STORAGE_DRIVER", StorageSQLite)),
			SQLitePath: getEnv("SQLITE_PATH", "data/carts.db"),
			CartTTL:    getEnvAsDuration("CART_TTL", 30*24*time.Hour),
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Auth: AuthConfig{
			APIKey: getEnv("API_KEY", ""),
		},
		Catalog: CatalogConfig{
			Source: strings.ToLower(getEnv("CATALOG_SOURCE", CatalogSourceFile)),
			Path:   getEnv("CATALOG_PATH", "data/products.json"),
			URL:    getEnv("CATALOG_URL", ""),
		},
		S3: S3Config{
			Bucket: getEnv("S3_BUCKET", ""),
			Region: getEnv("S3_REGION", "us-east-1"),
			Prefix: getEnv("S3_PREFIX", "catalog/"),
		},
		Session: SessionConfig{
			CookieName:   getEnv("SESSION_COOKIE_NAME", "cart_id"),
			CookieSecure: getEnvAsBool("SESSION_COOKIE_SECURE", false),
			IdleTimeout:  getEnvAsDuration("SESSION_IDLE_TIMEOUT", 30*time.Minute),
		},
		Checkout: CheckoutConfig{
			MessagingLink:  getEnv("MESSAGING_LINK", ""),
			Currency:       getEnv("CURRENCY", "TRY"),
			CurrencySymbol: getEnv("CURRENCY_SYMBOL", "TL"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration. A missing messaging link is not an
// error here: checkout reports it to the customer instead.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	switch c.Storage.Driver {
	case StorageMemory:
	case StorageSQLite:
		if c.Storage.SQLitePath == "" {
			return fmt.Errorf("sqlite path is required when storage driver is sqlite")
		}
	case StorageRedis:
		if c.Redis.Host == "" {
			return fmt.Errorf("redis host is required when storage driver is redis")
		}
		if c.Redis.Port < 1 || c.Redis.Port > 65535 {
			return fmt.Errorf("invalid redis port: %d", c.Redis.Port)
		}
	case StoragePostgres:
		if err := c.Database.validate(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("invalid storage driver: %s (must be memory, sqlite, redis, or postgres)", c.Storage.Driver)
	}

	if c.Storage.CartTTL < 0 {
		return fmt.Errorf("cart TTL cannot be negative")
	}

	switch c.Catalog.Source {
	case CatalogSourceFile:
		if c.Catalog.Path == "" {
			return fmt.Errorf("catalog path is required")
		}
	case CatalogSourceS3:
		if c.S3.Bucket == "" {
			return fmt.Errorf("S3 bucket is required when catalog source is s3")
		}
		if c.S3.Region == "" {
			return fmt.Errorf("S3 region is required when catalog source is s3")
		}
		if c.Catalog.Path == "" {
			return fmt.Errorf("catalog path is required")
		}
	case CatalogSourceHTTP:
		if c.Catalog.URL == "" {
			return fmt.Errorf("catalog URL is required when catalog source is http")
		}
	default:
		return fmt.Errorf("invalid catalog source: %s (must be file, s3, or http)", c.Catalog.Source)
	}

	if c.Session.CookieName == "" {
		return fmt.Errorf("session cookie name is required")
	}

	if c.Session.IdleTimeout <= 0 {
		return fmt.Errorf("session idle timeout must be positive")
	}

	if c.Checkout.Currency == "" {
		return fmt.Errorf("currency is required")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLogLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Logger.Format != "json" && c.Logger.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.Logger.Format)
	}

	return nil
}

func (c *DatabaseConfig) validate() error {
	if c.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid database port: %d", c.Port)
	}

	if c.User == "" {
		return fmt.Errorf("database user is required")
	}

	if c.Database == "" {
		return fmt.Errorf("database name is required")
	}

	if c.MaxConnections < 1 {
		return fmt.Errorf("database max connections must be at least 1")
	}

	if c.MinConnections < 1 {
		return fmt.Errorf("database min connections must be at least 1")
	}

	if c.MinConnections > c.MaxConnections {
		return fmt.Errorf("database min connections cannot exceed max connections")
	}

	return nil
}

// ConnectionString returns the PostgreSQL connection string.
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.Database,
	)
}

// Address returns the Redis address.
func (c *RedisConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Address returns the server address.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Locations returns the catalog documents to load. Path and URL may list
// several comma-separated entries; products are merged in the listed order.
func (c *CatalogConfig) Locations() []string {
	raw := c.Path
	if c.Source == CatalogSourceHTTP {
		raw = c.URL
	}

	var locations []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			locations = append(locations, part)
		}
	}
	return locations
}

// AdminEnabled reports whether admin endpoints should be mounted.
func (c *AuthConfig) AdminEnabled() bool {
	return c.APIKey != ""
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value.
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value.
func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvAsDuration retrieves an environment variable as a time.Duration ("90s", "30m")
// or returns a default value.
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
