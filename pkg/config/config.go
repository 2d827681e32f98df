package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/gorm/logger"
)

// TenantEntry holds one tenant's database credentials. Host and port are
// process-wide (deployment-level) and live on DBConfig, not here.
type TenantEntry struct {
	TenantID string
	DBName   string
	User     string
	Password string
}

// DBConfig holds database configuration shared by every tenant connection
type DBConfig struct {
	Host            string
	Port            string
	SSLMode         string
	AutoMigrate     bool
	ConnectTimeout  time.Duration
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	LogLevel        logger.LogLevel
}

// DSN returns the PostgreSQL connection string for one tenant
func (c *DBConfig) DSN(t *TenantEntry) string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, t.User, t.Password, t.DBName, c.SSLMode)
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port string
	Env  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	SigningKey        string
	RefreshSigningKey string
	ExpirationHours   int
	RefreshExpiration time.Duration
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string
}

// Config holds all configuration
type Config struct {
	ServiceName string
	DB          DBConfig
	Server      ServerConfig
	JWT         JWTConfig
	Log         LogConfig
	Tenants     []TenantEntry
}

// defaultTenants mirrors the three companies the system ships with. Deployments
// override the full table via the TENANTS environment variable.
var defaultTenants = []TenantEntry{
	{TenantID: "empresa1", DBName: "mini_sivesoft_backend", User: "postgres", Password: "12345"},
	{TenantID: "empresa2", DBName: "mini_sivesoft_backend_2", User: "postgres", Password: "12345"},
	{TenantID: "empresa3", DBName: "mini_sivesoft_backend_3", User: "postgres", Password: "12345"},
}

// Load loads configuration from environment variables
func Load(serviceName string) (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		// Not returning error as .env file is optional
		fmt.Printf("Warning: .env file not found, using environment variables\n")
	}

	tenants, err := parseTenants(getEnv("TENANTS", ""))
	if err != nil {
		return nil, err
	}

	config := &Config{
		ServiceName: serviceName,
		DB: DBConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			SSLMode:         getEnv("DB_SSL_MODE", "disable"),
			AutoMigrate:     getEnvAsBool("DB_AUTO_MIGRATE", true),
			ConnectTimeout:  getEnvAsDuration("DB_CONNECT_TIMEOUT", 10*time.Second),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 10),
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 100),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", 1*time.Hour),
			LogLevel:        getEnvAsLogLevel("DB_LOG_LEVEL", logger.Warn),
		},
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
			Env:  getEnv("APP_ENV", "development"),
		},
		JWT: JWTConfig{
			SigningKey:        getEnv("JWT_SIGNING_KEY", "defaultsecretkey"),
			RefreshSigningKey: getEnv("JWT_REFRESH_SECRET", "defaultrefreshsecret"),
			ExpirationHours:   getEnvAsInt("JWT_EXPIRATION_HOURS", 24),
			RefreshExpiration: getEnvAsDuration("JWT_REFRESH_EXPIRATION", 7*24*time.Hour),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Tenants: tenants,
	}

	return config, nil
}

// parseTenants parses the TENANTS variable. Format is a comma-separated list of
// "tenantId:dbName:user:password" entries. An empty value keeps the built-in table.
func parseTenants(raw string) ([]TenantEntry, error) {
	if strings.TrimSpace(raw) == "" {
		out := make([]TenantEntry, len(defaultTenants))
		copy(out, defaultTenants)
		return out, nil
	}

	var tenants []TenantEntry
	for _, part := range strings.Split(raw, ",") {
		fields := strings.Split(strings.TrimSpace(part), ":")
		if len(fields) != 4 {
			return nil, fmt.Errorf("invalid TENANTS entry %q, want tenantId:dbName:user:password", part)
		}
		tenants = append(tenants, TenantEntry{
			TenantID: fields[0],
			DBName:   fields[1],
			User:     fields[2],
			Password: fields[3],
		})
	}
	return tenants, nil
}

// Helper function to get environment variables with defaults
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// Helper function to get environment variables as integers
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// Helper function to get environment variables as booleans
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// Helper function to get environment variables as durations
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// Helper function to get environment variables as log levels
func getEnvAsLogLevel(key string, defaultValue logger.LogLevel) logger.LogLevel {
	valueStr := getEnv(key, "")
	switch valueStr {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "warn":
		return logger.Warn
	case "info":
		return logger.Info
	default:
		return defaultValue
	}
}
