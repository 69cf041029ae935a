package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for our application
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Logger    LoggerConfig
	JWT       JWTConfig
	CORS      CORSConfig
	Scheduler SchedulerConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port    string
	GinMode string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// RedisConfig holds the refresh-token store configuration
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig holds logger configuration
type LoggerConfig struct {
	Level  string
	Format string
}

// JWTConfig holds token configuration
type JWTConfig struct {
	Secret       string
	AccessTTL    time.Duration
	RefreshTTL   time.Duration
	CookieSecure bool
}

// CORSConfig holds CORS configuration
type CORSConfig struct {
	AllowedOrigins string
}

// SchedulerConfig holds scheduler configuration
type SchedulerConfig struct {
	InvoiceCronExpression string
	DueDay                int
	Enabled               bool
}

// RateLimitConfig holds the login rate limit
type RateLimitConfig struct {
	LoginPerMinute int
	LoginBurst     int
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using environment variables")
	}

	config := &Config{
		Server: ServerConfig{
			Port:    getEnv("PORT", "8080"),
			GinMode: getEnv("GIN_MODE", "debug"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "apartment"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "debug"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		JWT: JWTConfig{
			Secret:       getEnv("JWT_SECRET", "change-me"),
			AccessTTL:    getEnvAsDuration("JWT_ACCESS_TTL", 15*time.Minute),
			RefreshTTL:   getEnvAsDuration("JWT_REFRESH_TTL", 7*24*time.Hour),
			CookieSecure: getEnvAsBool("JWT_COOKIE_SECURE", false),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://127.0.0.1:3000,http://localhost:5173"),
		},
		Scheduler: SchedulerConfig{
			InvoiceCronExpression: getEnv("INVOICE_CRON_EXPRESSION", "0 0 1 1 * *"),
			DueDay:                getEnvAsInt("INVOICE_DUE_DAY", 15),
			Enabled:               getEnvAsBool("SCHEDULER_ENABLED", true),
		},
		RateLimit: RateLimitConfig{
			LoginPerMinute: getEnvAsInt("LOGIN_RATE_PER_MINUTE", 10),
			LoginBurst:     getEnvAsInt("LOGIN_RATE_BURST", 5),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate rejects configuration the service cannot run with
func (c *Config) Validate() error {
	if strings.TrimSpace(c.JWT.Secret) == "" {
		return fmt.Errorf("JWT_SECRET must not be empty")
	}
	if c.JWT.AccessTTL <= 0 || c.JWT.RefreshTTL <= 0 {
		return fmt.Errorf("token lifetimes must be positive")
	}
	if c.Scheduler.DueDay < 1 || c.Scheduler.DueDay > 28 {
		return fmt.Errorf("INVOICE_DUE_DAY must be between 1 and 28, got %d", c.Scheduler.DueDay)
	}
	if c.RateLimit.LoginPerMinute <= 0 || c.RateLimit.LoginBurst <= 0 {
		return fmt.Errorf("login rate limit must be positive")
	}
	return nil
}

// GetDSN returns PostgreSQL connection string
func (d *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// AllowedOriginList splits the comma separated origin list
func (c *CORSConfig) AllowedOriginList() []string {
	var origins []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// getEnv gets an environment variable with a fallback value
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getEnvAsInt gets an environment variable as integer with a fallback value
func getEnvAsInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvAsBool gets an environment variable as bool with a fallback value
func getEnvAsBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

// getEnvAsDuration gets an environment variable as duration ("15m", "168h") with a fallback value
func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
