package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all configuration values
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	SMTP     SMTPConfig
	OTP      OTPConfig
	Bank     BankConfig
	Currency CurrencyConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port string
	Env  string
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

// URL returns the database connection URL
func (c DatabaseConfig) URL() string {
	return "postgres://" + c.User + ":" + c.Password + "@" + c.Host + ":" + strconv.Itoa(c.Port) + "/" + c.DBName + "?sslmode=" + c.SSLMode + "&prepare_threshold=0"
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	URL      string
	Password string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret        string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

// SMTPConfig holds mail relay configuration
type SMTPConfig struct {
	Host string
	Port int
	User string
	Pass string
	From string
}

// OTPConfig holds one-time-code parameters
type OTPConfig struct {
	Digits      int
	Validity    time.Duration
	MaxAttempts int
	// PendingTTL bounds the pending registration/transfer confirm windows
	PendingTTL time.Duration
	// ResendFloor is the minimum delay before a pending OTP may be regenerated
	ResendFloor time.Duration
}

// BankConfig holds institution-level settings
type BankConfig struct {
	Currency string
	Name     string
}

// CurrencyConfig holds the external exchange-rate API settings
type CurrencyConfig struct {
	APIBaseURL string
	Timeout    time.Duration
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
			Env:  getEnv("SERVER_ENV", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "bankflow"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			URL:      getEnv("REDIS_URL", "redis://localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
		},
		JWT: JWTConfig{
			Secret:        getEnv("JWT_SECRET", "change-this-in-production"),
			AccessExpiry:  getEnvAsDuration("JWT_ACCESS_EXPIRY", 15*time.Minute),
			RefreshExpiry: getEnvAsDuration("JWT_REFRESH_EXPIRY", 7*24*time.Hour),
		},
		SMTP: SMTPConfig{
			Host: getEnv("SMTP_HOST", "localhost"),
			Port: getEnvAsInt("SMTP_PORT", 1025),
			User: getEnv("SMTP_USER", ""),
			Pass: getEnv("SMTP_PASS", ""),
			From: getEnv("SMTP_FROM", "noreply@bankflow.tn"),
		},
		OTP: OTPConfig{
			Digits:      getEnvAsInt("OTP_DIGITS", 6),
			Validity:    getEnvAsDuration("OTP_VALIDITY", 10*time.Minute),
			MaxAttempts: getEnvAsInt("OTP_MAX_ATTEMPTS", 3),
			PendingTTL:  getEnvAsDuration("PENDING_FLOW_TTL", 30*time.Minute),
			ResendFloor: getEnvAsDuration("OTP_RESEND_FLOOR", 60*time.Second),
		},
		Bank: BankConfig{
			Currency: getEnv("BANK_CURRENCY", "TND"),
			Name:     getEnv("BANK_NAME", "BankFlow Tunisia"),
		},
		Currency: CurrencyConfig{
			APIBaseURL: getEnv("CURRENCY_API_BASE_URL", "https://cdn.jsdelivr.net/npm/@fawazahmed0/currency-api@latest/v1"),
			Timeout:    getEnvAsDuration("CURRENCY_API_TIMEOUT", 10*time.Second),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
