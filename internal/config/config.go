package config

import (
	"errors"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the API server.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	NewRelic NewRelicConfig
	Auth     AuthConfig
	RabbitMQ RabbitMQConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
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

// RedisConfig holds Redis configuration.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// NewRelicConfig holds New Relic configuration.
type NewRelicConfig struct {
	AppName    string
	LicenseKey string
	Enabled    bool
}

// AuthConfig holds access token configuration.
type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

// PlaceholderJWTSecret is the value shipped in example env files. It is never accepted.
const PlaceholderJWTSecret = "change-me"

// ErrInsecureJWTSecret is returned by Validate when JWT_SECRET is unset or left as the placeholder.
var ErrInsecureJWTSecret = errors.New("JWT_SECRET must be set to a non-placeholder value")

// Validate rejects configurations that would let anyone forge access tokens.
func (c AuthConfig) Validate() error {
	if c.JWTSecret == "" || c.JWTSecret == PlaceholderJWTSecret {
		return ErrInsecureJWTSecret
	}
	return nil
}

// RabbitMQConfig holds event broker configuration. An empty URL disables publishing.
type RabbitMQConfig struct {
	URL      string
	Exchange string
}

// SignupConfig holds configuration for the captain signup client.
type SignupConfig struct {
	BaseURL       string
	TokenFile     string
	RedirectDelay time.Duration
	Timeout       time.Duration
}

// LoadDotEnv loads variables from a .env file in the working directory if one exists.
// Variables already set in the environment win.
func LoadDotEnv() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("failed to load .env file: %v", err)
	}
}

// Load loads server configuration from environment variables.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  getDurationEnv("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout: getDurationEnv("SERVER_WRITE_TIMEOUT", 10*time.Second),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "gantabya"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),
		},
		NewRelic: NewRelicConfig{
			AppName:    getEnv("NEW_RELIC_APP_NAME", "gantabya-accounts"),
			LicenseKey: getEnv("NEW_RELIC_LICENSE_KEY", ""),
			Enabled:    getBoolEnv("NEW_RELIC_ENABLED", false),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", ""),
			TokenTTL:  getDurationEnv("JWT_TTL", 24*time.Hour),
		},
		RabbitMQ: RabbitMQConfig{
			URL:      getEnv("RABBITMQ_URL", ""),
			Exchange: getEnv("RABBITMQ_EXCHANGE", "gantabya.accounts"),
		},
	}
}

// LoadSignup loads signup client configuration from environment variables.
func LoadSignup() *SignupConfig {
	return &SignupConfig{
		BaseURL:       getEnv("BASE_URL", "http://localhost:8080"),
		TokenFile:     getEnv("SIGNUP_TOKEN_FILE", defaultTokenFile()),
		RedirectDelay: getDurationEnv("SIGNUP_REDIRECT_DELAY", time.Second),
		Timeout:       getDurationEnv("SIGNUP_TIMEOUT", 15*time.Second),
	}
}

func defaultTokenFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "storage.json"
	}
	return filepath.Join(home, ".gantabya", "storage.json")
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
