package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/franciscosanchezn/gin-user-directory/internal/database"
	"github.com/sirupsen/logrus"
)

// Create a new instance of the logger
// Configure it to log at the desired level
// and format it as JSON for structured logging
var log = logrus.New()

func init() {
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(LevelForEnvironment(GetEnvWithDefault("APP_ENV", EnvDevelopment)))
}

// SetLogLevel adjusts the config logger level.
func SetLogLevel(level logrus.Level) {
	log.SetLevel(level)
}

// Known values of APP_ENV.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// DefaultAuthTokenSecret is only acceptable outside production.
const DefaultAuthTokenSecret = "development-only-secret"

// Config used for the application configuration, loading the input from environment variables
type Config struct {
	// Server Configuration
	Environment    string        `json:"environment"`
	Port           int           `json:"port"`
	Host           string        `json:"host"`
	RequestTimeout time.Duration `json:"request_timeout"`
	// WriteRateLimit is the number of write requests allowed per client per minute
	WriteRateLimit int `json:"write_rate_limit"`

	// Database configuration
	DBDriver   string `json:"db_driver"`
	DBPath     string `json:"db_path"`
	DBHost     string `json:"db_host"`
	DBPort     string `json:"db_port"`
	DBName     string `json:"db_name"`
	DBUser     string `json:"db_user"`
	DBPassword string `json:"db_password"`
	DBSSLMode  string `json:"db_sslmode"`

	// Logging configuration
	LogLevel string `json:"log_level"`

	// Identity Configuration
	AuthTokenSecret string `json:"auth_token_secret"`
	AuthCookieName  string `json:"auth_cookie_name"`
	DevLoginEnabled bool   `json:"dev_login_enabled"`
}

// String returns a string representation of Config with sensitive data masked
func (c *Config) String() string {
	return fmt.Sprintf("Config{Environment: %s, Port: %d, Host: %s, RequestTimeout: %s, DBDriver: %s, DBPath: %s, DBHost: %s, DBPort: %s, DBName: %s, DBUser: %s, DBPassword: [REDACTED], LogLevel: %s, AuthTokenSecret: [REDACTED], AuthCookieName: %s, DevLoginEnabled: %t}",
		c.Environment, c.Port, c.Host, c.RequestTimeout, c.DBDriver, c.DBPath, c.DBHost, c.DBPort, c.DBName, c.DBUser, c.LogLevel, c.AuthCookieName, c.DevLoginEnabled)
}

// IsProduction reports whether APP_ENV is production.
func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

// DatabaseConfig maps the DB_* settings onto the database package configuration.
func (c *Config) DatabaseConfig() database.DatabaseConfig {
	return database.DatabaseConfig{
		Driver:   c.DBDriver,
		Host:     c.DBHost,
		Port:     c.DBPort,
		User:     c.DBUser,
		Password: c.DBPassword,
		Name:     c.DBName,
		SSLMode:  c.DBSSLMode,
		Path:     c.DBPath,
	}
}

// LoadConfig read the proper configuration from environment variables and returns a Config struct
// Returns an error if any variable is invalid
func LoadConfig() (*Config, error) {
	log.Info("Loading configuration from environment variables")
	port, err := strconv.Atoi(GetEnvWithDefault("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	timeoutSeconds, err := strconv.Atoi(GetEnvWithDefault("REQUEST_TIMEOUT_SECONDS", "30"))
	if err != nil || timeoutSeconds <= 0 {
		return nil, errors.New("REQUEST_TIMEOUT_SECONDS must be a positive integer")
	}

	writeRateLimit := GetEnvAsType("WRITE_RATE_LIMIT_PER_MINUTE", 30)
	if writeRateLimit <= 0 {
		return nil, errors.New("WRITE_RATE_LIMIT_PER_MINUTE must be a positive integer")
	}

	environment := GetEnvWithDefault("APP_ENV", EnvDevelopment)

	config := &Config{
		Environment:     environment,
		Port:            port,
		Host:            GetEnvWithDefault("APP_HOST", "localhost"),
		RequestTimeout:  time.Duration(timeoutSeconds) * time.Second,
		WriteRateLimit:  writeRateLimit,
		DBDriver:        GetEnvWithDefault("DB_DRIVER", "sqlite"),
		DBPath:          GetEnvWithDefault("DB_PATH", "app.db"),
		DBHost:          GetEnvWithDefault("DB_HOST", "localhost"),
		DBPort:          GetEnvWithDefault("DB_PORT", "5432"),
		DBName:          GetEnvWithDefault("DB_NAME", "users"),
		DBUser:          GetEnvWithDefault("DB_USER", "user"),
		DBPassword:      GetEnvWithDefault("DB_PASSWORD", "password"),
		DBSSLMode:       GetEnvWithDefault("DB_SSLMODE", "disable"),
		LogLevel:        GetEnvWithDefault("LOG_LEVEL", "info"),
		AuthTokenSecret: GetEnvWithDefault("AUTH_TOKEN_SECRET", DefaultAuthTokenSecret),
		AuthCookieName:  GetEnvWithDefault("AUTH_COOKIE_NAME", "directory_identity"),
		DevLoginEnabled: GetEnvAsType("DEV_LOGIN_ENABLED", environment == EnvDevelopment),
	}

	dbConfig := config.DatabaseConfig()
	if driver := dbConfig.NormalizedDriver(); driver != "sqlite" && driver != "postgres" {
		return nil, fmt.Errorf("unsupported DB_DRIVER %q (supported: sqlite, postgres)", config.DBDriver)
	}

	if config.IsProduction() && config.AuthTokenSecret == DefaultAuthTokenSecret {
		return nil, errors.New("AUTH_TOKEN_SECRET must be set in production")
	}
	if config.IsProduction() && config.DevLoginEnabled {
		return nil, errors.New("DEV_LOGIN_ENABLED cannot be used in production")
	}

	log.Infof("Configuration loaded: %s", config.String())
	return config, nil
}

// LevelForEnvironment maps APP_ENV to the default log level.
func LevelForEnvironment(environment string) logrus.Level {
	switch environment {
	case EnvDevelopment:
		return logrus.DebugLevel
	case EnvProduction:
		return logrus.ErrorLevel
	default:
		// Default to info level for other environments
		return logrus.InfoLevel
	}
}

// ResolveLogLevel parses LOG_LEVEL, falling back to the environment default when it is empty or invalid.
func ResolveLogLevel(logLevel, environment string) logrus.Level {
	if logLevel != "" {
		if level, err := logrus.ParseLevel(logLevel); err == nil {
			return level
		}
	}
	return LevelForEnvironment(environment)
}

// Helper to get environment with default values
func GetEnvWithDefault(key, defaultValue string) string {
	log.Tracef("Getting environment variable: %s", key)
	value := os.Getenv(key)
	if value == "" {
		log.Debugf("Environment variable %s not set, using default value", key)
		return defaultValue
	}
	return value
}

// GetEnvAsType retrieves an environment variable and converts it to the specified type
// using generic type handling.
func GetEnvAsType[T any](key string, defaultValue T) T {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var result T
	switch any(result).(type) {
	case int:
		intValue, err := strconv.Atoi(value)
		if err != nil {
			return defaultValue
		}
		return any(intValue).(T)
	case string:
		return any(value).(T)
	case bool:
		boolValue, err := strconv.ParseBool(value)
		if err != nil {
			return defaultValue
		}
		return any(boolValue).(T)
	default:
		return defaultValue // Fallback for unsupported types
	}
}
