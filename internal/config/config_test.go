package config

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEnvWithDefault(t *testing.T) {
	testCases := []struct {
		name         string
		key          string
		defaultValue string
		envValue     string
		expected     string
	}{
		{
			name:         "should return env value when set",
			key:          "TEST_KEY",
			defaultValue: "default",
			envValue:     "from_env",
			expected:     "from_env",
		},
		{
			name:         "should return default when env not set",
			key:          "MISSING_KEY",
			defaultValue: "default_value",
			envValue:     "",
			expected:     "default_value",
		},
		{
			name:         "should return empty string default",
			key:          "EMPTY_KEY",
			defaultValue: "",
			envValue:     "",
			expected:     "",
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.envValue)

			result := GetEnvWithDefault(tt.key, tt.defaultValue)

			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestGetEnvAsType(t *testing.T) {
	t.Setenv("BOOL_KEY", "true")
	t.Setenv("INT_KEY", "42")
	t.Setenv("BAD_INT_KEY", "forty-two")

	assert.True(t, GetEnvAsType("BOOL_KEY", false))
	assert.Equal(t, 42, GetEnvAsType("INT_KEY", 0))
	assert.Equal(t, 7, GetEnvAsType("BAD_INT_KEY", 7))
	assert.Equal(t, "fallback", GetEnvAsType("UNSET_STRING_KEY", "fallback"))
}

// clearEnv blanks every variable LoadConfig reads so defaults apply.
func clearEnv(t *testing.T) {
	for _, v := range []string{
		"APP_ENV", "APP_PORT", "APP_HOST", "REQUEST_TIMEOUT_SECONDS", "LOG_LEVEL",
		"DB_DRIVER", "DB_PATH", "DB_HOST", "DB_PORT", "DB_NAME", "DB_USER", "DB_PASSWORD", "DB_SSLMODE",
		"AUTH_TOKEN_SECRET", "AUTH_COOKIE_NAME", "DEV_LOGIN_ENABLED", "WRITE_RATE_LIMIT_PER_MINUTE",
	} {
		t.Setenv(v, "")
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("successful config load with all env vars", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("APP_ENV", "staging")
		t.Setenv("APP_PORT", "9000")
		t.Setenv("APP_HOST", "0.0.0.0")
		t.Setenv("LOG_LEVEL", "debug")
		t.Setenv("DB_DRIVER", "postgres")
		t.Setenv("DB_NAME", "directory")
		t.Setenv("AUTH_TOKEN_SECRET", "super_secret_key")
		t.Setenv("REQUEST_TIMEOUT_SECONDS", "5")
		t.Setenv("WRITE_RATE_LIMIT_PER_MINUTE", "10")

		config, err := LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, 9000, config.Port)
		assert.Equal(t, "0.0.0.0", config.Host)
		assert.Equal(t, "debug", config.LogLevel)
		assert.Equal(t, "staging", config.Environment)
		assert.Equal(t, 5*time.Second, config.RequestTimeout)
		assert.Equal(t, 10, config.WriteRateLimit)
		assert.False(t, config.DevLoginEnabled)

		dbConfig := config.DatabaseConfig()
		assert.Equal(t, "postgres", dbConfig.Driver)
		assert.Equal(t, "directory", dbConfig.Name)
	})

	t.Run("should fail with invalid port", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("APP_PORT", "not_a_number")

		config, err := LoadConfig()

		assert.Error(t, err)
		assert.Nil(t, config)
	})

	t.Run("should fail with invalid timeout", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("REQUEST_TIMEOUT_SECONDS", "0")

		_, err := LoadConfig()
		assert.Error(t, err)
	})

	t.Run("should fail with non-positive rate limit", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("WRITE_RATE_LIMIT_PER_MINUTE", "-1")

		_, err := LoadConfig()
		assert.Error(t, err)
	})

	t.Run("should fail with unsupported driver", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("DB_DRIVER", "mongodb")

		_, err := LoadConfig()
		assert.ErrorContains(t, err, "unsupported DB_DRIVER")
	})

	t.Run("should require a token secret in production", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("APP_ENV", "production")

		_, err := LoadConfig()
		assert.ErrorContains(t, err, "AUTH_TOKEN_SECRET")
	})

	t.Run("should reject dev login in production", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("APP_ENV", "production")
		t.Setenv("AUTH_TOKEN_SECRET", "prod-secret")
		t.Setenv("DEV_LOGIN_ENABLED", "true")

		_, err := LoadConfig()
		assert.ErrorContains(t, err, "DEV_LOGIN_ENABLED")
	})

	t.Run("should use defaults when optional env vars not set", func(t *testing.T) {
		clearEnv(t)

		config, err := LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, 8080, config.Port)
		assert.Equal(t, "localhost", config.Host)
		assert.Equal(t, "info", config.LogLevel)
		assert.Equal(t, EnvDevelopment, config.Environment)
		assert.Equal(t, "sqlite", config.DBDriver)
		assert.Equal(t, "app.db", config.DBPath)
		assert.Equal(t, 30*time.Second, config.RequestTimeout)
		assert.True(t, config.DevLoginEnabled)
		assert.False(t, config.IsProduction())
	})
}

func TestConfigStringMasksSecrets(t *testing.T) {
	config := &Config{DBPassword: "db-pass", AuthTokenSecret: "token-secret"}
	s := config.String()
	assert.NotContains(t, s, "db-pass")
	assert.NotContains(t, s, "token-secret")
	assert.Contains(t, s, "[REDACTED]")
}

func TestResolveLogLevel(t *testing.T) {
	assert.Equal(t, logrus.WarnLevel, ResolveLogLevel("warn", EnvProduction))
	assert.Equal(t, logrus.ErrorLevel, ResolveLogLevel("", EnvProduction))
	assert.Equal(t, logrus.DebugLevel, ResolveLogLevel("nonsense", EnvDevelopment))
	assert.Equal(t, logrus.InfoLevel, ResolveLogLevel("", "staging"))
}

// Benchmark tests (optional but good practice)
func BenchmarkGetEnvWithDefault(b *testing.B) {
	b.Setenv("BENCH_KEY", "test_value")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		GetEnvWithDefault("BENCH_KEY", "default")
	}
}
