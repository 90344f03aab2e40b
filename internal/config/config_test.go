package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Env:               "development",
		Port:              "8080",
		JWTSecret:         "secure-secret-at-least-32-chars-long",
		JWTExpiration:     time.Hour,
		DBPassword:        "secure-password",
		DBSSLMode:         "require",
		DBConnMaxLifetime: time.Minute,
		MaxUploadBytes:    1024,
		UploadDir:         "uploads",
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(c *Config)
		expectError bool
	}{
		{"valid development", func(c *Config) {}, false},
		{"unknown env", func(c *Config) { c.Env = "staging" }, true},
		{"missing port", func(c *Config) { c.Port = "" }, true},
		{"non numeric port", func(c *Config) { c.Port = "http" }, true},
		{"port out of range", func(c *Config) { c.Port = "70000" }, true},
		{"missing secret", func(c *Config) { c.JWTSecret = "" }, true},
		{"zero expiration", func(c *Config) { c.JWTExpiration = 0 }, true},
		{"zero upload size", func(c *Config) { c.MaxUploadBytes = 0 }, true},
		{"empty upload dir", func(c *Config) { c.UploadDir = "" }, true},
		{"unknown schema mode", func(c *Config) { c.DBSchemaMode = "yolo" }, true},
		{"short secret in development", func(c *Config) { c.JWTSecret = "short" }, false},
		{"production default secret", func(c *Config) {
			c.Env = "production"
			c.JWTSecret = defaultJWTSecret
		}, true},
		{"production short secret", func(c *Config) {
			c.Env = "production"
			c.JWTSecret = "short"
		}, true},
		{"production weak db password", func(c *Config) {
			c.Env = "production"
			c.DBPassword = "password"
		}, true},
		{"production valid", func(c *Config) { c.Env = "production" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)
			err := c.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadConfig_FromEnvironment(t *testing.T) {
	defer viper.Reset()

	t.Setenv("APP_ENV", " PROD ")
	t.Setenv("JWT_SECRET", "production-secret-that-is-long-enough-1234")
	t.Setenv("DB_PASSWORD", "a-strong-one")
	t.Setenv("DB_SSLMODE", "  REQUIRE  ")
	t.Setenv("JWT_EXPIRATION", "2h")
	t.Setenv("UPLOAD_CACHE_MAX_AGE", "600")

	c, err := LoadConfig()
	require.NoError(t, err)
	assert.True(t, c.IsProduction())
	assert.Equal(t, "require", c.DBSSLMode)
	assert.Equal(t, 2*time.Hour, c.JWTExpiration)
	assert.Equal(t, 600, c.UploadCacheMaxAge)
	assert.Equal(t, "uploads", c.UploadDir)
}

func TestLoadConfig_Defaults(t *testing.T) {
	defer viper.Reset()
	t.Setenv("APP_ENV", "test")

	c, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "8080", c.Port)
	assert.Equal(t, 24*time.Hour, c.JWTExpiration)
	assert.Equal(t, 3600, c.UploadCacheMaxAge)
	assert.Equal(t, 10<<20, c.MaxUploadBytes)
	assert.Empty(t, c.RedisURL)
}
