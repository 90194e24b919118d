// Package config loads application settings from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime settings.
type Config struct {
	Port string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	JWTSecret        string
	JWTExpirationDur time.Duration
}

var appConfig *Config

// Load reads the environment (after merging a .env file, when present) and
// caches the resulting Config for Get.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	cfg := &Config{
		Port:             envOr("PORT", "8080"),
		DBHost:           envOr("DB_HOST", "localhost"),
		DBPort:           envOr("DB_PORT", "5432"),
		DBUser:           envOr("DB_USER", "subtracker"),
		DBPassword:       envOr("DB_PASSWORD", "subtracker"),
		DBName:           envOr("DB_NAME", "subtracker"),
		DBSSLMode:        envOr("DB_SSLMODE", "disable"),
		JWTSecret:        envOr("JWT_SECRET", "fallback-secret-key-for-dev-only"),
		JWTExpirationDur: envDurationOr("JWT_EXPIRES_IN", 24*time.Hour),
	}

	appConfig = cfg
	return cfg, nil
}

// Get returns the cached Config, loading it on first use.
func Get() *Config {
	if appConfig == nil {
		if _, err := Load(); err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// DSN returns the PostgreSQL connection string in keyword/value form.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

// DatabaseURL returns the connection string in URL form, as golang-migrate
// requires.
func (c *Config) DatabaseURL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     c.DBHost + ":" + c.DBPort,
		Path:     c.DBName,
		RawQuery: "sslmode=" + c.DBSSLMode,
	}
	return u.String()
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		log.Printf("Warning: invalid %s value %q, using %s\n", key, raw, fallback)
		return fallback
	}
	return d
}
