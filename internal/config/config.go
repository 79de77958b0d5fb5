// Package config handles application configuration loading from environment
// variables. It provides a centralized Config struct used across the application.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host string
	Port string
	Env  string // "development", "production", "testing"

	// CORS
	CORSAllowedOrigins []string

	// PostgreSQL connection
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Valkey (Redis-compatible cache); optional, caching is skipped when
	// no host is set.
	ValkeyHost     string
	ValkeyPort     string
	ValkeyPassword string

	// Zoho CRM
	ZohoClientID     string
	ZohoClientSecret string
	ZohoRefreshToken string
	ZohoDatacenter   string // "eu", "com", "in", ...
	ZohoLeadOwnerID  string

	// AI drafting metadata
	RAGModelName string
	RAGProvider  string

	// EnableMocks swaps the Postgres store and Zoho client for fixture
	// implementations. Useful for demos and frontend development.
	EnableMocks bool
}

// Load reads configuration from environment variables, applying defaults
// for development where appropriate. Returns an error if critical values
// are missing in production mode.
func Load() (*Config, error) {
	cfg := &Config{
		Host: envOrDefault("APP_HOST", "0.0.0.0"),
		Port: envOrDefault("APP_PORT", "8080"),
		Env:  envOrDefault("APP_ENV", "development"),

		CORSAllowedOrigins: splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),

		DBHost:     envOrDefault("POSTGRES_HOST", "localhost"),
		DBPort:     envOrDefault("POSTGRES_PORT", "5432"),
		DBUser:     envOrDefault("POSTGRES_USER", "leadpress"),
		DBPassword: envOrDefault("POSTGRES_PASSWORD", "changeme"),
		DBName:     envOrDefault("POSTGRES_DB", "leadpress"),

		ValkeyHost:     os.Getenv("VALKEY_HOST"),
		ValkeyPort:     envOrDefault("VALKEY_PORT", "6379"),
		ValkeyPassword: os.Getenv("VALKEY_PASSWORD"),

		ZohoClientID:     os.Getenv("ZOHO_CLIENT_ID"),
		ZohoClientSecret: os.Getenv("ZOHO_CLIENT_SECRET"),
		ZohoRefreshToken: os.Getenv("ZOHO_REFRESH_TOKEN"),
		ZohoDatacenter:   envOrDefault("ZOHO_DATACENTER", "eu"),
		ZohoLeadOwnerID:  os.Getenv("ZOHO_LEAD_OWNER_ID"),

		RAGModelName: envOrDefault("RAG_MODEL_NAME", "text-embedding-3-small"),
		RAGProvider:  envOrDefault("RAG_PROVIDER", "openai"),

		EnableMocks: envBool("ENABLE_MOCKS"),
	}

	if cfg.Env == "production" {
		if cfg.EnableMocks {
			return nil, fmt.Errorf("ENABLE_MOCKS must not be set in production")
		}
		if cfg.DBPassword == "changeme" {
			return nil, fmt.Errorf("POSTGRES_PASSWORD must be set in production")
		}
	}

	return cfg, nil
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName,
	)
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// ZohoBaseURL returns the regional Zoho API root for the configured
// datacenter.
func (c *Config) ZohoBaseURL() string {
	return fmt.Sprintf("https://www.zohoapis.%s", c.ZohoDatacenter)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// envOrDefault reads an environment variable, returning a fallback if unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// envBool reads a boolean environment variable; unset or unparsable means false.
func envBool(key string) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return false
	}
	return v
}

// splitList parses a comma-separated environment value into trimmed,
// non-empty entries.
func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
