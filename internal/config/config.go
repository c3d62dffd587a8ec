// Package config loads application configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime settings for the service. It is built once in
// main and passed to components at construction time; nothing mutates it
// after Load returns.
type Config struct {
	ProjectName string
	APIPrefix   string
	HTTPAddr    string

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSchema   string

	// RunMigrations enables gorm AutoMigrate on startup.
	RunMigrations bool

	// TimescaleEnabled controls the hypertable/compression bootstrap.
	// Setup failures are logged and never fatal.
	TimescaleEnabled bool

	RedisHost     string
	RedisPort     string
	RedisPassword string
	CacheTTL      time.Duration
}

// Load reads configuration from environment variables, applying defaults
// for everything except the Postgres credentials. A .env file in the
// working directory is honored when present.
func Load() Config {
	// Best effort: the file is optional in containerized deployments.
	_ = godotenv.Load()

	return Config{
		ProjectName: getenv("PROJECT_NAME", "IQX API"),
		APIPrefix:   getenv("API_V1_STR", "/api/v1"),
		HTTPAddr:    getenv("HTTP_ADDR", ":8080"),

		PostgresHost:     getenv("POSTGRES_SERVER", "localhost"),
		PostgresPort:     getenv("POSTGRES_PORT", "5432"),
		PostgresUser:     os.Getenv("POSTGRES_USER"),
		PostgresPassword: os.Getenv("POSTGRES_PASSWORD"),
		PostgresDB:       os.Getenv("POSTGRES_DB"),
		PostgresSchema:   getenv("POSTGRES_SCHEMA", "public"),

		RunMigrations:    getbool("RUN_MIGRATIONS", false),
		TimescaleEnabled: getbool("TIMESCALEDB_ENABLED", true),

		RedisHost:     getenv("REDIS_HOST", ""),
		RedisPort:     getenv("REDIS_PORT", "6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		CacheTTL:      getduration("CACHE_TTL", 5*time.Minute),
	}
}

// DSN builds the Postgres connection string. The search_path option keeps
// all queries inside the configured schema, and application_name makes the
// service identifiable in pg_stat_activity.
func (c Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable search_path=%s application_name=iqx_backend",
		c.PostgresHost, c.PostgresPort, c.PostgresUser, c.PostgresPassword, c.PostgresDB, c.PostgresSchema,
	)
}

// RedisAddr returns the host:port pair for Redis, or "" when caching is
// not configured.
func (c Config) RedisAddr() string {
	if c.RedisHost == "" {
		return ""
	}
	return c.RedisHost + ":" + c.RedisPort
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getbool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func getduration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
