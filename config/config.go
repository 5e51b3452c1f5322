package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds every setting the API reads from the environment.
type Config struct {
	Port              string
	StoreDriver       string
	DatabaseURL       string
	SupabaseURL       string
	SupabaseKey       string
	StorageBucket     string
	RedisURL          string
	ReconcileSchedule string // cron spec, empty disables the scheduled pass
	ReconcileWorkers  int
	AuthJWTSecret     string
	LogLevel          string
	CORSOrigins       string
}

// Load reads an optional .env file and then the process environment.
// Variables already set in the environment win over the file.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function and validates it.
func FromEnv(getenv func(string) string) (*Config, error) {
	get := func(key, fallback string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return fallback
	}

	cfg := &Config{
		Port:              get("PORT", "8080"),
		StoreDriver:       get("STORE_DRIVER", "memory"),
		DatabaseURL:       get("DATABASE_URL", ""),
		SupabaseURL:       strings.TrimRight(get("SUPABASE_URL", ""), "/"),
		SupabaseKey:       get("SUPABASE_SERVICE_KEY", ""),
		StorageBucket:     get("STORAGE_BUCKET", "company-logos"),
		RedisURL:          get("REDIS_URL", ""),
		ReconcileSchedule: get("RECONCILE_SCHEDULE", ""),
		AuthJWTSecret:     get("AUTH_JWT_SECRET", ""),
		LogLevel:          get("LOG_LEVEL", "info"),
		CORSOrigins:       get("CORS_ORIGINS", "*"),
	}

	workers, err := strconv.Atoi(get("RECONCILE_WORKERS", "4"))
	if err != nil || workers < 1 {
		return nil, fmt.Errorf("RECONCILE_WORKERS must be a positive integer, got %q", getenv("RECONCILE_WORKERS"))
	}
	cfg.ReconcileWorkers = workers

	switch cfg.StoreDriver {
	case "memory":
	case "postgrest":
		if cfg.SupabaseURL == "" || cfg.SupabaseKey == "" {
			return nil, fmt.Errorf("STORE_DRIVER=postgrest requires SUPABASE_URL and SUPABASE_SERVICE_KEY")
		}
	case "postgres":
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("STORE_DRIVER=postgres requires DATABASE_URL")
		}
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q (want memory, postgrest or postgres)", cfg.StoreDriver)
	}

	return cfg, nil
}

// StorageEnabled reports whether Supabase Storage credentials are present.
func (c *Config) StorageEnabled() bool {
	return c.SupabaseURL != "" && c.SupabaseKey != ""
}
