// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// MaxBodyBytes limits incoming request body sizes. Defaults to 1 MiB.
	MaxBodyBytes int64

	// RouteAPIURL is the base URL of the routing service's directions
	// endpoint. Defaults to the public OpenRouteService driving profile.
	RouteAPIURL string

	// RouteAPIKey authenticates against the routing service. Required.
	RouteAPIKey string

	// WeatherAPIURL is the base URL of the weather provider.
	WeatherAPIURL string

	// WeatherAPIKey authenticates against the weather provider. Required.
	WeatherAPIKey string

	// RedisURL enables the weather response cache when set.
	// Empty means no cache — every weather request hits the provider.
	RedisURL string

	// WeatherCacheTTL is how long cached weather responses stay fresh.
	// Defaults to 10 minutes.
	WeatherCacheTTL time.Duration
}

// Load reads configuration from environment variables and returns a Config.
// A .env file in the working directory is applied first when present.
// Returns an error listing any required variables that are not set.
func Load() (Config, error) {
	// Missing .env is the normal case in production; ignore the error.
	_ = godotenv.Load()

	cfg := Config{
		Port:            getEnv("PORT", "8080"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		CORSOrigins:     splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		RouteAPIURL:     getEnv("ROUTE_API_URL", "https://api.openrouteservice.org/v2/directions/driving-hgv"),
		WeatherAPIURL:   getEnv("WEATHER_API_URL", "https://weather-api99.p.rapidapi.com/weather"),
		RedisURL:        os.Getenv("REDIS_URL"),
		WeatherCacheTTL: getEnvDuration("WEATHER_CACHE_TTL", 10*time.Minute),
		MaxBodyBytes:    getEnvInt64("MAX_BODY_BYTES", 1<<20),
	}

	var missing []string

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	cfg.RouteAPIKey = os.Getenv("ROUTE_API_KEY")
	if cfg.RouteAPIKey == "" {
		missing = append(missing, "ROUTE_API_KEY")
	}
	cfg.WeatherAPIKey = os.Getenv("WEATHER_API_KEY")
	if cfg.WeatherAPIKey == "" {
		missing = append(missing, "WEATHER_API_KEY")
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getEnvDuration parses the named variable as a time.Duration ("5m", "90s"),
// falling back when unset or unparseable.
func getEnvDuration(key string, fallback time.Duration) time.Duration {
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

// getEnvInt64 parses the named variable as an int64, falling back when unset,
// unparseable, or non-positive.
func getEnvInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
