package config

import (
	"encoding/hex"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config is the deployment-provided configuration for the web console.
type Config struct {
	Port string

	// BackendBaseURL is the base URL of the RevQuotes API, e.g. "https://api.revquotes.example".
	BackendBaseURL string
	BackendTimeout time.Duration

	// StorageBackend selects the session repository: "memory", "redis" or "postgres".
	StorageBackend string
	DatabaseURL    string
	RedisAddr      string
	RedisPassword  string
	RedisDB        int

	// SessionHashKey signs the session cookie. Empty means the entrypoint
	// generates an ephemeral key (sessions reset on restart).
	SessionHashKey []byte
	SessionTTL     time.Duration

	// Rate limiting for the login/register endpoints, per client IP.
	AuthRateLimit  int
	AuthRateWindow time.Duration

	LogLevel string
}

func LoadFromEnv() (Config, error) {
	backendURL := os.Getenv("BACKEND_BASE_URL")
	if backendURL == "" {
		return Config{}, fmt.Errorf("missing required env var: BACKEND_BASE_URL")
	}

	cfg := Config{
		Port:           getenv("PORT", "8080"),
		BackendBaseURL: backendURL,
		BackendTimeout: 15 * time.Second,
		StorageBackend: getenv("STORAGE_BACKEND", "memory"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		RedisAddr:      getenv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		SessionTTL:     24 * time.Hour,
		AuthRateLimit:  10,
		AuthRateWindow: time.Minute,
		LogLevel:       os.Getenv("LOG_LEVEL"),
	}

	if v := os.Getenv("BACKEND_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("BACKEND_TIMEOUT must be a duration (e.g. 15s): %w", err)
		}
		cfg.BackendTimeout = d
	}
	if v := os.Getenv("SESSION_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("SESSION_TTL must be a duration (e.g. 24h): %w", err)
		}
		cfg.SessionTTL = d
	}
	if v := os.Getenv("AUTH_RATE_WINDOW"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("AUTH_RATE_WINDOW must be a duration (e.g. 1m): %w", err)
		}
		cfg.AuthRateWindow = d
	}
	if v := os.Getenv("AUTH_RATE_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("AUTH_RATE_LIMIT must be a positive integer")
		}
		cfg.AuthRateLimit = n
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("REDIS_DB must be an integer: %w", err)
		}
		cfg.RedisDB = n
	}
	if v := os.Getenv("SESSION_HASH_KEY"); v != "" {
		key, err := hex.DecodeString(v)
		if err != nil {
			return Config{}, fmt.Errorf("SESSION_HASH_KEY must be hex-encoded: %w", err)
		}
		if len(key) < 32 {
			return Config{}, fmt.Errorf("SESSION_HASH_KEY must decode to at least 32 bytes")
		}
		cfg.SessionHashKey = key
	}

	switch cfg.StorageBackend {
	case "memory", "redis", "postgres":
	default:
		return Config{}, fmt.Errorf("STORAGE_BACKEND must be one of memory, redis, postgres (got %q)", cfg.StorageBackend)
	}
	if cfg.StorageBackend == "postgres" && cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("STORAGE_BACKEND=postgres requires DATABASE_URL")
	}

	return cfg, nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
