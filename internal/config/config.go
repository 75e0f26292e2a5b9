package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	DefaultsFile       string        // optional YAML overriding first-run settings/tags
	SeedFile           string        // optional export-format JSON merged in at startup (empty = disabled)
	SeedReloadInterval time.Duration // interval to re-merge the seed file (default: 24h)
	WatchURLBase       string        // URL prefix for video links in export metadata
	SessionTTL         time.Duration // drop sessions silent for longer than this
	SweepInterval      time.Duration // interval between stale-session sweeps
	AllowedOrigins     []string      // CORS origins for the browser surfaces ("*" = any)

	// Redis
	RedisAddr           string        // ex: "localhost:6379"
	RedisUser           string        // optional
	RedisPassword       string        // optional
	RedisDB             int           // Redis DB number
	RedisDT             time.Duration // Redis dial timeout (ex: 5s)
	RedisRT             time.Duration // Redis read timeout (ex: 3s)
	RedisWT             time.Duration // Redis write timeout (ex: 3s)
	RedisMaxWait        time.Duration // max wait between retries (ex: 10s)
	RedisPingTimeout    time.Duration // timeout for each ping attempt (ex: 5s)
	RedisPoolSize       int           // Redis connection pool size
	RedisConnectTimeout time.Duration // Total time to retry connecting (ex: 30s)
	RedisRetryInterval  time.Duration // Initial wait between retries (ex: 2s, grows exponentially)
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("SEEKMARK_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("SEEKMARK_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("SEEKMARK_LOG_LEVEL", "info"),
		PrettyLog: mustBool("SEEKMARK_PRETTY_LOG", true),

		// Sources
		DefaultsFile:       getenv("SEEKMARK_DEFAULTS_FILE", ""),
		SeedFile:           getenv("SEEKMARK_SEED_FILE", ""),
		SeedReloadInterval: mustDuration("SEEKMARK_SEED_RELOAD_INTERVAL", 24*time.Hour),
		WatchURLBase:       getenv("SEEKMARK_WATCH_URL_BASE", ""),

		// Sessions
		SessionTTL:     mustDuration("SEEKMARK_SESSION_TTL", 10*time.Minute),
		SweepInterval:  mustDuration("SEEKMARK_SWEEP_INTERVAL", time.Minute),
		AllowedOrigins: splitAndTrim(getenv("SEEKMARK_ALLOWED_ORIGINS", "*")),

		// Redis settings
		RedisAddr:           requireEnv("SEEKMARK_REDIS_ADDR"),
		RedisUser:           getenv("SEEKMARK_REDIS_USERNAME", ""),
		RedisPassword:       getenv("SEEKMARK_REDIS_PASSWORD", ""),
		RedisDB:             getenvInt("SEEKMARK_REDIS_DB", 0),
		RedisDT:             mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:             mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:             mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:        mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:    mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:       getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout: mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:  mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		if cfg.RedisPassword != "" {
			cfgCopy.RedisPassword = "***REDACTED***"
		}
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	return v
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
