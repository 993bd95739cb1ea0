package mcpserver

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

// serverConfig holds all configurable MCP server defaults.
// Loaded once at startup from environment variables via loadConfig().
type serverConfig struct {
	// Cache settings.
	CacheEnabled    bool
	CacheMaxSize    int
	CacheFileTTL    time.Duration
	CacheContentTTL time.Duration

	// Inline content limit in bytes.
	MaxInlineSize int64

	// Build tool defaults.
	BuildParallelism int
	BuildTimeout     time.Duration
}

// cfg is the active server configuration, initialized at package load time.
var cfg = loadConfig()

// loadConfig reads configuration from OASVARIANT_MCP_* environment variables.
// Invalid values log a warning and fall back to the hardcoded default.
func loadConfig() *serverConfig {
	return &serverConfig{
		CacheEnabled:     envBool("OASVARIANT_MCP_CACHE_ENABLED", true),
		CacheMaxSize:     envInt("OASVARIANT_MCP_CACHE_MAX_SIZE", 10),
		CacheFileTTL:     envDuration("OASVARIANT_MCP_CACHE_FILE_TTL", 15*time.Minute),
		CacheContentTTL:  envDuration("OASVARIANT_MCP_CACHE_CONTENT_TTL", 15*time.Minute),
		MaxInlineSize:    int64(envInt("OASVARIANT_MCP_MAX_INLINE_SIZE", 10<<20)),
		BuildParallelism: envInt("OASVARIANT_MCP_BUILD_PARALLELISM", 4),
		BuildTimeout:     envDuration("OASVARIANT_MCP_BUILD_TIMEOUT", 2*time.Minute),
	}
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid bool env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return b
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return d
}
