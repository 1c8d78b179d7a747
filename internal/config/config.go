// Package config provides application configuration management.
// It loads settings from environment variables and provides defaults for
// the HTTP server, retrieval, session handling, oracle providers, and
// observability.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Oracle Configuration
	GeminiAPIKey   string // Gemini API key (primary oracle provider)
	GroqAPIKey     string // Groq API key (OpenAI-compatible fallback)
	CerebrasAPIKey string // Cerebras API key (OpenAI-compatible fallback)

	// Oracle Model Configuration (optional, defaults apply if empty)
	GeminiModel         string // Primary Gemini model for response generation
	GeminiFallbackModel string // Fallback Gemini model
	GroqModel           string // Groq model for response generation
	CerebrasModel       string // Cerebras model for response generation

	// Oracle Provider Configuration
	OraclePrimaryProvider  string // Primary provider: "gemini", "groq" or "cerebras" (default: "gemini")
	OracleFallbackProvider string // Fallback provider (default: "groq")

	// Retrieval Configuration
	KnowledgeBasePath string // Path to the knowledge base JSON file
	TopK              int    // Number of documents returned per query (default: 5)

	// Session Configuration
	SessionTimeout    time.Duration // Idle timeout before a session is evicted (default: 30m)
	MaxHistoryEntries int           // Conversation history entries kept per session (default: 12)

	// Rate Limiting
	RateLimitRequests int           // Requests allowed per user per window (default: 30)
	RateLimitWindow   time.Duration // Sliding window size (default: 1m)

	// Security Configuration
	SecurityEnabled    bool // Prompt injection screening on incoming queries (default: true)
	BlacklistThreshold int  // Violations before a user is blacklisted (default: 3)

	// Metrics Authentication
	MetricsUsername string // Username for /metrics endpoint Basic Auth (default: "prometheus")
	MetricsPassword string // Password for /metrics endpoint Basic Auth (empty = no auth)

	// Sentry Configuration
	SentryDSN              string
	SentryEnvironment      string
	SentryTracesSampleRate float64

	// Chat Session Log (development only, logs raw conversations)
	ChatLogPath       string // Empty = disabled
	ChatLogMaxSizeMB  int
	ChatLogMaxBackups int

	// Server Configuration
	Port            string
	Environment     string // "development" or "production"
	LogLevel        string
	CORSOrigins     string // Comma-separated allowed origins, "*" for all
	ShutdownTimeout time.Duration

	// Data Configuration
	DataDir string // Data directory for the analytics SQLite database
}

// Load reads configuration from environment variables
// It attempts to load .env file first, then reads from env vars
func Load() (*Config, error) {
	// Try to load .env file (ignore error if file doesn't exist)
	_ = godotenv.Load()

	cfg := &Config{
		// Oracle Configuration
		GeminiAPIKey:   getEnv("GEMINI_API_KEY", ""),
		GroqAPIKey:     getEnv("GROQ_API_KEY", ""),
		CerebrasAPIKey: getEnv("CEREBRAS_API_KEY", ""),

		// Oracle Model Configuration (empty = use defaults from genai package)
		GeminiModel:         getEnv("GEMINI_MODEL", ""),
		GeminiFallbackModel: getEnv("GEMINI_FALLBACK_MODEL", ""),
		GroqModel:           getEnv("GROQ_MODEL", ""),
		CerebrasModel:       getEnv("CEREBRAS_MODEL", ""),

		// Oracle Provider Configuration
		OraclePrimaryProvider:  getEnv("ORACLE_PRIMARY_PROVIDER", "gemini"),
		OracleFallbackProvider: getEnv("ORACLE_FALLBACK_PROVIDER", "groq"),

		// Retrieval Configuration
		KnowledgeBasePath: getEnv("KNOWLEDGE_BASE_PATH", "knowledge_base.json"),
		TopK:              getIntEnv("TOP_K", 5),

		// Session Configuration
		SessionTimeout:    getDurationEnv("SESSION_TIMEOUT", 30*time.Minute),
		MaxHistoryEntries: getIntEnv("MAX_HISTORY_ENTRIES", 12),

		// Rate Limiting
		RateLimitRequests: getIntEnv("RATE_LIMIT_REQUESTS", 30),
		RateLimitWindow:   getDurationEnv("RATE_LIMIT_WINDOW", time.Minute),

		// Security Configuration
		SecurityEnabled:    getBoolEnv("SECURITY_ENABLED", true),
		BlacklistThreshold: getIntEnv("BLACKLIST_THRESHOLD", 3),

		// Metrics Authentication
		MetricsUsername: getEnv("METRICS_USERNAME", "prometheus"),
		MetricsPassword: getEnv("METRICS_PASSWORD", ""),

		// Sentry Configuration
		SentryDSN:              getEnv("SENTRY_DSN", ""),
		SentryEnvironment:      getEnv("SENTRY_ENVIRONMENT", "development"),
		SentryTracesSampleRate: getFloatEnv("SENTRY_TRACES_SAMPLE_RATE", 0.1),

		// Chat Session Log
		ChatLogPath:       getEnv("CHAT_LOG_PATH", ""),
		ChatLogMaxSizeMB:  getIntEnv("CHAT_LOG_MAX_SIZE_MB", 10),
		ChatLogMaxBackups: getIntEnv("CHAT_LOG_MAX_BACKUPS", 5),

		// Server Configuration
		Port:            getEnv("PORT", "8083"),
		Environment:     getEnv("ENVIRONMENT", "development"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		CORSOrigins:     getEnv("CORS_ORIGINS", "*"),
		ShutdownTimeout: getDurationEnv("SHUTDOWN_TIMEOUT", 30*time.Second),

		// Data Configuration
		DataDir: getEnv("DATA_DIR", getDefaultDataDir()),
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks if required configuration values are set
func (c *Config) Validate() error {
	var errs []error

	if c.Port == "" {
		errs = append(errs, errors.New("PORT is required"))
	}
	if c.KnowledgeBasePath == "" {
		errs = append(errs, errors.New("KNOWLEDGE_BASE_PATH is required"))
	}
	if c.DataDir == "" {
		errs = append(errs, errors.New("DATA_DIR is required"))
	}
	if c.TopK <= 0 {
		errs = append(errs, fmt.Errorf("TOP_K must be positive, got %d", c.TopK))
	}
	if c.MaxHistoryEntries <= 0 {
		errs = append(errs, fmt.Errorf("MAX_HISTORY_ENTRIES must be positive, got %d", c.MaxHistoryEntries))
	}
	if c.SessionTimeout <= 0 {
		errs = append(errs, fmt.Errorf("SESSION_TIMEOUT must be positive, got %v", c.SessionTimeout))
	}
	if c.RateLimitRequests <= 0 {
		errs = append(errs, fmt.Errorf("RATE_LIMIT_REQUESTS must be positive, got %d", c.RateLimitRequests))
	}
	if c.RateLimitWindow <= 0 {
		errs = append(errs, fmt.Errorf("RATE_LIMIT_WINDOW must be positive, got %v", c.RateLimitWindow))
	}
	if c.BlacklistThreshold <= 0 {
		errs = append(errs, fmt.Errorf("BLACKLIST_THRESHOLD must be positive, got %d", c.BlacklistThreshold))
	}
	if c.SentryTracesSampleRate < 0 || c.SentryTracesSampleRate > 1 {
		errs = append(errs, fmt.Errorf("SENTRY_TRACES_SAMPLE_RATE must be in [0,1], got %f", c.SentryTracesSampleRate))
	}
	switch c.OraclePrimaryProvider {
	case "gemini", "groq", "cerebras":
	default:
		errs = append(errs, fmt.Errorf("ORACLE_PRIMARY_PROVIDER must be gemini, groq or cerebras, got %q", c.OraclePrimaryProvider))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// getEnv retrieves environment variable with fallback to default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getIntEnv retrieves integer environment variable with fallback to default value
func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getDurationEnv retrieves duration environment variable with fallback to default value
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getFloatEnv retrieves float64 environment variable with fallback to default value
func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// getBoolEnv retrieves boolean environment variable with fallback to default value
func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getDefaultDataDir returns platform-specific default data directory
func getDefaultDataDir() string {
	if runtime.GOOS == "windows" {
		return "./data"
	}
	return "/data"
}

// AnalyticsDBPath returns the full path to the analytics SQLite database file
func (c *Config) AnalyticsDBPath() string {
	return filepath.Join(c.DataDir, "analytics.db")
}

// SecurityDBPath returns the full path to the security SQLite database file
func (c *Config) SecurityDBPath() string {
	return filepath.Join(c.DataDir, "security.db")
}

// IsProduction reports whether the server runs with the production profile.
// Chat session logging refuses to start in production.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// HasOracleProvider returns true if at least one oracle provider is configured.
func (c *Config) HasOracleProvider() bool {
	return c.GeminiAPIKey != "" || c.GroqAPIKey != "" || c.CerebrasAPIKey != ""
}
