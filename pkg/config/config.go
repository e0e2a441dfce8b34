// Package config holds global settings for the PhishBuster service.
// All settings can be configured via environment variables or
// programmatically.
package config

import (
	"fmt"
	"log"
	"os"
	"regexp"
	"strconv"
	"strings"
)

// Config holds global settings for the scanner and HTTP server.
type Config struct {
	// === Model Artifacts ===
	URLModelPath    string // Path to the URL random-forest artifact (JSON)
	EmailModelPath  string // Path to the email ONNX model directory
	OnnxLibraryPath string // Path to the ONNX Runtime library directory (optional)
	SchemaPath      string // Feature schema override (YAML); empty = schema from the model artifact

	// === Trust List ===
	TrustListPath  string // YAML trust list file; empty = built-in list
	TrustListDSN   string // Postgres DSN for the trust list; takes precedence over the file
	TrustListTable string // Table name for the Postgres source (default: trusted_domains)

	// === Verdict Cache ===
	RedisAddr       string // Redis address; empty disables the verdict cache
	CacheTTLSeconds int    // Verdict cache TTL (default: 900)

	// === Server ===
	Port string // HTTP listen port (default: 3000)
}

// NewDefaultConfig creates a Config with sensible defaults.
// All settings can be overridden via environment variables.
func NewDefaultConfig() *Config {
	return &Config{
		URLModelPath:    GetEnv("PHISHBUSTER_URL_MODEL", "data/url_rf_model.json"),
		EmailModelPath:  GetEnv("PHISHBUSTER_EMAIL_MODEL", ""),
		OnnxLibraryPath: GetEnv("PHISHBUSTER_ONNX_LIB", ""),
		SchemaPath:      GetEnv("PHISHBUSTER_SCHEMA", ""),

		TrustListPath:  GetEnv("PHISHBUSTER_TRUST_LIST", ""),
		TrustListDSN:   GetEnv("PHISHBUSTER_TRUST_DSN", ""),
		TrustListTable: GetEnv("PHISHBUSTER_TRUST_TABLE", "trusted_domains"),

		RedisAddr:       GetEnv("PHISHBUSTER_REDIS_ADDR", ""),
		CacheTTLSeconds: GetEnvInt("PHISHBUSTER_CACHE_TTL_SECONDS", 900),

		Port: GetEnv("PHISHBUSTER_PORT", "3000"),
	}
}

// NewHighSecurityConfig creates a Config for maximum freshness: cached
// verdicts expire quickly so trust list and model updates take effect almost
// immediately.
func NewHighSecurityConfig() *Config {
	cfg := NewDefaultConfig()
	cfg.CacheTTLSeconds = 60
	return cfg
}

// NewHighUsabilityConfig creates a Config that minimizes recomputation:
// verdicts for repeated URLs are served from cache for an hour.
func NewHighUsabilityConfig() *Config {
	cfg := NewDefaultConfig()
	cfg.CacheTTLSeconds = 3600
	return cfg
}

var reIdentifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Validate checks the configuration. Missing models and cache are only
// warnings: the pipeline runs without them (safe-by-default), which is
// exactly the graceful-degradation contract. Malformed settings are errors.
func (c *Config) Validate() error {
	if c.URLModelPath == "" {
		log.Printf("[STARTUP] Warning: no URL model configured - URL verdicts will be safe-by-default")
	} else if _, err := os.Stat(c.URLModelPath); err != nil {
		log.Printf("[STARTUP] Warning: URL model %q not found - URL verdicts will be safe-by-default", c.URLModelPath)
	}
	if c.EmailModelPath == "" {
		log.Printf("[STARTUP] Warning: no email model configured - email scoring uses heuristics only")
	}
	if c.TrustListDSN != "" && c.TrustListPath != "" {
		log.Printf("[STARTUP] Warning: both trust list DSN and file configured - DSN takes precedence")
	}

	if !reIdentifier.MatchString(c.TrustListTable) {
		return fmt.Errorf("trust list table %q is not a valid identifier", c.TrustListTable)
	}
	if c.CacheTTLSeconds < 0 {
		return fmt.Errorf("cache TTL must not be negative, got %d", c.CacheTTLSeconds)
	}
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("port %q is not numeric", c.Port)
	}
	return nil
}

// MustValidate calls Validate and fatally exits if validation fails.
// Call this at startup before starting the server.
func (c *Config) MustValidate() {
	if err := c.Validate(); err != nil {
		log.Fatalf("[STARTUP] FATAL: Configuration validation failed: %v", err)
	}
	log.Println("[STARTUP] Configuration validated")
}

// Helper functions for environment variable parsing.
// These are exported for use by other packages.

// GetEnv returns the value of an environment variable or a default value.
func GetEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

// GetEnvBool returns the boolean value of an environment variable or a default value.
func GetEnvBool(key string, defaultValue bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return defaultValue
}

// GetEnvFloat returns the float64 value of an environment variable or a default value.
func GetEnvFloat(key string, defaultValue float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			return f
		}
	}
	return defaultValue
}

// GetEnvInt returns the integer value of an environment variable or a default value.
func GetEnvInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return defaultValue
}

// GetEnvSlice returns a comma-separated list from an environment variable or a default value.
func GetEnvSlice(key string, defaultValue []string) []string {
	if v := os.Getenv(key); v != "" {
		var parts []string
		for _, p := range strings.Split(v, ",") {
			trimmed := strings.TrimSpace(p)
			if trimmed != "" {
				parts = append(parts, trimmed)
			}
		}
		if len(parts) > 0 {
			return parts
		}
	}
	return defaultValue
}
