package config

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is every problem found in one configuration.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	lines := make([]string, len(v))
	for i, e := range v {
		lines[i] = e.Error()
	}
	return fmt.Sprintf("configuration validation failed:\n%s", strings.Join(lines, "\n"))
}

// requiredByBackend lists the settings each store backend cannot run without.
var requiredByBackend = map[string][]struct {
	field string
	value func(*Config) string
}{
	StoreMemory: nil,
	StoreSQLite: {
		{"SQLITE_PATH", func(c *Config) string { return c.SQLitePath }},
	},
	StorePostgres: {
		{"DATABASE_URL", func(c *Config) string { return c.DatabaseURL }},
	},
	StoreRedis: {
		{"REDIS_HOST", func(c *Config) string {
			if c.RedisURL != "" {
				return c.RedisURL
			}
			return c.RedisHost
		}},
	},
	StoreS3: {
		{"S3_BUCKET_NAME", func(c *Config) string { return c.S3BucketName }},
		{"AWS_REGION", func(c *Config) string { return c.AWSRegion }},
	},
}

// ValidateConfig checks cross-field requirements. The returned error, when
// not nil, is a ValidationErrors.
func ValidateConfig(cfg *Config) error {
	var errs ValidationErrors
	add := func(field, format string, args ...any) {
		errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	if cfg.ServerPort == "" {
		add("SERVER_PORT", "is required")
	}

	reqs, ok := requiredByBackend[cfg.StoreBackend]
	if !ok {
		add("STORE_BACKEND", "unknown backend %q (want memory, sqlite, postgres, redis or s3)", cfg.StoreBackend)
	}
	for _, r := range reqs {
		if r.value(cfg) == "" {
			add(r.field, "is required when STORE_BACKEND=%s", cfg.StoreBackend)
		}
	}

	if cfg.StateKey == "" {
		add("STATE_KEY", "must not be empty")
	}

	if _, err := zerolog.ParseLevel(cfg.LogLevel); err != nil {
		add("LOG_LEVEL", "unknown level %q", cfg.LogLevel)
	}
	if cfg.LogFormat != "json" && cfg.LogFormat != "console" {
		add("LOG_FORMAT", "must be json or console")
	}

	if cfg.GeminiModel == "" {
		add("GEMINI_MODEL", "must not be empty")
	}
	if cfg.AITimeout <= 0 {
		add("AI_TIMEOUT", "must be positive")
	}
	if cfg.MaxUploadBytes <= 0 {
		add("MAX_UPLOAD_BYTES", "must be positive")
	}

	// The key is only needed for AI calls; production refuses to start
	// without one.
	if cfg.GeminiAPIKey == "" && cfg.Environment == Production {
		add("GEMINI_API_KEY", "is required in production (variable, _FILE or gemini_api_key secret)")
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
