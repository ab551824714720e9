package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Store backends selectable with STORE_BACKEND.
const (
	StoreMemory   = "memory"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
	StoreRedis    = "redis"
	StoreS3       = "s3"
)

// Config holds all configuration for the application
type Config struct {
	Environment Environment

	// Server configuration
	ServerHost         string
	ServerPort         string
	CORSAllowedOrigins []string
	MaxUploadBytes     int64

	// Logging
	LogLevel  string
	LogFormat string

	// Document store
	StoreBackend string
	StateKey     string
	SQLitePath   string
	DatabaseURL  string

	// Redis configuration
	RedisURL      string
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string

	// S3 configuration
	S3BucketName string
	S3Prefix     string
	S3Endpoint   string
	AWSRegion    string

	// Gemini
	GeminiAPIKey string
	GeminiAPIURL string
	GeminiModel  string
	AITimeout    time.Duration
}

// LoadConfig builds the configuration from the environment, a .env file in
// development and test, and Docker secrets outside CI. Every problem found
// is reported in one error.
func LoadConfig() (*Config, error) {
	env := GetEnvironment()
	if env.UsesDotEnv() {
		if err := loadDotEnv(); err != nil {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	}

	l := &loader{env: env}
	cfg := &Config{
		Environment:        env,
		ServerHost:         l.str("SERVER_HOST", "0.0.0.0"),
		ServerPort:         l.str("SERVER_PORT", "8080"),
		CORSAllowedOrigins: l.list("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		MaxUploadBytes:     l.integer("MAX_UPLOAD_BYTES", 10<<20),

		LogLevel:  l.str("LOG_LEVEL", "info"),
		LogFormat: l.str("LOG_FORMAT", defaultLogFormat(env)),

		StoreBackend: strings.ToLower(l.str("STORE_BACKEND", StoreSQLite)),
		StateKey:     l.str("STATE_KEY", "nutritionAppData"),
		SQLitePath:   l.str("SQLITE_PATH", "nutrilog.db"),
		DatabaseURL:  l.secret("DATABASE_URL", "database_url"),

		RedisURL:      l.secret("REDIS_URL", "redis_url"),
		RedisHost:     l.str("REDIS_HOST", "localhost"),
		RedisPort:     l.str("REDIS_PORT", "6379"),
		RedisPassword: l.secret("REDIS_PASSWORD", "redis_password"),
		RedisDB:       int(l.integer("REDIS_DB", 0)),
		RedisPrefix:   l.str("REDIS_PREFIX", "nutrilog:"),

		S3BucketName: l.str("S3_BUCKET_NAME", ""),
		S3Prefix:     l.str("S3_PREFIX", ""),
		S3Endpoint:   l.str("S3_ENDPOINT", ""),
		AWSRegion:    l.str("AWS_REGION", "us-east-1"),

		GeminiAPIKey: l.secret("GEMINI_API_KEY", "gemini_api_key"),
		GeminiAPIURL: l.str("GEMINI_API_URL", "https://generativelanguage.googleapis.com/v1beta"),
		GeminiModel:  l.str("GEMINI_MODEL", "gemini-2.5-flash"),
		AITimeout:    l.duration("AI_TIMEOUT", 60*time.Second),
	}

	errs := l.errs
	if err := ValidateConfig(cfg); err != nil {
		errs = append(errs, err.(ValidationErrors)...)
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return cfg, nil
}

// Addr is the listen address.
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

func defaultLogFormat(env Environment) string {
	if env == Development {
		return "console"
	}
	return "json"
}

// loader reads typed values and records parse failures instead of stopping
// at the first one.
type loader struct {
	env  Environment
	errs ValidationErrors
}

func (l *loader) str(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return def
}

// secret prefers the variable, then <key>_FILE, then the Docker secret.
func (l *loader) secret(key, secretName string) string {
	if v := l.str(key, ""); v != "" {
		return v
	}
	if path := l.str(key+"_FILE", ""); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			l.errs = append(l.errs, ValidationError{Field: key + "_FILE", Message: err.Error()})
			return ""
		}
		return strings.TrimSpace(string(data))
	}
	if l.env.UsesSecrets() {
		return readSecret(secretName)
	}
	return ""
}

func (l *loader) list(key, def string) []string {
	var out []string
	for _, part := range strings.Split(l.str(key, def), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (l *loader) integer(key string, def int64) int64 {
	raw := l.str(key, "")
	if raw == "" {
		return def
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		l.errs = append(l.errs, ValidationError{Field: key, Message: fmt.Sprintf("invalid integer %q", raw)})
		return def
	}
	return v
}

func (l *loader) duration(key string, def time.Duration) time.Duration {
	raw := l.str(key, "")
	if raw == "" {
		return def
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		l.errs = append(l.errs, ValidationError{Field: key, Message: fmt.Sprintf("invalid duration %q", raw)})
		return def
	}
	return v
}
