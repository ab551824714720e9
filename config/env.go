package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// Environment is the runtime environment the process was started in.
type Environment string

const (
	Development Environment = "development"
	Test        Environment = "test"
	CI          Environment = "ci"
	Production  Environment = "production"
)

// GetEnvironment reads ENV, with CI=true taking precedence. Unknown values
// mean development.
func GetEnvironment() Environment {
	if os.Getenv("CI") == "true" {
		return CI
	}
	switch Environment(strings.ToLower(os.Getenv("ENV"))) {
	case Production:
		return Production
	case Test:
		return Test
	default:
		return Development
	}
}

// UsesDotEnv reports whether a .env file is consulted in env.
func (e Environment) UsesDotEnv() bool {
	return e == Development || e == Test
}

// UsesSecrets reports whether Docker secrets are consulted in env. CI reads
// sensitive values from its own environment only.
func (e Environment) UsesSecrets() bool {
	return e != CI
}

// loadDotEnv loads ENV_FILE (default .env) without overriding variables that
// are already set. A missing file is not an error.
func loadDotEnv() error {
	path := os.Getenv("ENV_FILE")
	if path == "" {
		path = ".env"
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	return godotenv.Load(path)
}

// readSecret reads a Docker secret from SECRETS_DIR (default /run/secrets).
func readSecret(name string) string {
	dir := os.Getenv("SECRETS_DIR")
	if dir == "" {
		dir = "/run/secrets"
	}
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}
