package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Config holds all configuration for the application.
type Config struct {
	// Server configuration
	ServerPort string
	ServerHost string

	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// JWT configuration
	JWTSecret string

	// Recipe search vendor
	RecipeAPIURL string
	RecipeAPIKey string

	// CORS
	AllowedOrigins []string
}

// LoadConfig reads configuration from environment variables, falling back
// to Docker secret files under SECRETS_DIR for each missing value.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerPort: getValue("SERVER_PORT", "8080"),
		ServerHost: getValue("SERVER_HOST", "0.0.0.0"),

		DBHost:     getValue("DB_HOST", "localhost"),
		DBPort:     getValue("DB_PORT", "5432"),
		DBUser:     getValue("DB_USER", ""),
		DBPassword: getValue("DB_PASSWORD", ""),
		DBName:     getValue("DB_NAME", ""),
		DBSSLMode:  getValue("DB_SSL_MODE", "disable"),

		RedisHost:     getValue("REDIS_HOST", "localhost"),
		RedisPort:     getValue("REDIS_PORT", "6379"),
		RedisPassword: getValue("REDIS_PASSWORD", ""),
		RedisURL:      getValue("REDIS_URL", ""),

		JWTSecret: getValue("JWT_SECRET", ""),

		RecipeAPIURL: getValue("RECIPE_API_URL", ""),
		RecipeAPIKey: getValue("RECIPE_API_KEY", ""),
	}

	redisDB, err := strconv.Atoi(getValue("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}
	cfg.RedisDB = redisDB

	if origins := getValue("ALLOWED_ORIGINS", ""); origins != "" {
		for _, origin := range strings.Split(origins, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
			}
		}
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// getValue reads an environment variable, then the matching Docker secret
// file (lowercased name under SECRETS_DIR), then the fallback.
func getValue(name, fallback string) string {
	if value := os.Getenv(name); value != "" {
		return value
	}

	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	if content, err := os.ReadFile(filepath.Join(secretsDir, strings.ToLower(name))); err == nil {
		if value := strings.TrimSpace(string(content)); value != "" {
			return value
		}
	}

	return fallback
}

func validate(cfg *Config) error {
	var missing []string
	required := map[string]string{
		"JWT_SECRET":     cfg.JWTSecret,
		"DB_USER":        cfg.DBUser,
		"DB_PASSWORD":    cfg.DBPassword,
		"DB_NAME":        cfg.DBName,
		"RECIPE_API_URL": cfg.RecipeAPIURL,
	}
	for name, value := range required {
		if value == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}
