package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds every runtime setting of the service.
type Config struct {
	DatabaseDriver    string
	DatabaseURL       string
	JWTSecretKey      string
	AdminPasswordHash string
	ServerPort        int

	NATSURL           string
	NATSSubjectPrefix string

	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2BucketName      string
	R2PublicBaseURL   string

	CORSAllowedOrigins []string
}

// R2Enabled reports whether standings snapshots can be exported. Load only
// accepts the R2 settings all together or not at all.
func (c *Config) R2Enabled() bool {
	return c.R2AccountID != "" && c.R2AccessKeyID != "" && c.R2SecretAccessKey != "" &&
		c.R2BucketName != "" && c.R2PublicBaseURL != ""
}

func (c *Config) r2Partial() bool {
	anySet := c.R2AccountID != "" || c.R2AccessKeyID != "" || c.R2SecretAccessKey != "" ||
		c.R2BucketName != "" || c.R2PublicBaseURL != ""
	return anySet && !c.R2Enabled()
}

// Load reads the configuration from environment variables, loading a .env
// file first when one is present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	driver := getEnvOrDefault("DATABASE_DRIVER", "postgres")
	switch driver {
	case "postgres", "sqlite", "memory":
	default:
		return nil, fmt.Errorf("DATABASE_DRIVER must be one of postgres, sqlite, memory, got %q", driver)
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" && driver != "memory" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is not set")
	}

	jwtKey := os.Getenv("JWT_SECRET_KEY")
	if jwtKey == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY environment variable is not set")
	}

	adminHash := os.Getenv("ADMIN_PASSWORD_HASH")
	if adminHash == "" {
		return nil, fmt.Errorf("ADMIN_PASSWORD_HASH environment variable is not set")
	}

	port, err := strconv.Atoi(getEnvOrDefault("SERVER_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT environment variable: %w", err)
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", port)
	}

	cfg := &Config{
		DatabaseDriver:    driver,
		DatabaseURL:       dbURL,
		JWTSecretKey:      jwtKey,
		AdminPasswordHash: adminHash,
		ServerPort:        port,

		NATSURL:           os.Getenv("NATS_URL"),
		NATSSubjectPrefix: getEnvOrDefault("NATS_SUBJECT_PREFIX", "tournament"),

		R2AccountID:       os.Getenv("R2_ACCOUNT_ID"),
		R2AccessKeyID:     os.Getenv("R2_ACCESS_KEY_ID"),
		R2SecretAccessKey: os.Getenv("R2_SECRET_ACCESS_KEY"),
		R2BucketName:      os.Getenv("R2_BUCKET_NAME"),
		R2PublicBaseURL:   os.Getenv("R2_PUBLIC_BASE_URL"),

		CORSAllowedOrigins: splitList(getEnvOrDefault("CORS_ALLOWED_ORIGINS", "*")),
	}

	if cfg.r2Partial() {
		return nil, fmt.Errorf("incomplete R2 configuration: R2_ACCOUNT_ID, R2_ACCESS_KEY_ID, R2_SECRET_ACCESS_KEY, R2_BUCKET_NAME and R2_PUBLIC_BASE_URL must be set together")
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
