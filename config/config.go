package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	// DevelopmentSecret signs credentials when JWT_SECRET is unset outside production.
	DevelopmentSecret = "cambia_este_secreto"

	RosterSourceXLSX     = "xlsx"
	RosterSourcePostgres = "postgres"
)

// Config holds all configuration for the application
type Config struct {
	Environment string
	Port        string
	LogLevel    string

	JWTSecret string
	// InsecureSecret is set when JWTSecret fell back to DevelopmentSecret.
	InsecureSecret  bool
	PrivilegedRoles []string

	RosterSource string
	RosterPath   string
	RosterSheet  string
	DBUrl        string

	CORSAllowedOrigins []string

	EmailProvider         string
	EmailFromAddress      string
	EmailFromName         string
	AWSRegion             string
	AWSAccessKeyID        string
	AWSSecretAccessKey    string
	SESInsecureSkipVerify bool
}

// IsProduction reports whether GO_ENV is "production".
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Load loads configuration from environment variables
// It attempts to load from .env file if not in production
func Load() (*Config, error) {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	// In production the process environment is authoritative.
	if env != "production" {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			log.Printf("Warning: .env file couldn't be loaded: %v", err)
		}
	}

	cfg := &Config{
		Environment:        env,
		Port:               getEnv("PORT", "8080"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		PrivilegedRoles:    splitList(getEnv("PRIVILEGED_ROLES", "Presidenta,Vicepresidente")),
		RosterSource:       strings.ToLower(getEnv("ROSTER_SOURCE", RosterSourceXLSX)),
		RosterPath:         getEnv("ROSTER_PATH", "members.xlsx"),
		RosterSheet:        getEnv("ROSTER_SHEET", "Miembros"),
		DBUrl:              os.Getenv("DATABASE_URL"),
		CORSAllowedOrigins: splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
		EmailProvider:      strings.ToLower(getEnv("EMAIL_PROVIDER", "noop")),
		EmailFromAddress:   os.Getenv("EMAIL_FROM_ADDRESS"),
		EmailFromName:      os.Getenv("EMAIL_FROM_NAME"),
		AWSRegion:          os.Getenv("AWS_REGION"),
		AWSAccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
		AWSSecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
	}

	if s := os.Getenv("SES_INSECURE_SKIP_VERIFY"); s != "" {
		v, err := strconv.ParseBool(s)
		if err != nil {
			return nil, fmt.Errorf("SES_INSECURE_SKIP_VERIFY: %w", err)
		}
		cfg.SESInsecureSkipVerify = v
	}

	if cfg.JWTSecret == "" {
		if cfg.IsProduction() {
			return nil, errors.New("JWT_SECRET is required in production")
		}
		cfg.JWTSecret = DevelopmentSecret
		cfg.InsecureSecret = true
	}

	switch cfg.RosterSource {
	case RosterSourceXLSX:
	case RosterSourcePostgres:
		if cfg.DBUrl == "" {
			return nil, errors.New("DATABASE_URL is required when ROSTER_SOURCE is postgres")
		}
	default:
		return nil, fmt.Errorf("unknown ROSTER_SOURCE %q (want %s or %s)", cfg.RosterSource, RosterSourceXLSX, RosterSourcePostgres)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
