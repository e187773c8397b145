package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Application
	AppName string
	AppEnv  string
	AppURL  string
	Port    string

	// Database (optional driver switch via ENV, default: sqlite)
	DBDriver     string
	DBConnection string

	// Security
	JWTSecret string
	JWTExpiry time.Duration

	// Email
	EmailFrom    string
	ResendAPIKey string
	StaffEmail   string // Receives property submission notices

	// Observability (optional)
	SentryDSN string

	// Storage (S3-compatible: MinIO, AWS S3, Cloudflare R2, etc.)
	S3Region           string
	S3AccessKey        string
	S3SecretKey        string
	S3Endpoint         string // Optional: for non-AWS providers
	S3BucketProperties string
	S3BucketUserDocs   string
	S3UploadTimeout    time.Duration

	// Onboarding
	WizardCacheSize   int64         // Max wizards kept in memory
	WizardCacheTTL    time.Duration // Idle wizards are reloaded from the store after this
	UploadConcurrency int           // Parallel uploads per request
	NotifyTimeout     time.Duration // Per completion notice
}

func Load() *Config {
	err := godotenv.Load()
	if err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg := &Config{
		// Application
		AppName: envString("APP_NAME", "PremiumConnect"),
		AppEnv:  envRequired("APP_ENV"), // Required: 'development' or 'production'
		AppURL:  envRequired("APP_URL"), // Required: base URL for email links
		Port:    envString("PORT", "8090"),

		// Database
		DBDriver:     envString("DB_DRIVER", "sqlite"),
		DBConnection: envString("DB_CONNECTION", "./data/premiumconnect.db?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)"),

		// Security
		JWTSecret: envRequired("JWT_SECRET"),
		JWTExpiry: envDuration("JWT_EXPIRY", 168*time.Hour), // 7 days

		// Email (RESEND_API_KEY optional in development, required in production)
		EmailFrom:    envString("EMAIL_FROM", "noreply@example.com"),
		ResendAPIKey: envString("RESEND_API_KEY", ""),
		StaffEmail:   envString("STAFF_EMAIL", "onboarding@example.com"),

		// Observability
		SentryDSN: envString("SENTRY_DSN", ""),

		// Storage
		S3Region:           envRequired("S3_REGION"),
		S3AccessKey:        envRequired("S3_ACCESS_KEY"),
		S3SecretKey:        envRequired("S3_SECRET_KEY"),
		S3Endpoint:         envString("S3_ENDPOINT", ""),
		S3BucketProperties: envString("S3_BUCKET_PROPERTIES", "properties"),
		S3BucketUserDocs:   envString("S3_BUCKET_USER_DOCS", "user-docs"),
		S3UploadTimeout:    envDuration("S3_UPLOAD_TIMEOUT", 2*time.Minute),

		// Onboarding
		WizardCacheSize:   int64(envInt("WIZARD_CACHE_SIZE", 1000)),
		WizardCacheTTL:    envDuration("WIZARD_CACHE_TTL", 30*time.Minute),
		UploadConcurrency: envInt("UPLOAD_CONCURRENCY", 4),
		NotifyTimeout:     envDuration("NOTIFY_TIMEOUT", 15*time.Second),
	}

	// Production: validate required services
	if cfg.IsProduction() {
		validateProduction(cfg)
	}

	return cfg
}

// validateProduction ensures all required services are configured for production deployments.
// Development allows email to run in log mode.
func validateProduction(cfg *Config) {
	if cfg.ResendAPIKey == "" {
		slog.Error("production deployment requires RESEND_API_KEY",
			"hint", "set APP_ENV=development for local testing with email log mode")
		os.Exit(1)
	}
	if len(cfg.JWTSecret) < 32 {
		slog.Error("production deployment requires a JWT_SECRET of at least 32 characters")
		os.Exit(1)
	}
}

func envString(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		value = def
	}
	return value
}

func envInt(key string, def int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("config invalid int, using default", "key", key, "value", v, "default", def)
		return def
	}
	return i
}

func envDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("config invalid duration, using default", "key", key, "value", v, "default", def)
		return def
	}
	return d
}

func envRequired(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	slog.Error("config required env var missing", "key", key)
	os.Exit(1)
	return ""
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}
