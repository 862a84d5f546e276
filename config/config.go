package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	// DefaultStaleTime is how long fetched content is considered fresh
	DefaultStaleTime = 5 * time.Minute
	// DefaultAPITimeout bounds a single backend request
	DefaultAPITimeout = 30 * time.Second
)

type Config struct {
	ServerPort  string
	Environment string
	AppURL      string
	// Backend content API
	APIBaseURL   string
	APITimeout   time.Duration
	APIUserAgent string
	// Content cache
	ContentStaleTime    time.Duration
	ContentWarmSchedule string // cron spec, "off" disables the warmer
	ContentWarmOnStart  bool
	SnapshotDBPath      string // "off" disables snapshot persistence
	// Other
	AllowedOrigins []string
	UploadDir      string
	ChromePath     string
	// Cloudflare R2 Storage (rendered legal PDFs)
	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2BucketName      string
	R2PublicURL       string
}

func Load() *Config {
	// Load .env file (ignore error if not present - use system env vars)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	return &Config{
		ServerPort:          getEnv("SERVER_PORT", "8080"),
		Environment:         getEnv("ENVIRONMENT", "development"),
		AppURL:              strings.TrimRight(getEnv("APP_URL", "http://localhost:8080"), "/"),
		APIBaseURL:          strings.TrimRight(getEnv("API_BASE_URL", "http://localhost:8000/api"), "/"),
		APITimeout:          getEnvDuration("API_TIMEOUT", DefaultAPITimeout),
		APIUserAgent:        getEnv("API_USER_AGENT", "toorrii-site/1.0"),
		ContentStaleTime:    getEnvDuration("CONTENT_STALE_TIME", DefaultStaleTime),
		ContentWarmSchedule: getEnv("CONTENT_WARM_SCHEDULE", "@every 4m"),
		ContentWarmOnStart:  getEnvBool("CONTENT_WARM_ON_START", true),
		SnapshotDBPath:      getEnv("SNAPSHOT_DB_PATH", "db/content.db"),
		AllowedOrigins:      strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
		UploadDir:           getEnv("UPLOAD_DIR", "static/generated"),
		ChromePath:          getEnv("CHROME_PATH", ""),
		R2AccountID:         getEnv("R2_ACCOUNT_ID", ""),
		R2AccessKeyID:       getEnv("R2_ACCESS_KEY_ID", ""),
		R2SecretAccessKey:   getEnv("R2_SECRET_ACCESS_KEY", ""),
		R2BucketName:        getEnv("R2_BUCKET_NAME", ""),
		R2PublicURL:         getEnv("R2_PUBLIC_URL", ""),
	}
}

// IsProduction reports whether the app runs with production settings
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		log.Printf("Using default value for %s: %s", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	// Accept common boolean representations
	switch strings.ToLower(value) {
	case "true", "1", "yes", "on":
		return true
	case "false", "0", "no", "off":
		return false
	default:
		return defaultValue
	}
}

// getEnvDuration parses Go duration strings ("90s", "5m"). Invalid or
// non-positive values fall back to the default.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		log.Printf("[WARNING] Invalid duration for %s (%q), using %s", key, value, defaultValue)
		return defaultValue
	}
	return d
}
