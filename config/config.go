package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the service settings read from the environment
type Config struct {
	Env                     string
	Port                    string
	DatabaseURL             string
	LogLevel                string
	LogFormat               string
	SectionFetchConcurrency int
	SectionFetchTimeout     time.Duration
	ChromePath              string
	PreviewRatePerMinute    int
	ImageCacheDir           string
	ImageAllowedHosts       []string
	GoogleCredentialsPath   string
	GoogleCredentialsJSON   string
}

const (
	defaultPort                    = "8080"
	defaultSectionFetchConcurrency = 8
	defaultSectionFetchTimeout     = 10 * time.Second
	defaultPreviewRatePerMinute    = 6
	defaultImageCacheDir           = "cache/images"
)

// LoadEnvFile loads .env into the process environment outside production.
// Values in .env override the system environment.
func LoadEnvFile(path string) {
	if os.Getenv("ENV") == "production" {
		return
	}
	if err := godotenv.Overload(path); err != nil {
		log.Printf("⚠️ .env file not found at %s, using system environment variables", path)
		return
	}
	log.Printf("✓ Loaded environment variables from %s", path)
}

// Load reads the configuration from the environment
func Load() (*Config, error) {
	cfg := &Config{
		Env:                   os.Getenv("ENV"),
		Port:                  normalizePort(os.Getenv("PORT")),
		LogLevel:              getEnv("LOG_LEVEL", "info"),
		LogFormat:             getEnv("LOG_FORMAT", "text"),
		ChromePath:            os.Getenv("CHROME_PATH"),
		ImageCacheDir:         getEnv("IMAGE_CACHE_DIR", defaultImageCacheDir),
		ImageAllowedHosts:     getList("IMAGE_ALLOWED_HOSTS"),
		GoogleCredentialsPath: os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
		GoogleCredentialsJSON: os.Getenv("GOOGLE_APPLICATION_CREDENTIALS_JSON"),
	}

	dsn, err := DatabaseURL()
	if err != nil {
		return nil, err
	}
	cfg.DatabaseURL = dsn

	if cfg.SectionFetchConcurrency, err = getInt("SECTION_FETCH_CONCURRENCY", defaultSectionFetchConcurrency); err != nil {
		return nil, err
	}
	if cfg.PreviewRatePerMinute, err = getInt("PREVIEW_RATE_PER_MINUTE", defaultPreviewRatePerMinute); err != nil {
		return nil, err
	}

	cfg.SectionFetchTimeout = defaultSectionFetchTimeout
	if v := os.Getenv("SECTION_FETCH_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("invalid SECTION_FETCH_TIMEOUT %q", v)
		}
		cfg.SectionFetchTimeout = d
	}

	return cfg, nil
}

// DatabaseURL returns DATABASE_URL, or a connection string built from the DB_* variables
func DatabaseURL() (string, error) {
	if connStr := os.Getenv("DATABASE_URL"); connStr != "" {
		return connStr, nil
	}

	host := os.Getenv("DB_HOST")
	user := os.Getenv("DB_USER")
	dbname := os.Getenv("DB_NAME")
	if host == "" || user == "" || dbname == "" {
		return "", fmt.Errorf("database connection variables not set. Set DATABASE_URL or DB_HOST, DB_USER, DB_NAME")
	}

	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, getEnv("DB_PORT", "5432"), user, os.Getenv("DB_PASSWORD"), dbname, getEnv("DB_SSLMODE", "disable")), nil
}

// Addr is the listen address. 0.0.0.0 accepts connections from all interfaces (Docker/Render).
func (c *Config) Addr() string {
	return "0.0.0.0:" + c.Port
}

// DriveEnabled reports whether Google Drive credentials are configured
func (c *Config) DriveEnabled() bool {
	return c.GoogleCredentialsPath != "" || c.GoogleCredentialsJSON != ""
}

// normalizePort strips a leading colon (PORT from Render doesn't include it, others might)
func normalizePort(port string) string {
	port = strings.TrimPrefix(strings.TrimSpace(port), ":")
	if port == "" {
		return defaultPort
	}
	return port
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getList splits a comma-separated variable, dropping empty entries
func getList(key string) []string {
	var out []string
	for _, v := range strings.Split(os.Getenv(key), ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func getInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be a positive integer", key, v)
	}
	return n, nil
}
