package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/storefront")
	t.Setenv("PORT", "")
	t.Setenv("SECTION_FETCH_CONCURRENCY", "")
	t.Setenv("SECTION_FETCH_TIMEOUT", "")
	t.Setenv("PREVIEW_RATE_PER_MINUTE", "")
	t.Setenv("IMAGE_CACHE_DIR", "")
	t.Setenv("IMAGE_ALLOWED_HOSTS", "")
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "")
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS_JSON", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "0.0.0.0:8080", cfg.Addr())
	assert.Equal(t, 8, cfg.SectionFetchConcurrency)
	assert.Equal(t, 10*time.Second, cfg.SectionFetchTimeout)
	assert.Equal(t, 6, cfg.PreviewRatePerMinute)
	assert.Equal(t, "cache/images", cfg.ImageCacheDir)
	assert.Empty(t, cfg.ImageAllowedHosts)
	assert.False(t, cfg.DriveEnabled())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/storefront")
	t.Setenv("PORT", ":9000")
	t.Setenv("SECTION_FETCH_CONCURRENCY", "3")
	t.Setenv("SECTION_FETCH_TIMEOUT", "2s")
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "/tmp/creds.json")
	t.Setenv("IMAGE_ALLOWED_HOSTS", "cdn.example.com, .images.example.com,,")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"cdn.example.com", ".images.example.com"}, cfg.ImageAllowedHosts)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, 3, cfg.SectionFetchConcurrency)
	assert.Equal(t, 2*time.Second, cfg.SectionFetchTimeout)
	assert.True(t, cfg.DriveEnabled())
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/storefront")

	t.Setenv("SECTION_FETCH_CONCURRENCY", "zero")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("SECTION_FETCH_CONCURRENCY", "")
	t.Setenv("SECTION_FETCH_TIMEOUT", "soon")
	_, err = Load()
	assert.Error(t, err)
}

func TestDatabaseURL_FromParts(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_USER", "app")
	t.Setenv("DB_NAME", "storefront")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_PORT", "")
	t.Setenv("DB_SSLMODE", "")

	dsn, err := DatabaseURL()
	require.NoError(t, err)
	assert.Equal(t, "host=db port=5432 user=app password=secret dbname=storefront sslmode=disable", dsn)

	t.Setenv("DB_HOST", "")
	_, err = DatabaseURL()
	assert.Error(t, err)
}
