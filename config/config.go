package config

import (
	"os"
	"strconv"
)

// Config holds all application-level configuration.
type Config struct {
	// Server
	Port string

	// Remote forecast/performance API
	ForecastAPIURL string

	// Realtime store. When StoreURL is empty the embedded sqlite store at
	// SQLitePath is used instead.
	StoreURL       string
	StoreAuthToken string
	SQLitePath     string

	// Identity provider
	AuthURL    string
	AuthAPIKey string

	// Blob storage. When BlobURL is empty images are written under MediaDir
	// and served from /media.
	BlobURL  string
	MediaDir string

	// Dashboard
	TopProducts int
}

// Load reads configuration from environment variables or falls back to defaults.
func Load() *Config {
	return &Config{
		Port:           getEnv("PORT", "8080"),
		ForecastAPIURL: getEnv("FORECAST_API_URL", "http://localhost:8000"),
		StoreURL:       getEnv("STORE_URL", ""),
		StoreAuthToken: getEnv("STORE_AUTH_TOKEN", ""),
		SQLitePath:     getEnv("SQLITE_PATH", "./shopdash.db"),
		AuthURL:        getEnv("AUTH_URL", "http://localhost:9099/identitytoolkit.googleapis.com/v1"),
		AuthAPIKey:     getEnv("AUTH_API_KEY", ""),
		BlobURL:        getEnv("BLOB_URL", ""),
		MediaDir:       getEnv("MEDIA_DIR", "./media"),
		TopProducts:    getEnvInt("TOP_PRODUCTS", 5),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return defaultVal
}
