package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// Config holds all runtime configuration, loaded once at startup.
type Config struct {
	Port          string
	MongoURI      string
	MongoDB       string
	DataFile      string
	JWTSecret     string
	TokenExpiry   time.Duration
	AdminPassword string

	MetadataAPIURL  string
	MetadataTimeout time.Duration
	UndoWindow      time.Duration

	// Cron expression for the periodic price refresh; empty disables it.
	PriceRefreshSchedule string
}

// LoadConfig reads configuration from a .env file, falling back to the
// process environment when the file is absent.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found, relying on environment variables")
	}

	return &Config{
		Port:          getEnv("PORT", "8080"),
		MongoURI:      os.Getenv("MONGO_URI"),
		MongoDB:       getEnv("MONGO_DB", "livwishlist"),
		DataFile:      getEnv("DATA_FILE", "wishlist_items.json"),
		JWTSecret:     getEnv("JWT_SECRET", "dev-secret"),
		TokenExpiry:   time.Duration(getEnvInt("TOKEN_EXPIRY_HOURS", 72)) * time.Hour,
		AdminPassword: getEnv("ADMIN_PASSWORD", "changeme"),

		MetadataAPIURL:  getEnv("METADATA_API_URL", "https://api.microlink.io"),
		MetadataTimeout: time.Duration(getEnvInt("METADATA_TIMEOUT_SECONDS", 15)) * time.Second,
		UndoWindow:      time.Duration(getEnvInt("UNDO_WINDOW_SECONDS", 4)) * time.Second,

		PriceRefreshSchedule: os.Getenv("PRICE_REFRESH_SCHEDULE"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.WithField("key", key).Warn("Invalid integer in environment, using default")
		return fallback
	}
	return n
}
