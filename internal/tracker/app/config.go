package app

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Issuer      string // Optional: issuer claim for tokens (default: uptrack)
	TokenSecret string // Required: HS256 signing secret, at least 32 bytes

	DatabaseFile string        // Optional: path to SQLite database file (default: ./uptrack.db)
	UploadDir    string        // Optional: directory for stored upload bytes (default: ./uploads)
	MaxUploadMB  int           // Optional: maximum accepted file size in MB (default: 10)
	PepperFile   string        // Optional: path to file containing pepper for password hashing (default: ./pepper)
	StoreTimeout time.Duration // Optional: per-attempt store timeout (default: 5s)

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	// Local development convenience; missing .env files are fine.
	_ = godotenv.Load()

	return Config{
		Issuer:              getEnvOrDefault("UPTRACK_ISSUER", "uptrack"),
		TokenSecret:         os.Getenv("UPTRACK_TOKEN_SECRET"),
		DatabaseFile:        getEnvOrDefault("UPTRACK_DATABASE_FILE", "uptrack.db"),
		UploadDir:           getEnvOrDefault("UPTRACK_UPLOAD_DIR", "uploads"),
		MaxUploadMB:         getEnvIntOrDefault("UPTRACK_MAX_UPLOAD_MB", 10),
		PepperFile:          getEnvOrDefault("UPTRACK_PEPPER_FILE", "pepper"),
		StoreTimeout:        getEnvDurationOrDefault("STORE_TIMEOUT", 5*time.Second),
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Plain integers are read as seconds.
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}

	return defaultValue
}
