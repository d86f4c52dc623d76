package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// Environment
	Environment string
	LogLevel    string

	// Server
	Port        string
	FrontendURL string

	// Catalog
	CatalogSource          string // "file" or "postgres"
	CatalogPath            string
	CatalogCacheTTLSeconds int

	// Database
	DatabaseURL    string
	MigrateOnStart bool

	// Redis
	RedisURL string

	// Viewer
	FrameRateHz   int
	PlateY        float64
	PitchDuration float64

	// Security
	JWTSecret         string
	AdminPasswordHash string
	SessionTimeoutMin int
}

const (
	SourceFile     = "file"
	SourcePostgres = "postgres"
)

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	return &Config{
		// Environment
		Environment: getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		// Server
		Port:        getEnv("APP_PORT", "8080"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:5173"),

		// Catalog
		CatalogSource:          getEnv("CATALOG_SOURCE", SourceFile),
		CatalogPath:            getEnv("CATALOG_PATH", "pitch_data.json"),
		CatalogCacheTTLSeconds: getEnvInt("CATALOG_CACHE_TTL_SECONDS", 300),

		// Database
		DatabaseURL:    getEnv("DATABASE_URL", "postgres://localhost:5432/pitchviz?sslmode=disable"),
		MigrateOnStart: getEnvBool("MIGRATE_ON_START", false),

		// Redis
		RedisURL: getEnv("REDIS_URL", ""),

		// Viewer
		FrameRateHz:   getEnvInt("FRAME_RATE_HZ", 60),
		PlateY:        getEnvFloat("PLATE_Y", -60.5),
		PitchDuration: getEnvFloat("PITCH_DURATION", 0.45),

		// Security
		JWTSecret:         getEnv("JWT_SECRET", "change-me-in-production"),
		AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		SessionTimeoutMin: getEnvInt("SESSION_TIMEOUT_MINUTES", 30),
	}
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
