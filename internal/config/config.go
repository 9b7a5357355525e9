package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything read from the environment at startup.
type Config struct {
	// Server
	Port string
	Env  string

	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Session
	SessionSecret     string
	SessionExpiration time.Duration
}

var appConfig *Config

// Load reads configuration from the environment, with a .env file as a
// convenience for local development.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment")
	}

	config := &Config{
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("ENV", "development"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "hearth"),
		DBPassword: getEnv("DB_PASSWORD", "hearth"),
		DBName:     getEnv("DB_NAME", "hearth"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		SessionSecret: getEnv("SESSION_SECRET", "fallback-secret-key-for-dev-only"),
	}

	expStr := getEnv("SESSION_EXPIRES_IN", "72h")
	expDur, err := time.ParseDuration(expStr)
	if err != nil {
		log.Printf("invalid SESSION_EXPIRES_IN %q, falling back to 72h", expStr)
		expDur = 72 * time.Hour
	}
	config.SessionExpiration = expDur

	appConfig = config
	return config, nil
}

// Get returns the loaded configuration, loading it on first use.
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("failed to load configuration: %v", err)
		}
	}
	return appConfig
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
