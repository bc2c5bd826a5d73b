package config

import (
	"os"

	_ "github.com/joho/godotenv/autoload"

	"github.com/emilythestrangee/devflow/backend/internal/database"
)

// Config collects everything the process reads from the environment.
type Config struct {
	Port      string
	JWTSecret string
	Database  database.Config
}

// Load reads the environment (a .env file is picked up automatically) and
// fills in local-dev defaults for anything unset.
func Load() Config {
	return Config{
		Port:      getenv("PORT", "8080"),
		JWTSecret: os.Getenv("JWT_SECRET"),
		Database: database.Config{
			Host:     getenv("DB_HOST", "localhost"),
			Port:     getenv("DB_PORT", "5432"),
			User:     getenv("DB_USER", "postgres"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     getenv("DB_NAME", "devflow"),
			SSLMode:  getenv("DB_SSLMODE", "disable"),
		},
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
