package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds process configuration, sourced from the environment with
// an optional .env file for development.
type Config struct {
	DBPath   string
	HTTPAddr string
	Debug    bool
}

// Load reads configuration. A missing .env file is not an error; system
// environment variables always win.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		DBPath:   getEnv("PLANBOARD_DB", ""),
		HTTPAddr: getEnv("PLANBOARD_ADDR", ":8080"),
		Debug:    getEnv("PLANBOARD_DEBUG", "") != "",
	}
}

// getEnv returns the variable's value or fallback when unset.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
