// Package config loads runtime settings from the environment.
package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port      string
	MongoURL  string
	DBName    string
	JWTSecret string
}

// Load reads .env (if present) and the process environment. Mongo settings
// are mandatory; everything else has a default.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("failed to load .env file: %+v", err)
	}

	cfg := Config{
		Port:      os.Getenv("PORT"),
		MongoURL:  os.Getenv("MONGO_URL"),
		DBName:    os.Getenv("DB_NAME"),
		JWTSecret: os.Getenv("JWT_SECRET"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "pulse-of-the-city-secret-key-2024"
	}

	if cfg.MongoURL == "" {
		return Config{}, fmt.Errorf("MONGO_URL environment variable is not set")
	}
	if cfg.DBName == "" {
		return Config{}, fmt.Errorf("DB_NAME environment variable is not set")
	}

	return cfg, nil
}
