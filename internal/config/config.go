package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr          string
	DatabaseURL   string
	FrontendDir   string
	UploadsDir    string
	Environment   string
	RunMigrations bool
	MigrationsDir string
	MaxBodyBytes  int64
}

func Load() Config {
	// .env is optional; real env vars always win.
	_ = godotenv.Load()

	return Config{
		Addr:          getEnv("APP_ADDR", ":3001"),
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		FrontendDir:   getEnv("FRONTEND_DIR", "client/build"),
		UploadsDir:    getEnv("UPLOADS_DIR", "uploads"),
		Environment:   getEnv("APP_ENV", "development"),
		RunMigrations: getEnvBool("RUN_MIGRATIONS", true),
		MigrationsDir: getEnv("MIGRATIONS_DIR", "migrations"),
		MaxBodyBytes:  int64(getEnvInt("MAX_BODY_BYTES", 20971520)),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.MaxBodyBytes < 1024 {
		return fmt.Errorf("MAX_BODY_BYTES must be at least 1024")
	}
	return nil
}
