package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
)

// Config holds all process-wide settings. It is built once at startup,
// validated, and passed by reference into the components that need it.
type Config struct {
	Env  string `validate:"oneof=development production test"`
	Port string `validate:"required,numeric"`

	Database Database

	RedisAddr     string `validate:"required"`
	SessionSecret string `validate:"required,min=16"`

	SMTP SMTP

	SupportEmail string `validate:"required,email"`
}

type Database struct {
	Host     string `validate:"required"`
	Port     string `validate:"required,numeric"`
	User     string `validate:"required"`
	Password string `validate:"required"`
	Name     string `validate:"required"`
	SSLMode  string `validate:"oneof=disable require verify-ca verify-full"`
}

type SMTP struct {
	Host     string `validate:"required"`
	Port     int    `validate:"gt=0,lt=65536"`
	Username string `validate:"required"`
	Password string `validate:"required"`
	From     string `validate:"required,email"`
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load builds a Config from the environment and validates it. Callers are
// expected to treat an error as fatal.
func Load() (*Config, error) {
	cfg := &Config{
		Env:  getEnv("APP_ENV", "development"),
		Port: getEnv("PORT", "3000"),
		Database: Database{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     os.Getenv("DB_NAME"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		SessionSecret: os.Getenv("SESSION_SECRET"),
		SMTP: SMTP{
			Host:     os.Getenv("SMTP_HOST"),
			Port:     getEnvInt("SMTP_PORT", 587),
			Username: os.Getenv("SMTP_USERNAME"),
			Password: os.Getenv("SMTP_PASSWORD"),
			From:     os.Getenv("EMAIL_FROM"),
		},
		SupportEmail: os.Getenv("SUPPORT_EMAIL"),
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var n int
	if _, err := fmt.Sscanf(value, "%d", &n); err != nil {
		// let struct validation reject it
		return 0
	}
	return n
}
