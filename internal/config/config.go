package config

import (
	"os"
)

type Config struct {
	DB_USERNAME string
	DB_PASSWORD string
	DB_HOST     string
	DB_PORT     string
	DB_NAME     string
	DISABLE_TLS string

	// Signing secret for session tokens
	JWT_SECRET string

	// Outbound mail credentials
	SMTP_HOST     string
	SMTP_PORT     string
	SMTP_USERNAME string
	SMTP_PASSWORD string
	SMTP_FROM     string

	// Base application URL used in outbound email links
	APP_URL string

	GEMINI_API_KEY string

	// Optional redis for sign-in rate limiting
	REDIS_ADDR     string
	REDIS_PASSWORD string

	// Otel
	OTEL_EXPORTER_OTLP_ENDPOINT string

	PORT string
}

func ReadConfig() *Config {
	return &Config{
		DB_USERNAME: os.Getenv("DB_USERNAME"),
		DB_PASSWORD: os.Getenv("DB_PASSWORD"),
		DB_HOST:     os.Getenv("DB_HOST"),
		DB_PORT:     os.Getenv("DB_PORT"),
		DB_NAME:     os.Getenv("DB_NAME"),
		DISABLE_TLS: os.Getenv("DISABLE_TLS"),

		JWT_SECRET: os.Getenv("JWT_SECRET"),

		SMTP_HOST:     GetEnvOrDefault("SMTP_HOST", "smtp.gmail.com"),
		SMTP_PORT:     GetEnvOrDefault("SMTP_PORT", "587"),
		SMTP_USERNAME: os.Getenv("SMTP_USERNAME"),
		SMTP_PASSWORD: os.Getenv("SMTP_PASSWORD"),
		SMTP_FROM:     os.Getenv("SMTP_FROM"),

		APP_URL: GetEnvOrDefault("APP_URL", "http://localhost:6060"),

		GEMINI_API_KEY: os.Getenv("GEMINI_API_KEY"),

		REDIS_ADDR:     os.Getenv("REDIS_ADDR"),
		REDIS_PASSWORD: os.Getenv("REDIS_PASSWORD"),

		OTEL_EXPORTER_OTLP_ENDPOINT: os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),

		PORT: GetEnvOrDefault("PORT", "6060"),
	}
}

func GetEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
