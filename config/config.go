package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all runtime configuration for the server.
type Config struct {
	Port        string
	DatabaseURL string

	// Hosted model credentials
	GroqAPIKey   string
	GeminiAPIKey string

	// Auth
	JWTSecret string

	// SMTP relay for OTP mail
	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string

	// Logging
	LogLevel  string
	LogFormat string
}

// Load reads configuration from environment variables. Every credential the
// server needs at runtime is validated here so a misconfigured deployment
// fails at startup instead of on the first request that touches the service.
func Load() (*Config, error) {
	cfg := &Config{
		Port:         getEnv("PORT", "8080"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		GroqAPIKey:   os.Getenv("GROQ_API_KEY"),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPUser:     os.Getenv("SMTP_USER"),
		SMTPPass:     os.Getenv("SMTP_PASS"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		LogFormat:    getEnv("LOG_FORMAT", "text"),
	}

	port, err := strconv.Atoi(getEnv("SMTP_PORT", "587"))
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT: %w", err)
	}
	cfg.SMTPPort = port

	var missing []string
	required := []struct {
		name  string
		value string
	}{
		{"DATABASE_URL", cfg.DatabaseURL},
		{"GROQ_API_KEY", cfg.GroqAPIKey},
		{"GEMINI_API_KEY", cfg.GeminiAPIKey},
		{"JWT_SECRET", cfg.JWTSecret},
		{"SMTP_HOST", cfg.SMTPHost},
		{"SMTP_USER", cfg.SMTPUser},
		{"SMTP_PASS", cfg.SMTPPass},
	}
	for _, r := range required {
		if r.value == "" {
			missing = append(missing, r.name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
