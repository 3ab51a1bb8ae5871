package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port               string
	AppEnv             string
	APIBaseURL         string
	RedirectBaseURL    string
	GatewayBaseURL     string
	DatabaseURL        string
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
	JWTSecret          string
	AllowedEmails      []string
}

func Load() *Config {
	_ = godotenv.Load() // Ignore error if .env not found (e.g. prod)

	return &Config{
		Port:               getEnv("PORT", "8090"),
		AppEnv:             getEnv("APP_ENV", "local"),
		APIBaseURL:         getEnv("API_BASE_URL", "http://localhost:8080/api/v1"),
		RedirectBaseURL:    getEnv("REDIRECT_BASE_URL", "http://localhost:8090"),
		GatewayBaseURL:     getEnv("GATEWAY_BASE_URL", "http://localhost:8090"),
		DatabaseURL:        getEnv("DATABASE_URL", "file:linklink.db"),
		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirectURL:  getEnv("GOOGLE_REDIRECT_URL", "http://localhost:8090/auth/google/callback"),
		JWTSecret:          getEnv("JWT_SECRET", "secret"),
		AllowedEmails:      splitList(getEnv("ALLOWED_EMAILS", "")),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
