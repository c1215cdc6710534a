package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	APIBaseURL      string
	HTTPTimeout     time.Duration
	CredentialsPath string
	LogLevel        string

	// stub server only
	Port           string
	AllowedOrigins []string
}

func Load() Config {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	baseURL := getenv("SPORTMATCH_API_URL", "http://localhost:8080")
	baseURL = strings.TrimSuffix(baseURL, "/")

	timeout := 15 * time.Second
	if raw := getenv("SPORTMATCH_HTTP_TIMEOUT", ""); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			timeout = d
		}
	}

	credsPath := getenv("SPORTMATCH_CREDENTIALS_PATH", "")
	if credsPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		credsPath = home + "/.sportmatch/credentials.db"
	}

	port := getenv("PORT", "8080")
	origins := getenv("ALLOWED_ORIGINS", "http://localhost:19006")

	allowed := []string{}
	for _, o := range strings.Split(origins, ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			allowed = append(allowed, o)
		}
	}

	return Config{
		APIBaseURL:      baseURL,
		HTTPTimeout:     timeout,
		CredentialsPath: credsPath,
		LogLevel:        getenv("LOG_LEVEL", "info"),
		Port:            port,
		AllowedOrigins:  allowed,
	}
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}
