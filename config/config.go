package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds every recognized environment option. It is built once in main
// and passed into stores, services and handlers explicitly.
type Config struct {
	Port         string
	Environment  string
	DatabasePath string

	GitHubUsername string
	GitHubToken    string

	FirebaseDatabaseURL     string
	FirebaseDatabaseSecret  string
	FirebaseCredentialsPath string

	CORSOrigins []string

	KeepAliveURL      string
	KeepAliveInterval time.Duration

	AuthEnabled  bool
	JWTSecretKey string

	// Declared for parity with the deployment environment; no endpoint
	// enforces rate limits yet.
	RateLimitRequests int
	RateLimitWindow   time.Duration

	// Email delivery is not implemented; the settings are accepted so a
	// deployment can carry them without failing validation.
	SMTPServer      string
	SMTPPort        int
	EmailFrom       string
	EmailServiceKey string
}

// Load reads the .env file when present and resolves every option from the
// environment with sane defaults.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found or error loading .env: %v", err)
	}

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("DATABASE_PATH", "./portfolio.db")
	v.SetDefault("GITHUB_USERNAME", "QRTQuick")
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("KEEP_ALIVE_URL", "")
	v.SetDefault("KEEP_ALIVE_INTERVAL", "2s")
	v.SetDefault("AUTH_ENABLED", false)
	v.SetDefault("RATE_LIMIT_REQUESTS", 100)
	v.SetDefault("RATE_LIMIT_WINDOW", "1h")
	v.SetDefault("SMTP_SERVER", "smtp.gmail.com")
	v.SetDefault("SMTP_PORT", 587)

	return &Config{
		Port:         v.GetString("PORT"),
		Environment:  v.GetString("ENVIRONMENT"),
		DatabasePath: v.GetString("DATABASE_PATH"),

		GitHubUsername: v.GetString("GITHUB_USERNAME"),
		GitHubToken:    v.GetString("GITHUB_TOKEN"),

		FirebaseDatabaseURL:     v.GetString("FIREBASE_DATABASE_URL"),
		FirebaseDatabaseSecret:  v.GetString("FIREBASE_DATABASE_SECRET"),
		FirebaseCredentialsPath: v.GetString("FIREBASE_CREDENTIALS_PATH"),

		CORSOrigins: splitOrigins(v.GetString("CORS_ORIGINS")),

		KeepAliveURL:      v.GetString("KEEP_ALIVE_URL"),
		KeepAliveInterval: v.GetDuration("KEEP_ALIVE_INTERVAL"),

		AuthEnabled:  v.GetBool("AUTH_ENABLED"),
		JWTSecretKey: v.GetString("JWT_SECRET_KEY"),

		RateLimitRequests: v.GetInt("RATE_LIMIT_REQUESTS"),
		RateLimitWindow:   v.GetDuration("RATE_LIMIT_WINDOW"),

		SMTPServer:      v.GetString("SMTP_SERVER"),
		SMTPPort:        v.GetInt("SMTP_PORT"),
		EmailFrom:       v.GetString("EMAIL_FROM"),
		EmailServiceKey: v.GetString("EMAIL_SERVICE_KEY"),
	}
}

// IsProduction reports whether the deployment-environment flag gates
// production-only behavior (the keep-alive task) on.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

func splitOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
