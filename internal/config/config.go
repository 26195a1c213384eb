package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	ServerPort   int
	DatabasePath string
	PublicURL    string // Base URL used in verification links

	JWTSecret string
	TokenTTL  time.Duration

	AllowedOrigin string

	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	MailFrom string

	// RequireVerifiedEmail gates login on a completed email verification.
	// Off by default: accounts may log in before clicking the link.
	RequireVerifiedEmail bool

	// EventRetention is how long auth events are kept before the sweeper
	// removes them. EventSweepSchedule is a standard cron expression.
	EventRetention     time.Duration
	EventSweepSchedule string

	AppEnv string
}

// Load loads configuration from a .env file (if present) and environment
// variables, with defaults for local development.
func Load() (*Config, error) {
	_ = godotenv.Load() // missing .env is fine

	port, err := strconv.Atoi(getEnv("PORT", "4000"))
	if err != nil {
		return nil, err
	}

	smtpPort, err := strconv.Atoi(getEnv("SMTP_PORT", "587"))
	if err != nil {
		return nil, err
	}

	tokenTTL, err := time.ParseDuration(getEnv("TOKEN_TTL", "1h"))
	if err != nil {
		return nil, err
	}

	retention, err := time.ParseDuration(getEnv("EVENT_RETENTION", "720h"))
	if err != nil {
		return nil, err
	}

	return &Config{
		ServerPort:           port,
		DatabasePath:         getEnv("DATABASE_PATH", "./glassauth.db"),
		PublicURL:            getEnv("PUBLIC_URL", "http://localhost:4000"),
		JWTSecret:            getEnv("JWT_SECRET", ""),
		TokenTTL:             tokenTTL,
		AllowedOrigin:        getEnv("ALLOWED_ORIGIN", "http://localhost:3000"),
		SMTPHost:             getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:             smtpPort,
		SMTPUser:             getEnv("SMTP_USER", ""),
		SMTPPass:             getEnv("SMTP_PASS", ""),
		MailFrom:             getEnv("MAIL_FROM", getEnv("SMTP_USER", "")),
		RequireVerifiedEmail: getEnv("REQUIRE_VERIFIED_EMAIL", "false") == "true",
		EventRetention:       retention,
		EventSweepSchedule:   getEnv("EVENT_SWEEP_SCHEDULE", "@daily"),
		AppEnv:               getEnv("APP_ENV", "development"),
	}, nil
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
