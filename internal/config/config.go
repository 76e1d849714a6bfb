package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration
type Config struct {
	Port      string
	Env       string
	LogLevel  string
	LogFormat string

	// Studio identity
	StudioName           string
	StudioTimezone       string
	StudioWhatsAppNumber string
	WhatsAppBaseURL      string
	DefaultLanguage      string
	ReviewsWidgetID      string

	// Record keeping
	SheetWebhookURL     string
	SheetWebhookTimeout time.Duration
	RecordArchiveBucket string
	RecordArchivePrefix string

	// Booking form sequencing
	BookingReadyDelay   time.Duration
	BookingLoadingDelay time.Duration
	SessionTTL          time.Duration
	SessionCookie       string

	// AI advisor
	AdvisorProvider   string
	GeminiAPIKey      string
	GeminiModel       string
	BedrockModelID    string
	AdvisorRatePerSec float64
	AdvisorBurst      int
	AdvisorMaxTokens  int
	AdvisorTimeout    time.Duration

	RedisAddr     string
	RedisPassword string
	RedisTLS      bool

	AWSRegion           string
	AWSAccessKeyID      string
	AWSSecretAccessKey  string
	AWSEndpointOverride string

	// Staff alerts
	SendGridAPIKey    string
	SendGridFromEmail string
	SendGridFromName  string
	SESFromEmail      string
	StaffAlertEmail   string

	CORSAllowedOrigins []string
	OpsJWTSecret       string
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:      getEnv("PORT", "8080"),
		Env:       getEnv("ENV", "development"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),

		StudioName:           getEnv("STUDIO_NAME", "JW Beauty Studio"),
		StudioTimezone:       getEnv("STUDIO_TIMEZONE", "Asia/Singapore"),
		StudioWhatsAppNumber: getEnv("STUDIO_WHATSAPP_NUMBER", ""),
		WhatsAppBaseURL:      strings.TrimRight(getEnv("WHATSAPP_BASE_URL", "https://wa.me"), "/"),
		DefaultLanguage:      strings.ToLower(getEnv("DEFAULT_LANGUAGE", "en")),
		ReviewsWidgetID:      getEnv("REVIEWS_WIDGET_ID", ""),

		SheetWebhookURL:     getEnv("SHEET_WEBHOOK_URL", ""),
		SheetWebhookTimeout: getEnvAsDuration("SHEET_WEBHOOK_TIMEOUT", 0),
		RecordArchiveBucket: getEnv("RECORD_ARCHIVE_BUCKET", ""),
		RecordArchivePrefix: getEnv("RECORD_ARCHIVE_PREFIX", "bookings/"),

		BookingReadyDelay:   getEnvAsDuration("BOOKING_READY_DELAY", 2500*time.Millisecond),
		BookingLoadingDelay: getEnvAsDuration("BOOKING_LOADING_DELAY", 3*time.Second),
		SessionTTL:          getEnvAsDuration("SESSION_TTL", 2*time.Hour),
		SessionCookie:       getEnv("SESSION_COOKIE", "jw_session"),

		AdvisorProvider:   strings.ToLower(strings.TrimSpace(getEnv("ADVISOR_PROVIDER", "gemini"))),
		GeminiAPIKey:      getEnv("GEMINI_API_KEY", ""),
		GeminiModel:       getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		BedrockModelID:    getEnv("BEDROCK_MODEL_ID", ""),
		AdvisorRatePerSec: getEnvAsFloat("ADVISOR_RATE_PER_SEC", 0.5),
		AdvisorBurst:      getEnvAsInt("ADVISOR_BURST", 5),
		AdvisorMaxTokens:  getEnvAsInt("ADVISOR_MAX_TOKENS", 512),
		AdvisorTimeout:    getEnvAsDuration("ADVISOR_TIMEOUT", 30*time.Second),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisTLS:      getEnvAsBool("REDIS_TLS", false),

		AWSRegion:           getEnv("AWS_REGION", "ap-southeast-1"),
		AWSAccessKeyID:      getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey:  getEnv("AWS_SECRET_ACCESS_KEY", ""),
		AWSEndpointOverride: getEnv("AWS_ENDPOINT_OVERRIDE", ""),

		SendGridAPIKey:    getEnv("SENDGRID_API_KEY", ""),
		SendGridFromEmail: getEnv("SENDGRID_FROM_EMAIL", ""),
		SendGridFromName:  getEnv("SENDGRID_FROM_NAME", "JW Beauty Studio"),
		SESFromEmail:      getEnv("SES_FROM_EMAIL", ""),
		StaffAlertEmail:   getEnv("STAFF_ALERT_EMAIL", ""),

		CORSAllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS"),
		OpsJWTSecret:       getEnv("OPS_JWT_SECRET", ""),
	}
}

// Validate reports configuration that would leave the site unable to take bookings.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.StudioWhatsAppNumber) == "" {
		errs = append(errs, errors.New("STUDIO_WHATSAPP_NUMBER is required"))
	}
	if c.DefaultLanguage != "en" && c.DefaultLanguage != "zh" {
		errs = append(errs, fmt.Errorf("DEFAULT_LANGUAGE %q must be en or zh", c.DefaultLanguage))
	}
	switch c.AdvisorProvider {
	case "gemini", "bedrock":
	default:
		errs = append(errs, fmt.Errorf("ADVISOR_PROVIDER %q must be gemini or bedrock", c.AdvisorProvider))
	}
	if _, err := time.LoadLocation(c.StudioTimezone); err != nil {
		errs = append(errs, fmt.Errorf("STUDIO_TIMEZONE %q: %w", c.StudioTimezone, err))
	}
	if c.BookingReadyDelay < 0 || c.BookingLoadingDelay < 0 {
		errs = append(errs, errors.New("booking delays must not be negative"))
	}
	return errors.Join(errs...)
}

// Location returns the studio timezone, falling back to UTC when invalid.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.StudioTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsList(key string) []string {
	raw := getEnv(key, "")
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
