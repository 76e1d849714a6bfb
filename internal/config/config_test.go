package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "ENV", "LOG_LEVEL", "STUDIO_TIMEZONE", "BOOKING_READY_DELAY", "BOOKING_LOADING_DELAY", "WHATSAPP_BASE_URL", "ADVISOR_PROVIDER", "ADVISOR_TIMEOUT", "CORS_ALLOWED_ORIGINS"} {
		t.Setenv(key, "")
	}
	cfg := Load()
	if cfg.Port != "8080" {
		t.Fatalf("expected default port, got %s", cfg.Port)
	}
	if cfg.Env != "development" {
		t.Fatalf("expected default env, got %s", cfg.Env)
	}
	if cfg.StudioTimezone != "Asia/Singapore" {
		t.Fatalf("expected Singapore timezone by default, got %s", cfg.StudioTimezone)
	}
	if cfg.BookingReadyDelay != 2500*time.Millisecond {
		t.Fatalf("expected 2.5s ready delay, got %s", cfg.BookingReadyDelay)
	}
	if cfg.BookingLoadingDelay != 3*time.Second {
		t.Fatalf("expected 3s loading delay, got %s", cfg.BookingLoadingDelay)
	}
	if cfg.WhatsAppBaseURL != "https://wa.me" {
		t.Fatalf("expected wa.me base, got %s", cfg.WhatsAppBaseURL)
	}
	if cfg.AdvisorProvider != "gemini" {
		t.Fatalf("expected gemini provider, got %s", cfg.AdvisorProvider)
	}
	if cfg.AdvisorTimeout != 30*time.Second {
		t.Fatalf("expected 30s advisor timeout, got %s", cfg.AdvisorTimeout)
	}
	if cfg.CORSAllowedOrigins != nil {
		t.Fatalf("expected no CORS origins, got %v", cfg.CORSAllowedOrigins)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "production")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("STUDIO_WHATSAPP_NUMBER", "6591234567")
	t.Setenv("WHATSAPP_BASE_URL", "https://api.whatsapp.com/")
	t.Setenv("DEFAULT_LANGUAGE", "ZH")
	t.Setenv("BOOKING_READY_DELAY", "1s")
	t.Setenv("ADVISOR_RATE_PER_SEC", "2.5")
	t.Setenv("ADVISOR_BURST", "9")
	t.Setenv("REDIS_TLS", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://jwbeauty.sg, ,https://www.jwbeauty.sg")
	cfg := Load()
	if cfg.Port != "9090" {
		t.Fatalf("expected override port, got %s", cfg.Port)
	}
	if cfg.Env != "production" {
		t.Fatalf("expected env override, got %s", cfg.Env)
	}
	if cfg.StudioWhatsAppNumber != "6591234567" {
		t.Fatalf("expected whatsapp number override, got %s", cfg.StudioWhatsAppNumber)
	}
	if cfg.WhatsAppBaseURL != "https://api.whatsapp.com" {
		t.Fatalf("expected trailing slash trimmed, got %s", cfg.WhatsAppBaseURL)
	}
	if cfg.DefaultLanguage != "zh" {
		t.Fatalf("expected lower-cased language, got %s", cfg.DefaultLanguage)
	}
	if cfg.BookingReadyDelay != time.Second {
		t.Fatalf("expected ready delay override, got %s", cfg.BookingReadyDelay)
	}
	if cfg.AdvisorRatePerSec != 2.5 || cfg.AdvisorBurst != 9 {
		t.Fatalf("expected advisor rate overrides, got %v/%d", cfg.AdvisorRatePerSec, cfg.AdvisorBurst)
	}
	if !cfg.RedisTLS {
		t.Fatalf("expected redis tls enabled")
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://www.jwbeauty.sg" {
		t.Fatalf("unexpected CORS origins %v", cfg.CORSAllowedOrigins)
	}
}

func TestGetEnvHelpersFallbacks(t *testing.T) {
	t.Setenv("INT_KEY", "not-int")
	if got := getEnvAsInt("INT_KEY", 7); got != 7 {
		t.Fatalf("expected fallback int, got %d", got)
	}
	t.Setenv("BOOL_KEY", "maybe")
	if got := getEnvAsBool("BOOL_KEY", true); !got {
		t.Fatalf("expected fallback bool")
	}
	t.Setenv("DUR_KEY", "soon")
	if got := getEnvAsDuration("DUR_KEY", time.Minute); got != time.Minute {
		t.Fatalf("expected fallback duration, got %s", got)
	}
	t.Setenv("FLOAT_KEY", "fast")
	if got := getEnvAsFloat("FLOAT_KEY", 0.5); got != 0.5 {
		t.Fatalf("expected fallback float, got %v", got)
	}
}

func TestValidate(t *testing.T) {
	valid := &Config{
		StudioWhatsAppNumber: "6591234567",
		DefaultLanguage:      "en",
		AdvisorProvider:      "gemini",
		StudioTimezone:       "Asia/Singapore",
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}

	invalid := &Config{
		DefaultLanguage: "fr",
		AdvisorProvider: "openai",
		StudioTimezone:  "Mars/Olympus",
	}
	err := invalid.Validate()
	if err == nil {
		t.Fatalf("expected validation error")
	}
	for _, want := range []string{"STUDIO_WHATSAPP_NUMBER", "DEFAULT_LANGUAGE", "ADVISOR_PROVIDER", "STUDIO_TIMEZONE"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("expected %s in error %q", want, err.Error())
		}
	}
}

func TestLocationFallsBackToUTC(t *testing.T) {
	cfg := &Config{StudioTimezone: "Nowhere/Land"}
	if cfg.Location() != time.UTC {
		t.Fatalf("expected UTC fallback")
	}
	cfg.StudioTimezone = "Asia/Singapore"
	if cfg.Location().String() != "Asia/Singapore" {
		t.Fatalf("expected Singapore location, got %s", cfg.Location())
	}
}
