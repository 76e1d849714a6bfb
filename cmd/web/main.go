package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/wolfman30/jwbeauty-studio/cmd/mainconfig"
	"github.com/wolfman30/jwbeauty-studio/internal/advisor"
	"github.com/wolfman30/jwbeauty-studio/internal/api/router"
	"github.com/wolfman30/jwbeauty-studio/internal/app/bootstrap"
	"github.com/wolfman30/jwbeauty-studio/internal/booking"
	appconfig "github.com/wolfman30/jwbeauty-studio/internal/config"
	httpmiddleware "github.com/wolfman30/jwbeauty-studio/internal/http/middleware"
	"github.com/wolfman30/jwbeauty-studio/internal/i18n"
	"github.com/wolfman30/jwbeauty-studio/internal/observability/metrics"
	"github.com/wolfman30/jwbeauty-studio/internal/records"
	"github.com/wolfman30/jwbeauty-studio/internal/site"
	"github.com/wolfman30/jwbeauty-studio/pkg/logging"
)

const (
	sessionSweepInterval = time.Minute
	limiterEvictInterval = 5 * time.Minute
)

// application is everything main starts and stops.
type application struct {
	handler    http.Handler
	sessions   *booking.SessionStore
	limiter    *httpmiddleware.RateLimiter
	dispatcher *records.Dispatcher
	redis      *redis.Client
	closeLLM   func() error
}

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	// Load configuration
	cfg := appconfig.Load()

	// Initialize logger
	logger := logging.NewWithWriter(cfg.LogLevel, cfg.LogFormat, os.Stdout)
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	logger.Info("starting jwbeauty-studio web server",
		"env", cfg.Env,
		"port", cfg.Port,
		"timezone", cfg.StudioTimezone,
		"advisor_provider", cfg.AdvisorProvider,
	)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	reg := prometheus.NewRegistry()
	app, err := setupApplication(ctx, cfg, reg, logger)
	if err != nil {
		logger.Error("failed to initialize application", "error", err)
		os.Exit(1)
	}

	go app.sessions.Run(ctx, sessionSweepInterval)
	go app.limiter.Run(ctx, limiterEvictInterval)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      app.handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	if cfg.AdvisorTimeout+5*time.Second > srv.WriteTimeout {
		srv.WriteTimeout = cfg.AdvisorTimeout + 5*time.Second
	}

	// Start server in a goroutine
	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")
	stop()

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}
	app.shutdown(logger)

	logger.Info("server stopped")
	fmt.Println("Server exited gracefully")
}

func setupApplication(ctx context.Context, cfg *appconfig.Config, reg *prometheus.Registry, logger *logging.Logger) (*application, error) {
	dict, err := i18n.Embedded()
	if err != nil {
		return nil, fmt.Errorf("load translations: %w", err)
	}
	for locale, keys := range dict.Missing() {
		logger.Warn("translations missing", "locale", locale.String(), "keys", len(keys))
	}

	awsCfg, err := mainconfig.LoadAWSConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	metricsHandler := setupMetrics(reg)
	bookingMetrics := metrics.NewBookingMetrics(reg)
	recordMetrics := metrics.NewRecordMetrics(reg)
	advisorMetrics := metrics.NewAdvisorMetrics(reg)

	// Record keeping
	sinks := bootstrap.BuildRecordSinks(cfg, awsCfg, bootstrap.RecordHTTPClient(cfg), logger)
	email := bootstrap.BuildEmailSender(cfg, awsCfg, logger)
	dispatcher := bootstrap.BuildDispatcher(cfg, sinks, email, recordMetrics, logger)

	// Booking
	composer, err := booking.NewComposer(cfg.StudioWhatsAppNumber, cfg.WhatsAppBaseURL)
	if err != nil {
		return nil, err
	}
	bookingCfg := booking.Config{
		ReadyDelay:   cfg.BookingReadyDelay,
		LoadingDelay: cfg.BookingLoadingDelay,
		Location:     cfg.Location(),
	}
	sessions := booking.NewSessionStore(cfg.SessionTTL, nil)
	ctrl := booking.NewController(composer, dispatcher, bookingCfg, logger,
		booking.WithMetrics(bookingMetrics),
		booking.WithSessionStore(sessions),
	)

	// AI advisor
	redisClient := bootstrap.BuildRedisClient(ctx, cfg, logger, true)
	llm, err := bootstrap.BuildLLM(ctx, cfg, awsCfg, logger)
	if err != nil {
		return nil, err
	}
	advisorSvc := advisor.NewService(llm.Client, bootstrap.BuildTranscriptStore(redisClient, logger), advisor.Config{
		StudioName: cfg.StudioName,
		Provider:   llm.Provider,
		MaxTokens:  int32(cfg.AdvisorMaxTokens),
		Timeout:    cfg.AdvisorTimeout,
	}, logger, advisorMetrics)

	secure := cfg.Env == "production"
	siteHandler, err := site.NewHandler(ctrl, advisorSvc, dict, site.Config{
		ChatURL:         composer.ChatURL(),
		WhatsAppNumber:  cfg.StudioWhatsAppNumber,
		ReviewsWidgetID: cfg.ReviewsWidgetID,
		SecureCookies:   secure,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	defaultLocale, err := i18n.ParseLocale(cfg.DefaultLanguage)
	if err != nil {
		defaultLocale = i18n.English
	}
	limiter := httpmiddleware.NewRateLimiter(cfg.AdvisorRatePerSec, cfg.AdvisorBurst)

	handler := router.New(&router.Config{
		Logger:         logger,
		Site:           siteHandler,
		Booking:        booking.NewHandler(ctrl, dict, logger),
		Advisor:        advisor.NewHandler(advisorSvc, dict, logger),
		AdvisorLimiter: limiter,
		MetricsHandler: metricsHandler,
		OpsJWTSecret:   cfg.OpsJWTSecret,
		Visitor: httpmiddleware.VisitorConfig{
			SessionCookie: cfg.SessionCookie,
			SessionTTL:    cfg.SessionTTL,
			DefaultLocale: defaultLocale,
			Secure:        secure,
		},
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	})

	logger.Info("booking record sinks configured", "sinks", dispatcher.Sinks())
	return &application{
		handler:    handler,
		sessions:   sessions,
		limiter:    limiter,
		dispatcher: dispatcher,
		redis:      redisClient,
		closeLLM:   llm.Close,
	}, nil
}

// setupMetrics registers the Go runtime collectors and returns the scrape
// handler for reg.
func setupMetrics(reg *prometheus.Registry) http.Handler {
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
}

func (a *application) shutdown(logger *logging.Logger) {
	// In-flight record writes are allowed to finish.
	a.dispatcher.Wait()
	if a.closeLLM != nil {
		if err := a.closeLLM(); err != nil {
			logger.Warn("close advisor client", "error", err)
		}
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			logger.Warn("close redis", "error", err)
		}
	}
}
