package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/wolfman30/jwbeauty-studio/internal/advisor"
	"github.com/wolfman30/jwbeauty-studio/internal/booking"
	httpmiddleware "github.com/wolfman30/jwbeauty-studio/internal/http/middleware"
	"github.com/wolfman30/jwbeauty-studio/internal/site"
	"github.com/wolfman30/jwbeauty-studio/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger         *logging.Logger
	Site           *site.Handler
	Booking        *booking.Handler
	Advisor        *advisor.Handler
	AdvisorLimiter *httpmiddleware.RateLimiter
	MetricsHandler http.Handler
	// OpsJWTSecret, when set, requires a signed bearer token on /metrics.
	OpsJWTSecret   string
	Visitor        httpmiddleware.VisitorConfig

	CORSAllowedOrigins []string
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}

	// Endpoints that need no visitor session.
	r.Group(func(public chi.Router) {
		public.Use(httpmiddleware.RequestLogger(cfg.Logger))
		public.Get("/health", health)
		if cfg.MetricsHandler != nil {
			metricsHandler := cfg.MetricsHandler
			if cfg.OpsJWTSecret != "" {
				metricsHandler = httpmiddleware.OpsJWT(cfg.OpsJWTSecret)(metricsHandler)
			}
			public.Handle("/metrics", metricsHandler)
		}
		if cfg.Site != nil {
			public.Handle("/static/*", cfg.Site.Static())
		}
	})

	r.Group(func(visitor chi.Router) {
		visitor.Use(httpmiddleware.Visitor(cfg.Visitor))
		visitor.Use(httpmiddleware.RequestLogger(cfg.Logger))

		if cfg.Site != nil {
			visitor.Get("/", cfg.Site.Index)
			visitor.Get("/lang/{locale}", cfg.Site.Language)
			visitor.Route("/booking", func(r chi.Router) {
				r.Post("/", cfg.Site.Submit)
				r.Get("/calendar", cfg.Site.Calendar)
				r.Post("/date", cfg.Site.SelectDate)
				r.Post("/dialog", cfg.Site.DismissDialog)
			})
		}

		if cfg.Booking != nil {
			visitor.Route("/api/booking", func(r chi.Router) {
				r.Post("/", cfg.Booking.Submit)
				r.Get("/status", cfg.Booking.Status)
				r.Patch("/draft", cfg.Booking.UpdateField)
				r.Post("/date", cfg.Booking.SelectDate)
				r.Post("/dialog/dismiss", cfg.Booking.DismissDialog)
			})
		}

		if cfg.Advisor != nil || cfg.Site != nil {
			visitor.Group(func(limited chi.Router) {
				if cfg.AdvisorLimiter != nil {
					limited.Use(httpmiddleware.RateLimit(cfg.AdvisorLimiter, cfg.Logger))
				}
				if cfg.Advisor != nil {
					limited.Get("/api/advisor/messages", cfg.Advisor.Transcript)
					limited.Post("/api/advisor/messages", cfg.Advisor.Ask)
				}
				if cfg.Site != nil {
					limited.Post("/advisor", cfg.Site.Ask)
				}
			})
		}
	})

	return r
}

func health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
