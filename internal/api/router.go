package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/baechuer/real-time-ressys/services/aggregator-service/internal/api/handlers"
	"github.com/baechuer/real-time-ressys/services/aggregator-service/internal/config"
	"github.com/baechuer/real-time-ressys/services/aggregator-service/internal/downstream"
	"github.com/baechuer/real-time-ressys/services/aggregator-service/internal/logger"
	"github.com/baechuer/real-time-ressys/services/aggregator-service/internal/metrics"
	"github.com/baechuer/real-time-ressys/services/aggregator-service/middleware"
)

func NewRouter(cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// 1. Middleware
	// RequestID runs first so the access log and upstream calls share the id.
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestLogger(logger.Log))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.Metrics)
	r.Use(middleware.Tracing(cfg.ServiceName))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", middleware.HeaderXRequestID},
		ExposedHeaders: []string{middleware.HeaderXRequestID},
		MaxAge:         300,
	}))

	// 2. Upstream clients
	clientCfg := downstream.ClientConfig{Timeout: cfg.UpstreamTimeout}
	sources := handlers.NewSourcesHandler(
		downstream.NewEventbriteClient(cfg.EventbriteBaseURL, clientCfg),
		downstream.NewCalendarClient(cfg.GoogleCalendarBaseURL, clientCfg),
		downstream.NewICSClient(cfg.ICSMaxBytes, clientCfg),
		handlers.Credentials{
			EventbriteToken: cfg.EventbriteToken,
			GoogleAPIKey:    cfg.GoogleAPIKey,
		},
	)

	// 3. Routes
	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Health)
		r.Get("/eventbrite", sources.Eventbrite)
		r.Get("/google-calendar", sources.GoogleCalendar)
		r.Get("/fetch-ics", sources.FetchICS)
	})

	r.Handle("/metrics", metrics.Handler())

	logger.Log.Info().
		Str("eventbrite", cfg.EventbriteBaseURL).
		Str("google_calendar", cfg.GoogleCalendarBaseURL).
		Msg("routes mounted")

	return r
}
