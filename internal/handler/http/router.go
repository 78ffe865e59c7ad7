package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/utafrali/estatehub/internal/assistant"
	"github.com/utafrali/estatehub/internal/service"
	"github.com/utafrali/estatehub/pkg/health"
	"github.com/utafrali/estatehub/pkg/middleware"
)

// Services bundles the application services the router exposes.
type Services struct {
	Properties   *service.PropertyService
	Ratings      *service.RatingService
	Saved        *service.SavedPropertyService
	Appointments *service.AppointmentService
	Agents       *service.AgentService
	Lookup       PropertyLookup
	Assistant    assistant.Responder
}

// RouterConfig holds the HTTP-layer settings.
type RouterConfig struct {
	ServiceName       string
	Verify            middleware.TokenVerifier
	CORS              middleware.CORSConfig
	RateLimitRPS      float64
	RateLimitBurst    int
	PublicCacheMaxAge int
	PprofAllowedCIDRs []string
}

// NewRouter creates a chi router with all routes registered. ctx bounds the
// rate limiter's background cleanup.
func NewRouter(ctx context.Context, cfg RouterConfig, svc Services, healthHandler *health.Handler, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Tracing(cfg.ServiceName))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.PrometheusMetrics(cfg.ServiceName))
	r.Use(middleware.CORS(cfg.CORS))

	// Health, metrics and profiling
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Handle("/metrics", promhttp.Handler())
	middleware.RegisterPprof(r, cfg.PprofAllowedCIDRs, logger)

	propertyHandler := NewPropertyHandler(svc.Properties, svc.Ratings, svc.Lookup, logger)
	savedHandler := NewSavedPropertyHandler(svc.Saved, logger)
	appointmentHandler := NewAppointmentHandler(svc.Appointments, logger)
	agentHandler := NewAgentHandler(svc.Agents, logger)
	assistantHandler := NewAssistantHandler(svc.Assistant, logger)

	publicCache := middleware.CacheControl(cfg.PublicCacheMaxAge)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.RateLimit(ctx, cfg.RateLimitRPS, cfg.RateLimitBurst, logger))
		r.Use(middleware.Identify(cfg.Verify))
		r.Use(middleware.ContentTypeJSON)

		r.Route("/properties", func(r chi.Router) {
			r.Get("/", propertyHandler.ListProperties)
			r.Post("/", propertyHandler.CreateProperty)
			r.With(publicCache).Get("/featured", propertyHandler.FeaturedProperties)
			r.Get("/user", propertyHandler.ListOwnProperties)
			r.Post("/lookup", propertyHandler.LookupProperty)

			r.Get("/{id}", propertyHandler.GetProperty)
			r.Put("/{id}", propertyHandler.UpdateProperty)
			r.Delete("/{id}", propertyHandler.DeleteProperty)
			r.Post("/{id}/rate", propertyHandler.RateProperty)
			r.Get("/{id}/user-rating", propertyHandler.UserRating)
		})

		r.Route("/saved-properties", func(r chi.Router) {
			r.Get("/", savedHandler.ListSaved)
			r.Post("/", savedHandler.SaveFromBody)
			r.Post("/{id}", savedHandler.Save)
			r.Delete("/{id}", savedHandler.Unsave)
		})

		r.Route("/appointments", func(r chi.Router) {
			r.Get("/", appointmentHandler.ListAppointments)
			r.Post("/", appointmentHandler.CreateAppointment)
			r.Patch("/{id}", appointmentHandler.UpdateAppointment)
		})

		r.With(publicCache).Get("/agents", agentHandler.ListAgents)
		r.Post("/assistant", assistantHandler.Chat)
	})

	return r
}
