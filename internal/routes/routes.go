package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/AnshRaj112/feedbackhub-backend/internal/config"
	"github.com/AnshRaj112/feedbackhub-backend/internal/handlers"
	"github.com/AnshRaj112/feedbackhub-backend/internal/middleware"
	"github.com/AnshRaj112/feedbackhub-backend/internal/services"
	"github.com/AnshRaj112/feedbackhub-backend/internal/web"
)

// Deps are the collaborators the router hands to handlers.
type Deps struct {
	Config   *config.Config
	Feedback handlers.FeedbackAPI
	Hub      *services.LiveHub
	// SubmitLimiter is nil when Redis is not configured.
	SubmitLimiter *middleware.SubmissionLimiter
	// IPLimiter backs the production per-IP limit; nil disables it.
	IPLimiter *middleware.IPLimiter
	LLMName   string
}

// NewRouter builds the chi router with the middleware stack and every route.
func NewRouter(d Deps) *chi.Mux {
	cfg := d.Config
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middleware.Tracing)
	r.Use(middleware.RequestLogger)
	r.Use(chimw.Recoverer)
	if cfg.IsProduction() {
		for _, mw := range middleware.ProductionSecurity(cfg.AllowedHost, d.IPLimiter) {
			r.Use(mw)
		}
	} else {
		r.Use(middleware.SecurityHeaders)
	}
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	SetupRoutes(r, d)
	return r
}

func SetupRoutes(r chi.Router, d Deps) {
	api := handlers.NewFeedbackHandler(d.Feedback)
	pages := web.NewPages(d.Feedback)

	r.Get("/health", handlers.Health(d.LLMName))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	// Server-rendered pages
	r.Get("/", pages.Form)
	r.Get("/feedback", pages.Form)
	r.With(d.SubmitLimiter.Middleware).Post("/feedback", pages.SubmitForm)
	r.Get("/confirmation", pages.Confirmation)
	r.Get("/admin", pages.Admin)

	// JSON API
	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.APIRateLimit(d.Config.RateLimitPerMinute))

		r.With(d.SubmitLimiter.Middleware).Post("/feedback", api.Submit)
		r.Get("/feedback/{id}/analysis", api.Analysis)
		r.Get("/products/link", handlers.ProductLink)

		r.Get("/admin/feedbacks", api.ListFeedbacks)
		r.Get("/admin/analytics", handlers.Analytics)
	})

	// Live admin feed
	r.Get("/ws/admin/feedback", handlers.LiveFeed(d.Hub, d.Config.AllowedOrigins))
}
