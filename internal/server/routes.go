package server

import (
	"github.com/fulmenhq/gofulmen/signals"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/pitchslap/pitchslap/internal/observability"
	"github.com/pitchslap/pitchslap/internal/server/handlers"
)

// registerRoutes registers all HTTP routes
func (s *Server) registerRoutes() {
	if !s.opts.DisableHealth {
		health := s.opts.Health
		s.router.Get("/health", health.HealthHandler)
		s.router.Get("/health/live", health.LivenessHandler)
		s.router.Get("/health/ready", health.ReadinessHandler)
		s.router.Get("/health/startup", health.StartupHandler)
	}

	s.router.Get("/version", handlers.VersionHandler)
	s.router.Get("/metrics", MetricsHandler)

	if api := s.opts.API; api != nil {
		s.router.Route("/api/v1", func(r chi.Router) {
			r.Post("/pitch/{mode}", api.Generate)
			r.Post("/analyze", api.Analyze)
			r.Get("/prompts/{mode}", api.Prompt)

			r.Post("/players", api.RegisterPlayer)
			r.Get("/players/{id}", api.GetPlayer)
			r.Patch("/players/{id}", api.RenamePlayer)
			r.Post("/players/{id}/actions", api.AwardAction)
			r.Get("/leaderboard", api.Leaderboard)
			r.Get("/rewards", api.Rewards)

			r.Post("/invest/deals", api.NewDeal)
			r.Post("/invest/deals/{id}/decision", api.Decide)
			r.Get("/invest/players/{id}", api.InvestorProfile)

			r.Post("/domains/check", api.CheckDomains)
			r.Post("/meme/render", api.RenderMeme)
			r.Post("/speech", api.Speech)
			r.Get("/speech/voices", api.Voices)
		})
	}

	s.registerAdminEndpoint()
}

// registerAdminEndpoint exposes the signal endpoint when a token is configured.
func (s *Server) registerAdminEndpoint() {
	logger := observability.ServerLogger
	if s.opts.AdminToken == "" {
		if logger != nil {
			logger.Debug("Admin signal endpoint disabled (no admin token set)")
		}
		return
	}

	handler := signals.NewHTTPHandler(signals.HTTPConfig{
		TokenAuth: s.opts.AdminToken,
		RateLimit: 10, // per minute
		RateBurst: 5,
		Manager:   nil, // global manager
	})
	s.router.Post("/admin/signal", handler.ServeHTTP)

	if logger != nil {
		logger.Info("Admin signal endpoint enabled",
			zap.String("path", "/admin/signal"),
			zap.String("rate_limit", "10/min, burst 5"))
		logger.Warn("Admin endpoint enabled - ensure this server is not exposed to public internet")
	}
}
