// ToolVerse - AI Tools Directory and Data Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolverse

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/toolverse/internal/config"
	"github.com/tomtom215/toolverse/internal/middleware"
)

// Router sets up HTTP routes using Chi router.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a router for handler with middleware configured from
// the security section.
func NewRouter(handler *Handler, cfg *config.Config) *Router {
	return &Router{
		handler:       handler,
		chiMiddleware: NewChiMiddleware(ChiMiddlewareConfigFrom(cfg.Security)),
	}
}

// chiMiddleware adapts http.HandlerFunc middleware to Chi's func(http.Handler) http.Handler.
func chiMiddleware(mw func(http.HandlerFunc) http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return mw(next.ServeHTTP)
	}
}

// SetupChi configures all HTTP routes.
func (router *Router) SetupChi() http.Handler {
	h := router.handler
	r := chi.NewRouter()

	// ========================
	// Global Middleware Stack
	// ========================
	r.Use(chiMiddleware(middleware.RequestID))
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS()) // CORS must be global to handle OPTIONS preflight
	r.Use(chiMiddleware(middleware.PrometheusMetrics))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		WriteNotFound(w, r, "route not found")
	})
	r.MethodNotAllowed(WriteMethodNotAllowed)

	// ========================
	// Root Documents
	// ========================
	r.Handle("/metrics", promhttp.Handler())
	r.Group(func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(chiMiddleware(middleware.Compression))
		r.Get("/sitemap.xml", h.Sitemap)
		r.Get("/robots.txt", h.Robots)
	})

	// ========================
	// API v1
	// ========================
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(chiMiddleware(middleware.SecurityHeaders))

		r.Route("/health", func(r chi.Router) {
			r.Get("/", h.Health)
			r.Get("/live", h.HealthLive)
			r.Get("/ready", h.HealthReady)
		})

		r.Group(func(r chi.Router) {
			r.Use(router.chiMiddleware.RateLimit())
			r.Use(chiMiddleware(middleware.Compression))

			r.Get("/tools", h.ListTools)
			r.Get("/tools/{slug}", h.GetTool)
			r.Get("/categories", h.ListCategories)
			r.Get("/categories/{slug}", h.GetCategory)
			r.Get("/compare", h.Compare)
			r.Get("/comparisons", h.ListComparisons)
			r.Get("/comparisons/{slug}", h.GetComparison)
			r.Get("/blog", h.ListPosts)
			r.Get("/blog/{slug}", h.GetPost)
			r.Get("/search/suggest", h.Suggest)
			r.Get("/ads", h.GetAd)
			r.Get("/ads/{id}/click", h.ClickAd)
			r.Get("/seo/website", h.Website)
			r.Get("/sync/status", h.SyncStatus)
		})

		r.With(router.chiMiddleware.RateLimitSync()).Post("/sync", h.TriggerSync)
	})

	return r
}
