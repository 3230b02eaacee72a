// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MKhiriev/moya-list/internal/sse"
	"github.com/MKhiriev/moya-list/models"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(h.withMetrics)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   h.cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", traceIDHeader},
		ExposedHeaders:   []string{"Authorization", traceIDHeader},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Use(withGZip)
		r.Get("/api/version", h.getServerVersion)
		if h.metrics != nil {
			r.Handle("/metrics", h.metrics.Handler())
		}
	})

	router.Group(func(r chi.Router) {
		r.Use(newRateLimiter(h.cfg.AuthRateLimit, h.cfg.AuthRateBurst).middleware)
		r.Use(withGZip)
		r.Post("/api/user/register", h.register)
		r.Post("/api/user/login", h.login)
	})

	// routes with authorization
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Group(func(r chi.Router) {
			r.Use(withGZip)
			if h.cfg.RequestTimeout > 0 {
				r.Use(middleware.Timeout(h.cfg.RequestTimeout))
			}

			r.Get("/api/user/me", h.me)

			r.Get("/api/items", h.listItems)
			r.Post("/api/items", h.createItem)
			r.Patch("/api/items/{id}", h.updateItem)
			r.Delete("/api/items/{id}", h.deleteItem)

			r.Get("/api/settings", h.getSettings)
			r.Patch("/api/settings", h.mergeSettings)

			r.Post("/api/blobs", h.uploadBlob)
			r.Get("/api/blobs/{ref}", h.downloadBlob)
		})

		// streams are long-lived and flushed frame by frame
		r.Method("GET", "/api/items/stream", sse.NewHandler(h.streams, models.TopicItems,
			func(ctx context.Context, userID int64) (any, error) {
				return h.services.ItemService.List(ctx, userID)
			}))
		r.Method("GET", "/api/settings/stream", sse.NewHandler(h.streams, models.TopicSettings,
			func(ctx context.Context, userID int64) (any, error) {
				return h.services.SettingsService.Get(ctx, userID)
			}))
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
