// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package capture receives selections from the browser extension.
//
// The extension opens http://localhost:5174/?text=...&url=... for a fresh
// tab, or posts {"type":"MOYA_ADD_TEXT","text":"..."} to /message when a
// client is already running. Both paths end in a single SubmitCapture call.
package capture

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"

	"github.com/MKhiriev/moya-list/internal/config"
	"github.com/MKhiriev/moya-list/internal/logger"
	"github.com/MKhiriev/moya-list/models"
)

const (
	maxMessageSize    = 64 << 10
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 5 * time.Second
)

// Submitter accepts captures. The sync controller queues them until the
// session is resolved.
type Submitter interface {
	SubmitCapture(ctx context.Context, capture models.Capture) error
}

// Bridge is the local HTTP listener of the extension.
type Bridge struct {
	submitter Submitter
	limiter   *rate.Limiter
	cfg       config.ClientCapture

	logger *logger.Logger
}

// NewBridge returns a bridge submitting to submitter. A non-positive rate
// limit disables limiting.
func NewBridge(submitter Submitter, cfg config.ClientCapture, logger *logger.Logger) *Bridge {
	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}
	burst := cfg.RateBurst
	if burst <= 0 {
		burst = 1
	}

	return &Bridge{
		submitter: submitter,
		limiter:   rate.NewLimiter(limit, burst),
		cfg:       cfg,
		logger:    logger,
	}
}

// Routes returns the bridge router.
func (b *Bridge) Routes() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: b.cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         300,
	}))
	router.Use(b.rateLimit)

	router.Get("/", b.fromQuery)
	router.Post("/message", b.fromMessage)

	return router
}

// Run serves on the configured address until ctx is cancelled.
func (b *Bridge) Run(ctx context.Context) error {
	listener, err := net.Listen("tcp", b.cfg.Address)
	if err != nil {
		return err
	}
	return b.Serve(ctx, listener)
}

// Serve serves on listener until ctx is cancelled.
func (b *Bridge) Serve(ctx context.Context, listener net.Listener) error {
	server := &http.Server{
		Handler:           b.Routes(),
		ReadHeaderTimeout: readHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			b.logger.Warn().Err(err).Str("func", "Bridge.Serve").Msg("capture bridge shutdown")
		}
	}()

	b.logger.Info().Str("address", listener.Addr().String()).Msg("capture bridge listening")
	if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// fromQuery submits `text`/`url` once and redirects to the bare path, so a
// reload of the tab does not capture again.
func (b *Bridge) fromQuery(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-store")

	capture, ok := ParseQuery(r.URL.Query())
	if !ok {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = io.WriteString(w, "moya-list is listening\n")
		return
	}

	if !b.submit(w, r, capture) {
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// fromMessage submits a recognized extension message. Anything else is
// answered with 204 and dropped.
func (b *Bridge) fromMessage(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxMessageSize))
	if err != nil {
		http.Error(w, http.StatusText(http.StatusRequestEntityTooLarge), http.StatusRequestEntityTooLarge)
		return
	}

	capture, ok := ParseMessage(data)
	if !ok {
		b.logger.Debug().Msg("unrecognized capture message ignored")
		w.WriteHeader(http.StatusNoContent)
		return
	}

	if !b.submit(w, r, capture) {
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func (b *Bridge) submit(w http.ResponseWriter, r *http.Request, capture models.Capture) bool {
	if err := b.submitter.SubmitCapture(r.Context(), capture); err != nil {
		b.logger.Err(err).Str("func", "Bridge.submit").Msg("capture was not stored")
		http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		return false
	}

	b.logger.Info().Bool("has_source", capture.SourceURL != "").Msg("capture submitted")
	return true
}

func (b *Bridge) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !b.limiter.Allow() {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}
