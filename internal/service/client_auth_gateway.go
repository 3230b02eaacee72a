// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/moya-list/internal/adapter"
	"github.com/MKhiriev/moya-list/internal/logger"
	"github.com/MKhiriev/moya-list/internal/store"
	"github.com/MKhiriev/moya-list/internal/utils"
	"github.com/MKhiriev/moya-list/models"
)

// authGateway keeps the session token in local persistence so a restarted
// client resumes signed in.
type authGateway struct {
	adapter adapter.ServerAdapter
	local   store.LocalPersistence

	mu        sync.Mutex
	identity  *models.Identity
	listeners map[int]func(*models.Identity)
	nextID    int

	now    func() time.Time
	logger *logger.Logger
}

// NewAuthGateway builds the AuthGateway over the server adapter.
func NewAuthGateway(serverAdapter adapter.ServerAdapter, local store.LocalPersistence, logger *logger.Logger) AuthGateway {
	return &authGateway{
		adapter:   serverAdapter,
		local:     local,
		listeners: make(map[int]func(*models.Identity)),
		now:       time.Now,
		logger:    logger,
	}
}

func (g *authGateway) SignIn(ctx context.Context, credentials models.Credentials) (models.Identity, error) {
	identity, err := g.adapter.Login(ctx, credentials)
	if err != nil {
		g.logger.Err(err).Str("func", "authGateway.SignIn").Msg("login failed")
		return models.Identity{}, mapAdapterError(err)
	}

	return g.establish(ctx, identity)
}

func (g *authGateway) Register(ctx context.Context, credentials models.Credentials) (models.Identity, error) {
	identity, err := g.adapter.Register(ctx, credentials)
	if err != nil {
		g.logger.Err(err).Str("func", "authGateway.Register").Msg("registration failed")
		return models.Identity{}, mapAdapterError(err)
	}

	return g.establish(ctx, identity)
}

func (g *authGateway) establish(ctx context.Context, identity models.Identity) (models.Identity, error) {
	session := models.Session{Token: g.adapter.Token(), Identity: identity}
	if err := g.local.SaveSession(ctx, session); err != nil {
		// The session still works for this run.
		g.logger.Err(err).Str("func", "authGateway.establish").Msg("saving session failed")
	}

	g.publish(&identity)
	return identity, nil
}

// SignOut forgets the token locally. Tokens are stateless on the server, so
// there is nothing to revoke there.
func (g *authGateway) SignOut(ctx context.Context) error {
	g.adapter.SetToken("")
	err := g.local.ClearSession(ctx)
	if err != nil {
		g.logger.Err(err).Str("func", "authGateway.SignOut").Msg("clearing session failed")
	}

	g.publish(nil)
	if err != nil {
		return fmt.Errorf("clearing session failed: %w", err)
	}
	return nil
}

func (g *authGateway) OnIdentityChange(fn func(*models.Identity)) func() {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := g.nextID
	g.nextID++
	g.listeners[id] = fn

	return func() {
		g.mu.Lock()
		defer g.mu.Unlock()
		delete(g.listeners, id)
	}
}

// Restore resumes the stored session. An expired token or one the server
// rejects resolves to signed out; an unreachable server keeps the stored
// identity so the user can keep working while the streams reconnect.
func (g *authGateway) Restore(ctx context.Context) error {
	log := g.logger.With().Str("func", "authGateway.Restore").Logger()

	session, ok, err := g.local.LoadSession(ctx)
	if err != nil || !ok || session.Token == "" {
		if err != nil {
			log.Error().Err(err).Msg("reading session failed")
		}
		g.publish(nil)
		return nil
	}

	if expiry, err := utils.TokenExpiry(session.Token); err != nil || !expiry.After(g.now()) {
		log.Info().Msg("stored session expired")
		return g.discard(ctx)
	}

	g.adapter.SetToken(session.Token)

	identity, err := g.adapter.Me(ctx)
	switch {
	case err == nil:
		g.establishQuietly(ctx, session, identity)
		g.publish(&identity)
		return nil
	case errors.Is(err, adapter.ErrUnauthorized), errors.Is(err, adapter.ErrNotFound):
		log.Info().Err(err).Msg("stored session rejected")
		g.adapter.SetToken("")
		return g.discard(ctx)
	default:
		log.Warn().Err(err).Msg("server unreachable, resuming stored session")
		stored := session.Identity
		g.publish(&stored)
		return nil
	}
}

// establishQuietly refreshes the stored identity without notifying.
func (g *authGateway) establishQuietly(ctx context.Context, session models.Session, identity models.Identity) {
	if session.Identity == identity {
		return
	}
	session.Identity = identity
	if err := g.local.SaveSession(ctx, session); err != nil {
		g.logger.Err(err).Str("func", "authGateway.establishQuietly").Msg("saving session failed")
	}
}

func (g *authGateway) discard(ctx context.Context) error {
	err := g.local.ClearSession(ctx)
	g.publish(nil)
	if err != nil {
		return fmt.Errorf("clearing session failed: %w", err)
	}
	return nil
}

func (g *authGateway) Current() *models.Identity {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.identity == nil {
		return nil
	}
	identity := *g.identity
	return &identity
}

// publish records identity and calls the listeners outside the lock.
func (g *authGateway) publish(identity *models.Identity) {
	g.mu.Lock()
	if identity != nil {
		copied := *identity
		g.identity = &copied
	} else {
		g.identity = nil
	}
	listeners := make([]func(*models.Identity), 0, len(g.listeners))
	for _, fn := range g.listeners {
		listeners = append(listeners, fn)
	}
	g.mu.Unlock()

	for _, fn := range listeners {
		if identity == nil {
			fn(nil)
			continue
		}
		copied := *identity
		fn(&copied)
	}
}
