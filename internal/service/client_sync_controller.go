// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/moya-list/internal/filter"
	"github.com/MKhiriev/moya-list/internal/logger"
	"github.com/MKhiriev/moya-list/internal/store"
	"github.com/MKhiriev/moya-list/internal/tags"
	"github.com/MKhiriev/moya-list/models"
)

const (
	defaultMigrationConcurrency = 4
	eventBufferSize             = 64
)

// SyncController decides where item and settings reads and writes go. In
// guest mode that is local persistence; once signed in it is the remote
// store, whose snapshots replace the ItemStore wholesale. It also owns the
// one-time import of guest items into a new account.
//
// All state changes go through transition. Network calls never run under
// mu.
type SyncController struct {
	backend Backend
	local   store.LocalPersistence
	blobs   store.BlobStorage
	items   *ItemStore
	ids     IDGenerator

	migrationConcurrency int
	now                  func() time.Time
	logger               *logger.Logger

	mu          sync.Mutex
	ctx         context.Context
	state       SyncState
	identity    *models.Identity
	settings    models.Settings
	pending     []models.Capture
	// settingsLoaded is false between sign-in and the first settings
	// snapshot. Until then c.settings holds defaults, not the account's.
	settingsLoaded bool
	// undiscovered collects tags of items created before settingsLoaded.
	undiscovered []string
	prompt      []models.Item
	migrating   bool
	subs        []Subscription
	generation  uint64
	lastAddedID string
	stopAuth    func()

	events chan Event
}

// NewSyncController builds a controller in StateUninitialized. blobs holds
// guest-mode images.
func NewSyncController(backend Backend, local store.LocalPersistence, blobs store.BlobStorage, ids IDGenerator, migrationConcurrency int, logger *logger.Logger) *SyncController {
	if migrationConcurrency <= 0 {
		migrationConcurrency = defaultMigrationConcurrency
	}

	return &SyncController{
		backend:              backend,
		local:                local,
		blobs:                blobs,
		items:                NewItemStore(),
		ids:                  ids,
		migrationConcurrency: migrationConcurrency,
		now:                  time.Now,
		logger:               logger,
		settings:             models.DefaultSettings(),
		events:               make(chan Event, eventBufferSize),
	}
}

// Start leaves StateUninitialized. Without a backend the controller enters
// StateGuest; otherwise it enters StateAuthPending and asks the auth gateway
// to resolve the stored session. ctx bounds the background work started on
// later transitions, such as flushing queued captures.
func (c *SyncController) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.state != StateUninitialized {
		c.mu.Unlock()
		return nil
	}
	c.ctx = ctx
	configured := c.backend.IsConfigured()
	c.mu.Unlock()

	if configured {
		stop := c.backend.auth.OnIdentityChange(c.onIdentity)
		c.mu.Lock()
		c.stopAuth = stop
		c.mu.Unlock()
	}

	c.apply(ctx, input{kind: inputStart, configured: configured})

	if configured {
		return c.backend.auth.Restore(ctx)
	}
	return nil
}

// Close tears down the identity listener and every snapshot subscription.
func (c *SyncController) Close() {
	c.mu.Lock()
	stop := c.stopAuth
	c.stopAuth = nil
	subs := c.subs
	c.subs = nil
	c.generation++
	c.mu.Unlock()

	if stop != nil {
		stop()
	}
	for _, sub := range subs {
		sub.Unsubscribe()
	}
}

// Events delivers change notifications for the UI. Slow readers lose events,
// never block the controller.
func (c *SyncController) Events() <-chan Event {
	return c.events
}

func (c *SyncController) onIdentity(identity *models.Identity) {
	c.mu.Lock()
	ctx := c.ctx
	c.mu.Unlock()

	c.apply(ctx, input{kind: inputIdentity, identity: identity})
}

func (c *SyncController) apply(ctx context.Context, in input) {
	c.mu.Lock()
	next := c.transition(ctx, in)
	c.mu.Unlock()

	c.runFollowUp(ctx, next)
}

// transition is the state machine. It runs under mu and returns the work
// that has to happen after the lock is released.
func (c *SyncController) transition(ctx context.Context, in input) followUp {
	var next followUp
	from := c.state

	switch {
	case from == StateUninitialized && in.kind == inputStart && !in.configured:
		c.enterGuestLocked(ctx)

	case from == StateUninitialized && in.kind == inputStart:
		c.state = StateAuthPending

	case in.kind != inputIdentity, from == StateUninitialized:
		return next

	case in.identity == nil && from == StateGuest:
		return next

	case in.identity == nil:
		// AuthPending or Authenticated: signed out.
		next.unsubscribe = c.dropSubscriptionsLocked()
		c.identity = nil
		c.prompt = nil
		if err := c.local.SetMigrationDone(ctx, false); err != nil {
			c.logger.Err(err).Str("func", "SyncController.transition").Msg("clearing migration flag failed")
		}
		c.enterGuestLocked(ctx)

	case from == StateAuthenticated && c.identity != nil && c.identity.ID == in.identity.ID:
		identity := *in.identity
		c.identity = &identity
		return next

	default:
		// AuthPending, Guest or another account: signed in.
		next.unsubscribe = c.dropSubscriptionsLocked()
		next.events = append(next.events, c.enterAuthenticatedLocked(ctx, in.identity)...)
		next.subscribe = true
		next.generation = c.generation
	}

	if c.state == StateGuest || c.state == StateAuthenticated {
		next.captures = c.pending
		c.pending = nil
	}

	if c.state != from {
		c.logger.Info().Str("from", from.String()).Str("to", c.state.String()).Msg("sync state changed")
		next.events = append([]Event{{Kind: EventStateChanged, State: c.state}}, next.events...)
	}

	return next
}

func (c *SyncController) enterGuestLocked(ctx context.Context) {
	c.state = StateGuest

	items, err := c.local.LoadItems(ctx)
	if err != nil {
		c.logger.Err(err).Str("func", "SyncController.enterGuestLocked").Msg("loading local items failed")
	}
	c.items.Replace(items)

	settings, err := c.local.LoadSettings(ctx)
	if err != nil {
		c.logger.Err(err).Str("func", "SyncController.enterGuestLocked").Msg("loading local settings failed")
		settings = models.DefaultSettings()
	}
	c.settings = settings
	c.settingsLoaded = true
	c.undiscovered = nil
}

// enterAuthenticatedLocked switches to the remote store. The ItemStore is
// emptied until the first snapshot arrives. When guest items exist and were
// never imported from this client, a migration prompt is opened.
func (c *SyncController) enterAuthenticatedLocked(ctx context.Context, identity *models.Identity) []Event {
	c.state = StateAuthenticated
	copied := *identity
	c.identity = &copied
	c.generation++
	c.items.Replace(nil)
	c.settings = models.DefaultSettings()
	c.settingsLoaded = false
	c.undiscovered = nil
	c.prompt = nil
	c.lastAddedID = ""

	done, err := c.local.MigrationDone(ctx)
	if err != nil {
		c.logger.Err(err).Str("func", "SyncController.enterAuthenticatedLocked").Msg("reading migration flag failed")
		return nil
	}
	if done {
		return nil
	}

	guestItems, err := c.local.LoadItems(ctx)
	if err != nil {
		c.logger.Err(err).Str("func", "SyncController.enterAuthenticatedLocked").Msg("loading guest items failed")
		return nil
	}
	if len(guestItems) == 0 {
		return nil
	}

	c.prompt = guestItems
	return []Event{{Kind: EventMigrationPrompt, Count: len(guestItems)}}
}

func (c *SyncController) dropSubscriptionsLocked() []Subscription {
	subs := c.subs
	c.subs = nil
	c.generation++
	return subs
}

func (c *SyncController) runFollowUp(ctx context.Context, next followUp) {
	for _, sub := range next.unsubscribe {
		sub.Unsubscribe()
	}

	if next.subscribe {
		c.subscribe(next.generation)
	}

	for _, ev := range next.events {
		c.emit(ev)
	}
	if len(next.unsubscribe) > 0 || next.subscribe || len(next.events) > 0 {
		c.emit(Event{Kind: EventItemsChanged})
		c.emit(Event{Kind: EventSettingsChanged})
	}

	for _, capture := range next.captures {
		if _, err := c.AddItem(ctx, captureDraft(capture)); err != nil {
			c.logger.Err(err).Str("func", "SyncController.runFollowUp").Msg("queued capture failed")
			c.emit(Event{Kind: EventError, Err: err})
		}
	}
}

// subscribe opens both snapshot streams for generation. Callbacks from an
// older generation are dropped.
func (c *SyncController) subscribe(generation uint64) {
	remote := c.backend.remote

	itemsSub := remote.SubscribeItems(func(items []models.Item) {
		c.mu.Lock()
		if c.generation != generation || c.state != StateAuthenticated {
			c.mu.Unlock()
			return
		}
		c.items.Replace(items)
		c.mu.Unlock()

		c.emit(Event{Kind: EventItemsChanged})
	}, c.streamError(generation))

	settingsSub := remote.SubscribeSettings(func(settings models.Settings) {
		c.mu.Lock()
		if c.generation != generation || c.state != StateAuthenticated {
			c.mu.Unlock()
			return
		}
		c.settings = normalizeSettings(settings)
		first := !c.settingsLoaded
		c.settingsLoaded = true
		undiscovered := c.undiscovered
		c.undiscovered = nil
		known := c.settings.Categories
		ctx := c.ctx
		c.mu.Unlock()

		c.emit(Event{Kind: EventSettingsChanged})
		if first {
			c.mergeCategories(ctx, remote, known, undiscovered)
		}
	}, c.streamError(generation))

	c.mu.Lock()
	if c.generation == generation {
		c.subs = append(c.subs, itemsSub, settingsSub)
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()

	// Signed out while subscribing.
	itemsSub.Unsubscribe()
	settingsSub.Unsubscribe()
}

// streamError keeps the last snapshot and reports the failure.
func (c *SyncController) streamError(generation uint64) func(error) {
	return func(err error) {
		c.mu.Lock()
		current := c.generation == generation
		c.mu.Unlock()
		if !current {
			return
		}

		c.logger.Warn().Err(err).Str("func", "SyncController.streamError").Msg("snapshot stream failed")
		c.emit(Event{Kind: EventError, Err: err})
	}
}

func (c *SyncController) emit(ev Event) {
	select {
	case c.events <- ev:
	default:
		c.logger.Warn().Int("kind", int(ev.Kind)).Msg("event dropped, reader is behind")
	}
}

// ── Reads ────────────────────────────────────────────────────────────────────

func (c *SyncController) State() SyncState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Configured reports whether sign-in is available at all.
func (c *SyncController) Configured() bool {
	return c.backend.IsConfigured()
}

func (c *SyncController) Identity() *models.Identity {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.identity == nil {
		return nil
	}
	identity := *c.identity
	return &identity
}

// Items returns the current list, newest first.
func (c *SyncController) Items() []models.Item {
	return c.items.All()
}

func (c *SyncController) Item(id string) (models.Item, bool) {
	return c.items.Get(id)
}

func (c *SyncController) Settings() models.Settings {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.settings.Clone()
}

// LastAddedID is the id of the item created last in this session, used to
// highlight it once it shows up in a snapshot.
func (c *SyncController) LastAddedID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastAddedID
}

// PendingMigration returns the number of guest items awaiting the import
// decision.
func (c *SyncController) PendingMigration() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.prompt)
}

// PendingCaptures returns the number of queued captures.
func (c *SyncController) PendingCaptures() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}

// Tags returns every known tag in the configured display order.
func (c *SyncController) Tags() []string {
	settings := c.Settings()
	items := c.items.All()

	known := tags.Known(settings.Categories, items)
	return tags.Order(known, items, settings.TagSortOrder, settings.CustomTagOrder)
}

// ColorFor resolves the display color of tag.
func (c *SyncController) ColorFor(tag string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return tags.ColorFor(tag, c.settings.TagColors)
}

// View filters and groups the current items.
func (c *SyncController) View(criteria models.FilterCriteria, loc *time.Location) []models.Group {
	return filter.SelectAndGroup(c.items.All(), criteria, loc)
}

func normalizeSettings(s models.Settings) models.Settings {
	if s.Categories == nil {
		s.Categories = []string{}
	}
	if s.TagColors == nil {
		s.TagColors = map[string]string{}
	}
	if s.CustomTagOrder == nil {
		s.CustomTagOrder = []string{}
	}
	if !s.TagSortOrder.Valid() {
		s.TagSortOrder = models.SortByUsage
	}
	return s
}
