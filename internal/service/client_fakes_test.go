// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/MKhiriev/moya-list/models"
)

// memoryKV is an in-memory store.KeyValueRepository.
type memoryKV struct {
	mu   sync.Mutex
	data map[string]string
}

func newMemoryKV() *memoryKV {
	return &memoryKV{data: map[string]string{}}
}

func (m *memoryKV) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memoryKV) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *memoryKV) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

type fakeSubscription struct {
	unsubscribed atomic.Bool
}

func (s *fakeSubscription) Unsubscribe() {
	s.unsubscribed.Store(true)
}

// fakeRemote records writes and lets the test push snapshots.
type fakeRemote struct {
	mu        sync.Mutex
	seq       int
	created   []models.Item
	updates   map[string]models.ItemUpdate
	deleted   []string
	patches   []models.SettingsPatch
	uploads   int
	failTexts map[string]error

	onItems    []func([]models.Item)
	onSettings []func(models.Settings)
	subs       []*fakeSubscription
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{updates: map[string]models.ItemUpdate{}, failTexts: map[string]error{}}
}

func (r *fakeRemote) CreateItem(_ context.Context, item models.Item) (models.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err, ok := r.failTexts[item.Text]; ok {
		return models.Item{}, err
	}
	r.seq++
	if item.ID == "" {
		item.ID = fmt.Sprintf("remote-%d", r.seq)
	}
	r.created = append(r.created, item)
	return item, nil
}

func (r *fakeRemote) UpdateItem(_ context.Context, id string, update models.ItemUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updates[id] = update
	return nil
}

func (r *fakeRemote) DeleteItem(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deleted = append(r.deleted, id)
	return nil
}

func (r *fakeRemote) MergeSettings(_ context.Context, patch models.SettingsPatch) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.patches = append(r.patches, patch)
	return nil
}

func (r *fakeRemote) UploadImage(_ context.Context, _ []byte) (models.ImageRef, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.uploads++
	return models.ImageRef(fmt.Sprintf("%064d", r.uploads)), nil
}

func (r *fakeRemote) SubscribeItems(onSnapshot func([]models.Item), _ func(error)) Subscription {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onItems = append(r.onItems, onSnapshot)
	sub := &fakeSubscription{}
	r.subs = append(r.subs, sub)
	return sub
}

func (r *fakeRemote) SubscribeSettings(onSnapshot func(models.Settings), _ func(error)) Subscription {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onSettings = append(r.onSettings, onSnapshot)
	sub := &fakeSubscription{}
	r.subs = append(r.subs, sub)
	return sub
}

// pushItems delivers a snapshot through the latest items subscription.
func (r *fakeRemote) pushItems(items []models.Item) {
	r.mu.Lock()
	fn := r.onItems[len(r.onItems)-1]
	r.mu.Unlock()
	fn(items)
}

// pushSettings delivers a snapshot through the latest settings subscription.
func (r *fakeRemote) pushSettings(settings models.Settings) {
	r.mu.Lock()
	fn := r.onSettings[len(r.onSettings)-1]
	r.mu.Unlock()
	fn(settings)
}

func (r *fakeRemote) settingsPatches() []models.SettingsPatch {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.SettingsPatch(nil), r.patches...)
}

func (r *fakeRemote) createdItems() []models.Item {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.Item(nil), r.created...)
}

// fakeAuth publishes identities synchronously, as the real gateway does.
type fakeAuth struct {
	mu        sync.Mutex
	listeners map[int]func(*models.Identity)
	nextID    int
	identity  *models.Identity
	restore   func(g *fakeAuth)
}

func (a *fakeAuth) SignIn(_ context.Context, credentials models.Credentials) (models.Identity, error) {
	identity := models.Identity{ID: credentials.Login, Email: credentials.Login}
	a.publish(&identity)
	return identity, nil
}

func (a *fakeAuth) Register(ctx context.Context, credentials models.Credentials) (models.Identity, error) {
	return a.SignIn(ctx, credentials)
}

func (a *fakeAuth) SignOut(_ context.Context) error {
	a.publish(nil)
	return nil
}

func (a *fakeAuth) OnIdentityChange(fn func(*models.Identity)) func() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.listeners == nil {
		a.listeners = map[int]func(*models.Identity){}
	}
	id := a.nextID
	a.nextID++
	a.listeners[id] = fn
	return func() {
		a.mu.Lock()
		defer a.mu.Unlock()
		delete(a.listeners, id)
	}
}

func (a *fakeAuth) Restore(_ context.Context) error {
	if a.restore != nil {
		a.restore(a)
	}
	return nil
}

func (a *fakeAuth) Current() *models.Identity {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.identity
}

func (a *fakeAuth) publish(identity *models.Identity) {
	a.mu.Lock()
	a.identity = identity
	listeners := make([]func(*models.Identity), 0, len(a.listeners))
	for _, fn := range a.listeners {
		listeners = append(listeners, fn)
	}
	a.mu.Unlock()

	for _, fn := range listeners {
		fn(identity)
	}
}
