// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"sync"

	"github.com/MKhiriev/moya-list/models"
)

// ItemStore is the in-memory item list the UI renders, newest first. Only
// the SyncController mutates it; readers always get copies.
type ItemStore struct {
	mu    sync.RWMutex
	items []models.Item
}

func NewItemStore() *ItemStore {
	return &ItemStore{}
}

// Replace swaps the whole list, as a snapshot does.
func (s *ItemStore) Replace(items []models.Item) {
	copied := cloneItems(items)

	s.mu.Lock()
	s.items = copied
	s.mu.Unlock()
}

func (s *ItemStore) All() []models.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneItems(s.items)
}

func (s *ItemStore) Get(id string) (models.Item, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, item := range s.items {
		if item.ID == id {
			return item.Clone(), true
		}
	}
	return models.Item{}, false
}

func (s *ItemStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Prepend adds item as the newest entry.
func (s *ItemStore) Prepend(item models.Item) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = append([]models.Item{item.Clone()}, s.items...)
}

// Update replaces the item with the same id and reports whether it existed.
func (s *ItemStore) Update(item models.Item) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == item.ID {
			s.items[i] = item.Clone()
			return true
		}
	}
	return false
}

// Remove deletes the item and reports whether it existed.
func (s *ItemStore) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i:i], s.items[i+1:]...)
			return true
		}
	}
	return false
}

func cloneItems(items []models.Item) []models.Item {
	out := make([]models.Item, len(items))
	for i, item := range items {
		out[i] = item.Clone()
	}
	return out
}
