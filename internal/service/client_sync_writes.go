// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/MKhiriev/moya-list/internal/tags"
	"github.com/MKhiriev/moya-list/models"
)

// captureDraft turns a capture into the item handed to AddItem.
func captureDraft(capture models.Capture) models.Item {
	return models.Item{Text: capture.Text, Description: capture.Description()}
}

// SubmitCapture adds an item from the capture bridge. While the session is
// still resolving the capture is queued and submitted exactly once when the
// controller reaches StateGuest or StateAuthenticated.
func (c *SyncController) SubmitCapture(ctx context.Context, capture models.Capture) error {
	if strings.TrimSpace(capture.Text) == "" {
		return nil
	}

	c.mu.Lock()
	if c.state == StateUninitialized || c.state == StateAuthPending {
		c.pending = append(c.pending, capture)
		c.mu.Unlock()
		c.logger.Info().Str("func", "SyncController.SubmitCapture").Msg("capture queued until sign-in resolves")
		return nil
	}
	c.mu.Unlock()

	_, err := c.AddItem(ctx, captureDraft(capture))
	return err
}

// AddItem creates an item from draft.Text, draft.Description and
// draft.Images. Categories are the hashtags of the text. Blank text is a
// silent no-op returning the zero item. In guest mode the item is stored at
// once; signed in, the returned item is the server's and the ItemStore only
// changes with the next snapshot.
func (c *SyncController) AddItem(ctx context.Context, draft models.Item) (models.Item, error) {
	if strings.TrimSpace(draft.Text) == "" {
		return models.Item{}, nil
	}

	item := models.NormalizeItem(models.Item{
		Text:        draft.Text,
		Categories:  tags.Extract(draft.Text),
		Description: draft.Description,
		Images:      draft.Images,
		Status:      models.StatusUnsolved,
	})

	c.mu.Lock()
	switch c.state {
	case StateGuest:
		item.ID = c.ids.Generate()
		item.CreatedAt = c.now()
		c.items.Prepend(item)
		c.lastAddedID = item.ID

		err := c.local.SaveItems(ctx, c.items.All())
		settingsChanged := c.discoverCategoriesLocked(ctx, item.Categories)
		c.mu.Unlock()

		c.emit(Event{Kind: EventItemsChanged})
		if settingsChanged {
			c.emit(Event{Kind: EventSettingsChanged})
		}
		if err != nil {
			return item, fmt.Errorf("saving local items failed: %w", err)
		}
		return item, nil

	case StateAuthenticated:
		remote := c.backend.remote
		generation := c.generation
		c.mu.Unlock()

		created, err := remote.CreateItem(ctx, item)
		if err != nil {
			c.logger.Err(err).Str("func", "SyncController.AddItem").Msg("remote item creation failed")
			return models.Item{}, fmt.Errorf("item creation failed: %w", err)
		}

		c.mu.Lock()
		if c.generation != generation {
			c.mu.Unlock()
			return created, nil
		}
		c.lastAddedID = created.ID
		if !c.settingsLoaded {
			// merged once the account's categories are known
			c.undiscovered = tags.Merge(c.undiscovered, created.Categories)
			c.mu.Unlock()
			return created, nil
		}
		known := c.settings.Categories
		c.mu.Unlock()

		c.mergeCategories(ctx, remote, known, created.Categories)
		return created, nil

	default:
		c.mu.Unlock()
		return models.Item{}, ErrSessionPending
	}
}

// mergeCategories sends known plus the unseen tags of found when there are
// any. A failure is reported as an event; the item itself was created.
func (c *SyncController) mergeCategories(ctx context.Context, remote RemoteStore, known, found []string) {
	merged := tags.Merge(known, found)
	if len(merged) == len(known) {
		return
	}
	if err := remote.MergeSettings(ctx, models.SettingsPatch{Categories: &merged}); err != nil {
		c.logger.Err(err).Str("func", "SyncController.mergeCategories").Msg("category list update failed")
		c.emit(Event{Kind: EventError, Err: fmt.Errorf("category list update failed: %w", err)})
	}
}

// discoverCategoriesLocked appends unseen tags to the guest category list.
func (c *SyncController) discoverCategoriesLocked(ctx context.Context, found []string) bool {
	merged := tags.Merge(c.settings.Categories, found)
	if len(merged) == len(c.settings.Categories) {
		return false
	}

	if err := c.local.SaveSettings(ctx, models.SettingsPatch{Categories: &merged}); err != nil {
		c.logger.Err(err).Str("func", "SyncController.discoverCategoriesLocked").Msg("saving categories failed")
	}
	c.settings.Categories = merged
	return true
}

// UpdateItem applies the non-nil fields of update.
func (c *SyncController) UpdateItem(ctx context.Context, id string, update models.ItemUpdate) error {
	if update.IsEmpty() {
		return nil
	}
	if update.Text != nil && strings.TrimSpace(*update.Text) == "" {
		return ErrEmptyItemText
	}
	if update.Images != nil && len(*update.Images) > models.MaxImages {
		return ErrTooManyImages
	}
	update = update.Normalize()

	c.mu.Lock()
	switch c.state {
	case StateGuest:
		current, ok := c.items.Get(id)
		if !ok {
			c.mu.Unlock()
			return ErrItemNotFound
		}
		c.items.Update(update.Apply(current))
		err := c.local.SaveItems(ctx, c.items.All())
		settingsChanged := false
		if update.Categories != nil {
			settingsChanged = c.discoverCategoriesLocked(ctx, *update.Categories)
		}
		c.mu.Unlock()

		c.emit(Event{Kind: EventItemsChanged})
		if settingsChanged {
			c.emit(Event{Kind: EventSettingsChanged})
		}
		if err != nil {
			return fmt.Errorf("saving local items failed: %w", err)
		}
		return nil

	case StateAuthenticated:
		remote := c.backend.remote
		c.mu.Unlock()

		if err := remote.UpdateItem(ctx, id, update); err != nil {
			c.logger.Err(err).Str("func", "SyncController.UpdateItem").Str("item_id", id).Msg("remote item update failed")
			return fmt.Errorf("item update failed: %w", err)
		}
		return nil

	default:
		c.mu.Unlock()
		return ErrSessionPending
	}
}

// ToggleStatus flips the item between unsolved and solved.
func (c *SyncController) ToggleStatus(ctx context.Context, id string) error {
	current, ok := c.items.Get(id)
	if !ok {
		return ErrItemNotFound
	}
	status := current.Status.Toggle()
	return c.UpdateItem(ctx, id, models.ItemUpdate{Status: &status})
}

func (c *SyncController) SetDescription(ctx context.Context, id, description string) error {
	return c.UpdateItem(ctx, id, models.ItemUpdate{Description: &description})
}

// DeleteItem removes the item permanently.
func (c *SyncController) DeleteItem(ctx context.Context, id string) error {
	c.mu.Lock()
	switch c.state {
	case StateGuest:
		if !c.items.Remove(id) {
			c.mu.Unlock()
			return ErrItemNotFound
		}
		if c.lastAddedID == id {
			c.lastAddedID = ""
		}
		err := c.local.SaveItems(ctx, c.items.All())
		c.mu.Unlock()

		c.emit(Event{Kind: EventItemsChanged})
		if err != nil {
			return fmt.Errorf("saving local items failed: %w", err)
		}
		return nil

	case StateAuthenticated:
		remote := c.backend.remote
		c.mu.Unlock()

		if err := remote.DeleteItem(ctx, id); err != nil {
			c.logger.Err(err).Str("func", "SyncController.DeleteItem").Str("item_id", id).Msg("remote item deletion failed")
			return fmt.Errorf("item deletion failed: %w", err)
		}
		return nil

	default:
		c.mu.Unlock()
		return ErrSessionPending
	}
}

// AttachImage stores data as an image blob and adds its reference to the
// item. Guest images live in the local blob directory and are uploaded by
// the migration.
func (c *SyncController) AttachImage(ctx context.Context, id string, data []byte) error {
	current, ok := c.items.Get(id)
	if !ok {
		return ErrItemNotFound
	}
	if len(current.Images) >= models.MaxImages {
		return ErrTooManyImages
	}
	if _, err := detectImageType(data); err != nil {
		return err
	}

	var (
		ref models.ImageRef
		err error
	)
	switch c.State() {
	case StateGuest:
		ref, err = c.blobs.SaveBlob(ctx, data)
	case StateAuthenticated:
		ref, err = c.backend.remote.UploadImage(ctx, data)
	default:
		return ErrSessionPending
	}
	if err != nil {
		c.logger.Err(err).Str("func", "SyncController.AttachImage").Str("item_id", id).Msg("storing image failed")
		return fmt.Errorf("storing image failed: %w", err)
	}

	if slices.Contains(current.Images, ref) {
		return nil
	}
	images := append(slices.Clone(current.Images), ref)
	return c.UpdateItem(ctx, id, models.ItemUpdate{Images: &images})
}

// DetachImage removes ref from the item. The blob itself is kept; other
// items may share it.
func (c *SyncController) DetachImage(ctx context.Context, id string, ref models.ImageRef) error {
	current, ok := c.items.Get(id)
	if !ok {
		return ErrItemNotFound
	}
	if !slices.Contains(current.Images, ref) {
		return nil
	}

	images := slices.DeleteFunc(slices.Clone(current.Images), func(r models.ImageRef) bool { return r == ref })
	return c.UpdateItem(ctx, id, models.ItemUpdate{Images: &images})
}

// ── Settings ─────────────────────────────────────────────────────────────────

// writeSettings overwrites the patched local keys in guest mode and sends a
// merge-write when signed in.
func (c *SyncController) writeSettings(ctx context.Context, patch models.SettingsPatch) error {
	c.mu.Lock()
	switch c.state {
	case StateGuest:
		err := c.local.SaveSettings(ctx, patch)
		if err == nil {
			c.settings = patch.Apply(c.settings)
		}
		c.mu.Unlock()

		if err != nil {
			return fmt.Errorf("saving local settings failed: %w", err)
		}
		c.emit(Event{Kind: EventSettingsChanged})
		return nil

	case StateAuthenticated:
		if !c.settingsLoaded {
			c.mu.Unlock()
			return ErrSettingsNotLoaded
		}
		remote := c.backend.remote
		c.mu.Unlock()

		if err := remote.MergeSettings(ctx, patch); err != nil {
			c.logger.Err(err).Str("func", "SyncController.writeSettings").Msg("remote settings merge failed")
			return fmt.Errorf("settings update failed: %w", err)
		}
		return nil

	default:
		c.mu.Unlock()
		return ErrSessionPending
	}
}

// AddCategory appends name to the category list.
func (c *SyncController) AddCategory(ctx context.Context, name string) error {
	name = strings.TrimPrefix(strings.TrimSpace(name), "#")
	if name == "" {
		return nil
	}

	current := c.Settings().Categories
	merged := tags.Merge(current, []string{name})
	if len(merged) == len(current) {
		return nil
	}
	return c.writeSettings(ctx, models.SettingsPatch{Categories: &merged})
}

// SetTagColor overrides the color of tag; an empty color restores the
// hash-derived one.
func (c *SyncController) SetTagColor(ctx context.Context, tag, color string) error {
	colors := c.Settings().TagColors
	if color == "" {
		delete(colors, tag)
	} else {
		colors[tag] = color
	}
	return c.writeSettings(ctx, models.SettingsPatch{TagColors: &colors})
}

func (c *SyncController) SetTagSortOrder(ctx context.Context, order models.TagSortOrder) error {
	if !order.Valid() {
		return ErrInvalidDataProvided
	}
	return c.writeSettings(ctx, models.SettingsPatch{TagSortOrder: &order})
}

// MoveTag shifts tag by delta in the manual order and switches the list to
// manual sorting.
func (c *SyncController) MoveTag(ctx context.Context, tag string, delta int) error {
	settings := c.Settings()
	items := c.items.All()

	current := tags.Order(tags.Known(settings.Categories, items), items, settings.TagSortOrder, settings.CustomTagOrder)
	moved := tags.Move(current, tag, delta)
	manual := models.SortManual

	return c.writeSettings(ctx, models.SettingsPatch{CustomTagOrder: &moved, TagSortOrder: &manual})
}

// RenameTag renames a tag on every item and in the settings.
func (c *SyncController) RenameTag(ctx context.Context, from, to string) error {
	to = strings.TrimPrefix(strings.TrimSpace(to), "#")
	if to == "" {
		return ErrInvalidDataProvided
	}
	changed, settings := tags.Rename(c.items.All(), c.Settings(), from, to)
	return c.cascade(ctx, changed, settings)
}

// DeleteTag removes a tag from every item and from the settings. Items left
// without a tag get models.MiscTag.
func (c *SyncController) DeleteTag(ctx context.Context, tag string) error {
	changed, settings := tags.Remove(c.items.All(), c.Settings(), tag)
	return c.cascade(ctx, changed, settings)
}

// cascade writes the items changed by a tag rename or removal, then the
// settings that go with them.
func (c *SyncController) cascade(ctx context.Context, changed []models.Item, settings models.Settings) error {
	patch := models.SettingsPatch{
		Categories:     &settings.Categories,
		TagColors:      &settings.TagColors,
		CustomTagOrder: &settings.CustomTagOrder,
	}

	c.mu.Lock()
	switch c.state {
	case StateGuest:
		for _, item := range changed {
			c.items.Update(item)
		}
		itemsErr := c.local.SaveItems(ctx, c.items.All())
		settingsErr := c.local.SaveSettings(ctx, patch)
		if settingsErr == nil {
			c.settings = patch.Apply(c.settings)
		}
		c.mu.Unlock()

		c.emit(Event{Kind: EventItemsChanged})
		c.emit(Event{Kind: EventSettingsChanged})
		if itemsErr != nil {
			return fmt.Errorf("saving local items failed: %w", itemsErr)
		}
		if settingsErr != nil {
			return fmt.Errorf("saving local settings failed: %w", settingsErr)
		}
		return nil

	case StateAuthenticated:
		if !c.settingsLoaded {
			c.mu.Unlock()
			return ErrSettingsNotLoaded
		}
		remote := c.backend.remote
		c.mu.Unlock()

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(c.migrationConcurrency)
		for _, item := range changed {
			categories := item.Categories
			g.Go(func() error {
				return remote.UpdateItem(gctx, item.ID, models.ItemUpdate{Categories: &categories})
			})
		}
		if err := g.Wait(); err != nil {
			c.logger.Err(err).Str("func", "SyncController.cascade").Msg("remote tag cascade failed")
			return fmt.Errorf("tag update failed: %w", err)
		}

		if err := remote.MergeSettings(ctx, patch); err != nil {
			c.logger.Err(err).Str("func", "SyncController.cascade").Msg("remote settings merge failed")
			return fmt.Errorf("settings update failed: %w", err)
		}
		return nil

	default:
		c.mu.Unlock()
		return ErrSessionPending
	}
}

// ── Session ──────────────────────────────────────────────────────────────────

// SignIn signs in through the auth gateway. The state change arrives through
// the identity listener.
func (c *SyncController) SignIn(ctx context.Context, credentials models.Credentials) (models.Identity, error) {
	if !c.backend.IsConfigured() {
		return models.Identity{}, ErrRemoteNotConfigured
	}
	return c.backend.auth.SignIn(ctx, credentials)
}

func (c *SyncController) Register(ctx context.Context, credentials models.Credentials) (models.Identity, error) {
	if !c.backend.IsConfigured() {
		return models.Identity{}, ErrRemoteNotConfigured
	}
	return c.backend.auth.Register(ctx, credentials)
}

// SignOut returns to guest mode with the local data.
func (c *SyncController) SignOut(ctx context.Context) error {
	if !c.backend.IsConfigured() {
		return ErrRemoteNotConfigured
	}
	if c.State() != StateAuthenticated {
		return ErrNotAuthenticated
	}
	return c.backend.auth.SignOut(ctx)
}
