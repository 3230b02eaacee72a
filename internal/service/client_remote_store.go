// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/moya-list/internal/adapter"
	"github.com/MKhiriev/moya-list/internal/logger"
	"github.com/MKhiriev/moya-list/models"
)

// defaultReconnectInterval is used when the configured interval is not
// positive.
const defaultReconnectInterval = 3 * time.Second

type remoteStore struct {
	adapter           adapter.ServerAdapter
	reconnectInterval time.Duration
	logger            *logger.Logger
}

// NewRemoteStore builds a RemoteStore over the server adapter.
func NewRemoteStore(serverAdapter adapter.ServerAdapter, reconnectInterval time.Duration, logger *logger.Logger) RemoteStore {
	if reconnectInterval <= 0 {
		reconnectInterval = defaultReconnectInterval
	}
	return &remoteStore{adapter: serverAdapter, reconnectInterval: reconnectInterval, logger: logger}
}

func (r *remoteStore) CreateItem(ctx context.Context, item models.Item) (models.Item, error) {
	created, err := r.adapter.CreateItem(ctx, item)
	if err != nil {
		return models.Item{}, mapAdapterError(err)
	}
	return created, nil
}

func (r *remoteStore) UpdateItem(ctx context.Context, id string, update models.ItemUpdate) error {
	_, err := r.adapter.UpdateItem(ctx, id, update)
	return mapAdapterError(err)
}

func (r *remoteStore) DeleteItem(ctx context.Context, id string) error {
	return mapAdapterError(r.adapter.DeleteItem(ctx, id))
}

func (r *remoteStore) MergeSettings(ctx context.Context, patch models.SettingsPatch) error {
	_, err := r.adapter.MergeSettings(ctx, patch)
	return mapAdapterError(err)
}

func (r *remoteStore) UploadImage(ctx context.Context, data []byte) (models.ImageRef, error) {
	info, err := r.adapter.UploadBlob(ctx, data)
	if err != nil {
		return "", mapAdapterError(err)
	}
	return info.Ref, nil
}

func (r *remoteStore) SubscribeItems(onSnapshot func([]models.Item), onError func(error)) Subscription {
	return r.subscribe(models.TopicItems, func(data []byte) error {
		var items []models.Item
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		for i := range items {
			items[i] = models.NormalizeItem(items[i])
		}
		onSnapshot(items)
		return nil
	}, onError)
}

func (r *remoteStore) SubscribeSettings(onSnapshot func(models.Settings), onError func(error)) Subscription {
	return r.subscribe(models.TopicSettings, func(data []byte) error {
		var settings models.Settings
		if err := json.Unmarshal(data, &settings); err != nil {
			return err
		}
		onSnapshot(settings)
		return nil
	}, onError)
}

// subscribe runs the stream of topic in a goroutine, reopening it after
// reconnectInterval whenever it drops.
func (r *remoteStore) subscribe(topic models.ChangeTopic, decode func([]byte) error, onError func(error)) Subscription {
	ctx, cancel := context.WithCancel(context.Background())
	sub := &streamSubscription{cancel: cancel}
	log := r.logger.With().Str("topic", string(topic)).Logger()

	sub.wg.Add(1)
	go func() {
		defer sub.wg.Done()

		for {
			err := r.adapter.Stream(ctx, topic, func(ev adapter.StreamEvent) {
				switch ev.Name {
				case string(topic):
					if err := decode(ev.Data); err != nil {
						log.Error().Err(err).Str("func", "remoteStore.subscribe").Msg("malformed snapshot")
						onError(fmt.Errorf("malformed %s snapshot: %w", topic, err))
					}
				case "error":
					var msg string
					_ = json.Unmarshal(ev.Data, &msg)
					onError(fmt.Errorf("%w: %s", ErrInternalServerError, msg))
				}
			})
			if ctx.Err() != nil {
				return
			}

			log.Warn().Err(err).Str("func", "remoteStore.subscribe").Msg("stream dropped")
			onError(mapAdapterError(err))

			// A rejected token will not heal by retrying.
			if errors.Is(err, adapter.ErrUnauthorized) {
				return
			}

			select {
			case <-ctx.Done():
				return
			case <-time.After(r.reconnectInterval):
			}
		}
	}()

	return sub
}

type streamSubscription struct {
	cancel context.CancelFunc
	wg     sync.WaitGroup
	once   sync.Once
}

// Unsubscribe cancels the stream and waits for its goroutine to exit. It
// must not be called from inside a callback of the same subscription.
func (s *streamSubscription) Unsubscribe() {
	s.once.Do(s.cancel)
	s.wg.Wait()
}
