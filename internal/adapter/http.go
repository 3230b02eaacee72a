// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker"

	"github.com/MKhiriev/moya-list/internal/config"
	"github.com/MKhiriev/moya-list/internal/logger"
	"github.com/MKhiriev/moya-list/internal/utils"
	"github.com/MKhiriev/moya-list/models"
)

// errServerFailure marks a 5xx response as a breaker failure. It never leaves
// the package; the response itself is mapped by mapHTTPError.
var errServerFailure = errors.New("server failure")

type httpServerAdapter struct {
	client *utils.HTTPClient
	// stream has no timeout: snapshot streams stay open indefinitely.
	stream  *utils.HTTPClient
	breaker *gobreaker.CircuitBreaker

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter builds the REST implementation of [ServerAdapter] for
// cfg.HTTPAddress. The address may omit the scheme.
func NewHTTPServerAdapter(cfg config.ClientAdapter, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(cfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	h := &httpServerAdapter{
		client: utils.NewHTTPClient(baseURL, cfg.RequestTimeout),
		stream: utils.NewHTTPClient(baseURL, 0),
		logger: logger,
	}
	h.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "moya-server",
		MaxRequests: 1,
		Timeout:     cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state changed")
		},
	})

	return h, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// Register posts to POST /api/user/register and keeps the token from the
// Authorization response header.
func (h *httpServerAdapter) Register(ctx context.Context, credentials models.Credentials) (models.Identity, error) {
	return h.authenticate(ctx, "/api/user/register", credentials)
}

// Login posts to POST /api/user/login and keeps the token from the
// Authorization response header.
func (h *httpServerAdapter) Login(ctx context.Context, credentials models.Credentials) (models.Identity, error) {
	return h.authenticate(ctx, "/api/user/login", credentials)
}

func (h *httpServerAdapter) authenticate(ctx context.Context, path string, credentials models.Credentials) (models.Identity, error) {
	var identity models.Identity

	resp, err := h.execute(func() (*resty.Response, error) {
		return h.client.R().
			SetContext(ctx).
			SetHeader("Content-Type", "application/json").
			SetBody(credentials).
			SetResult(&identity).
			Post(path)
	})
	if err != nil {
		return models.Identity{}, fmt.Errorf("%s request: %w", path, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Identity{}, err
	}

	token, err := utils.ParseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return models.Identity{}, fmt.Errorf("%s parse bearer token: %w", path, err)
	}

	h.SetToken(token)
	return identity, nil
}

// Me returns the identity behind the stored token via GET /api/user/me.
func (h *httpServerAdapter) Me(ctx context.Context) (models.Identity, error) {
	var identity models.Identity
	if err := h.getJSON(ctx, "/api/user/me", &identity); err != nil {
		return models.Identity{}, err
	}
	return identity, nil
}

func (h *httpServerAdapter) ListItems(ctx context.Context) ([]models.Item, error) {
	var items []models.Item
	if err := h.getJSON(ctx, "/api/items", &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (h *httpServerAdapter) CreateItem(ctx context.Context, item models.Item) (models.Item, error) {
	var created models.Item

	resp, err := h.execute(func() (*resty.Response, error) {
		return h.authedRequest(ctx).
			SetHeader("Content-Type", "application/json").
			SetBody(item).
			SetResult(&created).
			Post("/api/items")
	})
	if err != nil {
		return models.Item{}, fmt.Errorf("create item request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Item{}, err
	}

	return created, nil
}

func (h *httpServerAdapter) UpdateItem(ctx context.Context, id string, update models.ItemUpdate) (models.Item, error) {
	var updated models.Item

	resp, err := h.execute(func() (*resty.Response, error) {
		return h.authedRequest(ctx).
			SetHeader("Content-Type", "application/json").
			SetPathParam("id", id).
			SetBody(update).
			SetResult(&updated).
			Patch("/api/items/{id}")
	})
	if err != nil {
		return models.Item{}, fmt.Errorf("update item request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Item{}, err
	}

	return updated, nil
}

func (h *httpServerAdapter) DeleteItem(ctx context.Context, id string) error {
	resp, err := h.execute(func() (*resty.Response, error) {
		return h.authedRequest(ctx).
			SetPathParam("id", id).
			Delete("/api/items/{id}")
	})
	if err != nil {
		return fmt.Errorf("delete item request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpServerAdapter) GetSettings(ctx context.Context) (models.Settings, error) {
	var settings models.Settings
	if err := h.getJSON(ctx, "/api/settings", &settings); err != nil {
		return models.Settings{}, err
	}
	return settings, nil
}

// MergeSettings sends a partial document to PATCH /api/settings; fields
// left nil in patch keep their stored value.
func (h *httpServerAdapter) MergeSettings(ctx context.Context, patch models.SettingsPatch) (models.Settings, error) {
	var merged models.Settings

	resp, err := h.execute(func() (*resty.Response, error) {
		return h.authedRequest(ctx).
			SetHeader("Content-Type", "application/json").
			SetBody(patch).
			SetResult(&merged).
			Patch("/api/settings")
	})
	if err != nil {
		return models.Settings{}, fmt.Errorf("merge settings request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Settings{}, err
	}

	return merged, nil
}

// UploadBlob posts raw image bytes to POST /api/blobs.
func (h *httpServerAdapter) UploadBlob(ctx context.Context, data []byte) (models.BlobInfo, error) {
	var info models.BlobInfo

	resp, err := h.execute(func() (*resty.Response, error) {
		return h.authedRequest(ctx).
			SetHeader("Content-Type", "application/octet-stream").
			SetBody(data).
			SetResult(&info).
			Post("/api/blobs")
	})
	if err != nil {
		return models.BlobInfo{}, fmt.Errorf("upload blob request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.BlobInfo{}, err
	}

	return info, nil
}

func (h *httpServerAdapter) Version(ctx context.Context) (models.AppBuildInfo, error) {
	var info models.AppBuildInfo
	if err := h.getJSON(ctx, "/api/version", &info); err != nil {
		return models.AppBuildInfo{}, err
	}
	return info, nil
}

func (h *httpServerAdapter) getJSON(ctx context.Context, path string, result any) error {
	resp, err := h.execute(func() (*resty.Response, error) {
		return h.authedRequest(ctx).SetResult(result).Get(path)
	})
	if err != nil {
		return fmt.Errorf("GET %s request: %w", path, err)
	}

	return mapHTTPError(resp)
}

// execute runs send through the circuit breaker. Transport failures and 5xx
// responses count against the breaker; while it is open calls fail at once
// with ErrServiceUnavailable.
func (h *httpServerAdapter) execute(send func() (*resty.Response, error)) (*resty.Response, error) {
	out, err := h.breaker.Execute(func() (any, error) {
		resp, err := send()
		if err != nil {
			return nil, err
		}
		if resp.StatusCode() >= http.StatusInternalServerError {
			return resp, errServerFailure
		}
		return resp, nil
	})

	switch {
	case err == nil, errors.Is(err, errServerFailure):
		return out.(*resty.Response), nil
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return nil, fmt.Errorf("%w: %w", ErrServiceUnavailable, err)
	case errors.Is(err, context.Canceled):
		return nil, err
	default:
		return nil, fmt.Errorf("%w: %w", ErrServiceUnavailable, err)
	}
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}

// streamIdleTimeout bounds the silence between frames. The server sends a
// heartbeat comment well within it.
const streamIdleTimeout = 90 * time.Second
