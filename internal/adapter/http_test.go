// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/moya-list/internal/config"
	"github.com/MKhiriev/moya-list/internal/logger"
	"github.com/MKhiriev/moya-list/models"
)

func newTestAdapter(t *testing.T, serverURL string) *httpServerAdapter {
	t.Helper()

	a, err := NewHTTPServerAdapter(config.ClientAdapter{
		HTTPAddress:    serverURL,
		RequestTimeout: 5 * time.Second,
		BreakerTimeout: time.Minute,
	}, logger.Nop())
	require.NoError(t, err)
	return a.(*httpServerAdapter)
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

// ── normalizeBaseURL ─────────────────────────────────────────────────────────

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "localhost:8080", want: "http://localhost:8080"},
		{in: " https://moya.example.com/ ", want: "https://moya.example.com"},
		{in: "", wantErr: true},
		{in: "http://", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := normalizeBaseURL(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// ── Auth ─────────────────────────────────────────────────────────────────────

func TestLogin_StoresToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/user/login", r.URL.Path)

		var creds models.Credentials
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, "alice", creds.Login)

		w.Header().Set("Authorization", "Bearer abc.def.ghi")
		writeJSON(t, w, http.StatusOK, models.Identity{ID: "1", Email: "alice"})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	identity, err := a.Login(context.Background(), models.Credentials{Login: "alice", Password: "secret1"})

	require.NoError(t, err)
	assert.Equal(t, "1", identity.ID)
	assert.Equal(t, "abc.def.ghi", a.Token())
}

func TestRegister_Conflict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/user/register", r.URL.Path)
		http.Error(w, "login already exists", http.StatusConflict)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.Register(context.Background(), models.Credentials{Login: "alice", Password: "secret1"})

	assert.ErrorIs(t, err, ErrConflict)
	assert.Contains(t, err.Error(), "login already exists")
	assert.Empty(t, a.Token())
}

func TestLogin_MissingAuthorizationHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, models.Identity{ID: "1"})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.Login(context.Background(), models.Credentials{Login: "alice", Password: "secret1"})

	assert.Error(t, err)
	assert.Empty(t, a.Token())
}

func TestMe_SendsBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok" {
			http.Error(w, "token is expired or invalid", http.StatusUnauthorized)
			return
		}
		writeJSON(t, w, http.StatusOK, models.Identity{ID: "9", DisplayName: "Nine"})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)

	_, err := a.Me(context.Background())
	assert.ErrorIs(t, err, ErrUnauthorized)

	a.SetToken(" tok ")
	identity, err := a.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Nine", identity.DisplayName)
}

// ── Items ────────────────────────────────────────────────────────────────────

func TestCreateItem(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/items", r.URL.Path)

		var item models.Item
		require.NoError(t, json.NewDecoder(r.Body).Decode(&item))
		item.ID = "srv-id"
		writeJSON(t, w, http.StatusCreated, item)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	created, err := a.CreateItem(context.Background(), models.Item{Text: "q #CSS", Categories: []string{"CSS"}})

	require.NoError(t, err)
	assert.Equal(t, "srv-id", created.ID)
	assert.Equal(t, []string{"CSS"}, created.Categories)
}

func TestUpdateItem_PathAndBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/api/items/abc", r.URL.Path)

		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"status":"solved"}`, string(body))
		writeJSON(t, w, http.StatusOK, models.Item{ID: "abc", Status: models.StatusSolved})
	}))
	defer srv.Close()

	status := models.StatusSolved
	a := newTestAdapter(t, srv.URL)
	got, err := a.UpdateItem(context.Background(), "abc", models.ItemUpdate{Status: &status})

	require.NoError(t, err)
	assert.Equal(t, models.StatusSolved, got.Status)
}

func TestDeleteItem_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		http.Error(w, "item not found", http.StatusNotFound)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	err := a.DeleteItem(context.Background(), "missing")

	assert.ErrorIs(t, err, ErrNotFound)
}

// ── Settings / blobs / version ───────────────────────────────────────────────

func TestMergeSettings_SendsOnlySetFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"tagSortOrder":"manual"}`, string(body))

		s := models.DefaultSettings()
		s.TagSortOrder = models.SortManual
		writeJSON(t, w, http.StatusOK, s)
	}))
	defer srv.Close()

	order := models.SortManual
	a := newTestAdapter(t, srv.URL)
	got, err := a.MergeSettings(context.Background(), models.SettingsPatch{TagSortOrder: &order})

	require.NoError(t, err)
	assert.Equal(t, models.SortManual, got.TagSortOrder)
}

func TestUploadBlob(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/blobs", r.URL.Path)
		assert.Equal(t, "application/octet-stream", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		writeJSON(t, w, http.StatusCreated, models.BlobInfo{Ref: "ref", Size: int64(len(body))})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	info, err := a.UploadBlob(context.Background(), []byte("12345"))

	require.NoError(t, err)
	assert.Equal(t, models.ImageRef("ref"), info.Ref)
	assert.Equal(t, int64(5), info.Size)
}

func TestVersion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, models.NewAppBuildInfo("1.0.0", "2026-01-01", "abc"))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	info, err := a.Version(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "1.0.0", info.Version)
}

// ── Circuit breaker ──────────────────────────────────────────────────────────

func TestBreaker_OpensAfterConsecutiveServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		err := a.DeleteItem(ctx, "x")
		assert.ErrorIs(t, err, ErrInternalServerError)
	}

	err := a.DeleteItem(ctx, "x")
	assert.ErrorIs(t, err, ErrServiceUnavailable)
	assert.Equal(t, int32(3), calls.Load())
}

func TestBreaker_ClientErrorsDoNotTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "item not found", http.StatusNotFound)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	for i := 0; i < 5; i++ {
		assert.ErrorIs(t, a.DeleteItem(context.Background(), "x"), ErrNotFound)
	}
}

func TestUnreachableServer(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	a := newTestAdapter(t, url)
	_, err := a.ListItems(context.Background())

	assert.ErrorIs(t, err, ErrServiceUnavailable)
}

// ── mapStatus ────────────────────────────────────────────────────────────────

func TestMapStatus(t *testing.T) {
	assert.NoError(t, mapStatus(http.StatusNoContent, ""))
	assert.ErrorIs(t, mapStatus(http.StatusTooManyRequests, "too many requests"), ErrTooManyRequests)
	assert.ErrorIs(t, mapStatus(http.StatusGatewayTimeout, ""), ErrServiceUnavailable)

	err := mapStatus(http.StatusTeapot, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "http 418")
}
