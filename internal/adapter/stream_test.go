// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/moya-list/models"
)

func TestReadEvents(t *testing.T) {
	body := ": ping\n\n" +
		"event: items\ndata: [1,2]\n\n" +
		"data: first\ndata: second\n\n" +
		"event: settings\r\ndata:{}\r\n\r\n" +
		"event: dangling\n"

	var got []StreamEvent
	touched := 0
	err := readEvents(strings.NewReader(body), func(ev StreamEvent) {
		got = append(got, ev)
	}, func() { touched++ })

	assert.ErrorIs(t, err, ErrStreamClosed)
	require.Len(t, got, 3)
	assert.Equal(t, StreamEvent{Name: "items", Data: []byte("[1,2]")}, got[0])
	assert.Equal(t, StreamEvent{Name: "message", Data: []byte("first\nsecond")}, got[1])
	assert.Equal(t, StreamEvent{Name: "settings", Data: []byte("{}")}, got[2])
	assert.Greater(t, touched, 0)
}

func TestStream_DeliversFramesUntilServerCloses(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/items/stream", r.URL.Path)
		assert.Equal(t, "text/event-stream", r.Header.Get("Accept"))
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "text/event-stream")
		flusher := w.(http.Flusher)
		for i := 0; i < 2; i++ {
			_, _ = fmt.Fprintf(w, "event: items\ndata: [%d]\n\n", i)
			flusher.Flush()
		}
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetToken("tok")

	var got []string
	err := a.Stream(context.Background(), models.TopicItems, func(ev StreamEvent) {
		got = append(got, string(ev.Data))
	})

	assert.ErrorIs(t, err, ErrStreamClosed)
	assert.Equal(t, []string{"[0]", "[1]"}, got)
}

func TestStream_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "token is expired or invalid", http.StatusUnauthorized)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	err := a.Stream(context.Background(), models.TopicSettings, func(StreamEvent) {})

	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestStream_CanceledByCaller(t *testing.T) {
	opened := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		_, _ = fmt.Fprint(w, ": ping\n\n")
		w.(http.Flusher).Flush()
		close(opened)
		<-r.Context().Done()
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- a.Stream(ctx, models.TopicItems, func(StreamEvent) {})
	}()

	<-opened
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("Stream did not return after cancel")
	}
}
