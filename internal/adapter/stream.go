// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/MKhiriev/moya-list/models"
)

// maxFrameLine is the longest accepted line of a stream. A snapshot of the
// whole item list travels as one data line.
const maxFrameLine = 16 << 20

// Stream implements [ServerAdapter]. It does not pass through the breaker
// because the call lasts as long as the connection, but it refuses to dial
// while the breaker is open.
func (h *httpServerAdapter) Stream(ctx context.Context, topic models.ChangeTopic, onEvent func(StreamEvent)) error {
	if h.breaker.State() == gobreaker.StateOpen {
		return fmt.Errorf("%w: %w", ErrServiceUnavailable, gobreaker.ErrOpenState)
	}

	parent := ctx
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	idle := time.AfterFunc(streamIdleTimeout, cancel)
	defer idle.Stop()

	path := "/api/" + string(topic) + "/stream"
	req := h.stream.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		SetHeader("Accept", "text/event-stream")
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}

	resp, err := req.Get(path)
	if err != nil {
		if parent.Err() != nil {
			return parent.Err()
		}
		return fmt.Errorf("%w: %w", ErrServiceUnavailable, err)
	}
	body := resp.RawBody()
	defer body.Close()

	if resp.StatusCode() != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(body, 4<<10))
		return mapStatus(resp.StatusCode(), string(msg))
	}

	h.logger.Debug().Str("func", "httpServerAdapter.Stream").Str("topic", string(topic)).Msg("stream opened")

	err = readEvents(body, onEvent, func() { idle.Reset(streamIdleTimeout) })
	switch {
	case parent.Err() != nil:
		return parent.Err()
	case ctx.Err() != nil:
		return fmt.Errorf("%w: no frame for %s", ErrStreamClosed, streamIdleTimeout)
	case errors.Is(err, ErrStreamClosed):
		return err
	default:
		return fmt.Errorf("%w: %w", ErrStreamClosed, err)
	}
}

// readEvents parses a text/event-stream body, dispatching a StreamEvent on
// every blank line that ends a frame with data. Comment lines only count as
// activity. It returns ErrStreamClosed at EOF.
func readEvents(r io.Reader, onEvent func(StreamEvent), touch func()) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64<<10), maxFrameLine)

	var (
		name    string
		data    []byte
		hasData bool
	)
	for scanner.Scan() {
		touch()

		line := scanner.Text()
		if line == "" {
			if hasData {
				if name == "" {
					name = "message"
				}
				onEvent(StreamEvent{Name: name, Data: data})
			}
			name, data, hasData = "", nil, false
			continue
		}
		if strings.HasPrefix(line, ":") {
			continue
		}

		field, value, _ := strings.Cut(line, ":")
		value = strings.TrimPrefix(value, " ")
		switch field {
		case "event":
			name = value
		case "data":
			if hasData {
				data = append(data, '\n')
			}
			data = append(data, value...)
			hasData = true
		}
	}

	if err := scanner.Err(); err != nil {
		return err
	}
	return ErrStreamClosed
}
