// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package capture

import (
	"encoding/json"
	"net/url"
	"strings"

	"github.com/MKhiriev/moya-list/models"
)

// ParseQuery reads a capture from the `text` and optional `url` query
// parameters. It reports false when text is absent or blank. Non-blank text
// is passed through as written, surrounding whitespace included.
func ParseQuery(values url.Values) (models.Capture, bool) {
	text := values.Get("text")
	if strings.TrimSpace(text) == "" {
		return models.Capture{}, false
	}

	return models.Capture{
		Text:      text,
		SourceURL: sourceURL(values.Get("url")),
	}, true
}

// ParseMessage reads a capture from an extension message. Messages with an
// unknown type tag, blank text or malformed JSON are ignored.
func ParseMessage(data []byte) (models.Capture, bool) {
	var msg models.CaptureMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return models.Capture{}, false
	}
	if !msg.Recognized() {
		return models.Capture{}, false
	}

	if strings.TrimSpace(msg.Text) == "" {
		return models.Capture{}, false
	}
	return models.Capture{Text: msg.Text}, true
}

// sourceURL keeps only absolute http(s) links.
func sourceURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return ""
	}
	return u.String()
}
