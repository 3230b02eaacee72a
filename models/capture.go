// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Message type tags accepted from the browser extension. The content script
// relays "ADD_TEXT" from the background page as "MOYA_ADD_TEXT".
const (
	MessageTypeAddText     = "ADD_TEXT"
	MessageTypeMoyaAddText = "MOYA_ADD_TEXT"
)

// SourceLinePrefix starts the description line seeded from a capture URL.
const SourceLinePrefix = "출처: "

// Capture is a request to create an item that arrived from outside the UI.
type Capture struct {
	// Text is the selected text. Hashtags in it become categories.
	Text string `json:"text"`

	// SourceURL is the page the text was selected on, if known.
	SourceURL string `json:"url,omitempty"`
}

// Description returns the description seeded for the capture.
func (c Capture) Description() string {
	if c.SourceURL == "" {
		return ""
	}
	return TruncateDescription(SourceLinePrefix + c.SourceURL)
}

// CaptureMessage is the structured cross-context message posted by the
// extension content script.
type CaptureMessage struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Recognized reports whether the message carries one of the accepted type tags.
func (m CaptureMessage) Recognized() bool {
	return m.Type == MessageTypeAddText || m.Type == MessageTypeMoyaAddText
}
