// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// ChangeTopic names a per-user document set whose changes are streamed to
// subscribers. It doubles as the SSE event name.
type ChangeTopic string

const (
	TopicItems    ChangeTopic = "items"
	TopicSettings ChangeTopic = "settings"
)
