// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package tags holds the pure tag logic of the application: hashtag
// extraction, deterministic tag colors, tag list ordering and the
// rename/remove cascades applied to items and settings.
//
// Nothing in this package performs I/O or keeps state between calls.
package tags
