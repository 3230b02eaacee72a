// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// MaxImageSize is the largest accepted image upload in bytes.
const MaxImageSize = 5 << 20

// BlobInfo describes a stored image blob.
type BlobInfo struct {
	Ref         ImageRef `json:"ref"`
	ContentType string   `json:"contentType"`
	Size        int64    `json:"size"`
}
