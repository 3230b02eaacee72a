// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/MKhiriev/moya-list/models"
)

// fileBlobStorage is the on-disk [BlobStorage]. A blob lives at
// <dir>/<first two hex chars>/<sha256 hex>, so identical images are stored
// once.
type fileBlobStorage struct {
	dir string
}

// NewFileBlobStorage creates dir if needed and returns a [BlobStorage]
// rooted there.
func NewFileBlobStorage(dir string) (BlobStorage, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("error creating blob directory: %w", err)
	}
	return &fileBlobStorage{dir: dir}, nil
}

func (f *fileBlobStorage) SaveBlob(ctx context.Context, data []byte) (models.ImageRef, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	sum := sha256.Sum256(data)
	ref := models.ImageRef(hex.EncodeToString(sum[:]))
	path := f.path(ref)

	if _, err := os.Stat(path); err == nil {
		return ref, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return "", fmt.Errorf("error creating blob directory: %w", err)
	}

	// write-then-rename so a crash never leaves a truncated blob under its
	// final name
	tmp, err := os.CreateTemp(filepath.Dir(path), ".upload-*")
	if err != nil {
		return "", fmt.Errorf("error creating blob file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("error writing blob: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("error closing blob: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("error storing blob: %w", err)
	}

	return ref, nil
}

func (f *fileBlobStorage) OpenBlob(ctx context.Context, ref models.ImageRef) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !ValidBlobRef(ref) {
		return nil, ErrInvalidBlobRef
	}

	file, err := os.Open(f.path(ref))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrBlobNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error opening blob: %w", err)
	}

	return file, nil
}

func (f *fileBlobStorage) path(ref models.ImageRef) string {
	s := string(ref)
	return filepath.Join(f.dir, s[:2], s)
}

// ValidBlobRef reports whether ref is a lowercase sha256 hex digest.
func ValidBlobRef(ref models.ImageRef) bool {
	if len(ref) != sha256.Size*2 {
		return false
	}
	for _, c := range ref {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}
