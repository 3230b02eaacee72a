// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"io"

	"github.com/gabriel-vasile/mimetype"

	"github.com/MKhiriev/moya-list/internal/logger"
	"github.com/MKhiriev/moya-list/internal/store"
	"github.com/MKhiriev/moya-list/models"
)

// allowedImageTypes are the formats accepted for item images.
var allowedImageTypes = []string{"image/png", "image/jpeg", "image/gif", "image/webp"}

type blobService struct {
	blobs  store.BlobStorage
	owners store.BlobRepository
	logger *logger.Logger
}

// NewBlobService constructs a BlobService over content-addressed storage
// and an ownership table.
func NewBlobService(blobs store.BlobStorage, owners store.BlobRepository, logger *logger.Logger) BlobService {
	return &blobService{
		blobs:  blobs,
		owners: owners,
		logger: logger,
	}
}

// Save stores data after sniffing its type and records userID as an owner.
// Identical uploads share one file and return the same ref.
func (s *blobService) Save(ctx context.Context, userID int64, data []byte) (models.BlobInfo, error) {
	log := logger.FromContext(ctx)

	contentType, err := detectImageType(data)
	if err != nil {
		log.Info().Err(err).Str("func", "blobService.Save").Str("mime", contentType).Msg("rejected upload")
		return models.BlobInfo{}, err
	}

	ref, err := s.blobs.SaveBlob(ctx, data)
	if err != nil {
		log.Err(err).Str("func", "blobService.Save").Int64("user_id", userID).Msg("storing blob failed")
		return models.BlobInfo{}, fmt.Errorf("storing blob failed: %w", err)
	}

	info := models.BlobInfo{Ref: ref, ContentType: contentType, Size: int64(len(data))}
	if err := s.owners.AddBlob(ctx, userID, info); err != nil {
		log.Err(err).Str("func", "blobService.Save").Int64("user_id", userID).Str("ref", string(ref)).Msg("recording blob owner failed")
		return models.BlobInfo{}, fmt.Errorf("recording blob owner failed: %w", err)
	}

	return info, nil
}

// Open returns the blob when userID owns it. A blob of another user is
// reported as store.ErrBlobNotFound.
func (s *blobService) Open(ctx context.Context, userID int64, ref models.ImageRef) (models.BlobInfo, io.ReadCloser, error) {
	if !store.ValidBlobRef(ref) {
		return models.BlobInfo{}, nil, store.ErrInvalidBlobRef
	}

	info, err := s.owners.GetBlob(ctx, userID, ref)
	if err != nil {
		return models.BlobInfo{}, nil, fmt.Errorf("reading blob owner failed: %w", err)
	}

	rc, err := s.blobs.OpenBlob(ctx, ref)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "blobService.Open").Str("ref", string(ref)).Msg("opening blob failed")
		return models.BlobInfo{}, nil, fmt.Errorf("opening blob failed: %w", err)
	}

	return info, rc, nil
}

// detectImageType returns the sniffed MIME type of data and an error unless
// it is an accepted image within models.MaxImageSize. The guest-mode attach
// path uses it too, so both modes accept the same files.
func detectImageType(data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrInvalidDataProvided
	}
	if int64(len(data)) > models.MaxImageSize {
		return "", ErrImageTooLarge
	}

	mime := mimetype.Detect(data)
	if !mimetype.EqualsAny(mime.String(), allowedImageTypes...) {
		return mime.String(), ErrUnsupportedImageType
	}
	return mime.String(), nil
}
