// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/moya-list/internal/logger"
	"github.com/MKhiriev/moya-list/internal/mock"
	"github.com/MKhiriev/moya-list/internal/store"
	"github.com/MKhiriev/moya-list/models"
)

var (
	pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")
	testRef   = models.ImageRef(strings.Repeat("ab", 32))
)

func newTestBlobService(t *testing.T) (BlobService, *mock.MockBlobStorage, *mock.MockBlobRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	blobs := mock.NewMockBlobStorage(ctrl)
	owners := mock.NewMockBlobRepository(ctrl)
	return NewBlobService(blobs, owners, logger.Nop()), blobs, owners
}

// ── Save ─────────────────────────────────────────────────────────────────────

func TestBlobService_Save_PNG(t *testing.T) {
	svc, blobs, owners := newTestBlobService(t)

	blobs.EXPECT().SaveBlob(gomock.Any(), pngHeader).Return(testRef, nil)
	owners.EXPECT().AddBlob(gomock.Any(), int64(1), models.BlobInfo{
		Ref:         testRef,
		ContentType: "image/png",
		Size:        int64(len(pngHeader)),
	}).Return(nil)

	info, err := svc.Save(context.Background(), 1, pngHeader)
	require.NoError(t, err)
	assert.Equal(t, testRef, info.Ref)
	assert.Equal(t, "image/png", info.ContentType)
}

func TestBlobService_Save_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		wantErr error
	}{
		{name: "empty", data: nil, wantErr: ErrInvalidDataProvided},
		{name: "not an image", data: []byte("hello, plain text"), wantErr: ErrUnsupportedImageType},
		{name: "too large", data: append(append([]byte{}, pngHeader...), make([]byte, models.MaxImageSize)...), wantErr: ErrImageTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _ := newTestBlobService(t)

			_, err := svc.Save(context.Background(), 1, tt.data)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestBlobService_Save_OwnerRecordFails(t *testing.T) {
	svc, blobs, owners := newTestBlobService(t)

	blobs.EXPECT().SaveBlob(gomock.Any(), gomock.Any()).Return(testRef, nil)
	owners.EXPECT().AddBlob(gomock.Any(), int64(1), gomock.Any()).Return(store.ErrExecutingQuery)

	_, err := svc.Save(context.Background(), 1, pngHeader)
	assert.ErrorIs(t, err, store.ErrExecutingQuery)
}

// ── Open ─────────────────────────────────────────────────────────────────────

func TestBlobService_Open_Owner(t *testing.T) {
	svc, blobs, owners := newTestBlobService(t)

	info := models.BlobInfo{Ref: testRef, ContentType: "image/png", Size: int64(len(pngHeader))}
	owners.EXPECT().GetBlob(gomock.Any(), int64(1), testRef).Return(info, nil)
	blobs.EXPECT().OpenBlob(gomock.Any(), testRef).Return(io.NopCloser(bytes.NewReader(pngHeader)), nil)

	gotInfo, rc, err := svc.Open(context.Background(), 1, testRef)
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, pngHeader, data)
	assert.Equal(t, info, gotInfo)
}

func TestBlobService_Open_NotOwner(t *testing.T) {
	svc, _, owners := newTestBlobService(t)

	owners.EXPECT().GetBlob(gomock.Any(), int64(2), testRef).Return(models.BlobInfo{}, store.ErrBlobNotFound)

	_, _, err := svc.Open(context.Background(), 2, testRef)
	assert.ErrorIs(t, err, store.ErrBlobNotFound)
}

func TestBlobService_Open_InvalidRef(t *testing.T) {
	svc, _, _ := newTestBlobService(t)

	_, _, err := svc.Open(context.Background(), 1, "../etc/passwd")
	assert.ErrorIs(t, err, store.ErrInvalidBlobRef)
}
