// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"testing"

	"github.com/MKhiriev/moya-list/models"
	"github.com/stretchr/testify/assert"
)

func TestAppInfoService_GetAppVersion(t *testing.T) {
	info := models.NewAppBuildInfo("1.2.0", "", "abc123")

	svc := NewAppInfoService(info)

	got := svc.GetAppVersion(context.Background())
	assert.Equal(t, "1.2.0", got.Version)
	assert.Equal(t, "N/A", got.Date)
	assert.Equal(t, "abc123", got.Commit)
}
