// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"errors"
	"testing"

	"github.com/MKhiriev/moya-list/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_Credentials(t *testing.T) {
	v := NewRequestValidator()

	err := v.Validate(context.Background(), models.Credentials{Login: "ann", Password: "secret1"})
	assert.NoError(t, err)

	err = v.Validate(context.Background(), models.Credentials{Login: "", Password: "123"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "is required", verr.Fields["login"])
	assert.Equal(t, "must have at least 6", verr.Fields["password"])
}

func TestValidate_Item(t *testing.T) {
	v := NewRequestValidator()

	tests := []struct {
		name   string
		item   models.Item
		field  string
		wantOK bool
	}{
		{"minimal", models.Item{Text: "q"}, "", true},
		{"client id", models.Item{ID: "0190b7a4-8d6e-7f00-8000-000000000000", Text: "q"}, "", true},
		{"empty text", models.Item{}, "text", false},
		{"bad id", models.Item{ID: "nope", Text: "q"}, "id", false},
		{"bad status", models.Item{Text: "q", Status: "done"}, "status", false},
		{"five images", models.Item{Text: "q", Images: []models.ImageRef{"a", "b", "c", "d", "e"}}, "images", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(context.Background(), tt.item)
			if tt.wantOK {
				assert.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "got %v", err)
			assert.Contains(t, verr.Fields, tt.field)
		})
	}
}

func TestValidate_Partial(t *testing.T) {
	v := NewRequestValidator()

	// only Password is checked, the empty login is ignored
	err := v.Validate(context.Background(), models.Credentials{Password: "longenough"}, "Password")
	assert.NoError(t, err)
}

func TestValidate_SettingsPatch(t *testing.T) {
	v := NewRequestValidator()
	bad := models.TagSortOrder("random")

	err := v.Validate(context.Background(), models.SettingsPatch{TagSortOrder: &bad})
	assert.ErrorIs(t, err, ErrValidation)

	good := models.SortManual
	assert.NoError(t, v.Validate(context.Background(), models.SettingsPatch{TagSortOrder: &good}))
}

func TestValidationError_Message(t *testing.T) {
	err := &ValidationError{Fields: map[string]string{"b": "is invalid", "a": "is required"}}
	assert.Equal(t, "validation failed: a is required; b is invalid", err.Error())
}
