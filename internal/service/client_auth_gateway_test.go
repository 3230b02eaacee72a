// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/moya-list/internal/adapter"
	"github.com/MKhiriev/moya-list/internal/app"
	"github.com/MKhiriev/moya-list/internal/logger"
	"github.com/MKhiriev/moya-list/internal/mock"
	"github.com/MKhiriev/moya-list/internal/store"
	"github.com/MKhiriev/moya-list/internal/utils"
	"github.com/MKhiriev/moya-list/models"
)

type gatewayFixture struct {
	gateway *authGateway
	adapter *mock.MockServerAdapter
	local   store.LocalPersistence
	seen    []*models.Identity
}

func newGatewayFixture(t *testing.T) *gatewayFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	a := mock.NewMockServerAdapter(ctrl)
	local := store.NewLocalPersistence(newMemoryKV(), logger.Nop())

	f := &gatewayFixture{
		gateway: NewAuthGateway(a, local, logger.Nop()).(*authGateway),
		adapter: a,
		local:   local,
	}
	f.gateway.OnIdentityChange(func(identity *models.Identity) {
		f.seen = append(f.seen, identity)
	})
	return f
}

func validToken(t *testing.T, d time.Duration) string {
	t.Helper()
	token, err := utils.GenerateJWTToken("moya-list", 1, d, "secret")
	require.NoError(t, err)
	return token.String()
}

var testIdentity = models.Identity{ID: "1", Email: "user@example.com"}

// ── SignIn / SignOut ─────────────────────────────────────────────────────────

func TestAuthGateway_SignIn_StoresSession(t *testing.T) {
	f := newGatewayFixture(t)
	creds := models.Credentials{Login: "user@example.com", Password: "secret1"}

	f.adapter.EXPECT().Login(gomock.Any(), creds).Return(testIdentity, nil)
	f.adapter.EXPECT().Token().Return("tok")

	got, err := f.gateway.SignIn(context.Background(), creds)
	require.NoError(t, err)
	assert.Equal(t, testIdentity, got)

	session, ok, err := f.local.LoadSession(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "tok", session.Token)
	assert.Equal(t, testIdentity, session.Identity)

	require.Len(t, f.seen, 1)
	assert.Equal(t, testIdentity, *f.seen[0])
	assert.Equal(t, testIdentity, *f.gateway.Current())
}

func TestAuthGateway_SignIn_WrongPassword(t *testing.T) {
	f := newGatewayFixture(t)

	f.adapter.EXPECT().Login(gomock.Any(), gomock.Any()).
		Return(models.Identity{}, fmt.Errorf("%w: %s", adapter.ErrUnauthorized, app.MsgInvalidLoginPassword))

	_, err := f.gateway.SignIn(context.Background(), models.Credentials{Login: "a", Password: "b"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Empty(t, f.seen)
	assert.Nil(t, f.gateway.Current())
}

func TestAuthGateway_Register_LoginTaken(t *testing.T) {
	f := newGatewayFixture(t)

	f.adapter.EXPECT().Register(gomock.Any(), gomock.Any()).
		Return(models.Identity{}, fmt.Errorf("%w: %s", adapter.ErrConflict, app.MsgLoginAlreadyExists))

	_, err := f.gateway.Register(context.Background(), models.Credentials{Login: "a", Password: "b"})
	assert.ErrorIs(t, err, ErrLoginAlreadyExists)
}

func TestAuthGateway_SignOut(t *testing.T) {
	f := newGatewayFixture(t)
	require.NoError(t, f.local.SaveSession(context.Background(), models.Session{Token: "tok", Identity: testIdentity}))

	f.adapter.EXPECT().SetToken("")

	require.NoError(t, f.gateway.SignOut(context.Background()))

	_, ok, err := f.local.LoadSession(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
	require.Len(t, f.seen, 1)
	assert.Nil(t, f.seen[0])
}

func TestAuthGateway_OnIdentityChange_Cancel(t *testing.T) {
	f := newGatewayFixture(t)

	calls := 0
	cancel := f.gateway.OnIdentityChange(func(*models.Identity) { calls++ })
	cancel()

	f.adapter.EXPECT().SetToken("")
	require.NoError(t, f.gateway.SignOut(context.Background()))
	assert.Zero(t, calls)
}

// ── Restore ──────────────────────────────────────────────────────────────────

func TestAuthGateway_Restore_NoSession(t *testing.T) {
	f := newGatewayFixture(t)

	require.NoError(t, f.gateway.Restore(context.Background()))
	require.Len(t, f.seen, 1)
	assert.Nil(t, f.seen[0])
}

func TestAuthGateway_Restore_ValidSession(t *testing.T) {
	f := newGatewayFixture(t)
	token := validToken(t, time.Hour)
	require.NoError(t, f.local.SaveSession(context.Background(), models.Session{Token: token, Identity: models.Identity{ID: "1"}}))

	f.adapter.EXPECT().SetToken(token)
	f.adapter.EXPECT().Me(gomock.Any()).Return(testIdentity, nil)

	require.NoError(t, f.gateway.Restore(context.Background()))
	require.Len(t, f.seen, 1)
	assert.Equal(t, testIdentity, *f.seen[0])

	session, _, err := f.local.LoadSession(context.Background())
	require.NoError(t, err)
	assert.Equal(t, testIdentity, session.Identity)
}

func TestAuthGateway_Restore_ExpiredToken(t *testing.T) {
	f := newGatewayFixture(t)
	token := validToken(t, time.Hour)
	require.NoError(t, f.local.SaveSession(context.Background(), models.Session{Token: token, Identity: testIdentity}))
	f.gateway.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	require.NoError(t, f.gateway.Restore(context.Background()))
	require.Len(t, f.seen, 1)
	assert.Nil(t, f.seen[0])

	_, ok, err := f.local.LoadSession(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAuthGateway_Restore_Rejected(t *testing.T) {
	f := newGatewayFixture(t)
	token := validToken(t, time.Hour)
	require.NoError(t, f.local.SaveSession(context.Background(), models.Session{Token: token, Identity: testIdentity}))

	f.adapter.EXPECT().SetToken(token)
	f.adapter.EXPECT().Me(gomock.Any()).Return(models.Identity{}, adapter.ErrUnauthorized)
	f.adapter.EXPECT().SetToken("")

	require.NoError(t, f.gateway.Restore(context.Background()))
	require.Len(t, f.seen, 1)
	assert.Nil(t, f.seen[0])
}

func TestAuthGateway_Restore_OfflineKeepsIdentity(t *testing.T) {
	f := newGatewayFixture(t)
	token := validToken(t, time.Hour)
	require.NoError(t, f.local.SaveSession(context.Background(), models.Session{Token: token, Identity: testIdentity}))

	f.adapter.EXPECT().SetToken(token)
	f.adapter.EXPECT().Me(gomock.Any()).Return(models.Identity{}, adapter.ErrServiceUnavailable)

	require.NoError(t, f.gateway.Restore(context.Background()))
	require.Len(t, f.seen, 1)
	assert.Equal(t, testIdentity, *f.seen[0])
}
