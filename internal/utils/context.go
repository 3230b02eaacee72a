// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package utils holds small helpers shared by the server and the client:
// typed context keys, JWT issue and verification, JSON response writing,
// the resty client constructor and item id generation.
package utils

import (
	"context"
)

// contextKey is a private type for context keys, so string keys of other
// packages can never collide with ours.
type contextKey string

func (c contextKey) String() string {
	return string(c)
}

// UserIDCtxKey carries the authenticated user id (int64) set by the auth
// middleware.
var UserIDCtxKey = contextKey("userID")

// GetUserIDFromContext returns the user id stored under UserIDCtxKey. ok is
// false when the value is missing or not an int64.
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(int64)
	return userID, ok
}

// WithUserID returns a copy of ctx carrying userID.
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, UserIDCtxKey, userID)
}
