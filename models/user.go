// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"strconv"
	"time"
)

// User is a server-side account.
type User struct {
	// UserID is the internal identifier; it becomes the token subject.
	UserID int64 `json:"-"`

	// Login is unique across all users.
	Login string `json:"login"`

	// Name is the optional display name.
	Name string `json:"name,omitempty"`

	// PasswordHash is the bcrypt hash of the password. Never serialized.
	PasswordHash string `json:"-"`

	// CreatedAt is assigned by the database.
	CreatedAt time.Time `json:"created_at"`
}

// Identity returns the public identity of the user.
func (u User) Identity() Identity {
	return Identity{
		ID:          strconv.FormatInt(u.UserID, 10),
		DisplayName: u.Name,
		Email:       u.Login,
	}
}

// Credentials carries what a user types to sign in or register.
type Credentials struct {
	Login    string `json:"login" validate:"required,max=254"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Name     string `json:"name,omitempty" validate:"max=100"`
}

// Identity is the authenticated principal as seen by the client. A nil
// *Identity means guest.
type Identity struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName,omitempty"`
	PhotoURL    string `json:"photoURL,omitempty"`
	Email       string `json:"email,omitempty"`
}

// Label returns the friendliest non-empty name of the identity.
func (i Identity) Label() string {
	switch {
	case i.DisplayName != "":
		return i.DisplayName
	case i.Email != "":
		return i.Email
	default:
		return i.ID
	}
}
