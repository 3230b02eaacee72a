// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Session is the signed-in state the client keeps between runs.
type Session struct {
	Token    string   `json:"token"`
	Identity Identity `json:"identity"`
}
