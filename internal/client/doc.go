// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the interactive client application runtime.
//
// It runs the terminal UI in the foreground and the capture bridge in the
// background, and releases the controller and local storage on exit.
package client
