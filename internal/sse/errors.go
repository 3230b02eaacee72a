// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package sse

import "errors"

// ErrManagerClosed is returned by Subscribe after Shutdown.
var ErrManagerClosed = errors.New("sse manager is closed")
