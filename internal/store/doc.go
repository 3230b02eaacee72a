// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package store holds the persistence layer of both binaries.
//
// The server side is PostgreSQL (users, items, settings, blob ownership) plus
// a content-addressed blob directory. The client side is a single SQLite
// key-value table wrapped by [LocalPersistence], which plays the role of
// browser local storage.
package store
