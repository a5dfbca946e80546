// Copyright 2025 DataShelf
// SPDX-License-Identifier: Apache-2.0

// Package store owns the connector's backing store: one process-scoped SQL
// connection pool opened at startup, shared read-only across requests, and
// closed at shutdown.
//
// Data sources never write SQL strings by hand; they go through SelectBuilder,
// a small query-building capability covering exactly what the sources need:
// column projection, joins, group-by, raw aggregate expressions, WHERE IN and
// WHERE LIKE conditions, and scalar/first/list execution.
//
// Two drivers are supported: sqlite (modernc.org/sqlite, the default; the
// demo runs against a shared in-memory database) and postgres (lib/pq).
package store
