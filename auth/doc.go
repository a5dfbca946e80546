// Copyright 2025 DataShelf
// SPDX-License-Identifier: Apache-2.0

// Package auth validates incoming connection settings: a static API key and a
// signed tenant access token. Validation reports every failing setting with a
// reason, rather than stopping at the first problem, so callers can surface a
// complete diagnosis to the connecting tenant.
package auth
