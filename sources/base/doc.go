// Copyright 2025 DataShelf
// SPDX-License-Identifier: Apache-2.0

// Package base defines the contract that every DataShelf data source
// implements, together with the shared query model: connection settings,
// query filters, row values, and the response DTOs for data summaries and
// filtering options.
//
// A data source ("repository") wraps one internal table of the provider's
// backing store. It declares which columns it can project, which single
// column it accepts as a filter target, and which filter type that column
// supports. Filters that a repository does not recognize are ignored without
// error; this is a deliberate policy so that one filter list can be sent to
// any source.
package base
