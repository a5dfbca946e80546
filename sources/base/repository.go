// Copyright 2025 DataShelf
// SPDX-License-Identifier: Apache-2.0

package base

import (
	"context"
	"strings"
)

// Repository is the capability surface every data source implements.
type Repository interface {
	// DataSource returns the stable identifier used for resolution.
	// Matching is case-insensitive.
	DataSource() string

	// Columns filters the repository's declared column set down to the
	// requested subset. An empty or nil requiredColumns returns the full
	// set. Order is always the repository's canonical declared order.
	Columns(requiredColumns []string) []string

	// Data returns rows projected over Columns(requiredColumns), with the
	// recognized filters applied.
	Data(ctx context.Context, requiredColumns []string, filters []QueryFilter) ([]Row, error)

	// Summary computes count and date-range aggregates over the filtered
	// record set.
	Summary(ctx context.Context, filters []QueryFilter) (DataSummary, error)

	// FilterOptions returns per-facet coverage stats for the repository's
	// filterable column, or an empty slice when that column is not in the
	// resolved column set.
	FilterOptions(ctx context.Context, requiredColumns []string, filters []QueryFilter) ([]FilterOption, error)
}

// Descriptor declares a repository's capabilities: its source identifier, the
// columns it can project, and the one column/filter-type pair it accepts as a
// filter target.
type Descriptor struct {
	SourceID     string
	ColumnNames  []string
	FilterColumn string
	FilterType   FilterType
}

// ResolveColumns filters the declared column set down to required, preserving
// declared order. Containment is case-insensitive. Nil or empty required
// returns the full declared set.
func (d Descriptor) ResolveColumns(required []string) []string {
	if len(required) == 0 {
		return append([]string(nil), d.ColumnNames...)
	}

	resolved := make([]string, 0, len(d.ColumnNames))
	for _, column := range d.ColumnNames {
		for _, req := range required {
			if strings.EqualFold(column, req) {
				resolved = append(resolved, column)
				break
			}
		}
	}
	return resolved
}

// RecognizedFilters returns the filters targeting the descriptor's filterable
// column with its supported filter type. Everything else is dropped without
// error; the input slice is never mutated.
func (d Descriptor) RecognizedFilters(filters []QueryFilter) []QueryFilter {
	var recognized []QueryFilter
	for _, filter := range filters {
		if filter.Matches(d.FilterColumn, d.FilterType) {
			recognized = append(recognized, filter)
		}
	}
	return recognized
}

// ContainsColumn reports whether column is in the given resolved set,
// case-insensitively.
func ContainsColumn(columns []string, column string) bool {
	for _, c := range columns {
		if strings.EqualFold(c, column) {
			return true
		}
	}
	return false
}
