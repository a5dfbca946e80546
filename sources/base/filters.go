// Copyright 2025 DataShelf
// SPDX-License-Identifier: Apache-2.0

package base

import (
	"strings"

	"hermannm.dev/enumnames"
)

// FilterType identifies how a QueryFilter's values are matched against a
// column. Each repository supports exactly one filter type, on exactly one
// column; filters with any other type or column are ignored.
type FilterType uint8

const (
	// FilterTypeAnyInList matches rows whose column value equals any of the
	// filter's values (set membership).
	FilterTypeAnyInList FilterType = iota + 1
	// FilterTypeStringContains matches rows whose column value contains the
	// filter's single value as a substring. Supplying more than one value is
	// a client error.
	FilterTypeStringContains
)

var filterTypeNames = enumnames.NewMap(map[FilterType]string{
	FilterTypeAnyInList:      "AnyInList",
	FilterTypeStringContains: "StringContains",
})

func (filterType FilterType) IsValid() bool {
	return filterTypeNames.ContainsEnumValue(filterType)
}

func (filterType FilterType) String() string {
	return filterTypeNames.GetNameOrFallback(filterType, "[INVALID FILTER TYPE]")
}

func (filterType FilterType) MarshalJSON() ([]byte, error) {
	return filterTypeNames.MarshalToNameJSON(filterType)
}

func (filterType *FilterType) UnmarshalJSON(bytes []byte) error {
	return filterTypeNames.UnmarshalFromNameJSON(bytes, filterType)
}

// QueryFilter is one filter condition from a query or discovery request.
// Its semantics are interpreted by the repository that recognizes ColumnName;
// everyone else leaves it alone.
type QueryFilter struct {
	ColumnName string     `json:"columnName"`
	FilterType FilterType `json:"filterType"`
	Values     []string   `json:"values"`
}

// Matches reports whether the filter targets the given column with the given
// filter type. Column comparison is case-insensitive.
func (f QueryFilter) Matches(column string, filterType FilterType) bool {
	return strings.EqualFold(f.ColumnName, column) && f.FilterType == filterType
}
