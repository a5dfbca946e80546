// Copyright 2025 DataShelf
// SPDX-License-Identifier: Apache-2.0

package base

import "time"

// ClassificationType is a declared data-quality tag.
type ClassificationType string

const (
	ClassificationVerified   ClassificationType = "Verified"
	ClassificationUnverified ClassificationType = "Unverified"
)

// Classification pairs a data-quality tag with the fraction of records it
// covers. A provider decides per source how its data is classified; the demo
// sources declare everything verified.
type Classification struct {
	Type   ClassificationType `json:"type"`
	Weight float64            `json:"weight"`
}

// VerifiedClassifications is the default declaration used by the demo
// repositories: all data fully verified. Each repository carries its own
// classification slice so a real provider can declare differentiated levels.
func VerifiedClassifications() []Classification {
	return []Classification{{Type: ClassificationVerified, Weight: 1}}
}

// DataSummary aggregates a filtered record set: the covered date range, the
// number of assets (e.g. authors) and the number of data records (e.g. books)
// behind them.
type DataSummary struct {
	EarliestDate    time.Time        `json:"earliestDate"`
	LatestDate      time.Time        `json:"latestDate"`
	TotalAssetCount int              `json:"totalAssetCount"`
	TotalDataCount  int              `json:"totalDataCount"`
	Classifications []Classification `json:"classifications"`
}

// FilterOptionValue is one facet value of a filterable column, with coverage
// stats over the filtered set.
type FilterOptionValue struct {
	Key             string           `json:"key"`
	DisplayValue    string           `json:"displayValue"`
	DataFrom        time.Time        `json:"dataFrom"`
	DataTo          time.Time        `json:"dataTo"`
	Count           int              `json:"count"`
	Classifications []Classification `json:"classifications"`
}

// FilterOption lists the facet values of one filterable column.
type FilterOption struct {
	ColumnName string              `json:"columnName"`
	Values     []FilterOptionValue `json:"values"`
}

// Pagination describes the page window of a response. The connector currently
// returns every result as a single page; see service.paginateAll.
type Pagination struct {
	PageNumber int `json:"pageNumber"`
	PageSize   int `json:"pageSize"`
	TotalPages int `json:"totalPages"`
	TotalCount int `json:"totalCount"`
}
