// Copyright 2025 DataShelf
// SPDX-License-Identifier: Apache-2.0

// Package authors exposes the Authors table as a queryable data source. An
// author is the asset; the data records behind it are the author's books, so
// summary data counts and date ranges are computed over the joined Books
// table.
package authors

import (
	"context"
	"fmt"
	"time"

	"datashelf/platform/sources/base"
	"datashelf/platform/store"
)

// SourceID is the identifier this source registers under.
const SourceID = "Authors"

// Column names, in canonical order.
const (
	ColumnFirstName = "FirstName"
	ColumnLastName  = "LastName"
)

// Repository serves author data from the backing store.
type Repository struct {
	store           *store.Store
	descriptor      base.Descriptor
	classifications []base.Classification
}

// NewRepository creates the authors data source. Records carry the default
// verified classification.
func NewRepository(s *store.Store) *Repository {
	return &Repository{
		store: s,
		descriptor: base.Descriptor{
			SourceID:     SourceID,
			ColumnNames:  []string{ColumnFirstName, ColumnLastName},
			FilterColumn: ColumnLastName,
			FilterType:   base.FilterTypeAnyInList,
		},
		classifications: base.VerifiedClassifications(),
	}
}

// WithClassifications overrides the classification reported for this source's
// records.
func (r *Repository) WithClassifications(classifications []base.Classification) *Repository {
	r.classifications = classifications
	return r
}

func (r *Repository) DataSource() string {
	return r.descriptor.SourceID
}

func (r *Repository) Columns(requiredColumns []string) []string {
	return r.descriptor.ResolveColumns(requiredColumns)
}

// Data returns author rows projected over the resolved columns. Unrecognized
// filters are ignored.
func (r *Repository) Data(
	ctx context.Context,
	requiredColumns []string,
	filters []base.QueryFilter,
) ([]base.Row, error) {
	columns := r.descriptor.ResolveColumns(requiredColumns)
	if len(columns) == 0 {
		return []base.Row{}, nil
	}

	builder := store.Select(store.AuthorsTable).Columns(columns...).OrderBy("Id")
	applyFilters(builder, ColumnLastName, r.descriptor.RecognizedFilters(filters))

	rows, err := r.store.Rows(ctx, builder)
	if err != nil {
		return nil, base.Internal("failed to query authors", err)
	}

	results := make([]base.Row, 0, len(rows))
	for _, scanned := range rows {
		row := make(base.Row, 0, len(scanned))
		for _, value := range scanned {
			converted, err := base.ValueFromScan(value)
			if err != nil {
				return nil, base.Internal("failed to convert author row", err)
			}
			row = append(row, converted)
		}
		results = append(results, row)
	}
	return results, nil
}

// Summary reports the filtered author count as the asset count, and
// count/min/max of the authors' book publish dates as the data aggregates.
func (r *Repository) Summary(
	ctx context.Context,
	filters []base.QueryFilter,
) (base.DataSummary, error) {
	recognized := r.descriptor.RecognizedFilters(filters)

	authorCount := store.Select(store.AuthorsTable).ColumnExpr("count(*)")
	applyFilters(authorCount, ColumnLastName, recognized)

	totalAssets, err := r.store.ScalarInt(ctx, authorCount)
	if err != nil {
		return base.DataSummary{}, base.Internal("failed to count authors", err)
	}

	bookStats := store.Select(store.BooksTable).
		Join(store.AuthorsTable, "Books.AuthorId", "Authors.Id").
		ColumnExpr(`count("Books"."Id") AS "DataCount"`).
		ColumnExpr(`min("Books"."PublishedDate") AS "DataFrom"`).
		ColumnExpr(`max("Books"."PublishedDate") AS "DataTo"`)
	applyFilters(bookStats, "Authors.LastName", recognized)

	stats, err := r.store.First(ctx, bookStats)
	if err != nil {
		return base.DataSummary{}, base.Internal("failed to aggregate author books", err)
	}

	totalData, err := intFromScan(stats["DataCount"])
	if err != nil {
		return base.DataSummary{}, base.Internal("failed to read book count", err)
	}

	summary := base.DataSummary{
		TotalAssetCount: totalAssets,
		TotalDataCount:  totalData,
		Classifications: r.classifications,
	}
	if totalData > 0 {
		if summary.EarliestDate, err = dateFromScan(stats["DataFrom"]); err != nil {
			return base.DataSummary{}, base.Internal("failed to read earliest publish date", err)
		}
		if summary.LatestDate, err = dateFromScan(stats["DataTo"]); err != nil {
			return base.DataSummary{}, base.Internal("failed to read latest publish date", err)
		}
	}
	return summary, nil
}

// FilterOptions returns one facet value per author on the LastName column:
// the author's book count and publish-date range. Returns no options when
// LastName is excluded from the resolved column set.
func (r *Repository) FilterOptions(
	ctx context.Context,
	requiredColumns []string,
	filters []base.QueryFilter,
) ([]base.FilterOption, error) {
	columns := r.descriptor.ResolveColumns(requiredColumns)
	if !base.ContainsColumn(columns, ColumnLastName) {
		return []base.FilterOption{}, nil
	}

	builder := store.Select(store.BooksTable).
		Join(store.AuthorsTable, "Books.AuthorId", "Authors.Id").
		ColumnExpr(`"Authors"."LastName" AS "Key"`).
		ColumnExpr(`"Authors"."FirstName" || ' ' || "Authors"."LastName" AS "DisplayValue"`).
		ColumnExpr(`min("Books"."PublishedDate") AS "DataFrom"`).
		ColumnExpr(`max("Books"."PublishedDate") AS "DataTo"`).
		ColumnExpr(`count("Books"."Id") AS "FacetCount"`).
		GroupBy("Authors.Id").
		OrderBy("Authors.Id")
	applyFilters(builder, "Authors.LastName", r.descriptor.RecognizedFilters(filters))

	facets, err := r.store.Maps(ctx, builder)
	if err != nil {
		return nil, base.Internal("failed to query author facets", err)
	}

	values := make([]base.FilterOptionValue, 0, len(facets))
	for _, facet := range facets {
		value, err := facetValue(facet, r.classifications)
		if err != nil {
			return nil, err
		}
		values = append(values, value)
	}

	return []base.FilterOption{{ColumnName: ColumnLastName, Values: values}}, nil
}

func applyFilters(builder *store.SelectBuilder, column string, filters []base.QueryFilter) {
	for _, filter := range filters {
		builder.WhereIn(column, filter.Values)
	}
}

func facetValue(
	facet map[string]any,
	classifications []base.Classification,
) (base.FilterOptionValue, error) {
	key, _ := facet["Key"].(string)
	display, _ := facet["DisplayValue"].(string)

	count, err := intFromScan(facet["FacetCount"])
	if err != nil {
		return base.FilterOptionValue{}, base.Internal("failed to read facet count", err)
	}

	value := base.FilterOptionValue{
		Key:             key,
		DisplayValue:    display,
		Count:           count,
		Classifications: classifications,
	}
	if count > 0 {
		if value.DataFrom, err = dateFromScan(facet["DataFrom"]); err != nil {
			return base.FilterOptionValue{}, base.Internal("failed to read facet date range", err)
		}
		if value.DataTo, err = dateFromScan(facet["DataTo"]); err != nil {
			return base.FilterOptionValue{}, base.Internal("failed to read facet date range", err)
		}
	}
	return value, nil
}

func intFromScan(value any) (int, error) {
	switch v := value.(type) {
	case int64:
		return int(v), nil
	case int:
		return v, nil
	default:
		return 0, fmt.Errorf("expected integer, got %T", value)
	}
}

func dateFromScan(value any) (time.Time, error) {
	raw, ok := value.(string)
	if !ok {
		return time.Time{}, fmt.Errorf("expected date string, got %T", value)
	}
	date, err := time.Parse(store.DateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("stored date '%s' is not in layout %s: %w", raw, store.DateLayout, err)
	}
	return date, nil
}
