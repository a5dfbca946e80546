// Copyright 2025 DataShelf
// SPDX-License-Identifier: Apache-2.0

// Package books exposes the Books table as a queryable data source. Each book
// is both the asset and the data record, so summary asset and data counts are
// always equal. The Author column is a display string joined in from the
// Authors table.
package books

import (
	"context"
	"fmt"
	"time"

	"datashelf/platform/sources/base"
	"datashelf/platform/store"
)

// SourceID is the identifier this source registers under.
const SourceID = "Books"

// Column names, in canonical order.
const (
	ColumnTitle         = "Title"
	ColumnPublishedDate = "PublishedDate"
	ColumnAuthor        = "Author"
)

const authorDisplayExpr = `"Authors"."FirstName" || ' ' || "Authors"."LastName"`

// Repository serves book data from the backing store.
type Repository struct {
	store           *store.Store
	descriptor      base.Descriptor
	classifications []base.Classification
}

// NewRepository creates the books data source. Records carry the default
// verified classification.
func NewRepository(s *store.Store) *Repository {
	return &Repository{
		store: s,
		descriptor: base.Descriptor{
			SourceID:     SourceID,
			ColumnNames:  []string{ColumnTitle, ColumnPublishedDate, ColumnAuthor},
			FilterColumn: ColumnTitle,
			FilterType:   base.FilterTypeStringContains,
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

// Data returns book rows projected over the resolved columns. The Authors
// join is only added when the Author column is part of the projection.
func (r *Repository) Data(
	ctx context.Context,
	requiredColumns []string,
	filters []base.QueryFilter,
) ([]base.Row, error) {
	columns := r.descriptor.ResolveColumns(requiredColumns)
	if len(columns) == 0 {
		return []base.Row{}, nil
	}

	recognized, err := r.recognizedFilters(filters)
	if err != nil {
		return nil, err
	}

	builder := store.Select(store.BooksTable)
	for _, column := range columns {
		switch column {
		case ColumnAuthor:
			builder.Join(store.AuthorsTable, "Books.AuthorId", "Authors.Id").
				ColumnExpr(authorDisplayExpr + ` AS "Author"`)
		default:
			builder.Columns("Books." + column)
		}
	}
	builder.OrderBy("Books.Id")
	applyFilters(builder, recognized)

	rows, err := r.store.Rows(ctx, builder)
	if err != nil {
		return nil, base.Internal("failed to query books", err)
	}

	results := make([]base.Row, 0, len(rows))
	for rowIndex, scanned := range rows {
		row := make(base.Row, 0, len(scanned))
		for i, value := range scanned {
			converted, err := r.convertColumn(columns[i], value)
			if err != nil {
				return nil, base.Internal(
					fmt.Sprintf("failed to convert book row %d", rowIndex), err)
			}
			row = append(row, converted)
		}
		results = append(results, row)
	}
	return results, nil
}

// Summary reports count and publish-date range over the filtered books. A
// book is its own asset, so both counts are equal.
func (r *Repository) Summary(
	ctx context.Context,
	filters []base.QueryFilter,
) (base.DataSummary, error) {
	recognized, err := r.recognizedFilters(filters)
	if err != nil {
		return base.DataSummary{}, err
	}

	builder := store.Select(store.BooksTable).
		ColumnExpr(`count("Id") AS "DataCount"`).
		ColumnExpr(`min("PublishedDate") AS "DataFrom"`).
		ColumnExpr(`max("PublishedDate") AS "DataTo"`)
	applyFilters(builder, recognized)

	stats, err := r.store.First(ctx, builder)
	if err != nil {
		return base.DataSummary{}, base.Internal("failed to aggregate books", err)
	}

	count, err := intFromScan(stats["DataCount"])
	if err != nil {
		return base.DataSummary{}, base.Internal("failed to read book count", err)
	}

	summary := base.DataSummary{
		TotalAssetCount: count,
		TotalDataCount:  count,
		Classifications: r.classifications,
	}
	if count > 0 {
		if summary.EarliestDate, err = dateFromScan(stats["DataFrom"]); err != nil {
			return base.DataSummary{}, base.Internal("failed to read earliest publish date", err)
		}
		if summary.LatestDate, err = dateFromScan(stats["DataTo"]); err != nil {
			return base.DataSummary{}, base.Internal("failed to read latest publish date", err)
		}
	}
	return summary, nil
}

// FilterOptions returns one facet value per book on the Title column. Each
// book covers exactly its own publish date, so count is 1 and the date range
// collapses to a single day. Returns no options when Title is excluded from
// the resolved column set.
func (r *Repository) FilterOptions(
	ctx context.Context,
	requiredColumns []string,
	filters []base.QueryFilter,
) ([]base.FilterOption, error) {
	columns := r.descriptor.ResolveColumns(requiredColumns)
	if !base.ContainsColumn(columns, ColumnTitle) {
		return []base.FilterOption{}, nil
	}

	recognized, err := r.recognizedFilters(filters)
	if err != nil {
		return nil, err
	}

	builder := store.Select(store.BooksTable).
		Columns("Title", "PublishedDate").
		OrderBy("Id")
	applyFilters(builder, recognized)

	rows, err := r.store.Rows(ctx, builder)
	if err != nil {
		return nil, base.Internal("failed to query book facets", err)
	}

	values := make([]base.FilterOptionValue, 0, len(rows))
	for _, row := range rows {
		title, _ := row[0].(string)
		published, err := dateFromScan(row[1])
		if err != nil {
			return nil, base.Internal("failed to read facet publish date", err)
		}
		values = append(values, base.FilterOptionValue{
			Key:             title,
			DisplayValue:    title,
			DataFrom:        published,
			DataTo:          published,
			Count:           1,
			Classifications: r.classifications,
		})
	}

	return []base.FilterOption{{ColumnName: ColumnTitle, Values: values}}, nil
}

// recognizedFilters narrows the filters to this source's Title/contains
// filter and rejects malformed ones. A contains filter carries exactly one
// value; anything else is a client error, reported before any query runs.
func (r *Repository) recognizedFilters(filters []base.QueryFilter) ([]base.QueryFilter, error) {
	recognized := r.descriptor.RecognizedFilters(filters)
	for _, filter := range recognized {
		if len(filter.Values) != 1 {
			return nil, base.BadRequest(fmt.Sprintf(
				"a %s filter requires exactly one value, got %d",
				filter.FilterType, len(filter.Values)))
		}
	}
	return recognized, nil
}

func (r *Repository) convertColumn(column string, value any) (base.Value, error) {
	if column == ColumnPublishedDate {
		published, err := dateFromScan(value)
		if err != nil {
			return base.Value{}, err
		}
		return base.TimeValue(published), nil
	}
	return base.ValueFromScan(value)
}

func applyFilters(builder *store.SelectBuilder, filters []base.QueryFilter) {
	for _, filter := range filters {
		builder.WhereLike("Books.Title", "%"+filter.Values[0]+"%")
	}
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
