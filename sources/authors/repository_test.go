// Copyright 2025 DataShelf
// SPDX-License-Identifier: Apache-2.0

package authors

import (
	"context"
	"fmt"
	"reflect"
	"regexp"
	"sync/atomic"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"

	"datashelf/platform/sources/base"
	"datashelf/platform/store"
)

var testDBCounter atomic.Int64

func newTestStore(t *testing.T) *store.Store {
	t.Helper()

	ctx := context.Background()
	dsn := fmt.Sprintf("file:authorstest%d?mode=memory&cache=shared", testDBCounter.Add(1))
	s, err := store.Open(ctx, store.Config{Driver: store.DriverSQLite, DSN: dsn})
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })

	if err := s.EnsureSchema(ctx); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}
	if err := s.SeedDemoData(ctx); err != nil {
		t.Fatalf("Failed to seed demo data: %v", err)
	}
	return s
}

func date(t *testing.T, value string) time.Time {
	t.Helper()

	parsed, err := time.Parse(store.DateLayout, value)
	if err != nil {
		t.Fatalf("Bad test date %q: %v", value, err)
	}
	return parsed
}

func rowStrings(row base.Row) []string {
	values := make([]string, len(row))
	for i, value := range row {
		values[i] = value.Str
	}
	return values
}

func TestDataSource(t *testing.T) {
	repo := NewRepository(newTestStore(t))

	if repo.DataSource() != "Authors" {
		t.Errorf("Expected data source 'Authors', got %q", repo.DataSource())
	}
}

func TestColumns(t *testing.T) {
	repo := NewRepository(newTestStore(t))

	tests := []struct {
		name     string
		required []string
		expected []string
	}{
		{name: "nil returns all", required: nil, expected: []string{"FirstName", "LastName"}},
		{name: "empty returns all", required: []string{}, expected: []string{"FirstName", "LastName"}},
		{name: "case-insensitive subset", required: []string{"lastname"}, expected: []string{"LastName"}},
		{
			name:     "canonical order regardless of request order",
			required: []string{"LastName", "FirstName"},
			expected: []string{"FirstName", "LastName"},
		},
		{name: "unknown columns dropped", required: []string{"LastName", "Age"}, expected: []string{"LastName"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := repo.Columns(tt.required); !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Expected columns %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestDataReturnsAllAuthors(t *testing.T) {
	repo := NewRepository(newTestStore(t))

	rows, err := repo.Data(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("Data failed: %v", err)
	}

	if len(rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(rows))
	}
	if got := rowStrings(rows[0]); !reflect.DeepEqual(got, []string{"Richard", "Dawkins"}) {
		t.Errorf("Expected [Richard Dawkins], got %v", got)
	}
	if got := rowStrings(rows[1]); !reflect.DeepEqual(got, []string{"Stephen", "Hawking"}) {
		t.Errorf("Expected [Stephen Hawking], got %v", got)
	}
}

func TestDataFiltersByLastName(t *testing.T) {
	repo := NewRepository(newTestStore(t))

	rows, err := repo.Data(context.Background(), nil, []base.QueryFilter{{
		ColumnName: "LastName",
		FilterType: base.FilterTypeAnyInList,
		Values:     []string{"Hawking"},
	}})
	if err != nil {
		t.Fatalf("Data failed: %v", err)
	}

	if len(rows) != 1 {
		t.Fatalf("Expected 1 row, got %d", len(rows))
	}
	if got := rowStrings(rows[0]); !reflect.DeepEqual(got, []string{"Stephen", "Hawking"}) {
		t.Errorf("Expected [Stephen Hawking], got %v", got)
	}
}

func TestDataIgnoresUnrecognizedFilters(t *testing.T) {
	repo := NewRepository(newTestStore(t))

	// Wrong column and wrong filter type both fall outside this source's
	// single filterable column, so neither restricts the result.
	rows, err := repo.Data(context.Background(), nil, []base.QueryFilter{
		{ColumnName: "FirstName", FilterType: base.FilterTypeAnyInList, Values: []string{"Richard"}},
		{ColumnName: "LastName", FilterType: base.FilterTypeStringContains, Values: []string{"Daw"}},
	})
	if err != nil {
		t.Fatalf("Data failed: %v", err)
	}

	if len(rows) != 2 {
		t.Errorf("Expected 2 rows, got %d", len(rows))
	}
}

func TestDataProjectsRequestedColumns(t *testing.T) {
	repo := NewRepository(newTestStore(t))

	rows, err := repo.Data(context.Background(), []string{"LastName"}, nil)
	if err != nil {
		t.Fatalf("Data failed: %v", err)
	}

	if len(rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(rows))
	}
	if len(rows[0]) != 1 || rows[0][0].Str != "Dawkins" {
		t.Errorf("Expected single-column row [Dawkins], got %v", rows[0])
	}
}

func TestSummary(t *testing.T) {
	repo := NewRepository(newTestStore(t))

	summary, err := repo.Summary(context.Background(), nil)
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}

	if summary.TotalAssetCount != 2 {
		t.Errorf("Expected 2 assets, got %d", summary.TotalAssetCount)
	}
	if summary.TotalDataCount != 6 {
		t.Errorf("Expected 6 data records, got %d", summary.TotalDataCount)
	}
	if !summary.EarliestDate.Equal(date(t, "1985-03-01")) {
		t.Errorf("Expected earliest date 1985-03-01, got %v", summary.EarliestDate)
	}
	if !summary.LatestDate.Equal(date(t, "2009-03-01")) {
		t.Errorf("Expected latest date 2009-03-01, got %v", summary.LatestDate)
	}
	expectedClassifications := []base.Classification{{Type: base.ClassificationVerified, Weight: 1}}
	if !reflect.DeepEqual(summary.Classifications, expectedClassifications) {
		t.Errorf("Expected verified classification, got %v", summary.Classifications)
	}
}

func TestSummaryFiltered(t *testing.T) {
	repo := NewRepository(newTestStore(t))

	summary, err := repo.Summary(context.Background(), []base.QueryFilter{{
		ColumnName: "LastName",
		FilterType: base.FilterTypeAnyInList,
		Values:     []string{"Hawking"},
	}})
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}

	if summary.TotalAssetCount != 1 {
		t.Errorf("Expected 1 asset, got %d", summary.TotalAssetCount)
	}
	if summary.TotalDataCount != 3 {
		t.Errorf("Expected 3 data records, got %d", summary.TotalDataCount)
	}
	if !summary.EarliestDate.Equal(date(t, "1989-03-01")) {
		t.Errorf("Expected earliest date 1989-03-01, got %v", summary.EarliestDate)
	}
	if !summary.LatestDate.Equal(date(t, "2009-03-01")) {
		t.Errorf("Expected latest date 2009-03-01, got %v", summary.LatestDate)
	}
}

func TestSummaryEmptyMatch(t *testing.T) {
	repo := NewRepository(newTestStore(t))

	summary, err := repo.Summary(context.Background(), []base.QueryFilter{{
		ColumnName: "LastName",
		FilterType: base.FilterTypeAnyInList,
		Values:     []string{"Pratchett"},
	}})
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}

	if summary.TotalAssetCount != 0 || summary.TotalDataCount != 0 {
		t.Errorf("Expected zero counts, got assets=%d data=%d",
			summary.TotalAssetCount, summary.TotalDataCount)
	}
	if !summary.EarliestDate.IsZero() || !summary.LatestDate.IsZero() {
		t.Errorf("Expected zero dates for empty match, got %v / %v",
			summary.EarliestDate, summary.LatestDate)
	}
}

func TestFilterOptions(t *testing.T) {
	repo := NewRepository(newTestStore(t))

	options, err := repo.FilterOptions(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("FilterOptions failed: %v", err)
	}

	if len(options) != 1 {
		t.Fatalf("Expected 1 filter option, got %d", len(options))
	}
	option := options[0]
	if option.ColumnName != "LastName" {
		t.Errorf("Expected column 'LastName', got %q", option.ColumnName)
	}
	if len(option.Values) != 2 {
		t.Fatalf("Expected 2 facet values, got %d", len(option.Values))
	}

	dawkins := option.Values[0]
	if dawkins.Key != "Dawkins" || dawkins.DisplayValue != "Richard Dawkins" {
		t.Errorf("Expected Dawkins facet, got %+v", dawkins)
	}
	if dawkins.Count != 3 {
		t.Errorf("Expected 3 books for Dawkins, got %d", dawkins.Count)
	}
	if !dawkins.DataFrom.Equal(date(t, "1985-03-01")) || !dawkins.DataTo.Equal(date(t, "2005-03-01")) {
		t.Errorf("Expected Dawkins range 1985-03-01..2005-03-01, got %v..%v",
			dawkins.DataFrom, dawkins.DataTo)
	}

	hawking := option.Values[1]
	if hawking.Key != "Hawking" || hawking.DisplayValue != "Stephen Hawking" {
		t.Errorf("Expected Hawking facet, got %+v", hawking)
	}
	if hawking.Count != 3 {
		t.Errorf("Expected 3 books for Hawking, got %d", hawking.Count)
	}
	if !hawking.DataFrom.Equal(date(t, "1989-03-01")) || !hawking.DataTo.Equal(date(t, "2009-03-01")) {
		t.Errorf("Expected Hawking range 1989-03-01..2009-03-01, got %v..%v",
			hawking.DataFrom, hawking.DataTo)
	}
}

func TestFilterOptionsRestrictedByFilter(t *testing.T) {
	repo := NewRepository(newTestStore(t))

	options, err := repo.FilterOptions(context.Background(), nil, []base.QueryFilter{{
		ColumnName: "LastName",
		FilterType: base.FilterTypeAnyInList,
		Values:     []string{"Dawkins"},
	}})
	if err != nil {
		t.Fatalf("FilterOptions failed: %v", err)
	}

	if len(options) != 1 || len(options[0].Values) != 1 {
		t.Fatalf("Expected a single Dawkins facet, got %+v", options)
	}
	if options[0].Values[0].Key != "Dawkins" {
		t.Errorf("Expected Dawkins facet, got %+v", options[0].Values[0])
	}
}

func TestFilterOptionsEmptyWhenFilterColumnExcluded(t *testing.T) {
	repo := NewRepository(newTestStore(t))

	options, err := repo.FilterOptions(context.Background(), []string{"FirstName"}, nil)
	if err != nil {
		t.Fatalf("FilterOptions failed: %v", err)
	}

	if len(options) != 0 {
		t.Errorf("Expected no filter options without LastName, got %+v", options)
	}
}

func TestDataQueryShape(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to create mock database: %v", err)
	}
	defer func() { _ = db.Close() }()

	repo := NewRepository(store.NewWithDB(db, store.DriverSQLite))

	expectedQuery := `SELECT "FirstName", "LastName" FROM "Authors"` +
		` WHERE "LastName" IN (?, ?) ORDER BY "Id"`
	mock.ExpectQuery(regexp.QuoteMeta(expectedQuery)).
		WithArgs("Dawkins", "Hawking").
		WillReturnRows(sqlmock.NewRows([]string{"FirstName", "LastName"}).
			AddRow("Richard", "Dawkins").
			AddRow("Stephen", "Hawking"))

	_, err = repo.Data(context.Background(), nil, []base.QueryFilter{{
		ColumnName: "LastName",
		FilterType: base.FilterTypeAnyInList,
		Values:     []string{"Dawkins", "Hawking"},
	}})
	if err != nil {
		t.Fatalf("Data failed: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Unmet query expectations: %v", err)
	}
}
