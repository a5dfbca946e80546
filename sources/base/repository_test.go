// Copyright 2025 DataShelf
// SPDX-License-Identifier: Apache-2.0

package base

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testDescriptor() Descriptor {
	return Descriptor{
		SourceID:     "Authors",
		ColumnNames:  []string{"FirstName", "LastName"},
		FilterColumn: "LastName",
		FilterType:   FilterTypeAnyInList,
	}
}

func TestResolveColumns(t *testing.T) {
	d := testDescriptor()

	assert.Equal(t, []string{"FirstName", "LastName"}, d.ResolveColumns(nil))
	assert.Equal(t, []string{"FirstName", "LastName"}, d.ResolveColumns([]string{}))
	assert.Equal(t, []string{"LastName"}, d.ResolveColumns([]string{"LASTNAME"}))
	assert.Equal(t, []string{"FirstName", "LastName"},
		d.ResolveColumns([]string{"LastName", "FirstName"}),
		"resolution keeps canonical order")
	assert.Empty(t, d.ResolveColumns([]string{"Age"}))
}

func TestResolveColumnsIsIdempotent(t *testing.T) {
	d := testDescriptor()

	once := d.ResolveColumns([]string{"lastname", "Age"})
	twice := d.ResolveColumns(once)
	assert.Equal(t, once, twice)
}

func TestRecognizedFilters(t *testing.T) {
	d := testDescriptor()

	filters := []QueryFilter{
		{ColumnName: "LastName", FilterType: FilterTypeAnyInList, Values: []string{"Dawkins"}},
		{ColumnName: "FirstName", FilterType: FilterTypeAnyInList, Values: []string{"Richard"}},
		{ColumnName: "LastName", FilterType: FilterTypeStringContains, Values: []string{"Daw"}},
	}

	recognized := d.RecognizedFilters(filters)
	assert.Len(t, recognized, 1)
	assert.Equal(t, "LastName", recognized[0].ColumnName)

	assert.Len(t, filters, 3, "input slice is not mutated")
}

func TestSettingsGet(t *testing.T) {
	settings := Settings{"ApiKey": "secret", "SourceTable": "Authors"}

	value, ok := settings.Get("apikey")
	assert.True(t, ok)
	assert.Equal(t, "secret", value)

	_, ok = settings.Get("TenantAccessToken")
	assert.False(t, ok)
}

func TestQueryErrorStatusMapping(t *testing.T) {
	tests := []struct {
		err    *QueryError
		status int
	}{
		{Unauthorized("invalid connection"), http.StatusUnauthorized},
		{BadRequest("bad filter"), http.StatusBadRequest},
		{NotFound("no such source"), http.StatusNotFound},
		{Internal("query failed", errors.New("disk on fire")), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.status, KindOf(tt.err).HTTPStatus())
	}
}

func TestKindOfUnwrapsWrappedErrors(t *testing.T) {
	wrapped := fmt.Errorf("pipeline: %w", BadRequest("bad filter"))
	assert.Equal(t, ErrorBadRequest, KindOf(wrapped))

	assert.Equal(t, ErrorInternal, KindOf(errors.New("plain")))
}

func TestInternalErrorKeepsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := Internal("query failed", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "query failed: connection reset", err.Error())
}
