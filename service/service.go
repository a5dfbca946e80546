// Copyright 2025 DataShelf
// SPDX-License-Identifier: Apache-2.0

// Package service implements the query and discovery pipeline: validate the
// connection settings, resolve the requested data source, delegate to its
// repository, and envelope the result.
package service

import (
	"context"

	"datashelf/platform/auth"
	"datashelf/platform/sources/base"
)

// QueryRequest is the shared request shape of the query and discovery
// operations.
type QueryRequest struct {
	Settings base.Settings      `json:"settings"`
	Columns  []string           `json:"columns,omitempty"`
	Filters  []base.QueryFilter `json:"filters,omitempty"`
}

// DataPayload is the tabular part of a query result. Rows are positional over
// Columns.
type DataPayload struct {
	Columns []string   `json:"columns"`
	Rows    []base.Row `json:"rows"`
}

// QueryResult is the query operation's response envelope.
type QueryResult struct {
	Data       DataPayload     `json:"data"`
	Pagination base.Pagination `json:"pagination"`
}

// DiscoveryResult is the discovery operation's response envelope.
type DiscoveryResult struct {
	DataSummary   base.DataSummary    `json:"dataSummary"`
	FilterOptions []base.FilterOption `json:"filterOptions"`
	Pagination    base.Pagination     `json:"pagination"`
}

// ConnectionValidator checks connection settings.
type ConnectionValidator interface {
	ValidateConnection(settings base.Settings) auth.ValidationResult
}

// Resolver resolves a data-source identifier to its repository.
type Resolver interface {
	Resolve(sourceID string) (base.Repository, error)
}

// DataService runs the request pipeline. It is stateless and safe for
// concurrent use.
type DataService struct {
	validator ConnectionValidator
	resolver  Resolver
}

// NewDataService creates the service over the given validator and source
// resolver.
func NewDataService(validator ConnectionValidator, resolver Resolver) *DataService {
	return &DataService{validator: validator, resolver: resolver}
}

// ValidateConnection checks the connection settings without touching any data
// source. A verified tenant id is recorded on ctx for request logging.
func (s *DataService) ValidateConnection(ctx context.Context, settings base.Settings) auth.ValidationResult {
	result := s.validator.ValidateConnection(settings)
	if result.Valid {
		auth.RecordTenantID(ctx, result.TenantID)
	}
	return result
}

// QueryData returns the rows of the requested data source, projected over the
// requested columns and restricted by the recognized filters.
func (s *DataService) QueryData(ctx context.Context, req QueryRequest) (QueryResult, error) {
	repo, err := s.validateAndResolve(ctx, req)
	if err != nil {
		return QueryResult{}, err
	}

	columns := repo.Columns(req.Columns)
	rows, err := repo.Data(ctx, req.Columns, req.Filters)
	if err != nil {
		return QueryResult{}, err
	}

	return QueryResult{
		Data:       DataPayload{Columns: columns, Rows: rows},
		Pagination: paginateAll(len(rows)),
	}, nil
}

// DiscoverData returns summary aggregates and facet options for the requested
// data source.
func (s *DataService) DiscoverData(ctx context.Context, req QueryRequest) (DiscoveryResult, error) {
	repo, err := s.validateAndResolve(ctx, req)
	if err != nil {
		return DiscoveryResult{}, err
	}

	summary, err := repo.Summary(ctx, req.Filters)
	if err != nil {
		return DiscoveryResult{}, err
	}

	options, err := repo.FilterOptions(ctx, req.Columns, req.Filters)
	if err != nil {
		return DiscoveryResult{}, err
	}

	return DiscoveryResult{
		DataSummary:   summary,
		FilterOptions: options,
		Pagination:    paginateAll(len(options)),
	}, nil
}

func (s *DataService) validateAndResolve(ctx context.Context, req QueryRequest) (base.Repository, error) {
	result := s.validator.ValidateConnection(req.Settings)
	if !result.Valid {
		return nil, base.Unauthorized("Invalid connection")
	}
	auth.RecordTenantID(ctx, result.TenantID)

	sourceTable, ok := req.Settings.Get(base.SettingSourceTable)
	if !ok || sourceTable == "" {
		return nil, base.BadRequest("An internal data source is not specified")
	}

	repo, err := s.resolver.Resolve(sourceTable)
	if err != nil {
		return nil, err
	}
	return repo, nil
}

// paginateAll wraps a full result set in a single-page envelope. Requests do
// not carry page parameters, so every response is page one of one.
func paginateAll(count int) base.Pagination {
	return base.Pagination{
		PageNumber: 1,
		PageSize:   count,
		TotalPages: 1,
		TotalCount: count,
	}
}
