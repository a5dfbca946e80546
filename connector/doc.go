// Copyright 2025 DataShelf
// SPDX-License-Identifier: Apache-2.0

/*
Package connector serves the DataShelf reference data connector over HTTP.

Endpoints:

	POST /api/validate    - validate connection settings
	POST /api/query       - query a data source's rows
	POST /api/discovery   - summary aggregates and facet options
	GET  /api/healthcheck - liveness probe
	GET  /metrics         - Prometheus metrics

The query and discovery endpoints read the target data source from the
SourceTable connection setting and map pipeline errors onto HTTP statuses:
failed validation is 401, a missing source setting or malformed filter is 400,
an unknown source is 404, and everything else is 500.
*/
package connector
