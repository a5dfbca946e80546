// Copyright 2025 DataShelf
// SPDX-License-Identifier: Apache-2.0

/*
Package logger provides structured JSON logging for DataShelf components.

Log entries are written to stdout as single-line JSON, ready for any log
aggregation system. Each entry carries the component name, instance ID and
container name for tracing, plus optional tenant and request IDs for
correlating a tenant's requests.

Create a logger for your component:

	log := logger.New("connector")

Log messages with tenant and request context:

	log.Info(tenantID, requestID, "Query completed", map[string]any{
	    "source": "Authors",
	    "rows":   2,
	})

Log errors with their HTTP status:

	log.ErrorWithCode(tenantID, requestID, "Query failed", 500, err, nil)

The logger reads INSTANCE_ID from the environment and detects the container
name from the hostname. Logger instances are safe for concurrent use.
*/
package logger
