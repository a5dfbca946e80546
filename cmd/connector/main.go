// Copyright 2025 DataShelf
// SPDX-License-Identifier: Apache-2.0

// Package main is the entry point for the DataShelf connector service.
//
// The connector exposes a reference authors-and-books dataset through a
// validated query and discovery API.
//
// Usage:
//
//	./connector
//
// Environment Variables:
//
//	PORT - HTTP server port (default: 8084)
//	DATASHELF_API_KEY - API key tenants must present (required)
//	DATASHELF_JWT_SECRET - HMAC secret for tenant access tokens (required)
//	DATASHELF_CONFIG - path to a YAML config file (optional)
//	DATABASE_DRIVER - sqlite (default) or postgres
//	DATABASE_URL - database DSN (required for postgres)
//	DATASHELF_SEED_DEMO_DATA - seed the demo dataset (default: true)
package main

import (
	"datashelf/platform/connector"
)

func main() {
	connector.Run()
}
