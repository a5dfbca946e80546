// Copyright 2025 DataShelf
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"fmt"
)

// Table and column names of the provider's dataset. The repositories build
// their queries against these.
const (
	AuthorsTable = "Authors"
	BooksTable   = "Books"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS "Authors" (
		"Id" INTEGER PRIMARY KEY,
		"FirstName" TEXT NOT NULL,
		"LastName" TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS "Books" (
		"Id" INTEGER PRIMARY KEY,
		"Title" TEXT NOT NULL,
		"PublishedDate" TEXT NOT NULL,
		"AuthorId" INTEGER NOT NULL REFERENCES "Authors" ("Id")
	)`,
}

// EnsureSchema creates the Authors and Books tables if they do not exist.
// Every book belongs to exactly one author via the AuthorId foreign key.
func (s *Store) EnsureSchema(ctx context.Context) error {
	for _, statement := range schemaStatements {
		if err := s.Exec(ctx, statement); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}
