// Copyright 2025 DataShelf
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"fmt"
)

type seedAuthor struct {
	id        int
	firstName string
	lastName  string
	books     []seedBook
}

type seedBook struct {
	id            int
	title         string
	publishedDate string
}

var demoAuthors = []seedAuthor{
	{
		id:        1,
		firstName: "Richard",
		lastName:  "Dawkins",
		books: []seedBook{
			{id: 1, title: "The Selfish Gene", publishedDate: "1985-03-01"},
			{id: 2, title: "The Extended Phenotype", publishedDate: "1995-03-01"},
			{id: 3, title: "The Blind Watchmaker", publishedDate: "2005-03-01"},
		},
	},
	{
		id:        2,
		firstName: "Stephen",
		lastName:  "Hawking",
		books: []seedBook{
			{id: 4, title: "A Brief History of Time", publishedDate: "1989-03-01"},
			{id: 5, title: "The Universe in a Nutshell", publishedDate: "1999-03-01"},
			{id: 6, title: "The Grand Design", publishedDate: "2009-03-01"},
		},
	},
}

// SeedDemoData loads the demo library dataset. Seeding is idempotent: a store
// that already has authors is left untouched.
func (s *Store) SeedDemoData(ctx context.Context) error {
	count, err := s.ScalarInt(ctx, Select(AuthorsTable).ColumnExpr("count(*)"))
	if err != nil {
		return fmt.Errorf("failed to check for existing data: %w", err)
	}
	if count > 0 {
		return nil
	}

	for _, author := range demoAuthors {
		err := s.Exec(ctx,
			`INSERT INTO "Authors" ("Id", "FirstName", "LastName") VALUES (?, ?, ?)`,
			author.id, author.firstName, author.lastName,
		)
		if err != nil {
			return fmt.Errorf("failed to seed author '%s': %w", author.lastName, err)
		}

		for _, book := range author.books {
			err := s.Exec(ctx,
				`INSERT INTO "Books" ("Id", "Title", "PublishedDate", "AuthorId") VALUES (?, ?, ?, ?)`,
				book.id, book.title, book.publishedDate, author.id,
			)
			if err != nil {
				return fmt.Errorf("failed to seed book '%s': %w", book.title, err)
			}
		}
	}

	s.logger.Printf("Seeded demo data: %d authors", len(demoAuthors))
	return nil
}
