// Copyright 2025 DataShelf
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	_ "github.com/lib/pq"  // postgres driver
	_ "modernc.org/sqlite" // sqlite driver
)

// DateLayout is the storage format for date columns. Dates sort correctly as
// text in this layout, which MIN/MAX aggregates rely on.
const DateLayout = "2006-01-02"

// Supported driver names.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// DefaultSQLiteDSN is a shared in-memory database: every pooled connection
// sees the same data.
const DefaultSQLiteDSN = "file::memory:?cache=shared"

// ErrNoRows is returned by First when the query matched nothing.
var ErrNoRows = errors.New("store: no rows in result set")

// Config selects the backing database.
type Config struct {
	Driver string
	DSN    string
}

// Store wraps the shared connection pool. It is safe for concurrent read
// queries; that property is guaranteed by the backing database, not by
// locking here.
type Store struct {
	db     *sql.DB
	driver string
	logger *log.Logger
}

// Open connects to the configured database and verifies the connection.
func Open(ctx context.Context, config Config) (*Store, error) {
	driver := config.Driver
	if driver == "" {
		driver = DriverSQLite
	}

	dsn := config.DSN
	switch driver {
	case DriverSQLite:
		if dsn == "" {
			dsn = DefaultSQLiteDSN
		}
	case DriverPostgres:
		if dsn == "" {
			return nil, fmt.Errorf("postgres driver requires a DSN")
		}
	default:
		return nil, fmt.Errorf("unsupported database driver '%s'", driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", driver, err)
	}

	if driver == DriverSQLite {
		// The shared-cache in-memory database lives as long as one
		// connection holds it open; a single pooled connection also keeps
		// writes serialized.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping %s database: %w", driver, err)
	}

	return &Store{
		db:     db,
		driver: driver,
		logger: log.New(os.Stdout, "[STORE] ", log.LstdFlags),
	}, nil
}

// NewWithDB wraps an existing connection pool. Used by tests to inject a mock
// database.
func NewWithDB(db *sql.DB, driver string) *Store {
	return &Store{
		db:     db,
		driver: driver,
		logger: log.New(os.Stdout, "[STORE] ", log.LstdFlags),
	}
}

// Close releases the connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

// Driver returns the active driver name.
func (s *Store) Driver() string {
	return s.driver
}

// DB exposes the underlying pool for schema management and tests.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Rows executes the built query and returns all rows as positional value
// slices, in projection order. []byte values are normalized to strings.
func (s *Store) Rows(ctx context.Context, builder *SelectBuilder) ([][]any, error) {
	query, args, err := builder.Build()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, s.rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer func() { _ = rows.Close() }()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to get columns: %w", err)
	}

	var results [][]any
	for rows.Next() {
		values := make([]any, len(columns))
		pointers := make([]any, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}
		if err := rows.Scan(pointers...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		for i, value := range values {
			if b, ok := value.([]byte); ok {
				values[i] = string(b)
			}
		}
		results = append(results, values)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during row iteration: %w", err)
	}

	return results, nil
}

// Maps executes the built query and returns all rows keyed by result column
// name (alias).
func (s *Store) Maps(ctx context.Context, builder *SelectBuilder) ([]map[string]any, error) {
	query, args, err := builder.Build()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, s.rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer func() { _ = rows.Close() }()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to get columns: %w", err)
	}

	var results []map[string]any
	for rows.Next() {
		values := make([]any, len(columns))
		pointers := make([]any, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}
		if err := rows.Scan(pointers...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		row := make(map[string]any, len(columns))
		for i, column := range columns {
			value := values[i]
			if b, ok := value.([]byte); ok {
				value = string(b)
			}
			row[column] = value
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during row iteration: %w", err)
	}

	return results, nil
}

// First executes the built query and returns the first row keyed by result
// column name, or ErrNoRows.
func (s *Store) First(ctx context.Context, builder *SelectBuilder) (map[string]any, error) {
	results, err := s.Maps(ctx, builder)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, ErrNoRows
	}
	return results[0], nil
}

// ScalarInt executes the built query and returns the single integer value of
// the first column of the first row.
func (s *Store) ScalarInt(ctx context.Context, builder *SelectBuilder) (int, error) {
	query, args, err := builder.Build()
	if err != nil {
		return 0, err
	}

	var result int64
	if err := s.db.QueryRowContext(ctx, s.rebind(query), args...).Scan(&result); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrNoRows
		}
		return 0, fmt.Errorf("scalar query failed: %w", err)
	}
	return int(result), nil
}

// Exec runs a statement outside the builder, for schema setup and seeding.
func (s *Store) Exec(ctx context.Context, query string, args ...any) error {
	if _, err := s.db.ExecContext(ctx, s.rebind(query), args...); err != nil {
		return fmt.Errorf("exec failed: %w", err)
	}
	return nil
}

// rebind rewrites '?' placeholders to the driver's style. sqlite takes '?'
// as-is; postgres wants $1..$n.
func (s *Store) rebind(query string) string {
	if s.driver != DriverPostgres {
		return query
	}

	var sb strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			sb.WriteRune('$')
			sb.WriteString(strconv.Itoa(n))
		} else {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
