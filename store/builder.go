// Copyright 2025 DataShelf
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"fmt"
	"strings"
)

// SelectBuilder assembles a SELECT statement from the pieces the data sources
// need. Identifiers are validated and quoted; values always go through
// placeholders. The builder records the first error it encounters and reports
// it from Build, so call sites can chain without checking every step.
type SelectBuilder struct {
	table   string
	selects []string
	joins   []string
	wheres  []string
	groupBy []string
	orderBy []string
	args    []any
	err     error
}

// Select starts a query against the given table.
func Select(table string) *SelectBuilder {
	b := &SelectBuilder{table: table}
	if err := validateIdentifier(table); err != nil {
		b.err = err
	}
	return b
}

// Columns appends quoted column projections, in the given order. A column may
// be qualified as "Table.Column".
func (b *SelectBuilder) Columns(columns ...string) *SelectBuilder {
	for _, column := range columns {
		quoted, err := quoteIdentifier(column)
		if err != nil {
			b.setErr(err)
			return b
		}
		b.selects = append(b.selects, quoted)
	}
	return b
}

// ColumnExpr appends a raw projection expression, such as an aggregate with an
// alias. The expression is trusted; it must never contain caller input.
func (b *SelectBuilder) ColumnExpr(expr string) *SelectBuilder {
	b.selects = append(b.selects, expr)
	return b
}

// Join adds an inner join on leftColumn = rightColumn.
func (b *SelectBuilder) Join(table, leftColumn, rightColumn string) *SelectBuilder {
	quotedTable, err := quoteIdentifier(table)
	if err != nil {
		b.setErr(err)
		return b
	}
	left, err := quoteIdentifier(leftColumn)
	if err != nil {
		b.setErr(err)
		return b
	}
	right, err := quoteIdentifier(rightColumn)
	if err != nil {
		b.setErr(err)
		return b
	}
	b.joins = append(b.joins, fmt.Sprintf("JOIN %s ON %s = %s", quotedTable, left, right))
	return b
}

// WhereIn adds a set-membership condition. An empty value list matches
// nothing, mirroring IN over an empty set.
func (b *SelectBuilder) WhereIn(column string, values []string) *SelectBuilder {
	if len(values) == 0 {
		b.wheres = append(b.wheres, "1 = 0")
		return b
	}

	quoted, err := quoteIdentifier(column)
	if err != nil {
		b.setErr(err)
		return b
	}

	placeholders := make([]string, len(values))
	for i, value := range values {
		placeholders[i] = "?"
		b.args = append(b.args, value)
	}
	b.wheres = append(b.wheres, fmt.Sprintf("%s IN (%s)", quoted, strings.Join(placeholders, ", ")))
	return b
}

// WhereLike adds a substring-match condition. Match semantics (in particular
// case sensitivity) are those of the backing database.
func (b *SelectBuilder) WhereLike(column string, pattern string) *SelectBuilder {
	quoted, err := quoteIdentifier(column)
	if err != nil {
		b.setErr(err)
		return b
	}
	b.wheres = append(b.wheres, quoted+" LIKE ?")
	b.args = append(b.args, pattern)
	return b
}

// GroupBy adds grouping columns.
func (b *SelectBuilder) GroupBy(columns ...string) *SelectBuilder {
	for _, column := range columns {
		quoted, err := quoteIdentifier(column)
		if err != nil {
			b.setErr(err)
			return b
		}
		b.groupBy = append(b.groupBy, quoted)
	}
	return b
}

// OrderBy adds ascending ordering columns, for deterministic results.
func (b *SelectBuilder) OrderBy(columns ...string) *SelectBuilder {
	for _, column := range columns {
		quoted, err := quoteIdentifier(column)
		if err != nil {
			b.setErr(err)
			return b
		}
		b.orderBy = append(b.orderBy, quoted)
	}
	return b
}

// Build renders the statement with '?' placeholders. The store rebinds
// placeholders for drivers that use a different style.
func (b *SelectBuilder) Build() (query string, args []any, err error) {
	if b.err != nil {
		return "", nil, b.err
	}
	if len(b.selects) == 0 {
		return "", nil, fmt.Errorf("select on table '%s' has no projection", b.table)
	}

	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(strings.Join(b.selects, ", "))
	sb.WriteString(" FROM ")
	sb.WriteString(mustQuote(b.table))

	for _, join := range b.joins {
		sb.WriteRune(' ')
		sb.WriteString(join)
	}
	if len(b.wheres) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(b.wheres, " AND "))
	}
	if len(b.groupBy) > 0 {
		sb.WriteString(" GROUP BY ")
		sb.WriteString(strings.Join(b.groupBy, ", "))
	}
	if len(b.orderBy) > 0 {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(strings.Join(b.orderBy, ", "))
	}

	return sb.String(), b.args, nil
}

func (b *SelectBuilder) setErr(err error) {
	if b.err == nil {
		b.err = err
	}
}

func validateIdentifier(identifier string) error {
	if identifier == "" {
		return fmt.Errorf("empty identifier")
	}
	if strings.ContainsAny(identifier, `"'`+"`") {
		return fmt.Errorf("identifier '%s' contains a quote character", identifier)
	}
	return nil
}

// quoteIdentifier quotes an identifier, handling "Table.Column" qualification.
func quoteIdentifier(identifier string) (string, error) {
	parts := strings.Split(identifier, ".")
	for i, part := range parts {
		if err := validateIdentifier(part); err != nil {
			return "", err
		}
		parts[i] = `"` + part + `"`
	}
	return strings.Join(parts, "."), nil
}

// mustQuote is quoteIdentifier for identifiers already validated by the
// builder entry points.
func mustQuote(identifier string) string {
	quoted, _ := quoteIdentifier(identifier)
	return quoted
}
