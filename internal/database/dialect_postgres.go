package database

import (
	"fmt"
	"strings"
)

// PostgresDialect is the production backend, via lib/pq.
type PostgresDialect struct{}

func (d *PostgresDialect) DriverName() string {
	return "postgres"
}

// Placeholder renders postgres's numbered markers.
func (d *PostgresDialect) Placeholder(position int) string {
	return fmt.Sprintf("$%d", position)
}

// SupportsLastInsertID is false; lib/pq doesn't implement
// LastInsertId, so inserts use RETURNING.
func (d *PostgresDialect) SupportsLastInsertID() bool {
	return false
}

func (d *PostgresDialect) ReturningClause(column string) string {
	return fmt.Sprintf(" RETURNING %s", column)
}

// InitStatements sets up the citext extension backing the
// case-insensitive name columns. Foreign keys need no setup here.
func (d *PostgresDialect) InitStatements() []string {
	return []string{
		"CREATE EXTENSION IF NOT EXISTS citext",
	}
}

// IsDuplicateKeyError matches unique_violation (code 23505) by message
// text, tolerating the different phrasings lib/pq surfaces.
func (d *PostgresDialect) IsDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "duplicate key") ||
		strings.Contains(errStr, "23505") ||
		strings.Contains(errStr, "unique constraint")
}

// CaseInsensitiveCollation is empty; name columns use citext instead.
func (d *PostgresDialect) CaseInsensitiveCollation() string {
	return ""
}
